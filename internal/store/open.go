package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/config"
)

// Open builds the KV backend named by kind. The returned close function is
// never nil.
func Open(kind string, path string, log *zap.Logger) (KV, func() error, error) {
	noop := func() error { return nil }
	switch kind {
	case config.StoreMemory:
		return NewMemory(), noop, nil
	case config.StoreFile:
		if path == "" {
			return nil, noop, fmt.Errorf("file store needs a path")
		}
		return NewFileKV(path, log), noop, nil
	case config.StoreSQLite:
		kv, err := OpenSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		return kv, kv.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q", kind)
	}
}
