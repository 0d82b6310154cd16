package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
)

// KV is a string key-value store. Each call is atomic for its one key.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Memory is an in-process KV. The zero value is ready to use.
type Memory struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemory() *Memory {
	return &Memory{items: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = map[string]string{}
	}
	m.items[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Keys returns a snapshot of the stored keys, for tests and diagnostics.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	return keys
}

// FileKV keeps every slot in one JSON object file. Each write rewrites the
// file atomically. A file that no longer decodes is moved aside to
// <path>.corrupt and the store starts over empty.
type FileKV struct {
	path string
	log  *zap.Logger

	mu     sync.Mutex
	items  map[string]string
	loaded bool
}

func NewFileKV(path string, log *zap.Logger) *FileKV {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileKV{path: path, log: log}
}

func (f *FileKV) Path() string {
	return f.path
}

func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return "", false, err
	}
	v, ok := f.items[key]
	return v, ok, nil
}

func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return err
	}
	next := cloneItems(f.items)
	next[key] = value
	if err := f.flush(next); err != nil {
		return err
	}
	f.items = next
	return nil
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return err
	}
	if _, ok := f.items[key]; !ok {
		return nil
	}
	next := cloneItems(f.items)
	delete(next, key)
	if err := f.flush(next); err != nil {
		return err
	}
	f.items = next
	return nil
}

func (f *FileKV) load() error {
	if f.loaded {
		return nil
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.items = map[string]string{}
		f.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("read slot file: %w", err)
	}
	items := map[string]string{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			if err := f.quarantine(err); err != nil {
				return err
			}
			items = map[string]string{}
		}
	}
	f.items = items
	f.loaded = true
	return nil
}

// quarantine moves an undecodable slot file out of the way so later writes
// start from an empty store.
func (f *FileKV) quarantine(cause error) error {
	aside := f.path + ".corrupt"
	if err := os.Rename(f.path, aside); err != nil {
		return fmt.Errorf("move aside corrupt slot file %s: %w", f.path, err)
	}
	f.log.Warn("slot file corrupt, starting empty",
		zap.String("path", f.path),
		zap.String("moved_to", aside),
		zap.Error(cause),
	)
	return nil
}

func (f *FileKV) flush(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode slot file: %w", err)
	}
	data = append(data, '\n')
	return writeFileAtomic(f.path, data, 0o600)
}

func cloneItems(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
