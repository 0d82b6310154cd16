package oracle

import (
	"context"
	"fmt"

	"github.com/jbonatakis/hakim/internal/config"
)

// NewGenerator builds the generator selected by rt.Oracle.
func NewGenerator(ctx context.Context, rt config.Runtime) (Generator, error) {
	switch rt.Oracle {
	case config.OracleGemini:
		return NewGemini(ctx, rt.APIKey, rt.Model)
	case config.OracleCommand:
		return NewShellCommand(rt.OracleCommand, rt.OracleTimeout)
	case config.OracleFixture:
		if rt.Fixtures != "" {
			return LoadFixture(rt.Fixtures)
		}
		return DefaultFixture()
	default:
		return nil, fmt.Errorf("unknown oracle %q", rt.Oracle)
	}
}
