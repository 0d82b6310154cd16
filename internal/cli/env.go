package cli

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/config"
	"github.com/jbonatakis/hakim/internal/logging"
	"github.com/jbonatakis/hakim/internal/oracle"
	"github.com/jbonatakis/hakim/internal/store"
)

// env is what every command needs: resolved runtime config, a logger and the
// persistence gateway.
type env struct {
	rt      config.Runtime
	log     *zap.Logger
	gw      *store.Gateway
	closeKV func() error
}

// loadRuntime reads the environment and applies flag overrides.
func loadRuntime(flags *globalFlags) (config.Runtime, error) {
	rt, err := config.LoadRuntime("")
	if err != nil {
		return config.Runtime{}, err
	}
	if flags.dataDir != "" {
		rt.DataDir = flags.dataDir
	}
	if flags.store != "" {
		rt.Store = flags.store
	}
	if flags.fixtures != "" {
		rt.Fixtures = flags.fixtures
		if flags.oracle == "" {
			rt.Oracle = config.OracleFixture
		}
	}
	if flags.oracle != "" {
		rt.Oracle = flags.oracle
	}
	if flags.verbose {
		rt.LogLevel = "debug"
	}
	rt, err = rt.Resolve()
	if err != nil {
		return config.Runtime{}, UsageError{Message: err.Error()}
	}
	return rt, nil
}

func openEnv(flags *globalFlags) (*env, error) {
	rt, err := loadRuntime(flags)
	if err != nil {
		return nil, err
	}
	if rt.Store != config.StoreMemory {
		if err := os.MkdirAll(rt.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	logPath := ""
	if rt.Store != config.StoreMemory {
		logPath = rt.LogPath()
	}
	logger, err := logging.New(logging.Options{Path: logPath, Level: rt.LogLevel, Verbose: flags.verbose})
	if err != nil {
		return nil, err
	}
	if logPath == "" && !flags.verbose {
		// No data directory to log into and stdout belongs to the command.
		logger = logging.Nop()
	}

	kv, closeKV, err := store.Open(rt.Store, rt.StorePath(), logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open %s store: %w", rt.Store, err)
	}
	logger.Debug("environment ready",
		zap.String("store", rt.Store),
		zap.String("oracle", rt.Oracle),
		zap.String("data_dir", rt.DataDir),
	)
	return &env{rt: rt, log: logger, gw: store.NewGateway(kv, logger), closeKV: closeKV}, nil
}

func (e *env) Close() error {
	err := e.closeKV()
	_ = e.log.Sync()
	return err
}

// newOracle builds the configured content oracle.
func (e *env) newOracle(ctx context.Context) (*oracle.Service, error) {
	gen, err := oracle.NewGenerator(ctx, e.rt)
	if err != nil {
		return nil, fmt.Errorf("configure %s oracle: %w", e.rt.Oracle, err)
	}
	fields := []zap.Field{zap.String("oracle", e.rt.Oracle)}
	if g, ok := gen.(*oracle.Gemini); ok {
		fields = append(fields, zap.String("model", g.Model()))
	}
	e.log.Debug("oracle ready", fields...)
	return oracle.NewService(gen, e.log), nil
}
