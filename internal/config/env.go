package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var userHomeDir = os.UserHomeDir

const (
	OracleAuto    = "auto"
	OracleGemini  = "gemini"
	OracleCommand = "command"
	OracleFixture = "fixture"

	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"

	DefaultModel         = "gemini-2.5-flash"
	DefaultOpeningDelay  = 6 * time.Second
	DefaultOracleTimeout = 2 * time.Minute
)

// Runtime is the process configuration: which oracle and store to use and
// where to keep data. It comes from the environment (optionally a .env file)
// and may be overridden by CLI flags.
type Runtime struct {
	Oracle        string        `env:"HAKIM_ORACLE" envDefault:"auto"`
	APIKey        string        `env:"GEMINI_API_KEY"`
	FallbackKey   string        `env:"API_KEY"`
	Model         string        `env:"HAKIM_MODEL" envDefault:"gemini-2.5-flash"`
	OracleCommand string        `env:"HAKIM_ORACLE_CMD"`
	OracleTimeout time.Duration `env:"HAKIM_ORACLE_TIMEOUT" envDefault:"2m"`
	Fixtures      string        `env:"HAKIM_FIXTURES"`
	Store         string        `env:"HAKIM_STORE" envDefault:"file"`
	DataDir       string        `env:"HAKIM_DATA_DIR"`
	LogLevel      string        `env:"HAKIM_LOG_LEVEL" envDefault:"info"`
	AudioPlayer   string        `env:"HAKIM_AUDIO_PLAYER"`
	AudioDir      string        `env:"HAKIM_AUDIO_DIR"`
	OpeningDelay  time.Duration `env:"HAKIM_OPENING_DELAY" envDefault:"6s"`
}

// LoadRuntime reads an optional .env file from dir (the working directory
// when empty) and parses the environment. Variables already set in the
// environment win over the file.
func LoadRuntime(dir string) (Runtime, error) {
	path := ".env"
	if dir != "" {
		path = filepath.Join(dir, ".env")
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Runtime{}, fmt.Errorf("load %s: %w", path, err)
	}

	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, fmt.Errorf("parse env: %w", err)
	}
	return rt.Resolve()
}

// Resolve fills derived fields and checks enumerations.
func (r Runtime) Resolve() (Runtime, error) {
	if r.APIKey == "" {
		r.APIKey = r.FallbackKey
	}
	r.Oracle = strings.ToLower(strings.TrimSpace(r.Oracle))
	if r.Oracle == "" || r.Oracle == OracleAuto {
		switch {
		case r.APIKey != "":
			r.Oracle = OracleGemini
		case r.OracleCommand != "":
			r.Oracle = OracleCommand
		default:
			r.Oracle = OracleFixture
		}
	}
	switch r.Oracle {
	case OracleGemini, OracleCommand, OracleFixture:
	default:
		return r, fmt.Errorf("unknown oracle %q (want %s, %s or %s)", r.Oracle, OracleGemini, OracleCommand, OracleFixture)
	}

	r.Store = strings.ToLower(strings.TrimSpace(r.Store))
	if r.Store == "" {
		r.Store = StoreFile
	}
	switch r.Store {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return r, fmt.Errorf("unknown store %q (want %s, %s or %s)", r.Store, StoreFile, StoreSQLite, StoreMemory)
	}

	if strings.TrimSpace(r.Model) == "" {
		r.Model = DefaultModel
	}
	if r.OracleTimeout <= 0 {
		r.OracleTimeout = DefaultOracleTimeout
	}
	if r.OpeningDelay < 0 {
		r.OpeningDelay = 0
	}
	if r.DataDir == "" {
		r.DataDir = DefaultDataDir()
	}
	return r, nil
}

// DefaultDataDir is ~/.hakim, or .hakim in the working directory when the
// home directory is unknown.
func DefaultDataDir() string {
	home, err := userHomeDir()
	if err != nil || home == "" {
		return ".hakim"
	}
	return filepath.Join(home, ".hakim")
}

func (r Runtime) LogPath() string {
	return filepath.Join(r.DataDir, "hakim.log")
}

func (r Runtime) StorePath() string {
	switch r.Store {
	case StoreSQLite:
		return filepath.Join(r.DataDir, "hakim.db")
	case StoreFile:
		return filepath.Join(r.DataDir, "slots.json")
	default:
		return ""
	}
}
