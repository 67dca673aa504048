package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is read from the environment. Command-line flags may override it.
type Config struct {
	// DataDir holds the progress file and the journal. Empty means ~/.questboss.
	DataDir string `env:"QB_DATA_DIR"`
	// Backend selects where progress lives: "file" (JSON) or "sqlite".
	Backend string `env:"QB_BACKEND" envDefault:"file"`
	// CatalogPath optionally points at a YAML or TOML catalog override.
	CatalogPath string `env:"QB_CATALOG"`
	// Addr is the listen address for `qb serve`.
	Addr string `env:"QB_ADDR" envDefault:"127.0.0.1:8787"`
	// Journal toggles the sqlite completion history.
	Journal bool `env:"QB_JOURNAL" envDefault:"true"`
}

// FromEnv loads Config from environment variables. It does not validate:
// flags may still override values, so callers run Validate afterwards.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Backend = NormalizeBackend(cfg.Backend)
	return cfg, nil
}

// NormalizeBackend folds case and surrounding space so "SQLite" selects sqlite.
func NormalizeBackend(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendFile, BackendSQLite)
	}
	if c.CatalogPath != "" {
		switch strings.ToLower(filepath.Ext(c.CatalogPath)) {
		case ".yaml", ".yml", ".toml":
		default:
			return fmt.Errorf("catalog %s: unsupported extension (want .yaml, .yml or .toml)", c.CatalogPath)
		}
	}
	return nil
}
