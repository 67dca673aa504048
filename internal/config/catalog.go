package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"questboss/internal/engine"
)

// CatalogFile is the on-disk catalog override. Sections left empty keep the
// built-in defaults.
type CatalogFile struct {
	Bosses  []engine.BossDef       `yaml:"bosses" toml:"bosses"`
	Dailies []engine.DailyQuestDef `yaml:"dailies" toml:"dailies"`
}

// LoadCatalog reads a YAML or TOML catalog (by extension) and merges it
// over the defaults. An empty path returns the defaults.
func LoadCatalog(path string) (engine.Catalog, error) {
	cat := engine.DefaultCatalog()
	if path == "" {
		return cat, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return engine.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var f CatalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &f); err != nil {
			return engine.Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(b), &f); err != nil {
			return engine.Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	default:
		return engine.Catalog{}, fmt.Errorf("catalog %s: unsupported extension", path)
	}

	if len(f.Bosses) > 0 {
		cat.Bosses = f.Bosses
	}
	if len(f.Dailies) > 0 {
		cat.Dailies = f.Dailies
	}
	if err := cat.Validate(); err != nil {
		return engine.Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}
