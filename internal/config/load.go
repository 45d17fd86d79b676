package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
)

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = "pertpath.toml"

// FindConfigFile walks up from startDir looking for pertpath.toml and
// returns its absolute path, or "" when the filesystem root is reached
// without finding one.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFromFile decodes the TOML file at path. The returned metadata tells
// which keys were set and which were not recognized.
func LoadFromFile(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("loading config %s: %w", path, err)
	}
	return &cfg, md, nil
}

// Load resolves the effective configuration. An explicit path must exist;
// otherwise pertpath.toml is searched for from startDir upwards and its
// absence means defaults only. The metadata is nil when no file was read.
func Load(explicitPath, startDir string, envFn EnvFunc, overrides *CLIOverrides) (*ResolvedConfig, *toml.MetaData, error) {
	path := explicitPath
	if path == "" {
		found, err := FindConfigFile(startDir)
		if err != nil {
			return nil, nil, err
		}
		path = found
	}

	var (
		fileCfg *Config
		meta    *toml.MetaData
	)
	logger := logging.New("config")
	if path != "" {
		cfg, md, err := LoadFromFile(path)
		if err != nil {
			return nil, nil, err
		}
		fileCfg, meta = cfg, &md
		logger.Debug("loaded config file", "path", path)
	} else {
		logger.Debug("no config file found, using defaults", "start", startDir)
	}

	rc := Resolve(NewDefaults(), fileCfg, meta, envFn, overrides)
	rc.Path = path
	return rc, meta, nil
}
