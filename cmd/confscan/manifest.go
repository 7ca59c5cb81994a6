package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type toolConfig struct {
	Scan     scanConfig     `toml:"scan"`
	Dialects dialectsConfig `toml:"dialects"`
	Cache    cacheConfig    `toml:"cache"`
}

type scanConfig struct {
	Ignore         []string `toml:"ignore"`
	FollowSymlinks bool     `toml:"follow_symlinks"`
	Jobs           int      `toml:"jobs"`
}

type dialectsConfig struct {
	// Allow lists accepted model names; nil принимает весь реестр.
	Allow []string `toml:"allow"`
}

type cacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// defaultToolConfig is what a run without confscan.toml gets.
func defaultToolConfig() toolConfig {
	cfg := toolConfig{}
	cfg.Cache.Enabled = true
	return cfg
}

func findConfscanToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "confscan.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadToolConfig(path string) (toolConfig, error) {
	cfg := defaultToolConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return toolConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("scan", "jobs") && cfg.Scan.Jobs < 0 {
		return toolConfig{}, fmt.Errorf("%s: [scan].jobs must be >= 0", path)
	}
	for _, pattern := range cfg.Scan.Ignore {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return toolConfig{}, fmt.Errorf("%s: bad [scan].ignore pattern %q: %w", path, pattern, err)
		}
	}
	return cfg, nil
}

// effectiveToolConfig walks upward from startDir to the nearest confscan.toml.
// Отсутствие файла не ошибка: берутся значения по умолчанию.
func effectiveToolConfig(startDir string) (toolConfig, error) {
	path, ok, err := findConfscanToml(startDir)
	if err != nil {
		return toolConfig{}, err
	}
	if !ok {
		return defaultToolConfig(), nil
	}
	return loadToolConfig(path)
}
