package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, "confscan.toml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write confscan.toml: %v", err)
	}
	return path
}

func TestLoadToolConfigFull(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `# test manifest
[scan]
ignore = ["*.bak", "old/*"]
follow_symlinks = true
jobs = 4

[dialects]
allow = ["cisco"]

[cache]
enabled = false
`)
	cfg, err := loadToolConfig(path)
	if err != nil {
		t.Fatalf("loadToolConfig: %v", err)
	}
	if len(cfg.Scan.Ignore) != 2 || cfg.Scan.Ignore[0] != "*.bak" {
		t.Errorf("ignore = %v", cfg.Scan.Ignore)
	}
	if !cfg.Scan.FollowSymlinks || cfg.Scan.Jobs != 4 {
		t.Errorf("scan = %+v", cfg.Scan)
	}
	if len(cfg.Dialects.Allow) != 1 || cfg.Dialects.Allow[0] != "cisco" {
		t.Errorf("allow = %v", cfg.Dialects.Allow)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled = true, want false")
	}
}

func TestLoadToolConfigDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `[scan]
ignore = ["*.swp"]
`)
	cfg, err := loadToolConfig(path)
	if err != nil {
		t.Fatalf("loadToolConfig: %v", err)
	}
	if !cfg.Cache.Enabled {
		t.Error("missing [cache] must keep the cache enabled")
	}
	if cfg.Dialects.Allow != nil {
		t.Errorf("missing [dialects].allow must stay nil, got %v", cfg.Dialects.Allow)
	}
	if cfg.Scan.Jobs != 0 || cfg.Scan.FollowSymlinks {
		t.Errorf("scan defaults: %+v", cfg.Scan)
	}
}

func TestLoadToolConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"broken toml", "not toml :::"},
		{"negative jobs", "[scan]\njobs = -2\n"},
		{"bad ignore glob", "[scan]\nignore = [\"[\"]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.data)
			if _, err := loadToolConfig(path); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestFindConfscanTomlUpwardWalk(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[scan]\n")
	nested := filepath.Join(root, "site", "rack1")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findConfscanToml(nested)
	if err != nil {
		t.Fatalf("findConfscanToml: %v", err)
	}
	if !ok || path != filepath.Join(root, "confscan.toml") {
		t.Errorf("expected manifest at root, got ok=%v path=%q", ok, path)
	}
}

func TestEffectiveToolConfigWithoutManifest(t *testing.T) {
	cfg, err := effectiveToolConfig(t.TempDir())
	if err != nil {
		t.Fatalf("effectiveToolConfig: %v", err)
	}
	if !cfg.Cache.Enabled {
		t.Error("defaults must keep the cache enabled")
	}
	if cfg.Dialects.Allow != nil {
		t.Errorf("defaults must not restrict dialects, got %v", cfg.Dialects.Allow)
	}
}
