package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter confscan.toml",
	Long: `Write a commented starter confscan.toml into the given directory
(default: the current directory). The file configures directory walking,
the dialect allow-list and the parsed-tree cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, "confscan.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(starterManifest()), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized confscan in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - confscan.toml\n")
	return nil
}

// starterManifest returns the commented default configuration. Значения
// совпадают с defaultToolConfig: файл можно удалить без смены поведения.
func starterManifest() string {
	return `# confscan configuration

[scan]
# Glob patterns (matched against base names and paths relative to the
# scan root) to skip during directory walks.
ignore = []
# Follow symlinked files. Symlinked directories are never followed.
follow_symlinks = false
# Worker pool size for directory scans; 0 means one worker per CPU.
jobs = 0

[dialects]
# Model names accepted from the content-type marker line.
# Remove this key to accept every registered dialect.
allow = ["cisco", "juniper", "mrv"]

[cache]
# Cache parsed trees under $XDG_CACHE_HOME/confscan.
enabled = true
`
}
