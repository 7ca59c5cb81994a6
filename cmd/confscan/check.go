package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"confscan/internal/diag"
	"confscan/internal/diagfmt"
	"confscan/internal/driver"
	"confscan/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path>...",
	Short: "Parse dumps and report diagnostics",
	Long: `Parse configuration dumps without searching them and report everything
the parsers tolerated: unparsable lines, unbalanced closes, scopes left
open at end of input. Directories are walked the same way search walks
them.

Exits 1 when any file fails to load or parses with diagnostics.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "bypass the parsed-tree disk cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	cfg, err := effectiveToolConfig(".")
	if err != nil {
		return err
	}
	// Флаг командной строки сильнее манифеста.
	if !cmd.Flags().Changed("jobs") && cfg.Scan.Jobs > 0 {
		jobs = cfg.Scan.Jobs
	}

	var cache *driver.DiskCache
	if cfg.Cache.Enabled && !noCache {
		cache, err = driver.OpenDiskCache("confscan")
		if err != nil {
			if !quiet {
				fmt.Fprintf(os.Stderr, "warning: tree cache disabled: %v\n", err)
			}
			cache = nil
		}
	}

	opts := driver.DirOptions{
		Parse: driver.ParseOptions{
			MaxDiagnostics: maxDiagnostics,
			Allow:          cfg.Dialects.Allow,
			Cache:          cache,
			Timings:        showTimings,
		},
		Walk: driver.WalkOptions{
			Ignore:         cfg.Scan.Ignore,
			FollowSymlinks: cfg.Scan.FollowSymlinks,
		},
		Jobs: jobs,
	}

	pathMode := diagfmt.PathModeAuto
	displayMode := "auto"
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
		displayMode = "absolute"
	}
	showNotes := withNotes || showTimings

	var (
		failedFiles int
		dirty       bool
		jsonOut     map[string]diagfmt.DiagnosticsOutput
	)
	if format == "json" {
		jsonOut = make(map[string]diagfmt.DiagnosticsOutput)
	}

	for _, path := range args {
		reports, err := driver.ParseDir(cmd.Context(), path, opts)
		if err != nil {
			return err
		}

		// Разборы одного корня делят FileSet, так что короткий формат
		// собирается одним вызовом на корень.
		var rootDiags []diag.Diagnostic
		var rootFS *source.FileSet

		for _, r := range reports {
			if r.Err != nil {
				if r.Skipped() {
					var unsupported *driver.UnsupportedModelError
					if errors.As(r.Err, &unsupported) && !quiet {
						fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
					}
					continue
				}
				failedFiles++
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
				continue
			}

			bag := r.Dump.Bag
			// Толерантный парсер не останавливается на проблемных строках,
			// поэтому для кода возврата предупреждение равно ошибке.
			if bag.HasErrors() || bag.HasWarnings() {
				dirty = true
			}

			displayPath := r.Dump.File.FormatPath(displayMode, r.Dump.FileSet.BaseDir())

			switch format {
			case "pretty":
				if bag.Len() == 0 {
					continue
				}
				fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath)
				diagfmt.Pretty(os.Stdout, bag, r.Dump.FileSet, diagfmt.PrettyOpts{
					Color:     useColor,
					PathMode:  pathMode,
					ShowNotes: showNotes,
				})
			case "short":
				rootDiags = append(rootDiags, bag.Items()...)
				rootFS = r.Dump.FileSet
			case "json":
				jsonOut[displayPath] = diagfmt.BuildDiagnosticsOutput(bag, r.Dump.FileSet, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         pathMode,
					IncludeNotes:     withNotes,
				})
			}
		}

		if format == "short" && len(rootDiags) > 0 {
			if out := diag.FormatShortDiagnostics(rootDiags, rootFS, withNotes); out != "" {
				fmt.Fprintln(os.Stdout, out)
			}
		}
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonOut); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	}

	if failedFiles > 0 {
		return fmt.Errorf("%d file(s) failed", failedFiles)
	}
	if dirty {
		// Диагностики уже напечатаны, дублировать их сообщением не нужно.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
