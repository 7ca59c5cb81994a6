package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"confscan/internal/diagfmt"
	"confscan/internal/driver"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <file>",
	Short: "Print the section hierarchy of one dump",
	Long: `Parse a single configuration dump and print its section tree.
"-" reads the dump from standard input. Diagnostics collected during
parsing go to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	treeCmd.Flags().Bool("counts", false, "annotate sections with stored line counts")
	treeCmd.Flags().Bool("no-cache", false, "bypass the parsed-tree disk cache")
}

func runTree(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	showCounts, err := cmd.Flags().GetBool("counts")
	if err != nil {
		return fmt.Errorf("failed to get counts flag: %w", err)
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
	var cache *driver.DiskCache
	if cfg.Cache.Enabled && !noCache {
		if cache, err = driver.OpenDiskCache("confscan"); err != nil {
			if !quiet {
				fmt.Fprintf(os.Stderr, "warning: tree cache disabled: %v\n", err)
			}
			cache = nil
		}
	}

	dump, err := parseTarget(args[0], driver.ParseOptions{
		MaxDiagnostics: maxDiagnostics,
		Allow:          cfg.Dialects.Allow,
		Cache:          cache,
		Timings:        showTimings,
	})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if !quiet && dump.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, dump.Bag, dump.FileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: showTimings,
		})
	}

	switch format {
	case "pretty":
		diagfmt.PrettySections(os.Stdout, dump.Tree, diagfmt.SectionsOpts{
			Color:      useColor,
			ShowCounts: showCounts,
		})
	case "json":
		if err := diagfmt.JSONSections(os.Stdout, dump.Tree); err != nil {
			return fmt.Errorf("failed to encode sections: %w", err)
		}
	}
	return nil
}
