package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"confscan/internal/diagfmt"
	"confscan/internal/dialect"
	"confscan/internal/driver"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <file>",
	Short: "Reconstruct dump text from the parsed section tree",
	Long: `Parse a configuration dump and print it back in the dialect's syntax.
"-" reads the dump from standard input. With --section, only subtrees
whose name matches the regexp are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("section", "", "render only subtrees whose name matches this regexp")
	renderCmd.Flags().Bool("no-cache", false, "bypass the parsed-tree disk cache")
}

func runRender(cmd *cobra.Command, args []string) error {
	sectionStr, err := cmd.Flags().GetString("section")
	if err != nil {
		return fmt.Errorf("failed to get section flag: %w", err)
	}
	var sectionRe *regexp.Regexp
	if sectionStr != "" {
		sectionRe, err = regexp.Compile(sectionStr)
		if err != nil {
			return fmt.Errorf("invalid --section pattern: %w", err)
		}
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	// Цвет касается только stderr: сам текст секций должен остаться
	// пригодным для повторного разбора.
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))

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
	})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if !quiet && dump.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, dump.Bag, dump.FileSet, diagfmt.PrettyOpts{
			Color:    useColor,
			PathMode: diagfmt.PathModeAuto,
		})
	}

	if sectionRe == nil {
		fmt.Fprint(os.Stdout, dialect.RenderBody(dump.Kind, dump.Tree))
		return nil
	}

	ids := dump.Scan(sectionRe)
	if len(ids) == 0 {
		if !quiet {
			fmt.Fprintf(os.Stderr, "no sections match %q\n", sectionStr)
		}
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	for _, id := range ids {
		if id == dump.Tree.Root() {
			// Совпавший корень печатается телом дампа, без секции-обёртки.
			fmt.Fprint(os.Stdout, dialect.RenderBody(dump.Kind, dump.Tree))
			continue
		}
		fmt.Fprint(os.Stdout, dialect.Render(dump.Kind, dump.Tree, id))
	}
	return nil
}
