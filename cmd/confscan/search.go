package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"confscan/internal/diagfmt"
	"confscan/internal/driver"
	"confscan/internal/observ"
	"confscan/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <section-pattern> [path...]",
	Short: "Search sections across configuration dumps",
	Long: `Search parsed configuration dumps for sections whose name matches the
pattern. Directories are walked recursively; files that are not recognized
dumps are skipped. With --match, hits are further filtered by a content
regexp over the rendered subtree text.

Exits 0 when at least one section matched, 1 when none did.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("match", "", "content regexp applied to each rendered hit")
	searchCmd.Flags().Bool("list", false, "print only 'path: section-name' lines")
	searchCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	searchCmd.Flags().String("ui", "auto", "progress board while scanning directories (auto|on|off)")
	searchCmd.Flags().Bool("no-cache", false, "bypass the parsed-tree disk cache")
}

type searchPrintOptions struct {
	listOnly  bool
	quiet     bool
	useColor  bool
	showNotes bool
}

func runSearch(cmd *cobra.Command, args []string) error {
	sectionRe, err := regexp.Compile(args[0])
	if err != nil {
		return fmt.Errorf("invalid section pattern: %w", err)
	}
	paths := args[1:]
	if len(paths) == 0 {
		paths = []string{"."}
	}

	matchStr, err := cmd.Flags().GetString("match")
	if err != nil {
		return fmt.Errorf("failed to get match flag: %w", err)
	}
	var contentRe *regexp.Regexp
	if matchStr != "" {
		contentRe, err = regexp.Compile(matchStr)
		if err != nil {
			return fmt.Errorf("invalid --match pattern: %w", err)
		}
	}

	listOnly, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("failed to get list flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
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
	color.NoColor = !useColor

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
			// Недоступный кеш не отменяет поиск.
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
	q := search.Query{Section: sectionRe, Content: contentRe}
	printOpts := searchPrintOptions{
		listOnly:  listOnly,
		quiet:     quiet,
		useColor:  useColor,
		showNotes: showTimings,
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer == nil || idx < 0 {
			return
		}
		timer.End(idx, note)
	}

	totalHits := 0
	failedFiles := 0
	for _, path := range paths {
		st, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		scanIdx := begin("scan")
		var reports []driver.FileReport
		if st.IsDir() && shouldUseTUI(mode) {
			reports, err = searchDirWithUI(cmd.Context(), "scanning "+path, path, q, opts)
		} else {
			reports, err = driver.SearchDir(cmd.Context(), path, q, opts)
		}
		if err != nil {
			return err
		}
		end(scanIdx, fmt.Sprintf("files=%d", len(reports)))

		printIdx := begin("print")
		hits, failed := printSearchReports(reports, printOpts)
		end(printIdx, fmt.Sprintf("hits=%d", hits))
		totalHits += hits
		failedFiles += failed
	}

	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if failedFiles > 0 {
		return fmt.Errorf("%d file(s) failed", failedFiles)
	}
	if totalHits == 0 {
		// Выход 1 без сообщений: соглашение grep.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// printSearchReports prints hits to stdout and per-file problems to stderr.
// Files skipped as not-a-dump stay silent except for a rejected model name,
// which is always worth a line.
func printSearchReports(reports []driver.FileReport, opts searchPrintOptions) (hits, failed int) {
	for _, r := range reports {
		if r.Err != nil {
			if r.Skipped() {
				var unsupported *driver.UnsupportedModelError
				if errors.As(r.Err, &unsupported) && !opts.quiet {
					fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
				}
				continue
			}
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			continue
		}

		if !opts.quiet && r.Dump.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, r.Dump.Bag, r.Dump.FileSet, diagfmt.PrettyOpts{
				Color:     opts.useColor,
				PathMode:  diagfmt.PathModeAuto,
				ShowNotes: opts.showNotes,
			})
		}
		if len(r.Hits) == 0 {
			continue
		}
		hits += len(r.Hits)

		if opts.listOnly {
			for _, h := range r.Hits {
				fmt.Fprintf(os.Stdout, "%s: %s\n", r.Path, h.Name)
			}
			continue
		}

		root := r.Dump.Tree.Get(r.Dump.Tree.Root())
		fmt.Fprintf(os.Stdout, "%s: %s %s\n", r.Path, r.Dump.Model, root.Name)
		for _, h := range r.Hits {
			fmt.Fprint(os.Stdout, search.Highlight(h.Rendered, h.Spans))
			fmt.Fprintln(os.Stdout)
		}
	}
	return hits, failed
}
