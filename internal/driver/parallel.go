package driver

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"confscan/internal/search"
	"confscan/internal/source"
)

// DirOptions configures directory-wide operations.
type DirOptions struct {
	Parse ParseOptions
	Walk  WalkOptions
	// Jobs caps the worker pool; <= 0 использует GOMAXPROCS.
	Jobs int
	// Sink, when non-nil, receives per-file progress events.
	Sink ProgressSink
}

// FileReport is the per-file outcome of a directory operation. Exactly one
// of Dump and Err is set; Hits is filled by SearchDir only.
type FileReport struct {
	Path string
	Dump *Dump
	Err  error
	Hits []search.Hit
}

// Skipped reports whether the file was passed over as not-a-dump rather
// than failing: empty input, no marker, or a model outside the allow-list.
func (r *FileReport) Skipped() bool {
	return skippable(r.Err)
}

func skippable(err error) bool {
	if err == nil {
		return false
	}
	var unsupported *UnsupportedModelError
	return errors.Is(err, ErrNotRecognized) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.As(err, &unsupported)
}

// ParseDir parses every candidate file under root in parallel. The result
// order matches ListDumpFiles order regardless of worker scheduling; per-file
// failures land in the file's report, not in the returned error.
func ParseDir(ctx context.Context, root string, opts DirOptions) ([]FileReport, error) {
	return runDir(ctx, root, opts, nil)
}

// SearchDir is ParseDir plus a per-file structured search: each parsed tree
// is scanned, matched subtrees rendered and content-filtered in the worker.
func SearchDir(ctx context.Context, root string, q search.Query, opts DirOptions) ([]FileReport, error) {
	return runDir(ctx, root, opts, &q)
}

func runDir(ctx context.Context, root string, opts DirOptions, q *search.Query) ([]FileReport, error) {
	files, err := ListDumpFiles(root, opts.Walk)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	// Один FileSet на обход: загрузка последовательная, воркеры дальше
	// только читают его. Путь в ID разрешает индекс самого FileSet.
	fileSet := source.NewFileSetWithBase(root)
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		if _, err := fileSet.Load(path); err != nil {
			loadErrors[path] = err
		}
	}

	for _, path := range files {
		emit(opts.Sink, Event{Path: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индекс каждого воркера уникален, мьютекс на results не нужен.
	results := make([]FileReport, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Sink, Event{Path: path, Status: StatusWorking})

			if loadErr, failed := loadErrors[path]; failed {
				results[i] = FileReport{Path: path, Err: loadErr}
				emit(opts.Sink, Event{Path: path, Status: StatusError, Err: loadErr})
				return nil
			}

			fileID, _ := fileSet.GetLatest(path)
			dump, err := parseLoaded(fileSet, fileID, opts.Parse)
			if err != nil {
				results[i] = FileReport{Path: path, Err: err}
				status := StatusError
				if skippable(err) {
					status = StatusSkipped
				}
				emit(opts.Sink, Event{Path: path, Status: status, Err: err})
				return nil
			}

			report := FileReport{Path: path, Dump: dump}
			if q != nil {
				report.Hits = search.Tree(dump.Kind, dump.Tree, *q)
			}
			results[i] = report
			emit(opts.Sink, Event{Path: path, Status: StatusDone, Hits: len(report.Hits)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
