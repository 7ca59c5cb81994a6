package driver

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"confscan/internal/diag"
	"confscan/internal/dialect"
	"confscan/internal/observ"
	"confscan/internal/section"
	"confscan/internal/source"
)

// defaultMaxDiagnostics ограничивает Bag, когда вызывающий не задал лимит.
const defaultMaxDiagnostics = 256

// Dump is one parsed configuration dump.
type Dump struct {
	FileSet *source.FileSet
	File    *source.File
	Kind    dialect.Kind
	Model   string // имя из маркерной строки (cisco, juniper, mrv)
	Tree    *section.Tree
	Bag     *diag.Bag
	// FromCache marks a tree restored from the disk cache instead of a
	// fresh parse. Cached trees carry no spans.
	FromCache bool
}

// Scan finds sections whose name matches pattern; see section.Tree.Scan for
// the descent-stopping contract.
func (d *Dump) Scan(pattern *regexp.Regexp) []section.ID {
	return d.Tree.Scan(pattern)
}

// ParseOptions configures single-file parsing.
type ParseOptions struct {
	// MaxDiagnostics caps the per-file Bag; 0 uses a default.
	MaxDiagnostics int
	// Allow lists permitted model names. nil допускает все имена реестра.
	Allow []string
	// Cache, when non-nil, serves clean parses by content hash and stores
	// new ones.
	Cache *DiskCache
	// Timings appends an informational diagnostic with per-phase durations
	// to the Bag.
	Timings bool
}

// ParseFile loads one dump from disk and parses it.
func ParseFile(path string, opts ParseOptions) (*Dump, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fileID, opts)
}

// ParseBytes parses in-memory content (stdin, tests) under the given name.
// The name's stem becomes the root section's name, as the file stem would.
func ParseBytes(name string, content []byte, opts ParseOptions) (*Dump, error) {
	fs := source.NewFileSet()
	return parseLoaded(fs, fs.AddVirtual(name, content), opts)
}

// parseLoaded runs detection and the dialect parser over an already loaded
// file. FileSet не мутируется — параллельные вызовы на разных fileID из
// одного набора безопасны.
func parseLoaded(fs *source.FileSet, fileID source.FileID, opts ParseOptions) (*Dump, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}

	var timer *observ.Timer
	if opts.Timings {
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

	file := fs.Get(fileID)
	lines := file.Lines()

	detectIdx := begin("detect")
	marker := -1
	for i, line := range lines {
		if strings.TrimSpace(line.Text) != "" {
			marker = i
			break
		}
	}
	if marker < 0 {
		return nil, ErrEmptyInput
	}

	model, ok := dialect.DetectLine(lines[marker].Text)
	if !ok {
		return nil, ErrNotRecognized
	}
	kind, ok := dialect.Lookup(model)
	if !ok || !modelAllowed(model, opts.Allow) {
		return nil, &UnsupportedModelError{Model: model}
	}
	end(detectIdx, model)

	dump := &Dump{FileSet: fs, File: file, Kind: kind, Model: model}
	bag := diag.NewBag(opts.MaxDiagnostics)
	dump.Bag = bag

	// Замеры приходят последней записью Bag: решение о кешировании
	// принимается раньше и их не видит.
	flushTimings := func() {
		if timer == nil {
			return
		}
		report := timer.Report()
		appendTimingDiagnostic(bag, source.Span{File: fileID}, timingPayload{
			Kind:    "parse",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	if opts.Cache != nil {
		readIdx := begin("cache_read")
		tree, hit, err := opts.Cache.Get(file.Hash, model)
		if err != nil {
			bag.Add(diag.New(diag.SevInfo, diag.CacheReadError, source.Span{File: fileID},
				"tree cache read failed: "+err.Error()))
		}
		if hit {
			end(readIdx, "hit")
			// То же содержимое могло лежать под другим именем файла.
			tree.Rename(file.Stem())
			dump.Tree = tree
			dump.FromCache = true
			flushTimings()
			return dump, nil
		}
		end(readIdx, "miss")
	}

	parseIdx := begin("parse")
	tree := section.NewTree(file.Stem())
	p := dialect.NewParser(kind, tree, dialect.Options{Reporter: &diag.BagReporter{Bag: bag}})
	for _, line := range lines[marker+1:] {
		p.Feed(line)
	}
	p.Finish()
	dump.Tree = tree
	end(parseIdx, fmt.Sprintf("diags=%d", bag.Len()))

	// Кешируются только чистые разборы: дерево без диагностик эквивалентно
	// повторному разбору, с диагностиками — нет (Bag не сериализуется).
	if opts.Cache != nil && bag.Len() == 0 {
		writeIdx := begin("cache_write")
		err := opts.Cache.Put(file.Hash, model, tree)
		end(writeIdx, "")
		if err != nil {
			bag.Add(diag.New(diag.SevInfo, diag.CacheWriteError, source.Span{File: fileID},
				"tree cache write failed: "+err.Error()))
		}
	}
	flushTimings()
	return dump, nil
}

func modelAllowed(model string, allow []string) bool {
	if allow == nil {
		return true
	}
	return slices.Contains(allow, model)
}
