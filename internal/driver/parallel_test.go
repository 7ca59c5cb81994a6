package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"confscan/internal/driver"
	"confscan/internal/search"
)

// recordingSink собирает события из воркеров; мьютекс обязателен
type recordingSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (s *recordingSink) OnEvent(evt driver.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *recordingSink) byStatus(status driver.Status) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var paths []string
	for _, evt := range s.events {
		if evt.Status == status {
			paths = append(paths, evt.Path)
		}
	}
	return paths
}

func mixedDumpDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"aa-rtr1":   string(dump("cisco", "interface Gi0/1\n address 1.1.1.1\n!\ninterface Gi0/2\n shutdown\n!\n")),
		"bb-fw1":    string(dump("juniper", "interfaces {\n ge-0/0/0 {\n  mtu 9000;\n }\n}\n")),
		"cc-note":   "just a readme, no marker here\n",
		"dd-blank":  "\n\n\n",
		"ee-exotic": string(dump("arista", "hostname sw1\n")),
	})
	return root
}

func TestParseDirMixedContent(t *testing.T) {
	root := mixedDumpDir(t)

	reports, err := driver.ParseDir(context.Background(), root, driver.DirOptions{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(reports) != 5 {
		t.Fatalf("expected 5 reports, got %d", len(reports))
	}

	// Порядок отчётов повторяет сортированный порядок обхода.
	wantNames := []string{"aa-rtr1", "bb-fw1", "cc-note", "dd-blank", "ee-exotic"}
	for i, name := range wantNames {
		if filepath.Base(reports[i].Path) != name {
			t.Fatalf("reports[%d]: expected %q, got %q", i, name, reports[i].Path)
		}
	}

	if reports[0].Err != nil || reports[0].Dump == nil {
		t.Errorf("aa-rtr1: expected parsed dump, got err %v", reports[0].Err)
	} else if got := len(reports[0].Dump.Tree.Get(reports[0].Dump.Tree.Root()).Children); got != 2 {
		t.Errorf("aa-rtr1: expected 2 sections, got %d", got)
	}
	if reports[1].Err != nil || reports[1].Dump == nil {
		t.Errorf("bb-fw1: expected parsed dump, got err %v", reports[1].Err)
	}

	if !errors.Is(reports[2].Err, driver.ErrNotRecognized) || !reports[2].Skipped() {
		t.Errorf("cc-note: expected ErrNotRecognized skip, got %v", reports[2].Err)
	}
	if !errors.Is(reports[3].Err, driver.ErrEmptyInput) || !reports[3].Skipped() {
		t.Errorf("dd-blank: expected ErrEmptyInput skip, got %v", reports[3].Err)
	}
	var unsupported *driver.UnsupportedModelError
	if !errors.As(reports[4].Err, &unsupported) || !reports[4].Skipped() {
		t.Errorf("ee-exotic: expected UnsupportedModelError skip, got %v", reports[4].Err)
	} else if unsupported.Model != "arista" {
		t.Errorf("ee-exotic: expected model arista, got %q", unsupported.Model)
	}
}

func TestParseDirEmptyDir(t *testing.T) {
	reports, err := driver.ParseDir(context.Background(), t.TempDir(), driver.DirOptions{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if reports != nil {
		t.Errorf("expected nil reports for empty dir, got %v", reports)
	}
}

func TestParseDirUnreadableRoot(t *testing.T) {
	if _, err := driver.ParseDir(context.Background(), filepath.Join(t.TempDir(), "missing"), driver.DirOptions{}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestSearchDirHits(t *testing.T) {
	root := mixedDumpDir(t)
	q := search.Query{Section: regexp.MustCompile(`^interface`)}

	reports, err := driver.SearchDir(context.Background(), root, q, driver.DirOptions{})
	if err != nil {
		t.Fatalf("SearchDir: %v", err)
	}

	if len(reports[0].Hits) != 2 {
		t.Errorf("aa-rtr1: expected 2 hits, got %d", len(reports[0].Hits))
	}
	// juniper-дамп содержит секцию interfaces — тоже матч по префиксу.
	if len(reports[1].Hits) != 1 {
		t.Errorf("bb-fw1: expected 1 hit, got %d", len(reports[1].Hits))
	}
	for _, r := range reports[2:] {
		if len(r.Hits) != 0 {
			t.Errorf("%s: skipped file must have no hits, got %d", r.Path, len(r.Hits))
		}
	}
}

func TestSearchDirContentFilter(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"r1": string(dump("cisco", "interface Gi0/1\n mtu 9000\n!\ninterface Gi0/2\n shutdown\n!\n")),
	})
	q := search.Query{
		Section: regexp.MustCompile(`^interface`),
		Content: regexp.MustCompile(`mtu \d+`),
	}

	reports, err := driver.SearchDir(context.Background(), root, q, driver.DirOptions{})
	if err != nil {
		t.Fatalf("SearchDir: %v", err)
	}
	if len(reports) != 1 || len(reports[0].Hits) != 1 {
		t.Fatalf("expected a single filtered hit, got %+v", reports)
	}
	if reports[0].Hits[0].Name != "interface Gi0/1" {
		t.Errorf("hit name: got %q", reports[0].Hits[0].Name)
	}
}

func TestParseDirEvents(t *testing.T) {
	root := mixedDumpDir(t)
	sink := &recordingSink{}

	_, err := driver.ParseDir(context.Background(), root, driver.DirOptions{Jobs: 1, Sink: sink})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}

	if queued := sink.byStatus(driver.StatusQueued); len(queued) != 5 {
		t.Errorf("expected 5 queued events, got %v", queued)
	}
	if working := sink.byStatus(driver.StatusWorking); len(working) != 5 {
		t.Errorf("expected 5 working events, got %v", working)
	}
	if done := sink.byStatus(driver.StatusDone); len(done) != 2 {
		t.Errorf("expected 2 done events, got %v", done)
	}
	if skipped := sink.byStatus(driver.StatusSkipped); len(skipped) != 3 {
		t.Errorf("expected 3 skipped events, got %v", skipped)
	}
	if errored := sink.byStatus(driver.StatusError); len(errored) != 0 {
		t.Errorf("expected no error events, got %v", errored)
	}
}

func TestParseDirEventErrorStatus(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("chmod 0 is not enforced for root")
	}
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"locked": "x"})
	if err := os.Chmod(filepath.Join(root, "locked"), 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(filepath.Join(root, "locked"), 0o644) })

	sink := &recordingSink{}
	reports, err := driver.ParseDir(context.Background(), root, driver.DirOptions{Sink: sink})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(reports) != 1 || reports[0].Err == nil || reports[0].Skipped() {
		t.Fatalf("expected a hard per-file error, got %+v", reports)
	}
	if errored := sink.byStatus(driver.StatusError); len(errored) != 1 {
		t.Errorf("expected 1 error event, got %v", errored)
	}
}

func TestParseDirCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := driver.ParseDir(ctx, mixedDumpDir(t), driver.DirOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan driver.Event, 1)
	driver.ChannelSink{Ch: ch}.OnEvent(driver.Event{Path: "r1", Status: driver.StatusDone})
	evt := <-ch
	if evt.Path != "r1" || evt.Status != driver.StatusDone {
		t.Errorf("unexpected event %+v", evt)
	}

	// Нулевой канал — события молча отбрасываются.
	driver.ChannelSink{}.OnEvent(driver.Event{Path: "r2"})
}
