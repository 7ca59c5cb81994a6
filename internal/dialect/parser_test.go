package dialect_test

import (
	"testing"

	"confscan/internal/diag"
	"confscan/internal/dialect"
	"confscan/internal/section"
	"confscan/internal/source"
)

// testReporter собирает все диагностики, полученные от парсера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

// Report реализует интерфейс diag.Reporter
func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

// codes возвращает коды всех диагностик в порядке поступления
func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

// countCode считает диагностики с заданным кодом
func (r *testReporter) countCode(code diag.Code) int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

// parseText прогоняет текст через парсер выбранной грамматики так же, как это
// делает драйвер: построчно, затем Finish. Возвращает дерево и репортер.
func parseText(t *testing.T, kind dialect.Kind, input string) (*section.Tree, *testReporter) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cfg", []byte(input))
	file := fs.Get(fileID)

	tree := section.NewTree("test")
	reporter := &testReporter{}
	p := dialect.NewParser(kind, tree, dialect.Options{Reporter: reporter})
	for _, line := range file.Lines() {
		p.Feed(line)
	}
	p.Finish()
	return tree, reporter
}

// childNames возвращает имена прямых детей секции в порядке хранения
func childNames(tree *section.Tree, id section.ID) []string {
	s := tree.Get(id)
	out := make([]string, 0, len(s.Children))
	for _, child := range s.Children {
		out = append(out, tree.Get(child).Name)
	}
	return out
}

// onlyChild проверяет, что у секции ровно один ребёнок с заданным именем
func onlyChild(t *testing.T, tree *section.Tree, parent section.ID, name string) section.ID {
	t.Helper()
	s := tree.Get(parent)
	if len(s.Children) != 1 {
		t.Fatalf("expected exactly one child of %q, got %d: %v", s.Name, len(s.Children), childNames(tree, parent))
	}
	child := s.Children[0]
	if got := tree.Get(child).Name; got != name {
		t.Fatalf("child name: expected %q, got %q", name, got)
	}
	return child
}

func expectLines(t *testing.T, tree *section.Tree, id section.ID, want []string) {
	t.Helper()
	got := tree.Get(id).Lines
	if len(got) != len(want) {
		t.Fatalf("section %q: expected %d lines %q, got %d lines %q",
			tree.Get(id).Name, len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("section %q line %d: expected %q, got %q", tree.Get(id).Name, i, want[i], got[i])
		}
	}
}

func expectNoDiagnostics(t *testing.T, reporter *testReporter) {
	t.Helper()
	if len(reporter.diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %v", reporter.codes())
	}
}

func TestNewParserCoversEveryKind(t *testing.T) {
	kinds := []dialect.Kind{dialect.KindIndent, dialect.KindBrace, dialect.KindBracket}
	for _, kind := range kinds {
		tree := section.NewTree("host")
		if p := dialect.NewParser(kind, tree, dialect.Options{}); p == nil {
			t.Errorf("NewParser(%v) returned nil", kind)
		}
	}
}

func TestNewParserUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for KindUnknown")
		}
	}()
	dialect.NewParser(dialect.KindUnknown, section.NewTree("host"), dialect.Options{})
}

func TestNilReporterIsAccepted(t *testing.T) {
	// Без репортера парсер молча отбрасывает недиагностируемое и не падает.
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cfg", []byte("garbage line\n}\n")))

	tree := section.NewTree("test")
	p := dialect.NewParser(dialect.KindBrace, tree, dialect.Options{})
	for _, line := range file.Lines() {
		p.Feed(line)
	}
	p.Finish()

	if tree.Len() != 1 {
		t.Errorf("expected bare root, got %d sections", tree.Len())
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind dialect.Kind
		want string
	}{
		{dialect.KindIndent, "indent"},
		{dialect.KindBrace, "brace"},
		{dialect.KindBracket, "bracket"},
		{dialect.KindUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String(): expected %q, got %q", uint8(tt.kind), tt.want, got)
		}
	}
}
