package dialect_test

import (
	"testing"

	"confscan/internal/diag"
	"confscan/internal/dialect"
)

func TestBraceSectionWithEntry(t *testing.T) {
	tree, reporter := parseText(t, dialect.KindBrace,
		"policy p {\n then accept;\n}\n")

	child := onlyChild(t, tree, tree.Root(), "policy p")
	// Запись хранится без точки с запятой и без отступа.
	expectLines(t, tree, child, []string{"then accept"})
	if got := len(tree.Get(child).Children); got != 0 {
		t.Errorf("expected no subsections, got %v", childNames(tree, child))
	}
	expectNoDiagnostics(t, reporter)
}

func TestBraceNestedScopes(t *testing.T) {
	input := "system {\n" +
		"    services {\n" +
		"        ssh;\n" +
		"    }\n" +
		"    host-name r1;\n" +
		"}\n"
	tree, reporter := parseText(t, dialect.KindBrace, input)

	system := onlyChild(t, tree, tree.Root(), "system")
	services := onlyChild(t, tree, system, "services")
	expectLines(t, tree, services, []string{"ssh"})
	expectLines(t, tree, system, []string{"host-name r1"})
	expectNoDiagnostics(t, reporter)
}

func TestBraceTrailingCommentAfterDelimiter(t *testing.T) {
	// Всё после последнего разделителя отбрасывается вместе с комментарием.
	tree, reporter := parseText(t, dialect.KindBrace,
		"system { # login config\n host-name r1; ## managed\n}\n")

	system := onlyChild(t, tree, tree.Root(), "system")
	expectLines(t, tree, system, []string{"host-name r1"})
	expectNoDiagnostics(t, reporter)
}

func TestBraceCommentLines(t *testing.T) {
	tree, reporter := parseText(t, dialect.KindBrace,
		"# generated\n! legacy note\n/* block note */\n")

	if tree.Len() != 1 {
		t.Fatalf("expected bare root, got %d sections", tree.Len())
	}
	expectNoDiagnostics(t, reporter)
}

func TestBraceSortsChildrenOnClose(t *testing.T) {
	input := "protocols {\n" +
		"    zebra {\n" +
		"    }\n" +
		"    alpha {\n" +
		"    }\n" +
		"    mid {\n" +
		"    }\n" +
		"}\n"
	tree, _ := parseText(t, dialect.KindBrace, input)

	protocols := onlyChild(t, tree, tree.Root(), "protocols")
	got := childNames(tree, protocols)
	want := []string{"alpha", "mid", "zebra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children after close: expected %v, got %v", want, got)
		}
	}
}

func TestBraceRootChildrenKeepInsertionOrder(t *testing.T) {
	// Корень никогда не закрывается, поэтому секции верхнего уровня
	// остаются в порядке появления.
	tree, _ := parseText(t, dialect.KindBrace,
		"zebra {\n}\nalpha {\n}\n")

	got := childNames(tree, tree.Root())
	want := []string{"zebra", "alpha"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("root children: expected %v, got %v", want, got)
	}
}

func TestBraceUnbalancedCloseGuardsRoot(t *testing.T) {
	tree, reporter := parseText(t, dialect.KindBrace,
		"}\n}\nsystem {\n}\n")

	onlyChild(t, tree, tree.Root(), "system")
	if got := reporter.countCode(diag.ParseUnbalancedClose); got != 2 {
		t.Errorf("expected two unbalanced-close diagnostics, got %v", reporter.codes())
	}
}

func TestBraceInlineClusterSkipped(t *testing.T) {
	tree, reporter := parseText(t, dialect.KindBrace, "{master:0}\n")

	if tree.Len() != 1 {
		t.Fatalf("expected bare root, got %d sections", tree.Len())
	}
	expectLines(t, tree, tree.Root(), nil)
	if got := reporter.countCode(diag.ParseInlineCluster); got != 1 {
		t.Errorf("expected one inline-cluster diagnostic, got %v", reporter.codes())
	}
}

func TestBraceUnparsableLineReported(t *testing.T) {
	tree, reporter := parseText(t, dialect.KindBrace,
		"system {\nword without delimiter\n}\n")

	system := onlyChild(t, tree, tree.Root(), "system")
	expectLines(t, tree, system, nil)
	if got := reporter.countCode(diag.ParseUnparsableLine); got != 1 {
		t.Errorf("expected one unparsable-line diagnostic, got %v", reporter.codes())
	}
}

func TestBraceUnclosedScopeReportedAtEOF(t *testing.T) {
	tree, reporter := parseText(t, dialect.KindBrace,
		"system {\n host-name r1;\n")

	system := onlyChild(t, tree, tree.Root(), "system")
	expectLines(t, tree, system, []string{"host-name r1"})
	if got := reporter.countCode(diag.ParseUnclosedScope); got != 1 {
		t.Errorf("expected one unclosed-scope diagnostic, got %v", reporter.codes())
	}
}
