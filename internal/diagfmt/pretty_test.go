package diagfmt_test

import (
	"strings"
	"testing"

	"confscan/internal/diag"
	"confscan/internal/diagfmt"
	"confscan/internal/source"
)

func TestPrettyLocationAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("r1.cfg", []byte("interface Gi0/1\n bad line\n"))

	bag := diag.NewBag(8)
	span := source.Span{File: fileID, Start: 16, End: 25}
	bag.Add(diag.NewWarning(diag.ParseUnparsableLine, span, "line matches no rule"))

	var out strings.Builder
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{})

	want := "r1.cfg:2:1: WARNING PRS3001: line matches no rule\n" +
		"     bad line\n" +
		"    ^~~~~~~~~\n"
	if out.String() != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, out.String())
	}
}

func TestPrettyCaretOffsetInsideLine(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("r1.cfg", []byte("set mtu 9000\n"))

	bag := diag.NewBag(8)
	// span на "mtu": байты 4..7
	bag.Add(diag.NewWarning(diag.ParseUnparsableLine, source.Span{File: fileID, Start: 4, End: 7}, "m"))

	var out strings.Builder
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{})

	lines := strings.Split(out.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, context and caret lines, got %q", out.String())
	}
	if lines[1] != "    set mtu 9000" {
		t.Errorf("context line: got %q", lines[1])
	}
	if lines[2] != "        ^~~" {
		t.Errorf("caret line: got %q", lines[2])
	}
}

func TestPrettyDiagnosticWithoutSpan(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "cannot read dump"))

	var out strings.Builder
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{})

	want := "ERROR IO1001: cannot read dump\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("r1.cfg", []byte("[port]\nk=v\n"))

	bag := diag.NewBag(8)
	d := diag.New(diag.SevWarning, diag.ParseUnclosedScope,
		source.Span{File: fileID, Start: 0, End: 6}, "section still open").
		WithNote(source.Span{}, "closing marker never seen")
	bag.Add(d)

	var out strings.Builder
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})

	if !strings.Contains(out.String(), "  note: closing marker never seen\n") {
		t.Errorf("expected note line, got %q", out.String())
	}
}
