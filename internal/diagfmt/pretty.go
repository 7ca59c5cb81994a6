package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"confscan/internal/diag"
	"confscan/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	caretColor   = color.New(color.FgGreen, color.Bold)
	locColor     = color.New(color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку дампа с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	head := d.Severity.String() + " " + d.Code.ID()
	if opts.Color {
		head = severityColor(d.Severity).Sprint(head)
	}

	// Диагностики уровня файла (пустой вход, ошибка чтения) позиции не несут.
	if fs == nil || d.Primary.Len() == 0 {
		fmt.Fprintf(w, "%s: %s\n", head, d.Message)
	} else {
		loc := formatLocation(d.Primary, fs, opts.PathMode)
		if opts.Color {
			loc = locColor.Sprint(loc)
		}
		fmt.Fprintf(w, "%s: %s: %s\n", loc, head, d.Message)
		writeContext(w, d.Primary, fs, opts)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if fs == nil || n.Span.Len() == 0 {
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
			continue
		}
		fmt.Fprintf(w, "  note: %s (%s)\n", n.Msg, formatLocation(n.Span, fs, opts.PathMode))
	}
}

func formatLocation(span source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(mode.mode(), fs.BaseDir()), start.Line, start.Col)
}

// writeContext печатает строку дампа, на которую указывает span, и каретку
// под ней. Подчёркивание не выходит за конец строки.
func writeContext(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	start, end := fs.Resolve(span)
	text := fs.Get(span.File).GetLine(start.Line)

	width := 1
	switch {
	case end.Line == start.Line && end.Col > start.Col:
		width = int(end.Col - start.Col)
	case end.Line > start.Line:
		if tail := len(text) - int(start.Col-1); tail > width {
			width = tail
		}
	}

	caret := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(w, "    %s\n", text)
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", int(start.Col)-1), caret)
}
