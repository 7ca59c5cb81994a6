package dialect

import (
	"fmt"
	"strings"

	"confscan/internal/diag"
	"confscan/internal/section"
	"confscan/internal/source"
)

// bracketParser parses the bracket-delimited grammar: "[name]" opens a
// scope, "[/name]" closes it, "key=value" attaches a configuration line.
// Имя в закрывающем маркере не сверяется с открывшим — так делает и сам
// формат: вложенность определяет только порядок маркеров.
type bracketParser struct {
	parseState
}

func newBracketParser(tree *section.Tree, opts Options) *bracketParser {
	return &bracketParser{parseState: newParseState(tree, opts)}
}

func (p *bracketParser) Feed(line source.Line) {
	trimmed := strings.TrimSpace(line.Text)

	switch {
	case trimmed == "":
		return

	case strings.HasPrefix(trimmed, ";"), strings.HasPrefix(trimmed, "!"):
		// Комментарий.
		return

	case strings.HasPrefix(trimmed, "[/") && strings.HasSuffix(trimmed, "]"):
		if !p.close() {
			p.report(diag.SevWarning, diag.ParseUnbalancedClose, line.Span,
				fmt.Sprintf("close marker %q with no open section", trimmed))
		}

	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		name := trimmed[1 : len(trimmed)-1]
		p.open(name, line.Span)

	case strings.Contains(trimmed, "="):
		p.tree.AddLine(p.top(), trimmed)

	default:
		p.report(diag.SevWarning, diag.ParseUnparsableLine, line.Span,
			fmt.Sprintf("line %q matches no rule of the bracket grammar", trimmed))
	}
}

func (p *bracketParser) Finish() {
	p.finishOpenScopes()
}
