package dialect

import (
	"fmt"
	"strings"

	"confscan/internal/diag"
	"confscan/internal/section"
	"confscan/internal/source"
)

// braceParser parses the brace-delimited grammar: "name {" opens a scope,
// "}" closes it (sorting the scope's children by name on the way out),
// "entry;" attaches a configuration line. No lookahead is needed: the
// delimiter sits on the line itself.
type braceParser struct {
	parseState
}

func newBraceParser(tree *section.Tree, opts Options) *braceParser {
	return &braceParser{parseState: newParseState(tree, opts)}
}

func (p *braceParser) Feed(line source.Line) {
	text := trimAfterDelimiter(line.Text)
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == "":
		return

	case strings.HasPrefix(trimmed, "#"),
		strings.HasPrefix(trimmed, "!"),
		strings.HasPrefix(trimmed, "/*"):
		// Комментарий целиком.
		return

	case strings.HasSuffix(text, "{"):
		name := strings.TrimSpace(strings.TrimSuffix(text, "{"))
		p.open(name, line.Span)

	case trimmed == "}":
		if p.atRoot() {
			p.report(diag.SevWarning, diag.ParseUnbalancedClose, line.Span,
				"close brace with no open section")
			return
		}
		// Контракт закрытия: дети сортируются по имени в момент выхода
		// из скоупа, дальше секция не меняется.
		p.tree.SortChildren(p.top())
		p.close()

	case strings.HasSuffix(text, ";"):
		entry := strings.TrimSpace(strings.TrimSuffix(text, ";"))
		p.tree.AddLine(p.top(), entry)

	case strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}"):
		// Однострочный {...}-кластер: непрозрачные данные, в дерево не идут.
		p.report(diag.SevInfo, diag.ParseInlineCluster, line.Span,
			fmt.Sprintf("inline cluster %q skipped", trimmed))

	default:
		p.report(diag.SevWarning, diag.ParseUnparsableLine, line.Span,
			fmt.Sprintf("line %q matches no rule of the brace grammar", trimmed))
	}
}

func (p *braceParser) Finish() {
	p.finishOpenScopes()
}

// trimAfterDelimiter truncates the line right after its last delimiter
// (";", "{" or "}"), dropping a trailing same-line comment, then strips
// trailing whitespace. Lines without a delimiter pass through with only the
// whitespace strip.
func trimAfterDelimiter(text string) string {
	if i := strings.LastIndexAny(text, ";{}"); i >= 0 {
		text = text[:i+1]
	}
	return strings.TrimRight(text, " \t")
}
