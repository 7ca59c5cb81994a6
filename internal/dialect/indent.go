package dialect

import (
	"fmt"
	"strings"

	"confscan/internal/diag"
	"confscan/internal/section"
	"confscan/internal/source"
)

// indentParser parses the indentation-nested grammar. An unindented line is
// never classified on its own: it sits in a one-line pending buffer until the
// next line shows whether it was a section header (an indented line follows)
// or a plain top-level entry (anything else follows). "!" closes the open
// section.
//
// Буфер один на весь файл, не на уровень вложенности, и фиксация
// отложенной строки идёт в корень, а не в активную секцию. Это поведение
// исходных дампогрызов — сохраняем его буквально, не «чиним».
type indentParser struct {
	parseState
	pending    source.Line
	hasPending bool
}

func newIndentParser(tree *section.Tree, opts Options) *indentParser {
	return &indentParser{parseState: newParseState(tree, opts)}
}

func (p *indentParser) Feed(line source.Line) {
	text := strings.TrimRight(line.Text, " \t")
	if text == "" {
		return
	}

	switch {
	case text[0] == '!':
		// Явная граница: буфер уходит в активную секцию, секция закрывается.
		p.flushPendingToTop()
		if !p.atRoot() {
			p.close()
		}

	case text[0] == ' ':
		switch {
		case p.hasPending:
			// Отложенная строка оказалась заголовком: открываем секцию,
			// а сама отступная строка достаётся новому активному скоупу.
			id := p.open(p.pending.Text, p.pending.Span)
			p.hasPending = false
			p.tree.AddLine(id, text)
		case !p.atRoot():
			p.tree.AddLine(p.top(), text)
		default:
			// Отступ без заголовка и без открытой секции.
			p.report(diag.SevWarning, diag.ParseOrphanIndent, line.Span,
				fmt.Sprintf("indented line %q has no open section", text))
		}

	default:
		// Обычная неотступная строка: прошлый буфер — это просто строка
		// конфигурации верхнего уровня, текущая занимает его место.
		if p.hasPending {
			p.tree.AddLine(p.tree.Root(), p.pending.Text)
		}
		p.pending = source.Line{Text: text, Span: line.Span, Num: line.Num}
		p.hasPending = true
	}
}

func (p *indentParser) Finish() {
	// EOF действует как неотступная строка: буфер фиксируется в корень.
	// Открытые секции просто закрываются: у этой грамматики нет
	// закрывающего маркера, конец файла и есть закрытие.
	if p.hasPending {
		p.tree.AddLine(p.tree.Root(), p.pending.Text)
		p.hasPending = false
	}
}

// flushPendingToTop пишет буфер в активную секцию (не в корень: у "!" и у
// неотступной строки разные цели фиксации).
func (p *indentParser) flushPendingToTop() {
	if !p.hasPending {
		return
	}
	p.tree.AddLine(p.top(), p.pending.Text)
	p.hasPending = false
}
