package dialect

import (
	"fmt"

	"confscan/internal/diag"
	"confscan/internal/section"
	"confscan/internal/source"
)

// Parser is the per-line state machine of one grammar. One instance parses
// exactly one dump: Feed every line after the marker line, in input order,
// then call Finish. Instances share no state, so independent dumps may be
// parsed in parallel with one instance each.
type Parser interface {
	Feed(line source.Line)
	Finish()
}

// Options configures a parser instance.
type Options struct {
	// Reporter receives structured findings: unparsable lines, unbalanced
	// close markers, scopes left open at end of input. nil drops them;
	// parsing continues either way.
	Reporter diag.Reporter
}

// NewParser returns the line parser for kind, growing tree as it consumes
// lines. Закрытый switch вместо реестра конструкторов: новый диалект — это
// новый Kind со своей transition-функцией, а не подкласс.
func NewParser(kind Kind, tree *section.Tree, opts Options) Parser {
	switch kind {
	case KindIndent:
		return newIndentParser(tree, opts)
	case KindBrace:
		return newBraceParser(tree, opts)
	case KindBracket:
		return newBracketParser(tree, opts)
	default:
		// Kind приходит только из Lookup; сюда можно попасть лишь из-за
		// ошибки в коде вызывающего.
		panic(fmt.Sprintf("dialect: no parser for %v", kind))
	}
}

// parseState carries what every grammar needs: the tree under construction,
// the open-scope stack (bottom is always the root) and the reporter.
type parseState struct {
	tree  *section.Tree
	stack []section.ID
	opts  Options
}

func newParseState(tree *section.Tree, opts Options) parseState {
	return parseState{
		tree:  tree,
		stack: []section.ID{tree.Root()},
		opts:  opts,
	}
}

// top returns the active scope.
func (s *parseState) top() section.ID {
	return s.stack[len(s.stack)-1]
}

func (s *parseState) atRoot() bool {
	return len(s.stack) == 1
}

// open creates a child of the active scope and makes it the new active scope.
func (s *parseState) open(name string, span source.Span) section.ID {
	id := s.tree.NewChild(s.top(), name, span)
	s.stack = append(s.stack, id)
	return id
}

// close pops the active scope. Корень не выталкивается никогда: закрывающий
// маркер на корне — ошибка входных данных, а не повод потерять дерево.
func (s *parseState) close() bool {
	if s.atRoot() {
		return false
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

func (s *parseState) report(sev diag.Severity, code diag.Code, span source.Span, msg string) {
	if s.opts.Reporter == nil {
		return
	}
	s.opts.Reporter.Report(code, sev, span, msg, nil)
}

// finishOpenScopes reports every scope still open at end of input, innermost
// first. Дерево не правим: недостающие закрывающие маркеры допустимы.
func (s *parseState) finishOpenScopes() {
	for i := len(s.stack) - 1; i > 0; i-- {
		sec := s.tree.Get(s.stack[i])
		s.report(diag.SevWarning, diag.ParseUnclosedScope, sec.Span,
			fmt.Sprintf("section %q still open at end of dump", sec.Name))
	}
}
