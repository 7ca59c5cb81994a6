package dialect

import (
	"fmt"
	"strings"

	"confscan/internal/section"
)

// Отступ на уровень вложенности: у каждой грамматики свой.
const (
	braceIndentUnit   = "    "
	bracketIndentUnit = "  "
)

// Render reconstructs the textual form of the subtree rooted at id, in the
// grammar's own syntax. The output is a reconstruction: indentation is
// regenerated per level and stripped delimiters are re-attached. Its exact
// shape is a contract: content search matches against this text.
func Render(kind Kind, tree *section.Tree, id section.ID) string {
	var b strings.Builder
	renderInto(&b, kind, tree, id, 0)
	return b.String()
}

// RenderBody reconstructs the whole dump without the synthetic root wrapper:
// the root's children and own lines at level zero. Ближе всего к исходному
// файлу — у того нет секции с именем хоста вокруг всего содержимого.
func RenderBody(kind Kind, tree *section.Tree) string {
	var b strings.Builder
	root := tree.Get(tree.Root())
	for _, child := range root.Children {
		renderInto(&b, kind, tree, child, 0)
	}
	for _, line := range root.Lines {
		b.WriteString(line)
		// Запись brace-грамматики хранится без разделителя.
		if kind == KindBrace {
			b.WriteByte(';')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderInto(b *strings.Builder, kind Kind, tree *section.Tree, id section.ID, level int) {
	switch kind {
	case KindIndent:
		renderIndent(b, tree, id, level)
	case KindBrace:
		renderBrace(b, tree, id, level)
	case KindBracket:
		renderBracket(b, tree, id, level)
	default:
		panic(fmt.Sprintf("dialect: no renderer for %v", kind))
	}
}

// renderIndent: имя с одним пробелом на уровень, дети уровнем глубже,
// затем собственные строки на уровне самой секции — глубже не сдвигаем,
// они хранятся дословно вместе со своим исходным отступом.
func renderIndent(b *strings.Builder, tree *section.Tree, id section.ID, level int) {
	s := tree.Get(id)
	pad := strings.Repeat(" ", level)
	b.WriteString(pad)
	b.WriteString(s.Name)
	b.WriteByte('\n')
	for _, child := range s.Children {
		renderIndent(b, tree, child, level+1)
	}
	for _, line := range s.Lines {
		b.WriteString(pad)
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func renderBrace(b *strings.Builder, tree *section.Tree, id section.ID, level int) {
	s := tree.Get(id)
	pad := strings.Repeat(braceIndentUnit, level)
	b.WriteString(pad)
	b.WriteString(s.Name)
	b.WriteString(" {\n")
	for _, child := range s.Children {
		renderBrace(b, tree, child, level+1)
	}
	inner := pad + braceIndentUnit
	for _, line := range s.Lines {
		b.WriteString(inner)
		b.WriteString(line)
		// Точку с запятой парсер срезал — возвращаем.
		b.WriteString(";\n")
	}
	b.WriteString(pad)
	b.WriteString("}\n")
}

func renderBracket(b *strings.Builder, tree *section.Tree, id section.ID, level int) {
	s := tree.Get(id)
	pad := strings.Repeat(bracketIndentUnit, level)
	inner := pad + bracketIndentUnit
	fmt.Fprintf(b, "%s[%s]\n", pad, s.Name)
	for _, child := range s.Children {
		renderBracket(b, tree, child, level+1)
	}
	for _, line := range s.Lines {
		b.WriteString(inner)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(b, "%s[/%s]\n", pad, s.Name)
}
