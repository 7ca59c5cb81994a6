package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"confscan/internal/section"
)

var lineCountColor = color.New(color.Faint)

// SectionsOpts configures section-hierarchy output.
type SectionsOpts struct {
	Color      bool
	ShowCounts bool // печатать количество собственных строк секции
}

// PrettySections prints the section hierarchy of a parsed dump, one section
// per line, with box-drawing connectors.
func PrettySections(w io.Writer, tree *section.Tree, opts SectionsOpts) {
	root := tree.Get(tree.Root())
	fmt.Fprintln(w, sectionLabel(tree, tree.Root(), opts))
	for i, child := range root.Children {
		writeSectionNode(w, tree, child, "", i == len(root.Children)-1, opts)
	}
}

func writeSectionNode(w io.Writer, tree *section.Tree, id section.ID, prefix string, last bool, opts SectionsOpts) {
	connector, childPrefix := "├─ ", prefix+"│  "
	if last {
		connector, childPrefix = "└─ ", prefix+"   "
	}
	fmt.Fprintln(w, prefix+connector+sectionLabel(tree, id, opts))

	s := tree.Get(id)
	for i, child := range s.Children {
		writeSectionNode(w, tree, child, childPrefix, i == len(s.Children)-1, opts)
	}
}

func sectionLabel(tree *section.Tree, id section.ID, opts SectionsOpts) string {
	s := tree.Get(id)
	if !opts.ShowCounts || len(s.Lines) == 0 {
		return s.Name
	}
	unit := "lines"
	if len(s.Lines) == 1 {
		unit = "line"
	}
	count := fmt.Sprintf("(%d %s)", len(s.Lines), unit)
	if opts.Color {
		count = lineCountColor.Sprint(count)
	}
	return s.Name + " " + count
}

// SectionJSON is one node of the JSON hierarchy.
type SectionJSON struct {
	Name     string        `json:"name"`
	Lines    []string      `json:"lines,omitempty"`
	Children []SectionJSON `json:"children,omitempty"`
}

// BuildSectionsOutput собирает JSON-структуру всего дерева от корня.
func BuildSectionsOutput(tree *section.Tree) SectionJSON {
	return buildSectionJSON(tree, tree.Root())
}

func buildSectionJSON(tree *section.Tree, id section.ID) SectionJSON {
	s := tree.Get(id)
	out := SectionJSON{Name: s.Name, Lines: s.Lines}
	if len(s.Children) > 0 {
		out.Children = make([]SectionJSON, len(s.Children))
		for i, child := range s.Children {
			out.Children[i] = buildSectionJSON(tree, child)
		}
	}
	return out
}

// JSONSections prints the section hierarchy as one nested JSON document.
func JSONSections(w io.Writer, tree *section.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildSectionsOutput(tree))
}
