package section

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"confscan/internal/source"
)

// ID is a handle to a section inside a Tree. IDs are 1-based;
// None (zero) means "no section".
type ID uint32

const None ID = 0

// IsValid reports whether the ID refers to an allocated section.
func (id ID) IsValid() bool {
	return id != None
}

// Section is one named node of a parsed dump: the device itself at the root,
// an interface/policy/block elsewhere. Children and Lines keep insertion
// order; together they are everything consumed while the node was the open
// scope.
type Section struct {
	Name     string
	Parent   ID
	Children []ID
	Lines    []string
	Span     source.Span // строка-заголовок секции в дампе; у корня пустой
}

// Tree owns every section of one parsed dump. Child links are IDs into the
// same tree, so nodes never alias across trees and the parse stack can be a
// plain []ID.
type Tree struct {
	sections []Section
	root     ID
}

// NewTree creates a tree holding a single root section named rootName
// (conventionally the dump's file stem, i.e. the device hostname).
func NewTree(rootName string) *Tree {
	t := &Tree{sections: make([]Section, 0, 16)}
	t.root = t.alloc(Section{Name: rootName})
	return t
}

// alloc кладёт секцию в арену и возвращает 1-based ID.
func (t *Tree) alloc(s Section) ID {
	t.sections = append(t.sections, s)
	idx, err := safecast.Conv[uint32](len(t.sections))
	if err != nil {
		panic(fmt.Errorf("section count overflow: %w", err))
	}
	return ID(idx)
}

// Root returns the ID of the root section.
func (t *Tree) Root() ID {
	return t.root
}

// Len returns the number of allocated sections, root included.
func (t *Tree) Len() int {
	return len(t.sections)
}

// Get returns the section for the given ID, or nil for None.
func (t *Tree) Get(id ID) *Section {
	if id == None {
		return nil
	}
	return &t.sections[id-1]
}

// NewChild allocates a section named name, attaches it to parent and returns
// its ID. span points at the header line that opened the scope.
func (t *Tree) NewChild(parent ID, name string, span source.Span) ID {
	id := t.alloc(Section{Name: name, Parent: parent, Span: span})
	p := t.Get(parent)
	p.Children = append(p.Children, id)
	return id
}

// AddLine appends a raw configuration line to the section's own lines.
func (t *Tree) AddLine(id ID, line string) {
	s := t.Get(id)
	s.Lines = append(s.Lines, line)
}

// SortChildren orders the section's children by name, ascending. Brace-style
// dumps sort a scope's children when the scope closes.
func (t *Tree) SortChildren(id ID) {
	s := t.Get(id)
	sort.SliceStable(s.Children, func(i, j int) bool {
		return t.Get(s.Children[i]).Name < t.Get(s.Children[j]).Name
	})
}

// Equal reports whether two trees have the same name/child/line structure.
// Spans are ignored: a re-parsed rendering has different byte offsets.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.equalAt(t.root, other, other.root)
}

func (t *Tree) equalAt(id ID, other *Tree, otherID ID) bool {
	a, b := t.Get(id), other.Get(otherID)
	if a.Name != b.Name {
		return false
	}
	if len(a.Lines) != len(b.Lines) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Lines {
		if a.Lines[i] != b.Lines[i] {
			return false
		}
	}
	for i := range a.Children {
		if !t.equalAt(a.Children[i], other, b.Children[i]) {
			return false
		}
	}
	return true
}
