package section

import "fmt"

// Flat is the serializable form of one section: the arena entry with ID links
// as plain integers. A flattened tree is the arena in allocation order, root
// first. Spans are not preserved: a tree restored from its flat form carries
// no positions (нечего резолвить: исходного FileSet уже нет).
type Flat struct {
	Name     string
	Parent   uint32
	Children []uint32
	Lines    []string
}

// Flatten copies the tree into its flat form.
func (t *Tree) Flatten() []Flat {
	out := make([]Flat, len(t.sections))
	for i, s := range t.sections {
		f := Flat{Name: s.Name, Parent: uint32(s.Parent)}
		if len(s.Children) > 0 {
			f.Children = make([]uint32, len(s.Children))
			for j, c := range s.Children {
				f.Children[j] = uint32(c)
			}
		}
		if len(s.Lines) > 0 {
			f.Lines = append([]string(nil), s.Lines...)
		}
		out[i] = f
	}
	return out
}

// FromFlat rebuilds a tree from its flat form. Ссылки проверяются: flat-формы
// приходят из кеша на диске, а там может лежать что угодно.
func FromFlat(flats []Flat) (*Tree, error) {
	if len(flats) == 0 {
		return nil, fmt.Errorf("flat tree is empty")
	}
	if flats[0].Parent != 0 {
		return nil, fmt.Errorf("flat root has parent %d", flats[0].Parent)
	}

	count := uint32(len(flats))
	t := &Tree{sections: make([]Section, len(flats)), root: ID(1)}
	for i, f := range flats {
		id := uint32(i + 1)
		s := Section{Name: f.Name, Parent: ID(f.Parent)}
		if f.Parent > count {
			return nil, fmt.Errorf("section %d: parent %d out of range", id, f.Parent)
		}
		if id != 1 && f.Parent == 0 {
			return nil, fmt.Errorf("section %d: missing parent link", id)
		}
		if len(f.Children) > 0 {
			s.Children = make([]ID, len(f.Children))
			for j, c := range f.Children {
				if c <= 1 || c > count {
					return nil, fmt.Errorf("section %d: child %d out of range", id, c)
				}
				if flats[c-1].Parent != id {
					return nil, fmt.Errorf("section %d: child %d links back to %d", id, c, flats[c-1].Parent)
				}
				s.Children[j] = ID(c)
			}
		}
		if len(f.Lines) > 0 {
			s.Lines = append([]string(nil), f.Lines...)
		}
		t.sections[i] = s
	}
	return t, nil
}

// Rename replaces the root section's name. Дерево из кеша несёт имя файла,
// который его породил; при попадании по хешу содержимого имя корня нужно
// заменить на stem текущего файла.
func (t *Tree) Rename(rootName string) {
	t.sections[t.root-1].Name = rootName
}
