package section

import "regexp"

// Scan walks the tree depth-first and returns sections whose name matches
// pattern. A match stops descent: nothing inside a matched section is
// searched further, so no result is ever a descendant of another. A root
// match returns exactly the root. No match returns an empty slice.
func (t *Tree) Scan(pattern *regexp.Regexp) []ID {
	if pattern.MatchString(t.Get(t.root).Name) {
		return []ID{t.root}
	}
	var out []ID
	t.scanChildren(t.root, pattern, &out)
	return out
}

func (t *Tree) scanChildren(id ID, pattern *regexp.Regexp, out *[]ID) {
	for _, child := range t.Get(id).Children {
		if pattern.MatchString(t.Get(child).Name) {
			// совпадение по имени останавливает спуск в этом поддереве
			*out = append(*out, child)
			continue
		}
		t.scanChildren(child, pattern, out)
	}
}

// IsAncestor reports whether a is a strict ancestor of b.
func (t *Tree) IsAncestor(a, b ID) bool {
	for cur := t.Get(b).Parent; cur != None; cur = t.Get(cur).Parent {
		if cur == a {
			return true
		}
	}
	return false
}
