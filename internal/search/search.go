// Package search runs the second stage of structured search: candidate
// subtrees come from section.Tree.Scan (name pattern), here each candidate
// is rendered in its dialect's syntax and filtered by an optional content
// regexp over the rendered text. Downstream match positions therefore refer
// to the reconstruction, not to raw file bytes.
package search

import (
	"regexp"

	"confscan/internal/dialect"
	"confscan/internal/section"
)

// Query is one structured search: Section selects subtrees by name, Content
// (optional) filters them by their rendered text.
type Query struct {
	Section *regexp.Regexp
	Content *regexp.Regexp
}

// Hit is one matched subtree.
type Hit struct {
	Section  section.ID
	Name     string
	Rendered string
	// Spans are the content-match byte ranges inside Rendered, sorted and
	// non-overlapping. Empty when the query has no content pattern.
	Spans [][2]int
}

// Tree searches one parsed dump. Hits keep Scan's depth-first order; a
// query with a content pattern drops candidates whose rendering does not
// match it.
func Tree(kind dialect.Kind, tree *section.Tree, q Query) []Hit {
	ids := tree.Scan(q.Section)
	hits := make([]Hit, 0, len(ids))
	for _, id := range ids {
		rendered := dialect.Render(kind, tree, id)
		var spans [][2]int
		if q.Content != nil {
			pairs := q.Content.FindAllStringIndex(rendered, -1)
			if len(pairs) == 0 {
				continue
			}
			spans = make([][2]int, len(pairs))
			for i, p := range pairs {
				spans[i] = [2]int{p[0], p[1]}
			}
		}
		hits = append(hits, Hit{
			Section:  id,
			Name:     tree.Get(id).Name,
			Rendered: rendered,
			Spans:    spans,
		})
	}
	return hits
}
