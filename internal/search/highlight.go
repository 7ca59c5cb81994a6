package search

import (
	"strings"

	"github.com/fatih/color"
)

var matchColor = color.New(color.FgRed, color.Bold)

// Highlight returns text with the span ranges wrapped in the match color.
// Spans must be sorted and non-overlapping (the Hit.Spans contract). Color
// suppression is global: with color.NoColor set the text comes back as is.
func Highlight(text string, spans [][2]int) string {
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		b.WriteString(text[prev:sp[0]])
		b.WriteString(matchColor.Sprint(text[sp[0]:sp[1]]))
		prev = sp[1]
	}
	b.WriteString(text[prev:])
	return b.String()
}
