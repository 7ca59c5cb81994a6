package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Line is one physical line of a dump file. Text excludes the trailing
// newline; Span covers the same bytes, Num is 1-based.
type Line struct {
	Text string
	Span Span
	Num  uint32
}

// Lines slices the file content into physical lines.
// Контент уже нормализован при загрузке (\n-переводы), так что достаточно
// пройтись по готовому LineIdx.
func (f *File) Lines() []Line {
	if len(f.Content) == 0 {
		return nil
	}

	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	out := make([]Line, 0, len(f.LineIdx)+1)
	start := uint32(0)
	num := uint32(1)
	for _, nl := range f.LineIdx {
		out = append(out, Line{
			Text: string(f.Content[start:nl]),
			Span: Span{File: f.ID, Start: start, End: nl},
			Num:  num,
		})
		start = nl + 1
		num++
	}
	// Хвост без завершающего \n
	if start < lenContent {
		out = append(out, Line{
			Text: string(f.Content[start:lenContent]),
			Span: Span{File: f.ID, Start: start, End: lenContent},
			Num:  num,
		})
	}
	return out
}
