package source

import (
	"testing"
)

func TestFileLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Line
	}{
		{
			name:    "empty file has no lines",
			content: "",
			want:    nil,
		},
		{
			name:    "trailing newline yields no empty tail",
			content: "a\nbb\n",
			want: []Line{
				{Text: "a", Span: Span{Start: 0, End: 1}, Num: 1},
				{Text: "bb", Span: Span{Start: 2, End: 4}, Num: 2},
			},
		},
		{
			name:    "no trailing newline keeps the tail",
			content: "a\nbb",
			want: []Line{
				{Text: "a", Span: Span{Start: 0, End: 1}, Num: 1},
				{Text: "bb", Span: Span{Start: 2, End: 4}, Num: 2},
			},
		},
		{
			name:    "blank lines are preserved",
			content: "a\n\nb\n",
			want: []Line{
				{Text: "a", Span: Span{Start: 0, End: 1}, Num: 1},
				{Text: "", Span: Span{Start: 2, End: 2}, Num: 2},
				{Text: "b", Span: Span{Start: 3, End: 4}, Num: 3},
			},
		},
		{
			name:    "single newline is one blank line",
			content: "\n",
			want: []Line{
				{Text: "", Span: Span{Start: 0, End: 0}, Num: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			id := fs.AddVirtual("lines.cfg", []byte(tt.content))
			file := fs.Get(id)

			got := file.Lines()
			if len(got) != len(tt.want) {
				t.Fatalf("Lines() returned %d lines, want %d", len(got), len(tt.want))
			}
			for i := range got {
				want := tt.want[i]
				want.Span.File = id
				if got[i] != want {
					t.Errorf("line %d = %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}

// Позиция каждой строки должна резолвиться в её номер.
func TestFileLinesSpansResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.cfg", []byte("hostname r1\ninterface Gi0/1\n!\n"))
	file := fs.Get(id)

	for _, line := range file.Lines() {
		start, _ := fs.Resolve(line.Span)
		if start.Line != line.Num {
			t.Errorf("line %d resolves to %d", line.Num, start.Line)
		}
		if start.Col != 1 {
			t.Errorf("line %d starts at col %d, want 1", line.Num, start.Col)
		}
	}
}
