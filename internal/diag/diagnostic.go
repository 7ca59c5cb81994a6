package diag

import (
	"confscan/internal/source"
)

// Note attaches secondary context to a diagnostic (e.g. "scope opened here").
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding produced while loading or parsing a dump.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
