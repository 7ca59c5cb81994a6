package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics (skipped lines, timings).
	SevInfo Severity = iota
	// SevWarning is for recoverable findings (unparsable line, unclosed scope).
	SevWarning
	// SevError is for findings that make a dump unusable.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
