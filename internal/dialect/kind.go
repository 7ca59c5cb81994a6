package dialect

import "fmt"

// Kind identifies the grammar a configuration dump is written in.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindIndent is the indentation-nested grammar (IOS-style).
	KindIndent
	// KindBrace is the brace-delimited grammar (JunOS-style).
	KindBrace
	// KindBracket is the bracket-delimited grammar (MRV-style).
	KindBracket

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindIndent:
		return "indent"
	case KindBrace:
		return "brace"
	case KindBracket:
		return "bracket"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("Kind(%s)", k.String())
}
