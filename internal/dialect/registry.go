package dialect

import (
	"sort"
	"strings"
)

// ContentTypeMarker is the token that identifies the dialect marker line.
// RANCID-совместимые дампы начинаются строкой-комментарием вида
// "!RANCID-CONTENT-TYPE: cisco" (синтаксис комментария — уже на вкус
// устройства, поэтому ищем токен по вхождению, а не по префиксу).
const ContentTypeMarker = "RANCID-CONTENT-TYPE"

// registry связывает имя типа из маркера с грамматикой. Несколько имён
// могут указывать на одну грамматику.
var registry = map[string]Kind{
	"cisco":   KindIndent,
	"juniper": KindBrace,
	"mrv":     KindBracket,
}

// Lookup resolves a dialect name from a marker line to its grammar kind.
func Lookup(name string) (Kind, bool) {
	k, ok := registry[name]
	return k, ok
}

// Names returns every registered dialect name in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DetectLine inspects the first non-empty line of a dump. When the line
// carries the ContentTypeMarker token it returns the dialect name (the last
// whitespace-separated token of the line) and true. Any other line yields
// false: the file is not a recognized dump.
func DetectLine(line string) (string, bool) {
	if !strings.Contains(line, ContentTypeMarker) {
		return "", false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	return fields[len(fields)-1], true
}
