// Package dialect implements the vendor grammars of configuration dumps: a
// closed set of line-level parsers that turn the flat text of a dump into a
// section tree, and the matching renderers that reconstruct a subtree's
// textual form.
//
// # Grammars
//
// Three grammars cover the supported vendors:
//
//   - KindIndent – indentation-nested (IOS-style). An unindented line is a
//     potential section header; the following indented line confirms it and
//     opens the scope; a line starting with "!" closes it.
//   - KindBrace – brace-delimited (JunOS-style). "name {" opens a scope,
//     "}" closes it, "entry;" attaches a configuration line.
//   - KindBracket – bracket-delimited (MRV-style). "[name]" opens a scope,
//     "[/name]" closes it, "key=value" attaches a configuration line.
//
// The set is deliberately closed: NewParser selects the transition function
// with a switch over Kind. Adding a vendor means adding a Kind, its parser
// and its renderer, not registering a constructor at runtime.
//
// # Parsers
//
// Each parser is a single-pass, stack-based state machine. One instance
// parses exactly one dump: the driver feeds it every line after the marker
// line, in order, then calls Finish. The open-scope stack and (for the
// indent grammar) the one-line pending buffer are private to the instance,
// so independent dumps can be parsed concurrently without locking.
//
// Parsers never repair input. A line that matches no rule of its grammar is
// reported to the Options.Reporter and dropped; the stack is left untouched
// and parsing continues with the next line. A close marker at the root is
// reported and ignored; the root scope is never popped.
//
// # Detection
//
// Dumps declare their dialect on the first non-empty line, a comment carrying
// the ContentTypeMarker token; the dialect name is the last
// whitespace-separated token of that line. DetectLine extracts the name and
// Lookup maps it onto a Kind via the registry.
//
// # Rendering
//
// Render reconstructs a subtree in the grammar's own syntax. The output is a
// reconstruction, not a byte-exact copy of the input: indentation is
// regenerated per level and the brace grammar re-attaches the ";" delimiter
// it stripped during parsing. The exact shape per grammar is a contract:
// content search runs regular expressions over this text, so it must stay
// stable.
package dialect
