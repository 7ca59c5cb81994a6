// Package section holds the parsed form of one configuration dump: a tree of
// named sections, each owning an ordered list of child sections and an ordered
// list of raw configuration lines.
//
// The tree is arena-backed. Sections live in a flat slice owned by the Tree;
// relationships are expressed through 1-based ID handles rather than pointers.
// This keeps the structure trivially serialisable, lets the dialect parsers
// keep their open-scope stack as a plain []ID, and rules out shared mutable
// references between "the currently open scope" and "a node reachable by
// name".
//
// Lifecycle of a section: created by Tree.NewChild when a dialect parser
// recognises a scope-opening line, grown via AddLine/new children while it
// sits on the parser's stack, then left untouched once the scope closes (the
// brace dialect sorts its children as the single close-time side effect).
//
// Scan implements the name search used to select candidate subtrees before a
// content search runs over their rendered text. Matching stops descent, so a
// result set never contains both a section and one of its descendants.
package section
