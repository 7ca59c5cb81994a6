package diagfmt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"confscan/internal/diagfmt"
	"confscan/internal/section"
	"confscan/internal/source"
)

func buildHierarchy() *section.Tree {
	tree := section.NewTree("router1")
	iface := tree.NewChild(tree.Root(), "interface Gi0/1", source.Span{})
	tree.AddLine(iface, " description uplink")
	tree.AddLine(iface, " mtu 9000")
	tree.NewChild(iface, "service-policy", source.Span{})
	vlan := tree.NewChild(tree.Root(), "vlan 100", source.Span{})
	tree.AddLine(vlan, " name users")
	return tree
}

func TestPrettySectionsConnectors(t *testing.T) {
	var out strings.Builder
	diagfmt.PrettySections(&out, buildHierarchy(), diagfmt.SectionsOpts{ShowCounts: true})

	want := "router1\n" +
		"├─ interface Gi0/1 (2 lines)\n" +
		"│  └─ service-policy\n" +
		"└─ vlan 100 (1 line)\n"
	if out.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestPrettySectionsWithoutCounts(t *testing.T) {
	var out strings.Builder
	diagfmt.PrettySections(&out, buildHierarchy(), diagfmt.SectionsOpts{})

	if strings.Contains(out.String(), "(") {
		t.Errorf("expected no count annotations, got:\n%s", out.String())
	}
}

func TestJSONSections(t *testing.T) {
	var out strings.Builder
	if err := diagfmt.JSONSections(&out, buildHierarchy()); err != nil {
		t.Fatalf("JSONSections: %v", err)
	}

	var root diagfmt.SectionJSON
	if err := json.Unmarshal([]byte(out.String()), &root); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if root.Name != "router1" || len(root.Children) != 2 {
		t.Fatalf("root: got %q with %d children", root.Name, len(root.Children))
	}
	iface := root.Children[0]
	if iface.Name != "interface Gi0/1" || len(iface.Lines) != 2 || len(iface.Children) != 1 {
		t.Errorf("interface node: got %+v", iface)
	}
	if iface.Children[0].Name != "service-policy" {
		t.Errorf("nested child: got %q", iface.Children[0].Name)
	}
}
