package section_test

import (
	"testing"

	"confscan/internal/section"
	"confscan/internal/source"
)

func buildSampleTree() *section.Tree {
	tree := section.NewTree("router1")
	iface := tree.NewChild(tree.Root(), "interface Gi0/1", source.Span{})
	tree.AddLine(iface, " description uplink")
	vlan := tree.NewChild(tree.Root(), "vlan 100", source.Span{})
	tree.AddLine(vlan, " name users")
	tree.NewChild(iface, "service-policy", source.Span{})
	tree.AddLine(tree.Root(), "ntp server 10.0.0.1")
	return tree
}

func TestFlattenRoundTrip(t *testing.T) {
	tree := buildSampleTree()

	flats := tree.Flatten()
	if len(flats) != tree.Len() {
		t.Fatalf("expected %d flat sections, got %d", tree.Len(), len(flats))
	}

	restored, err := section.FromFlat(flats)
	if err != nil {
		t.Fatalf("FromFlat: %v", err)
	}
	if !tree.Equal(restored) {
		t.Error("restored tree differs from the original")
	}
}

func TestFromFlatRejectsEmpty(t *testing.T) {
	if _, err := section.FromFlat(nil); err == nil {
		t.Error("expected error for empty flat form")
	}
}

func TestFromFlatRejectsBrokenLinks(t *testing.T) {
	tests := []struct {
		name  string
		flats []section.Flat
	}{
		{
			"root with parent",
			[]section.Flat{{Name: "r", Parent: 2}, {Name: "x"}},
		},
		{
			"child out of range",
			[]section.Flat{{Name: "r", Children: []uint32{5}}},
		},
		{
			"child pointing at root",
			[]section.Flat{{Name: "r", Children: []uint32{1}}},
		},
		{
			"orphan section",
			[]section.Flat{{Name: "r"}, {Name: "x", Parent: 0}},
		},
		{
			"backlink mismatch",
			[]section.Flat{
				{Name: "r", Children: []uint32{2}},
				{Name: "a", Parent: 1, Children: []uint32{3}},
				{Name: "b", Parent: 1},
			},
		},
	}
	for _, tt := range tests {
		if _, err := section.FromFlat(tt.flats); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestRename(t *testing.T) {
	tree := buildSampleTree()
	tree.Rename("router2")
	if got := tree.Get(tree.Root()).Name; got != "router2" {
		t.Errorf("expected root name %q, got %q", "router2", got)
	}
}
