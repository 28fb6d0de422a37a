package picker

import (
	"testing"

	"mediabrowse/internal/strapi"
)

func sampleTree() []strapi.FolderNode {
	return []strapi.FolderNode{
		{ID: 1, Name: "docs", Children: []strapi.FolderNode{
			{ID: 2, Name: "invoices", Children: []strapi.FolderNode{
				{ID: 3, Name: "2024"},
			}},
		}},
		{ID: 4, Name: "media"},
	}
}

func TestFlattenStructure(t *testing.T) {
	flat := FlattenStructure("Media Library", sampleTree())

	want := []struct {
		id, parent, depth int
		hasChildren       bool
	}{
		{RootFolderID, -1, 0, true},
		{1, RootFolderID, 1, true},
		{2, 1, 2, true},
		{3, 2, 3, false},
		{4, RootFolderID, 1, false},
	}
	if len(flat) != len(want) {
		t.Fatalf("flattened %d nodes, want %d: %+v", len(flat), len(want), flat)
	}
	for i, w := range want {
		n := flat[i]
		if n.ID != w.id || n.Parent != w.parent || n.Depth != w.depth || n.HasChildren != w.hasChildren {
			t.Fatalf("node %d = %+v, want %+v", i, n, w)
		}
	}
	if flat[0].Label != "Media Library" {
		t.Fatalf("root label = %q", flat[0].Label)
	}
}

func TestFindNode(t *testing.T) {
	flat := FlattenStructure("root", sampleTree())

	n, ok := FindNode(flat, 3)
	if !ok || n.Label != "2024" || n.Parent != 2 {
		t.Fatalf("FindNode(3) = %+v, %v", n, ok)
	}
	if _, ok := FindNode(flat, 99); ok {
		t.Fatal("FindNode(unknown) reported a hit")
	}
}

func TestValuesToClose(t *testing.T) {
	flat := FlattenStructure("root", sampleTree())

	got := ValuesToClose(flat, 1)
	seen := make(map[int]bool, len(got))
	for _, v := range got {
		seen[v] = true
	}
	for _, want := range []int{1, 2, 3} {
		if !seen[want] {
			t.Fatalf("ValuesToClose(1) = %v, missing %d", got, want)
		}
	}
	if seen[4] {
		t.Fatalf("ValuesToClose(1) leaked sibling: %v", got)
	}
}

func TestSubtreeForbidsMoveIntoSelf(t *testing.T) {
	flat := FlattenStructure("root", sampleTree())
	if !Subtree(flat, 1, 3) {
		t.Fatal("3 is a descendant of 1")
	}
	if !Subtree(flat, 1, 1) {
		t.Fatal("a folder is in its own subtree")
	}
	if Subtree(flat, 1, 4) {
		t.Fatal("4 is a sibling, not a descendant")
	}
}

func TestBreadcrumbs(t *testing.T) {
	if got := Breadcrumbs("Media Library", nil); len(got) != 1 || got[0].ID != nil {
		t.Fatalf("root-only crumbs: %+v", got)
	}

	folder := &strapi.Folder{
		ID: 3, Name: "2024", Path: "/1/2/3",
		Parent: &strapi.Folder{
			ID: 2, Name: "invoices", Path: "/1/2",
			Parent: &strapi.Folder{ID: 1, Name: "docs", Path: "/1"},
		},
	}
	got := Breadcrumbs("Media Library", folder)
	labels := make([]string, len(got))
	for i, c := range got {
		labels[i] = c.Label
	}
	want := []string{"Media Library", "docs", "invoices", "2024"}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("crumbs = %v, want %v", labels, want)
		}
	}
	if got[0].ID != nil || got[3].ID == nil || *got[3].ID != 3 {
		t.Fatalf("crumb IDs wrong: %+v", got)
	}
}
