package ui

import (
	"testing"

	"mediabrowse/internal/core/picker"
	"mediabrowse/internal/strapi"
)

func sampleTree() []picker.FlatNode {
	nodes := []strapi.FolderNode{
		{ID: 1, Name: "docs", Children: []strapi.FolderNode{
			{ID: 2, Name: "invoices"},
		}},
		{ID: 3, Name: "media"},
	}
	return picker.FlattenStructure("Media Library", nodes)
}

func TestFilterNodesEmptyQueryMatchesAll(t *testing.T) {
	tree := sampleTree()
	idx := filterNodes("", tree, defaultFilterCfg)
	if len(idx) != len(tree) {
		t.Errorf("want all %d nodes, got %d", len(tree), len(idx))
	}
}

func TestFilterNodesSubstring(t *testing.T) {
	tree := sampleTree()
	idx := filterNodes("voi", tree, defaultFilterCfg)
	if len(idx) != 1 || tree[idx[0]].Label != "invoices" {
		t.Errorf("got %v", idx)
	}
}

func TestTreePickerExcludesOwnSubtree(t *testing.T) {
	p := newTreePicker(1)
	rows := p.visible(sampleTree())

	for _, n := range rows {
		if n.ID == 1 || n.ID == 2 {
			t.Errorf("excluded subtree leaked: %+v", n)
		}
	}
	// root and the unrelated sibling stay choosable
	if len(rows) != 2 {
		t.Errorf("want root and media, got %+v", rows)
	}
}

func TestTreePickerEnterChoosesNode(t *testing.T) {
	p := newTreePicker(-1)
	p.cursor = 2 // invoices in depth-first order

	p, chosen, closed := p.update(keyMsg("enter"), sampleTree())
	if chosen == nil || chosen.ID != 2 {
		t.Fatalf("chosen = %+v", chosen)
	}
	if !closed || p.open {
		t.Error("enter should close the picker")
	}
}

func TestPickerOpensAtCurrentDestination(t *testing.T) {
	m := newTestModel(Options{})
	m.tree = sampleTree()
	a := testAsset(7, "cat.png", "image/png")
	a.Folder = &strapi.FolderRef{ID: 2, Name: "invoices"}
	m, _ = m.openAssetEdit(a)

	m, _ = m.handleAssetEditKey(keyMsg("ctrl+f"))

	rows := m.edit.picker.visible(m.tree)
	if got := rows[m.edit.picker.cursor].ID; got != 2 {
		t.Errorf("cursor on folder %d, want invoices", got)
	}
}

func TestPickerFocusIgnoresMissingFolder(t *testing.T) {
	p := newTreePicker(-1).focusNode(sampleTree(), 99)
	if p.cursor != 0 {
		t.Errorf("cursor = %d, want root for an unknown folder", p.cursor)
	}
}

func TestFolderFormPickerForbidsMoveIntoSelf(t *testing.T) {
	m := newTestModel(Options{})
	m.tree = sampleTree()
	m, _ = m.openFolderForm(&strapi.Folder{ID: 1, Name: "docs"})

	m, _ = m.handleFolderFormKey(keyMsg("ctrl+f"))
	if !m.folder.picker.open {
		t.Fatal("ctrl+f should open the parent picker")
	}
	if m.folder.picker.exclude != 1 {
		t.Errorf("exclude = %d, want the edited folder", m.folder.picker.exclude)
	}
}
