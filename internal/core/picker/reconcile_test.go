package picker

import (
	"testing"

	"mediabrowse/internal/strapi"
)

func TestReplaceAssetKeepsPositions(t *testing.T) {
	list := []strapi.Asset{asset(1, "a"), asset(7, "old"), asset(3, "c")}
	out := ReplaceAsset(list, asset(7, "renamed"))

	if len(out) != 3 {
		t.Fatalf("length changed: %d", len(out))
	}
	if out[1].ID != 7 || out[1].Name != "renamed" {
		t.Fatalf("position 1 not replaced: %+v", out[1])
	}
	if out[0].Name != "a" || out[2].Name != "c" {
		t.Fatalf("neighbors disturbed: %+v", out)
	}
	if list[1].Name != "old" {
		t.Fatal("input mutated")
	}
}

func TestReplaceAssetNoMatchIsIdentity(t *testing.T) {
	list := []strapi.Asset{asset(1, "a")}
	out := ReplaceAsset(list, asset(9, "x"))
	if len(out) != 1 || out[0].Name != "a" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestRemoveAsset(t *testing.T) {
	list := []strapi.Asset{asset(1, "a"), asset(2, "b"), asset(3, "c")}
	out := RemoveAsset(list, 2)
	if got := ids(out); !equalIDs(got, []int{1, 3}) {
		t.Fatalf("unexpected result: %v", got)
	}
	if len(list) != 3 {
		t.Fatal("input mutated")
	}
}

func TestRemoveFolder(t *testing.T) {
	list := []strapi.Folder{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	out := RemoveFolder(list, 1)
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("unexpected result: %+v", out)
	}
}
