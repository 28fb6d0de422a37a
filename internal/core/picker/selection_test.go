package picker

import (
	"strconv"
	"testing"

	"mediabrowse/internal/strapi"
)

func assetKey(a strapi.Asset) string { return strconv.Itoa(a.ID) }

func asset(id int, name string) strapi.Asset {
	return strapi.Asset{ID: id, Name: name, Mime: "image/png"}
}

func ids(items []strapi.Asset) []int {
	out := make([]int, len(items))
	for i, a := range items {
		out[i] = a.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestToggleIsInvolutive(t *testing.T) {
	s := NewSelection(assetKey, nil)
	s.Toggle(asset(5, "a.png"))
	if got := ids(s.Items()); !equalIDs(got, []int{5}) {
		t.Fatalf("after first toggle: %v", got)
	}
	// The second toggle matches by key even though the name changed.
	s.Toggle(asset(5, "renamed.png"))
	if s.Len() != 0 {
		t.Fatalf("after second toggle, selection not empty: %v", ids(s.Items()))
	}
}

func TestToggleAppendsAtEnd(t *testing.T) {
	s := NewSelection(assetKey, []strapi.Asset{asset(1, "a"), asset(2, "b")})
	s.Toggle(asset(3, "c"))
	if got := ids(s.Items()); !equalIDs(got, []int{1, 2, 3}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestSelectOnlyAlwaysSingleton(t *testing.T) {
	tests := []struct {
		name    string
		initial []strapi.Asset
	}{
		{"empty", nil},
		{"one", []strapi.Asset{asset(1, "a")}},
		{"many", []strapi.Asset{asset(1, "a"), asset(2, "b"), asset(3, "c")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(assetKey, tt.initial)
			s.SelectOnly(asset(9, "x"))
			if got := ids(s.Items()); !equalIDs(got, []int{9}) {
				t.Fatalf("SelectOnly result: %v", got)
			}
		})
	}
}

func TestSelectAllPrefersNewBatchOrder(t *testing.T) {
	s := NewSelection(assetKey, []strapi.Asset{asset(1, "a"), asset(2, "b")})
	s.SelectAll([]strapi.Asset{asset(3, "c"), asset(2, "b")})
	if got := ids(s.Items()); !equalIDs(got, []int{3, 2, 1}) {
		t.Fatalf("SelectAll order: %v", got)
	}
}

func TestAppendSkipsPresent(t *testing.T) {
	s := NewSelection(assetKey, []strapi.Asset{asset(1, "a")})
	s.Append([]strapi.Asset{asset(1, "a"), asset(2, "b")})
	if got := ids(s.Items()); !equalIDs(got, []int{1, 2}) {
		t.Fatalf("Append result: %v", got)
	}
}

func TestDeselectThenAppendRestoresMembership(t *testing.T) {
	batch := []strapi.Asset{asset(1, "a"), asset(2, "b")}
	s := NewSelection(assetKey, append(batch, asset(3, "c")))

	s.Deselect(batch)
	if got := ids(s.Items()); !equalIDs(got, []int{3}) {
		t.Fatalf("after Deselect: %v", got)
	}
	s.Append(batch)
	for _, want := range []strapi.Asset{asset(1, ""), asset(2, ""), asset(3, "")} {
		if !s.Contains(want) {
			t.Fatalf("id %d missing after re-append: %v", want.ID, ids(s.Items()))
		}
	}
}

func TestReplaceAndClear(t *testing.T) {
	s := NewSelection(assetKey, []strapi.Asset{asset(1, "a")})
	s.Replace([]strapi.Asset{asset(7, "x"), asset(8, "y")})
	if got := ids(s.Items()); !equalIDs(got, []int{7, 8}) {
		t.Fatalf("after Replace: %v", got)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatal("Clear left elements behind")
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		offset int
		want   []int
		ok     bool
	}{
		{"down one", 0, 1, []int{2, 1, 3}, true},
		{"up one", 2, -1, []int{1, 3, 2}, true},
		{"to front", 2, -2, []int{3, 1, 2}, true},
		{"past end", 2, 1, []int{1, 2, 3}, false},
		{"before start", 0, -1, []int{1, 2, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(assetKey, []strapi.Asset{asset(1, "a"), asset(2, "b"), asset(3, "c")})
			if ok := s.Move(tt.index, tt.offset); ok != tt.ok {
				t.Fatalf("Move returned %v, want %v", ok, tt.ok)
			}
			if got := ids(s.Items()); !equalIDs(got, tt.want) {
				t.Fatalf("after Move: %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := NewSelection(assetKey, []strapi.Asset{asset(1, "a")})
	items := s.Items()
	items[0] = asset(99, "mutated")
	if got := ids(s.Items()); !equalIDs(got, []int{1}) {
		t.Fatalf("internal state leaked: %v", got)
	}
}
