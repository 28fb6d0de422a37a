package picker

// Selection is an order-preserving, de-duplicated sequence of items.
// Membership is decided by the key function, never by structural equality,
// so a stale copy of an asset still matches its freshly edited version.
type Selection[T any] struct {
	key   func(T) string
	items []T
}

// NewSelection builds a selection keyed by key, seeded with initial items.
// Duplicate keys in initial keep the first occurrence.
func NewSelection[T any](key func(T) string, initial []T) *Selection[T] {
	s := &Selection[T]{key: key}
	s.Append(initial)
	return s
}

func (s *Selection[T]) indexOf(k string) int {
	for i, it := range s.items {
		if s.key(it) == k {
			return i
		}
	}
	return -1
}

// Toggle removes item when a key-equal element is present, otherwise appends
// it at the end. Calling it twice with key-equal items is a no-op overall.
func (s *Selection[T]) Toggle(item T) {
	if i := s.indexOf(s.key(item)); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		return
	}
	s.items = append(s.items, item)
}

// SelectOnly replaces the whole selection with item. Single-select mode.
func (s *Selection[T]) SelectOnly(item T) {
	s.items = []T{item}
}

// SelectAll prepends next and keeps the existing elements that do not match
// any of them, so the caller-supplied batch wins the ordering.
func (s *Selection[T]) SelectAll(next []T) {
	merged := make([]T, 0, len(next)+len(s.items))
	seen := make(map[string]bool, len(next))
	for _, it := range next {
		k := s.key(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		merged = append(merged, it)
	}
	for _, it := range s.items {
		if !seen[s.key(it)] {
			merged = append(merged, it)
		}
	}
	s.items = merged
}

// Append adds each element of next that is not already present, at the end,
// preserving the existing order.
func (s *Selection[T]) Append(next []T) {
	for _, it := range next {
		if s.indexOf(s.key(it)) < 0 {
			s.items = append(s.items, it)
		}
	}
}

// Deselect removes every element matching any of next.
func (s *Selection[T]) Deselect(next []T) {
	drop := make(map[string]bool, len(next))
	for _, it := range next {
		drop[s.key(it)] = true
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if !drop[s.key(it)] {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// Replace swaps in next unconditionally. Used after manual reordering and
// after reconciling edits/deletes.
func (s *Selection[T]) Replace(next []T) {
	s.items = append([]T(nil), next...)
}

// Clear empties the selection.
func (s *Selection[T]) Clear() {
	s.items = nil
}

// Move shifts the element at index by offset positions, clamping nothing:
// out-of-range targets leave the selection untouched.
func (s *Selection[T]) Move(index, offset int) bool {
	next := index + offset
	if index < 0 || index >= len(s.items) || next < 0 || next >= len(s.items) {
		return false
	}
	it := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.items = append(s.items[:next], append([]T{it}, s.items[next:]...)...)
	return true
}

// Contains reports whether a key-equal element is selected.
func (s *Selection[T]) Contains(item T) bool {
	return s.indexOf(s.key(item)) >= 0
}

// Items returns a copy of the current selection in order.
func (s *Selection[T]) Items() []T {
	return append([]T(nil), s.items...)
}

// Len returns the number of selected elements.
func (s *Selection[T]) Len() int { return len(s.items) }
