package ui

import "mediabrowse/internal/strapi"

// Value returns what the host receives after a confirmed dialog: a slice in
// selection order for multi-select, the single asset or nil otherwise.
func (m Model) Value() any {
	items := m.selection.Items()
	if m.opts.Multiple {
		return items
	}
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

// Selected returns the selection in order regardless of mode.
func (m Model) Selected() []strapi.Asset {
	return m.selection.Items()
}
