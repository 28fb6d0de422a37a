package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleSelectedKey handles key events in the selected-assets tab. The tab
// shows the selection in its final order; J/K reorder it, which is the order
// the host receives on confirm.
func (m Model) handleSelectedKey(key string) (Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		return m.cancelDialog()

	case "j", "down":
		if m.selCursor < m.selection.Len()-1 {
			m.selCursor++
		}
		return m, nil
	case "k", "up":
		if m.selCursor > 0 {
			m.selCursor--
		}
		return m, nil

	case "J":
		if m.selection.Move(m.selCursor, 1) {
			m.selCursor++
		}
		return m, nil
	case "K":
		if m.selection.Move(m.selCursor, -1) {
			m.selCursor--
		}
		return m, nil

	case " ", "x":
		items := m.selection.Items()
		if m.selCursor < len(items) {
			m.selection.Toggle(items[m.selCursor])
			m.clampCursor()
		}
		return m, nil

	case "tab":
		m.tab = tabBrowse
		return m, nil

	case "c":
		return m.confirmSelection()
	}

	return m, nil
}
