package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mediabrowse/internal/core/picker"
)

func newTreePicker(exclude int) treePicker {
	ti := textinput.New()
	ti.Placeholder = "Filter folders…"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()
	return treePicker{open: true, filter: ti, exclude: exclude}
}

// focusNode puts the cursor on the row showing the folder id, so the picker
// opens at the current destination. A folder that no longer exists in the
// tree, or sits inside the excluded subtree, leaves the cursor at the root.
func (p treePicker) focusNode(tree []picker.FlatNode, id int) treePicker {
	if _, ok := picker.FindNode(tree, id); !ok {
		return p
	}
	for i, n := range p.visible(tree) {
		if n.ID == id {
			p.cursor = i
			break
		}
	}
	return p
}

// visible returns the selectable tree rows under the current filter. The
// excluded subtree is skipped entirely so a folder can never become its own
// ancestor.
func (p treePicker) visible(tree []picker.FlatNode) []picker.FlatNode {
	idx := filterNodes(p.filter.Value(), tree, defaultFilterCfg)
	out := make([]picker.FlatNode, 0, len(idx))
	for _, i := range idx {
		n := tree[i]
		if p.exclude >= 0 && picker.Subtree(tree, p.exclude, n.ID) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// update handles one key event inside the picker. It returns the updated
// picker, the chosen node if enter landed on one, and whether the picker
// closed.
func (p treePicker) update(msg tea.KeyMsg, tree []picker.FlatNode) (treePicker, *picker.FlatNode, bool) {
	switch msg.String() {
	case "esc":
		p.open = false
		return p, nil, true
	case "enter":
		rows := p.visible(tree)
		if p.cursor < len(rows) {
			chosen := rows[p.cursor]
			p.open = false
			return p, &chosen, true
		}
		return p, nil, false
	case "down", "ctrl+n":
		if p.cursor < len(p.visible(tree))-1 {
			p.cursor++
		}
		return p, nil, false
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil, false
	default:
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		_ = cmd
		if p.cursor >= len(p.visible(tree)) {
			p.cursor = 0
		}
		return p, nil, false
	}
}

func (p treePicker) render(tree []picker.FlatNode) string {
	var b strings.Builder
	b.WriteString("Choose a folder:\n")
	b.WriteString(p.filter.View() + "\n\n")
	rows := p.visible(tree)
	if len(rows) == 0 {
		b.WriteString(warnStyle.Render("No folders match.") + "\n")
	}
	for i, n := range rows {
		cursor := "  "
		if i == p.cursor {
			cursor = "> "
		}
		line := cursor + strings.Repeat("  ", n.Depth) + symbolFolder + " " + n.Label
		if i == p.cursor {
			line = focusStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("up/down move  |  Enter choose  |  Esc cancel"))
	return b.String()
}
