package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mediabrowse/internal/core/picker"
	"mediabrowse/internal/strapi"
)

func validateFolderForm(name string) error {
	return validation.Errors{
		"name": validation.Validate(name, validation.Required, validation.Length(1, 255)),
	}.Filter()
}

// openFolderForm opens the create form when existing is nil, otherwise the
// edit form for that folder. New folders default to the folder currently
// being browsed as their parent.
func (m Model) openFolderForm(existing *strapi.Folder) (Model, tea.Cmd) {
	m.state = stateFolderForm
	m.folder = folderFormState{}

	name := textinput.New()
	name.Placeholder = "Folder name"
	name.CharLimit = 255
	name.Width = 50
	name.Focus()

	if existing != nil {
		m.folder.id = existing.ID
		name.SetValue(existing.Name)
		m.folder.parent = m.query.Folder
	} else {
		m.folder.parent = m.query.Folder
	}
	if m.current != nil {
		m.folder.destLabel = m.current.Name
	}
	m.folder.name = name
	return m, nil
}

func (m Model) handleFolderFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.folder.picker.open {
		var chosen *picker.FlatNode
		m.folder.picker, chosen, _ = m.folder.picker.update(msg, m.tree)
		if chosen != nil {
			if chosen.ID == picker.RootFolderID {
				m.folder.parent = nil
			} else {
				id := chosen.ID
				m.folder.parent = &id
			}
			m.folder.destLabel = chosen.Label
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m.cancelDialog()

	case "esc":
		m.state = stateBrowse
		return m, nil

	case "ctrl+f":
		// The subtree of the folder being edited is off limits as a new
		// parent; a create form has no such restriction.
		exclude := -1
		if m.folder.id != 0 {
			exclude = m.folder.id
		}
		m.folder.picker = newTreePicker(exclude)
		cur := picker.RootFolderID
		if m.folder.parent != nil {
			cur = *m.folder.parent
		}
		m.folder.picker = m.folder.picker.focusNode(m.tree, cur)
		return m, nil

	case "ctrl+d":
		if m.folder.id != 0 {
			m.confirm = confirmState{kind: confirmDeleteFolder, folderID: m.folder.id}
		}
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.folder.name.Value())
		if err := validateFolderForm(name); err != nil {
			m.folder.errMsg = err.Error()
			return m, nil
		}
		m.folder.errMsg = ""
		m.folder.saving = true
		// Updates always send the parent so a move to the root sticks.
		return m, m.saveFolderCmd(m.folder.id, name, m.folder.parent, true)

	default:
		var cmd tea.Cmd
		m.folder.name, cmd = m.folder.name.Update(msg)
		return m, cmd
	}
}
