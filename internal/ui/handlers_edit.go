package ui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mediabrowse/internal/core/picker"
	"mediabrowse/internal/strapi"
)

var errNoSuchFile = errors.New("file does not exist")

func validateAssetForm(name, replacement string) error {
	return validation.Errors{
		"name": validation.Validate(name, validation.Required, validation.Length(1, 255)),
		"file": validation.Validate(replacement, validation.By(func(v interface{}) error {
			path, _ := v.(string)
			if path == "" || fileExists(path) {
				return nil
			}
			return errNoSuchFile
		})),
	}.Filter()
}

func (m Model) openAssetEdit(a strapi.Asset) (Model, tea.Cmd) {
	m.state = stateAssetEdit
	m.edit = editState{asset: a}

	name := textinput.New()
	name.CharLimit = 255
	name.Width = 50
	name.SetValue(a.Name)
	name.Focus()
	m.edit.name = name

	alt := textinput.New()
	alt.CharLimit = 255
	alt.Width = 50
	alt.SetValue(a.AlternativeText)
	m.edit.alt = alt

	caption := textinput.New()
	caption.CharLimit = 255
	caption.Width = 50
	caption.SetValue(a.Caption)
	m.edit.caption = caption

	repl := textinput.New()
	repl.Placeholder = "Path to replacement file (optional)"
	repl.CharLimit = 500
	repl.Width = 50
	m.edit.replacement = repl

	if a.Folder != nil {
		m.edit.destLabel = a.Folder.Name
	}
	return m, nil
}

// handleAssetEditKey drives the asset edit form: name, alternative text,
// caption, an optional replacement file and a folder move via the tree
// picker.
func (m Model) handleAssetEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.edit.picker.open {
		var chosen *picker.FlatNode
		m.edit.picker, chosen, _ = m.edit.picker.update(msg, m.tree)
		if chosen != nil {
			if chosen.ID == picker.RootFolderID {
				m.edit.dest = nil
			} else {
				id := chosen.ID
				m.edit.dest = &id
			}
			m.edit.destSet = true
			m.edit.destLabel = chosen.Label
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m.cancelDialog()

	case "esc":
		m.state = stateBrowse
		return m, nil

	case "tab", "shift+tab", "down", "up":
		dir := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			dir = -1
		}
		m.edit.focus = (m.edit.focus + dir + 4) % 4
		m = m.focusEditField()
		return m, nil

	case "ctrl+f":
		m.edit.picker = newTreePicker(-1)
		cur := picker.RootFolderID
		if m.edit.destSet {
			if m.edit.dest != nil {
				cur = *m.edit.dest
			}
		} else if m.edit.asset.Folder != nil {
			cur = m.edit.asset.Folder.ID
		}
		m.edit.picker = m.edit.picker.focusNode(m.tree, cur)
		return m, nil

	case "ctrl+d":
		m.confirm = confirmState{kind: confirmDeleteAsset, assetID: m.edit.asset.ID}
		return m, nil

	case "ctrl+y":
		if err := clipboard.WriteAll(m.edit.asset.URL); err != nil {
			m.edit.errMsg = "Clipboard: " + err.Error()
		} else {
			m.edit.errMsg = ""
			m.statusMsg = "Copied URL"
		}
		return m, nil

	case "enter":
		return m.saveAsset()

	default:
		var cmd tea.Cmd
		switch m.edit.focus {
		case 0:
			m.edit.name, cmd = m.edit.name.Update(msg)
		case 1:
			m.edit.alt, cmd = m.edit.alt.Update(msg)
		case 2:
			m.edit.caption, cmd = m.edit.caption.Update(msg)
		case 3:
			m.edit.replacement, cmd = m.edit.replacement.Update(msg)
		}
		return m, cmd
	}
}

func (m Model) focusEditField() Model {
	inputs := []*textinput.Model{&m.edit.name, &m.edit.alt, &m.edit.caption, &m.edit.replacement}
	for i, in := range inputs {
		if i == m.edit.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	return m
}

func (m Model) saveAsset() (Model, tea.Cmd) {
	name := strings.TrimSpace(m.edit.name.Value())
	replacement := strings.TrimSpace(m.edit.replacement.Value())
	if err := validateAssetForm(name, replacement); err != nil {
		m.edit.errMsg = err.Error()
		return m, nil
	}
	m.edit.errMsg = ""
	m.edit.saving = true
	info := strapi.FileInfo{
		Name:            name,
		AlternativeText: strings.TrimSpace(m.edit.alt.Value()),
		Caption:         strings.TrimSpace(m.edit.caption.Value()),
		Folder:          m.edit.dest,
		FolderSet:       m.edit.destSet,
	}
	return m, m.saveAssetCmd(m.edit.asset.ID, info, replacement)
}
