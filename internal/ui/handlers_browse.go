package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"mediabrowse/internal/core/picker"
	"mediabrowse/internal/strapi"
)

// Browse rows list folders first, then the assets of the current page.
func (m Model) rowCount() int { return len(m.folders) + len(m.assets) }

func (m Model) rowIsFolder(i int) bool { return i < len(m.folders) }

func (m Model) folderAt(i int) strapi.Folder { return m.folders[i] }

func (m Model) assetAt(i int) strapi.Asset { return m.assets[i-len(m.folders)] }

// handleBrowseKey handles all key events in the browse tab.
func (m Model) handleBrowseKey(key string) (Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		return m.cancelDialog()

	case "j", "down":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "enter":
		if m.rowCount() == 0 {
			return m, nil
		}
		if m.rowIsFolder(m.cursor) {
			return m.enterFolder(m.folderAt(m.cursor))
		}
		return m.toggleAsset(m.assetAt(m.cursor))

	case " ":
		if m.rowCount() == 0 || m.rowIsFolder(m.cursor) {
			return m, nil
		}
		return m.toggleAsset(m.assetAt(m.cursor))

	case "a":
		return m.toggleSelectAll()

	case "backspace", "h":
		return m.leaveFolder()

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.query.Search)
		return m, m.searchInput.Focus()

	case "s":
		m.sortIndex = (m.sortIndex + 1) % len(sortOptions)
		m.query = m.query.WithSort(sortOptions[m.sortIndex])
		m.cursor = 0
		return m.withRefresh()

	case "t":
		m.typeIndex = (m.typeIndex + 1) % len(typeOptions)
		m.query = m.query.WithFilters(picker.TypeFilters(typeOptions[m.typeIndex]))
		m.cursor = 0
		return m.withRefresh()

	case "n", "right":
		if m.query.Page < m.pagination.PageCount {
			m.query = m.query.WithPage(m.query.Page + 1)
			m.cursor = 0
			return m.withRefresh()
		}
		return m, nil
	case "p", "left":
		if m.query.Page > 1 {
			m.query = m.query.WithPage(m.query.Page - 1)
			m.cursor = 0
			return m.withRefresh()
		}
		return m, nil

	case "+":
		m.sizeIndex = (m.sizeIndex + 1) % len(pageSizeOptions)
		m.query = m.query.WithPageSize(pageSizeOptions[m.sizeIndex])
		m.cursor = 0
		return m.withRefresh()

	case "u":
		m.state = stateUpload
		m.upload.pending = nil
		m.upload.input.SetValue("")
		return m, m.upload.input.Focus()

	case "F":
		return m.openFolderForm(nil)

	case "e":
		if m.rowCount() == 0 || m.rowIsFolder(m.cursor) {
			return m, nil
		}
		return m.openAssetEdit(m.assetAt(m.cursor))

	case "E":
		if m.rowCount() == 0 || !m.rowIsFolder(m.cursor) {
			return m, nil
		}
		f := m.folderAt(m.cursor)
		return m.openFolderForm(&f)

	case "d":
		if m.rowCount() == 0 {
			return m, nil
		}
		if m.rowIsFolder(m.cursor) {
			m.confirm = confirmState{kind: confirmDeleteFolder, folderID: m.folderAt(m.cursor).ID}
		} else {
			m.confirm = confirmState{kind: confirmDeleteAsset, assetID: m.assetAt(m.cursor).ID}
		}
		return m, nil

	case "y":
		if m.rowCount() == 0 || m.rowIsFolder(m.cursor) {
			return m, nil
		}
		a := m.assetAt(m.cursor)
		if err := clipboard.WriteAll(a.URL); err != nil {
			m.errMsg = "Clipboard: " + err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("Copied URL of %s", a.Name)
		}
		return m, nil

	case "tab":
		m.tab = tabSelected
		return m, nil

	case "c":
		return m.confirmSelection()
	}

	return m, nil
}

func (m Model) enterFolder(f strapi.Folder) (Model, tea.Cmd) {
	id := f.ID
	m.query = m.query.WithFolder(&id, f.Path)
	m.searchInput.SetValue("")
	m.cursor = 0
	return m.withRefresh()
}

func (m Model) leaveFolder() (Model, tea.Cmd) {
	if m.query.Folder == nil {
		return m, nil
	}
	if m.current != nil && m.current.Parent != nil {
		parent := m.current.Parent
		id := parent.ID
		m.query = m.query.WithFolder(&id, parent.Path)
	} else {
		m.query = m.query.WithFolder(nil, "")
	}
	m.cursor = 0
	return m.withRefresh()
}

// toggleAsset flips membership of one asset. Single-select keeps at most one
// item, so selecting replaces the previous choice; toggling the already
// selected asset deselects it.
func (m Model) toggleAsset(a strapi.Asset) (Model, tea.Cmd) {
	if !picker.TypeAllowed(m.opts.AllowedTypes, a.Mime) {
		m.statusMsg = fmt.Sprintf("%s cannot be selected here", a.Name)
		return m, nil
	}
	switch {
	case m.selection.Contains(a):
		m.selection.Toggle(a)
	case m.opts.Multiple:
		m.selection.Toggle(a)
	default:
		m.selection.SelectOnly(a)
	}
	return m, nil
}

// toggleSelectAll works on the eligible assets of the current page: if some
// are missing from the selection it selects the remainder, only a fully
// selected page deselects.
func (m Model) toggleSelectAll() (Model, tea.Cmd) {
	if !m.opts.Multiple {
		return m, nil
	}
	eligible := picker.AllowedAssets(m.opts.AllowedTypes, m.assets)
	if len(eligible) == 0 {
		return m, nil
	}
	all := true
	for _, a := range eligible {
		if !m.selection.Contains(a) {
			all = false
			break
		}
	}
	if all {
		m.selection.Deselect(eligible)
	} else {
		m.selection.Append(eligible)
	}
	return m, nil
}

// handleSearchInput handles the search bar while it has focus.
func (m Model) handleSearchInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		if m.query.Search != "" {
			m.query = m.query.WithSearch("")
			m.cursor = 0
			return m.withRefresh()
		}
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		text := strings.TrimSpace(m.searchInput.Value())
		if text == m.query.Search {
			return m, nil
		}
		m.query = m.query.WithSearch(text)
		m.cursor = 0
		return m.withRefresh()
	case "ctrl+c":
		return m.cancelDialog()
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
}
