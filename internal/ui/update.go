package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"mediabrowse/internal/core/picker"
	"mediabrowse/internal/strapi"
)

// ---------- Update ----------
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if m.confirm.kind != confirmNone {
			return m.handleConfirmKey(msg.String())
		}
		switch m.state {
		case stateUpload:
			return m.handleUploadKey(msg)
		case stateAssetEdit:
			return m.handleAssetEditKey(msg)
		case stateFolderForm:
			return m.handleFolderFormKey(msg)
		}
		if m.searching {
			return m.handleSearchInput(msg)
		}
		key := msg.String()
		if key == "ctrl+c" {
			return m.cancelDialog()
		}
		if m.tab == tabSelected {
			return m.handleSelectedKey(key)
		}
		return m.handleBrowseKey(key)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.upload.active > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case refreshMsg:
		return m.withRefresh()

	case loadTreeMsg:
		cmd := m.fetchTreeCmd()
		return m, cmd

	case assetsMsg:
		if msg.seq != m.assetsSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Loading assets failed: " + msg.err.Error()
			return m, nil
		}
		m.assets = msg.list.Results
		m.pagination = msg.list.Pagination
		m.clampCursor()
		return m, nil

	case foldersMsg:
		if msg.seq != m.foldersSeq {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = "Loading folders failed: " + msg.err.Error()
			return m, nil
		}
		m.folders = msg.folders
		m.clampCursor()
		return m, nil

	case folderMsg:
		if msg.seq != m.folderSeq {
			return m, nil
		}
		if msg.err != nil {
			return m, nil
		}
		m.current = msg.folder
		// The --folder flag carries only an ID, but asset listings are
		// scoped by path. Adopt the resolved path and refetch; the seq
		// bump discards the root-scoped reply that is still in flight.
		if msg.folder != nil && m.query.Folder != nil &&
			msg.folder.ID == *m.query.Folder && m.query.FolderPath != msg.folder.Path {
			m.query = m.query.WithFolderPath(msg.folder.Path)
			cmd := m.fetchAssetsCmd()
			return m, cmd
		}
		return m, nil

	case treeMsg:
		if msg.seq != m.treeSeq {
			return m, nil
		}
		if msg.err == nil {
			m.tree = msg.flat
		}
		return m, nil

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case assetSavedMsg:
		m.edit.saving = false
		if msg.err != nil {
			m.edit.errMsg = msg.err.Error()
			return m, nil
		}
		// Patch the current page and the selection in place so the edit is
		// visible immediately, then refetch in the background.
		m.assets = picker.ReplaceAsset(m.assets, msg.asset)
		m.patchSelection(msg.asset)
		m.state = stateBrowse
		m.statusMsg = fmt.Sprintf("Saved %s", msg.asset.Name)
		return m.withRefresh()

	case assetDeletedMsg:
		if msg.err != nil {
			m.errMsg = "Delete failed: " + msg.err.Error()
			m.state = stateBrowse
			return m, nil
		}
		m.assets = picker.RemoveAsset(m.assets, msg.id)
		m.dropFromSelection(msg.id)
		m.state = stateBrowse
		m.statusMsg = "Asset deleted"
		m.clampCursor()
		return m.withRefresh()

	case folderSavedMsg:
		m.folder.saving = false
		if msg.err != nil {
			m.folder.errMsg = msg.err.Error()
			return m, nil
		}
		m.state = stateBrowse
		if msg.created {
			m.statusMsg = fmt.Sprintf("Folder %q created", msg.folder.Name)
		} else {
			m.statusMsg = fmt.Sprintf("Folder %q saved", msg.folder.Name)
		}
		return m.withRefreshAndTree()

	case folderDeletedMsg:
		if msg.err != nil {
			m.errMsg = "Delete failed: " + msg.err.Error()
			m.state = stateBrowse
			return m, nil
		}
		m.folders = picker.RemoveFolder(m.folders, msg.id)
		m.state = stateBrowse
		m.statusMsg = "Folder deleted"
		m.clampCursor()
		return m.withRefreshAndTree()
	}

	return m, nil
}

// withRefresh bumps the fetch sequence numbers on the copy that is returned,
// so the guards and the in-flight commands agree.
func (m Model) withRefresh() (Model, tea.Cmd) {
	cmd := m.refresh()
	return m, cmd
}

func (m Model) withRefreshAndTree() (Model, tea.Cmd) {
	cmd := m.refresh()
	tree := m.fetchTreeCmd()
	return m, tea.Batch(cmd, tree)
}

// patchSelection swaps the updated asset into the selection without touching
// order or membership.
func (m *Model) patchSelection(updated strapi.Asset) {
	items := m.selection.Items()
	changed := false
	for i := range items {
		if items[i].ID == updated.ID {
			items[i] = updated
			changed = true
		}
	}
	if changed {
		m.selection.Replace(items)
	}
}

// dropFromSelection removes a deleted asset from the selection, keeping the
// relative order of the rest.
func (m *Model) dropFromSelection(id int) {
	items := m.selection.Items()
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) != len(items) {
		m.selection.Replace(kept)
	}
}

// confirmSelection finishes the dialog. Confirming an empty selection is
// treated as a cancel, so hosts never receive an empty result.
func (m Model) confirmSelection() (Model, tea.Cmd) {
	m.done = true
	m.validated = m.selection.Len() > 0
	m.state = stateQuit
	return m, tea.Quit
}

func (m Model) cancelDialog() (Model, tea.Cmd) {
	m.done = true
	m.validated = false
	m.state = stateQuit
	return m, tea.Quit
}

func (m Model) handleConfirmKey(key string) (Model, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		c := m.confirm
		m.confirm = confirmState{}
		switch c.kind {
		case confirmDiscardUploads:
			return m.discardUploads()
		case confirmDeleteAsset:
			return m, m.deleteAssetCmd(c.assetID)
		case confirmDeleteFolder:
			return m, m.deleteFolderCmd(c.folderID)
		}
	case "n", "N", "esc":
		m.confirm = confirmState{}
	}
	return m, nil
}

func (m *Model) clampCursor() {
	total := len(m.folders) + len(m.assets)
	if m.cursor >= total {
		m.cursor = total - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.selCursor >= m.selection.Len() {
		m.selCursor = m.selection.Len() - 1
	}
	if m.selCursor < 0 {
		m.selCursor = 0
	}
}
