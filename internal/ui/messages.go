package ui

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mediabrowse/internal/core/picker"
	"mediabrowse/internal/infra/logx"
	"mediabrowse/internal/strapi"
)

// ---------- Messages / Cmds ----------

// refreshMsg asks the model to refetch everything the current query covers.
// Init sends one, and reconciliation returns one after a local patch so the
// view converges on server truth.
type refreshMsg struct{}

// loadTreeMsg asks for a fresh folder structure for the tree pickers.
type loadTreeMsg struct{}

type assetsMsg struct {
	seq  int
	list strapi.FileList
	err  error
}

type foldersMsg struct {
	seq     int
	folders []strapi.Folder
	err     error
}

type folderMsg struct {
	seq    int
	folder *strapi.Folder
	err    error
}

type treeMsg struct {
	seq  int
	flat []picker.FlatNode
	err  error
}

type uploadDoneMsg struct {
	tempID string
	asset  strapi.Asset
	err    error
}

type assetSavedMsg struct {
	asset strapi.Asset
	err   error
}

type assetDeletedMsg struct {
	id  int
	err error
}

type folderSavedMsg struct {
	folder  strapi.Folder
	created bool
	err     error
}

type folderDeletedMsg struct {
	id  int
	err error
}

// refresh launches the fetches the current query needs and bumps the
// sequence numbers so replies to any earlier query are discarded.
func (m *Model) refresh() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	cmds := []tea.Cmd{m.fetchAssetsCmd(), m.fetchFolderCmd(), m.spinner.Tick}
	if m.query.WantFolders() {
		cmds = append(cmds, m.fetchFoldersCmd())
	} else {
		m.foldersSeq++
		m.folders = nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchAssetsCmd() tea.Cmd {
	m.assetsSeq++
	seq := m.assetsSeq
	src := m.source
	opts := m.query.FileOpts()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		list, err := src.ListFiles(ctx, opts)
		if err != nil {
			logx.Warnf("list files: %v", err)
		}
		return assetsMsg{seq: seq, list: list, err: err}
	}
}

func (m *Model) fetchFoldersCmd() tea.Cmd {
	m.foldersSeq++
	seq := m.foldersSeq
	src := m.source
	opts := m.query.FolderOpts()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		folders, err := src.ListFolders(ctx, opts)
		if err != nil {
			logx.Warnf("list folders: %v", err)
		}
		return foldersMsg{seq: seq, folders: folders, err: err}
	}
}

// fetchFolderCmd resolves the current folder with its parent chain for the
// breadcrumb trail. At the root there is nothing to resolve; the seq bump
// still invalidates any reply that is on its way.
func (m *Model) fetchFolderCmd() tea.Cmd {
	m.folderSeq++
	seq := m.folderSeq
	if m.query.Folder == nil {
		m.current = nil
		return nil
	}
	src := m.source
	id := *m.query.Folder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		folder, err := src.GetFolder(ctx, id)
		return folderMsg{seq: seq, folder: folder, err: err}
	}
}

func (m *Model) fetchTreeCmd() tea.Cmd {
	m.treeSeq++
	seq := m.treeSeq
	src := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		nodes, err := src.FolderStructure(ctx)
		if err != nil {
			logx.Warnf("folder structure: %v", err)
			return treeMsg{seq: seq, err: err}
		}
		return treeMsg{seq: seq, flat: picker.FlattenStructure("Media Library", nodes)}
	}
}

// uploadFileCmd uploads one staged file. The file is opened inside the
// command so a retry rereads from disk, and ctx is the shared cancellable
// upload context: aborting the dialog cancels every in-flight transfer.
func (m Model) uploadFileCmd(ctx context.Context, pf pendingFile) tea.Cmd {
	src := m.source
	folder := m.query.Folder
	return func() tea.Msg {
		f, err := os.Open(pf.Path)
		if err != nil {
			return uploadDoneMsg{tempID: pf.TempID, err: err}
		}
		defer f.Close()
		assets, err := src.Upload(ctx, []strapi.LocalFile{{Name: pf.Name, ContentType: pf.Mime, Reader: f}}, folder)
		if err != nil {
			logx.Warnf("upload %s: %v", pf.Name, err)
			return uploadDoneMsg{tempID: pf.TempID, err: err}
		}
		if len(assets) == 0 {
			return uploadDoneMsg{tempID: pf.TempID, err: errEmptyUploadResponse}
		}
		logx.Infof("uploaded %s as id %d", pf.Name, assets[0].ID)
		return uploadDoneMsg{tempID: pf.TempID, asset: assets[0]}
	}
}

func (m Model) saveAssetCmd(id int, info strapi.FileInfo, replacementPath string) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		var replacement *strapi.LocalFile
		if replacementPath != "" {
			f, err := os.Open(replacementPath)
			if err != nil {
				return assetSavedMsg{err: err}
			}
			defer f.Close()
			replacement = &strapi.LocalFile{Name: info.Name, ContentType: detectMime(replacementPath), Reader: f}
		}
		asset, err := src.UpdateFile(ctx, id, info, replacement)
		return assetSavedMsg{asset: asset, err: err}
	}
}

func (m Model) deleteAssetCmd(id int) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return assetDeletedMsg{id: id, err: src.DeleteFile(ctx, id)}
	}
}

func (m Model) saveFolderCmd(id int, name string, parent *int, parentSet bool) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if id == 0 {
			folder, err := src.CreateFolder(ctx, name, parent)
			return folderSavedMsg{folder: folder, created: true, err: err}
		}
		folder, err := src.UpdateFolder(ctx, id, name, parent, parentSet)
		return folderSavedMsg{folder: folder, err: err}
	}
}

func (m Model) deleteFolderCmd(id int) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return folderDeletedMsg{id: id, err: src.DeleteFolder(ctx, id)}
	}
}
