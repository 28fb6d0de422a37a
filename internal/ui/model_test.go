package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"mediabrowse/internal/strapi"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// stubSource is a scriptable AssetSource for tests.
type stubSource struct {
	listFiles   func(opts strapi.ListFilesOpts) (strapi.FileList, error)
	listFolders func(opts strapi.ListFoldersOpts) ([]strapi.Folder, error)
	getFolder   func(id int) (*strapi.Folder, error)
	structure   func() ([]strapi.FolderNode, error)
	upload      func(files []strapi.LocalFile, folderID *int) ([]strapi.Asset, error)
	updateFile  func(id int, info strapi.FileInfo) (strapi.Asset, error)
	deleteFile  func(id int) error
}

func (s *stubSource) ListFiles(_ context.Context, opts strapi.ListFilesOpts) (strapi.FileList, error) {
	if s.listFiles != nil {
		return s.listFiles(opts)
	}
	return strapi.FileList{}, nil
}

func (s *stubSource) ListFolders(_ context.Context, opts strapi.ListFoldersOpts) ([]strapi.Folder, error) {
	if s.listFolders != nil {
		return s.listFolders(opts)
	}
	return nil, nil
}

func (s *stubSource) GetFolder(_ context.Context, id int) (*strapi.Folder, error) {
	if s.getFolder != nil {
		return s.getFolder(id)
	}
	return nil, nil
}

func (s *stubSource) FolderStructure(_ context.Context) ([]strapi.FolderNode, error) {
	if s.structure != nil {
		return s.structure()
	}
	return nil, nil
}

func (s *stubSource) CreateFolder(_ context.Context, name string, parent *int) (strapi.Folder, error) {
	return strapi.Folder{ID: 99, Name: name}, nil
}

func (s *stubSource) UpdateFolder(_ context.Context, id int, name string, parent *int, parentSet bool) (strapi.Folder, error) {
	return strapi.Folder{ID: id, Name: name}, nil
}

func (s *stubSource) DeleteFolder(_ context.Context, id int) error { return nil }

func (s *stubSource) Upload(_ context.Context, files []strapi.LocalFile, folderID *int) ([]strapi.Asset, error) {
	if s.upload != nil {
		return s.upload(files, folderID)
	}
	return nil, nil
}

func (s *stubSource) UpdateFile(_ context.Context, id int, info strapi.FileInfo, replacement *strapi.LocalFile) (strapi.Asset, error) {
	if s.updateFile != nil {
		return s.updateFile(id, info)
	}
	return strapi.Asset{ID: id, Name: info.Name}, nil
}

func (s *stubSource) DeleteFile(_ context.Context, id int) error {
	if s.deleteFile != nil {
		return s.deleteFile(id)
	}
	return nil
}

func newTestModel(opts Options) Model {
	return New(&stubSource{}, opts)
}

func testAsset(id int, name, mime string) strapi.Asset {
	return strapi.Asset{ID: id, Name: name, Mime: mime, URL: "/uploads/" + name}
}

func testAssets(n int) []strapi.Asset {
	out := make([]strapi.Asset, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, testAsset(i, "asset", "image/png"))
	}
	return out
}
