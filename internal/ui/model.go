package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediabrowse/internal/core/picker"
	"mediabrowse/internal/strapi"
)

// --- UI Styles ---
var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	subtleStyle     = lipgloss.NewStyle().Faint(true)
	warnStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle       = lipgloss.NewStyle().Faint(true)
	dividerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusStyle      = lipgloss.NewStyle().Bold(true)
	cursorLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("#2A2B3D"))
	cursorBarStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#FFAB78"))
	markBarStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#3AC4BA"))
	doneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tabActiveStyle  = lipgloss.NewStyle().Bold(true).Underline(true)

	// markers for different row types (colored letters)
	symbolImage  = fgSymbol("#8942E1", "I")
	symbolVideo  = fgSymbol("#E1427A", "V")
	symbolAudio  = fgSymbol("#42A5E1", "A")
	symbolDoc    = fgSymbol("245", "D")
	symbolFolder = fgSymbol("#3AC4BA", "F")
)

func fgSymbol(col, ch string) string {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Render(ch)
	const reset = "\x1b[0m"
	return strings.TrimSuffix(s, reset) + "\x1b[39m"
}

func assetSymbol(a strapi.Asset) string {
	switch picker.KindOf(a.Mime) {
	case picker.KindImage:
		return symbolImage
	case picker.KindVideo:
		return symbolVideo
	case picker.KindAudio:
		return symbolAudio
	default:
		return symbolDoc
	}
}

// AssetSource is the remote media library the dialog browses. *strapi.Client
// satisfies it; tests substitute a stub.
type AssetSource interface {
	ListFiles(ctx context.Context, opts strapi.ListFilesOpts) (strapi.FileList, error)
	ListFolders(ctx context.Context, opts strapi.ListFoldersOpts) ([]strapi.Folder, error)
	GetFolder(ctx context.Context, id int) (*strapi.Folder, error)
	FolderStructure(ctx context.Context) ([]strapi.FolderNode, error)
	CreateFolder(ctx context.Context, name string, parent *int) (strapi.Folder, error)
	UpdateFolder(ctx context.Context, id int, name string, parent *int, parentSet bool) (strapi.Folder, error)
	DeleteFolder(ctx context.Context, id int) error
	Upload(ctx context.Context, files []strapi.LocalFile, folderID *int) ([]strapi.Asset, error)
	UpdateFile(ctx context.Context, id int, info strapi.FileInfo, replacement *strapi.LocalFile) (strapi.Asset, error)
	DeleteFile(ctx context.Context, id int) error
}

// Options configures one dialog run.
type Options struct {
	Multiple         bool
	AllowedTypes     []string // plural kinds: images, videos, audios, files; empty allows all
	Folder           *int     // initial folder, nil for the library root
	InitialSelection []strapi.Asset
	PageSize         int
	Sort             string
}

// --- Model / State ---
type state int

const (
	stateBrowse state = iota
	stateUpload
	stateAssetEdit
	stateFolderForm
	stateQuit
)

type tab int

const (
	tabBrowse tab = iota
	tabSelected
)

var sortOptions = []string{"createdAt:desc", "createdAt:asc", "name:asc", "name:desc", "updatedAt:desc"}

// typeOptions cycles the structured mime filter; "" means no filter.
var typeOptions = []string{"", "images", "videos", "audios", "files"}

var pageSizeOptions = []int{10, 20, 50, 100}

type uploadStatus int

const (
	uploadQueued uploadStatus = iota
	uploadRunning
	uploadDone
	uploadFailed
)

// pendingFile is one local file staged in the upload dialog. TempID
// identifies it across messages until the server assigns a real ID.
type pendingFile struct {
	TempID string
	Path   string
	Name   string
	Mime   string
	Status uploadStatus
	Err    string
}

type uploadState struct {
	input   textinput.Model
	pending []pendingFile
	active  int // uploads in flight
	cancel  context.CancelFunc
	ctx     context.Context
}

// treePicker is the shared folder destination chooser: the flattened folder
// tree with a fuzzy filter. exclude forbids a subtree (a folder cannot be
// moved into itself); -1 excludes nothing.
type treePicker struct {
	open    bool
	filter  textinput.Model
	cursor  int
	exclude int
}

type editState struct {
	asset       strapi.Asset
	name        textinput.Model
	alt         textinput.Model
	caption     textinput.Model
	replacement textinput.Model
	focus       int
	dest        *int
	destSet     bool
	destLabel   string
	picker      treePicker
	errMsg      string
	saving      bool
}

type folderFormState struct {
	id        int // 0 creates a new folder
	name      textinput.Model
	parent    *int
	destLabel string
	picker    treePicker
	errMsg    string
	saving    bool
}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDiscardUploads
	confirmDeleteAsset
	confirmDeleteFolder
)

type confirmState struct {
	kind     confirmKind
	assetID  int
	folderID int
}

type Model struct {
	state         state
	tab           tab
	source        AssetSource
	opts          Options
	statusMsg     string
	errMsg        string
	width, height int

	spinner spinner.Model
	loading bool

	// browse data, refreshed per query
	query      picker.Query
	selection  *picker.Selection[strapi.Asset]
	assets     []strapi.Asset
	pagination strapi.Pagination
	folders    []strapi.Folder
	current    *strapi.Folder // parent chain populated, nil at root
	tree       []picker.FlatNode

	// per-resource response sequence numbers; replies carrying an older
	// seq than the current one are dropped
	assetsSeq  int
	foldersSeq int
	folderSeq  int
	treeSeq    int

	cursor    int // browse row over folders then assets
	selCursor int // row in the selected tab

	searching   bool
	searchInput textinput.Model
	sortIndex   int
	typeIndex   int
	sizeIndex   int

	upload  uploadState
	edit    editState
	folder  folderFormState
	confirm confirmState

	done      bool
	validated bool
}

// New builds the dialog model. The first fetch is kicked off by Init.
func New(source AssetSource, opts Options) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.Sort == "" {
		opts.Sort = sortOptions[0]
	}

	m := Model{
		state:  stateBrowse,
		source: source,
		opts:   opts,
		query:  picker.DefaultQuery(opts.PageSize, opts.Sort),
	}
	if opts.Folder != nil {
		id := *opts.Folder
		m.query = m.query.WithFolder(&id, "")
	}
	for i, s := range sortOptions {
		if s == opts.Sort {
			m.sortIndex = i
		}
	}
	for i, n := range pageSizeOptions {
		if n == opts.PageSize {
			m.sizeIndex = i
		}
	}

	m.selection = picker.NewSelection(func(a strapi.Asset) string {
		if a.ID != 0 {
			return strconv.Itoa(a.ID)
		}
		return a.TempID
	}, opts.InitialSelection)

	si := textinput.New()
	si.Placeholder = "Search assets…"
	si.CharLimit = 200
	si.Width = 40
	m.searchInput = si

	ui := textinput.New()
	ui.Placeholder = "Path to a local file"
	ui.CharLimit = 500
	ui.Width = 60
	m.upload.input = ui

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = subtleStyle
	m.spinner = sp

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return refreshMsg{} },
		func() tea.Msg { return loadTreeMsg{} },
	)
}

// Done reports whether the dialog has finished.
func (m Model) Done() bool { return m.done }

// Validated reports whether the user confirmed the selection. A cancelled
// dialog and a confirmed empty selection both leave this false.
func (m Model) Validated() bool { return m.validated }
