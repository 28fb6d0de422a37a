package strapi

// FolderRef is the slim folder relation embedded in a file record.
type FolderRef struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`
}

// Asset is a media file record as returned by the upload API.
type Asset struct {
	ID              int        `json:"id,omitempty"`
	DocumentID      string     `json:"documentId,omitempty"`
	Name            string     `json:"name"`
	AlternativeText string     `json:"alternativeText,omitempty"`
	Caption         string     `json:"caption,omitempty"`
	Width           *int       `json:"width,omitempty"`
	Height          *int       `json:"height,omitempty"`
	Hash            string     `json:"hash,omitempty"`
	Ext             string     `json:"ext,omitempty"`
	Mime            string     `json:"mime"`
	Size            float64    `json:"size"` // kilobytes, as reported by the server
	URL             string     `json:"url"`
	PreviewURL      string     `json:"previewUrl,omitempty"`
	Provider        string     `json:"provider,omitempty"`
	FolderPath      string     `json:"folderPath,omitempty"`
	Folder          *FolderRef `json:"folder,omitempty"`
	CreatedAt       string     `json:"createdAt,omitempty"`
	UpdatedAt       string     `json:"updatedAt,omitempty"`

	// Local marks an asset that exists only on this machine (pending upload).
	// TempID identifies it until the server assigns a real ID.
	Local  bool   `json:"-"`
	TempID string `json:"-"`
}

// Folder is a media-library folder. Parent is populated one level deep by
// GetFolder so breadcrumbs can be built without walking the whole tree.
type Folder struct {
	ID         int     `json:"id,omitempty"`
	DocumentID string  `json:"documentId,omitempty"`
	Name       string  `json:"name"`
	PathID     int     `json:"pathId,omitempty"`
	Path       string  `json:"path,omitempty"`
	Parent     *Folder `json:"parent,omitempty"`
	Children   *Count  `json:"children,omitempty"`
	Files      *Count  `json:"files,omitempty"`
	CreatedAt  string  `json:"createdAt,omitempty"`
	UpdatedAt  string  `json:"updatedAt,omitempty"`
}

// Count wraps the {"count": n} relation summaries the API returns.
type Count struct {
	Count int `json:"count"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// FileList is the payload of GET /upload/files.
type FileList struct {
	Results    []Asset    `json:"results"`
	Pagination Pagination `json:"pagination"`
}

// FolderNode is one node of GET /upload/folder-structure.
type FolderNode struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Children []FolderNode `json:"children,omitempty"`
}

// FilterParam is a single structured list filter, encoded as
// filters[$and][i][<Field>][<Op>]=<Value>.
type FilterParam struct {
	Field string
	Op    string
	Value string
}

// ListFilesOpts are the query parameters for ListFiles. When Search is set
// the folder constraint is suppressed server-side; otherwise the listing is
// scoped to FolderPath ("/" for the root).
type ListFilesOpts struct {
	Page       int
	PageSize   int
	Sort       string
	Search     string
	FolderPath string
	Filters    []FilterParam
}

// ListFoldersOpts are the query parameters for ListFolders. Folder scopes the
// listing to the children of one folder (nil means root). Search switches the
// listing to a cross-folder name search.
type ListFoldersOpts struct {
	Folder *int
	Search string
	Sort   string
}

// FileInfo is the metadata patch accepted by UpdateFile and Upload.
// Folder distinguishes "move to root" (set with nil value) from "keep".
type FileInfo struct {
	Name            string
	AlternativeText string
	Caption         string
	Folder          *int
	FolderSet       bool
}
