package picker

import "mediabrowse/internal/strapi"

// Filter is one structured list predicate, e.g. {mime $contains image}.
type Filter = strapi.FilterParam

// Query describes the current page/sort/filter/folder/search state of the
// browse view. Transitions are value semantics: each With* returns a new
// Query and never mutates the receiver. The query carries folder and search
// simultaneously; which one the fetch honors is decided in FileOpts.
type Query struct {
	Page       int
	PageSize   int
	Sort       string
	Folder     *int
	FolderPath string
	Search     string
	Filters    []Filter
}

// DefaultQuery is the state of a freshly opened dialog: root folder,
// first page, newest assets first.
func DefaultQuery(pageSize int, sort string) Query {
	if pageSize <= 0 {
		pageSize = 20
	}
	if sort == "" {
		sort = "createdAt:desc"
	}
	return Query{Page: 1, PageSize: pageSize, Sort: sort, FolderPath: "/"}
}

// WithFolder navigates to a folder (nil means library root). Changing
// location resets the page and drops any in-flight text search; the path
// defaults to "/" only for the root, matching the server's folderPath scoping.
func (q Query) WithFolder(id *int, path string) Query {
	q.Folder = id
	if path == "" && id == nil {
		path = "/"
	}
	q.FolderPath = path
	q.Page = 1
	q.Search = ""
	return q
}

// WithFolderPath fills in the server-resolved path of the current folder.
// Unlike WithFolder this is not a navigation: page, search, and filters
// stay untouched.
func (q Query) WithFolderPath(path string) Query {
	q.FolderPath = path
	return q
}

// WithSearch sets the free-text search and resets the page. The folder scope
// is kept so clearing the search resumes browsing where the user left off.
func (q Query) WithSearch(text string) Query {
	q.Search = text
	q.Page = 1
	return q
}

// WithFilters replaces the structured filters and resets the page.
// Sort and filter transitions both return to page 1: any change of scope
// restarts pagination.
func (q Query) WithFilters(filters []Filter) Query {
	q.Filters = filters
	q.Page = 1
	return q
}

// WithSort replaces the sort order and resets the page.
func (q Query) WithSort(sort string) Query {
	q.Sort = sort
	q.Page = 1
	return q
}

// WithPage moves to page n (1-based).
func (q Query) WithPage(n int) Query {
	if n < 1 {
		n = 1
	}
	q.Page = n
	return q
}

// WithPageSize changes the page size and resets the page.
func (q Query) WithPageSize(n int) Query {
	if n > 0 {
		q.PageSize = n
	}
	q.Page = 1
	return q
}

// SearchingOrFiltering reports whether a text search or at least one
// structured filter is active.
func (q Query) SearchingOrFiltering() bool {
	return q.Search != "" || len(q.Filters) > 0
}

// WantFolders reports whether the folder listing should be fetched at all:
// only on the first page and only when not searching or filtering.
func (q Query) WantFolders() bool {
	return q.Page == 1 && !q.SearchingOrFiltering()
}

// FileOpts converts the query into asset-list parameters. An active search
// suppresses the folder constraint; the query object itself keeps both.
func (q Query) FileOpts() strapi.ListFilesOpts {
	opts := strapi.ListFilesOpts{
		Page:     q.Page,
		PageSize: q.PageSize,
		Sort:     q.Sort,
		Filters:  q.Filters,
	}
	if q.Search != "" {
		opts.Search = q.Search
		return opts
	}
	opts.FolderPath = q.FolderPath
	if opts.FolderPath == "" {
		opts.FolderPath = "/"
	}
	return opts
}

// FolderOpts converts the query into folder-list parameters.
func (q Query) FolderOpts() strapi.ListFoldersOpts {
	opts := strapi.ListFoldersOpts{Sort: "name:asc"}
	if q.Search != "" {
		opts.Search = q.Search
		return opts
	}
	opts.Folder = q.Folder
	return opts
}
