package picker

import "mediabrowse/internal/strapi"

// Crumb is one element of the folder breadcrumb trail. A nil ID is the
// library root.
type Crumb struct {
	ID    *int
	Label string
	Path  string
}

// Breadcrumbs builds the trail root -> ... -> current from a folder whose
// parent chain was populated by GetFolder. A nil folder yields just the root.
func Breadcrumbs(root string, folder *strapi.Folder) []Crumb {
	crumbs := []Crumb{{Label: root}}
	if folder == nil {
		return crumbs
	}
	var chain []*strapi.Folder
	for f := folder; f != nil; f = f.Parent {
		chain = append([]*strapi.Folder{f}, chain...)
	}
	for _, f := range chain {
		id := f.ID
		crumbs = append(crumbs, Crumb{ID: &id, Label: f.Name, Path: f.Path})
	}
	return crumbs
}
