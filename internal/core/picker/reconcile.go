package picker

import "mediabrowse/internal/strapi"

// ReplaceAsset returns a copy of list with every element whose ID matches
// updated swapped for updated, positions preserved. The pure half of edit
// reconciliation; cache refetch is a separate concern of the caller.
func ReplaceAsset(list []strapi.Asset, updated strapi.Asset) []strapi.Asset {
	out := make([]strapi.Asset, len(list))
	for i, a := range list {
		if a.ID == updated.ID {
			out[i] = updated
		} else {
			out[i] = a
		}
	}
	return out
}

// RemoveAsset returns a copy of list without any element of the given ID.
func RemoveAsset(list []strapi.Asset, id int) []strapi.Asset {
	out := make([]strapi.Asset, 0, len(list))
	for _, a := range list {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

// RemoveFolder returns a copy of list without the folder of the given ID.
func RemoveFolder(list []strapi.Folder, id int) []strapi.Folder {
	out := make([]strapi.Folder, 0, len(list))
	for _, f := range list {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}
