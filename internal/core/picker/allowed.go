package picker

import (
	"strings"

	"mediabrowse/internal/strapi"
)

// Kind is the coarse media category of a mime type.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
	KindFile  Kind = "file"
)

// KindOf maps a mime type to its category. Anything that is not an image,
// video or audio counts as a generic file.
func KindOf(mime string) Kind {
	top, _, _ := strings.Cut(mime, "/")
	switch top {
	case "image":
		return KindImage
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	default:
		return KindFile
	}
}

// SingularTypes converts the plural configuration values ("images", ...)
// to the singular mime categories. Unknown values pass through unchanged.
func SingularTypes(plural []string) []string {
	out := make([]string, 0, len(plural))
	for _, t := range plural {
		switch t {
		case "images":
			out = append(out, "image")
		case "videos":
			out = append(out, "video")
		case "audios":
			out = append(out, "audio")
		case "files":
			out = append(out, "file")
		default:
			out = append(out, t)
		}
	}
	return out
}

// TypeAllowed reports whether a mime type is selectable under the plural
// allowed-types configuration. A nil or empty configuration allows all.
func TypeAllowed(allowed []string, mime string) bool {
	if len(allowed) == 0 {
		return true
	}
	kind := string(KindOf(mime))
	for _, t := range SingularTypes(allowed) {
		if t == kind {
			return true
		}
	}
	return false
}

// AllowedAssets filters assets down to the selectable ones. Assets without
// a mime type are never selectable.
func AllowedAssets(allowed []string, assets []strapi.Asset) []strapi.Asset {
	if len(allowed) == 0 {
		return append([]strapi.Asset(nil), assets...)
	}
	out := make([]strapi.Asset, 0, len(assets))
	for _, a := range assets {
		if a.Mime == "" {
			continue
		}
		if TypeAllowed(allowed, a.Mime) {
			out = append(out, a)
		}
	}
	return out
}

// TypeFilters builds the structured filter clauses for one plural type
// value, for the browse view's type filter.
func TypeFilters(plural string) []Filter {
	switch plural {
	case "images":
		return []Filter{{Field: "mime", Op: "$contains", Value: "image"}}
	case "videos":
		return []Filter{{Field: "mime", Op: "$contains", Value: "video"}}
	case "audios":
		return []Filter{{Field: "mime", Op: "$contains", Value: "audio"}}
	case "files":
		return []Filter{
			{Field: "mime", Op: "$notContains", Value: "image"},
			{Field: "mime", Op: "$notContains", Value: "video"},
			{Field: "mime", Op: "$notContains", Value: "audio"},
		}
	default:
		return nil
	}
}
