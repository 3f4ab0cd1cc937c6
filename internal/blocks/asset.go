package blocks

import "strings"

// AssetType is the Compact View asset type filter value.
type AssetType string

const (
	AssetImage    AssetType = "IMAGE"
	AssetVideo    AssetType = "VIDEO"
	AssetDocument AssetType = "DOCUMENT"
)

const (
	webImageDerivative = "webImage"
	originalFile       = "original"
	captionProperty    = "caption"
)

// File is one rendition of an asset as returned by Compact View.
type File struct {
	URL string `json:"url"`
}

type TextMetaproperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Asset is the descriptor Compact View hands back for every selected asset.
type Asset struct {
	ID                 string             `json:"databaseId"`
	Name               string             `json:"name"`
	Type               AssetType          `json:"type"`
	Files              map[string]File    `json:"files"`
	Derivatives        map[string]string  `json:"derivatives,omitempty"`
	PreviewURLs        []string           `json:"previewUrls,omitempty"`
	TextMetaproperties []TextMetaproperty `json:"textMetaproperties,omitempty"`
}

// Caption returns the value of the "caption" text metaproperty, if any.
func (a Asset) Caption() string {
	for _, p := range a.TextMetaproperties {
		if p.Name == captionProperty {
			return p.Value
		}
	}
	return ""
}

// ImageURL picks the configured derivative and falls back to webImage.
func (a Asset) ImageURL(derivative string) (string, bool) {
	if derivative != "" {
		if f, ok := a.Files[derivative]; ok && f.URL != "" {
			return f.URL, true
		}
	}
	return a.WebImageURL()
}

// WebImageURL returns the webImage rendition, looking at the files map first
// and the legacy derivatives map second.
func (a Asset) WebImageURL() (string, bool) {
	if f, ok := a.Files[webImageDerivative]; ok && f.URL != "" {
		return f.URL, true
	}
	if u, ok := a.Derivatives[webImageDerivative]; ok && u != "" {
		return u, true
	}
	return "", false
}

// MP4PreviewURL returns the first preview whose extension is exactly mp4.
func (a Asset) MP4PreviewURL() (string, bool) {
	for _, u := range a.PreviewURLs {
		if i := strings.LastIndex(u, "."); i >= 0 && u[i+1:] == "mp4" {
			return u, true
		}
	}
	return "", false
}

// OriginalURL is only present for documents marked public in the portal.
func (a Asset) OriginalURL() (string, bool) {
	f, ok := a.Files[originalFile]
	if !ok {
		return "", false
	}
	return f.URL, true
}
