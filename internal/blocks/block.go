// Package blocks is the editor side of the integration: it turns Compact
// View selections into block markup carrying a data-bynder-id attribute,
// parses that markup back into block attributes, and scans stored content
// for the asset ids it references.
package blocks

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bynderpress/internal/common"
)

// Kind is the block type name as it appears in the comment delimiter.
type Kind string

const (
	KindImage   Kind = "core/image"
	KindVideo   Kind = "core/video"
	KindFile    Kind = "core/file"
	KindGallery Kind = "core/gallery"
)

// IDAttribute is the markup attribute holding the Bynder asset id. It is the
// only durable trace of a selection and what the usage sync looks for.
const IDAttribute = "data-bynder-id"

// AttributeSource says where a block kind keeps its asset id.
type AttributeSource struct {
	Selector  string
	Attribute string
}

// AttributeSources is the registry of asset-id attributes per block kind.
// Gallery ids live on every item figure rather than on the root.
var AttributeSources = map[Kind]AttributeSource{
	KindImage:   {Selector: "figure", Attribute: IDAttribute},
	KindVideo:   {Selector: "figure", Attribute: IDAttribute},
	KindFile:    {Selector: "div", Attribute: IDAttribute},
	KindGallery: {Selector: "li.blocks-gallery-item figure", Attribute: IDAttribute},
}

type GalleryImage struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Bynder string `json:"bynder"`
}

// Block holds the attributes of one supported block. Only the fields that
// belong to Kind are meaningful.
type Block struct {
	Kind   Kind   `json:"kind"`
	Bynder string `json:"bynder,omitempty"`

	// image: url/alt/caption; video: url is the src; file: url is the href.
	URL      string `json:"url,omitempty"`
	Alt      string `json:"alt,omitempty"`
	Caption  string `json:"caption,omitempty"`
	FileName string `json:"fileName,omitempty"`

	Images        []GalleryImage `json:"images,omitempty"`
	BynderGallery bool           `json:"bynderGallery,omitempty"`
}

// Warning is a user-facing rejection of a selection. It wraps one of the
// common editor errors so callers can still use errors.Is.
type Warning struct {
	Message string
	Err     error
}

func (w *Warning) Error() string { return w.Message }
func (w *Warning) Unwrap() error { return w.Err }

// IsWarning reports whether err is a selection warning meant for the editor.
func IsWarning(err error) bool {
	var w *Warning
	return errors.As(err, &w)
}

// FromAsset builds the block for a single-select pick. Only the first asset
// is used; imageDerivative is the configured derivative, "" for webImage.
func FromAsset(assets []Asset, imageDerivative string) (*Block, error) {
	if len(assets) == 0 {
		return nil, common.ErrNoAssetSelected
	}
	asset := assets[0]

	switch asset.Type {
	case AssetImage:
		url, ok := asset.ImageURL(imageDerivative)
		if !ok {
			return nil, &Warning{
				Message: fmt.Sprintf("%s has no image rendition that can be used.", asset.Name),
				Err:     common.ErrUnsupportedAsset,
			}
		}
		caption := asset.Caption()
		return &Block{Kind: KindImage, Bynder: asset.ID, URL: url, Alt: caption, Caption: caption}, nil

	case AssetVideo:
		url, ok := asset.MP4PreviewURL()
		if !ok {
			return nil, &Warning{
				Message: fmt.Sprintf("%s has no mp4 preview and cannot be selected.", asset.Name),
				Err:     common.ErrUnsupportedAsset,
			}
		}
		return &Block{Kind: KindVideo, Bynder: asset.ID, URL: url}, nil

	case AssetDocument:
		url, ok := asset.OriginalURL()
		if !ok {
			return nil, &Warning{
				Message: fmt.Sprintf("%s is not marked as public and cannot be selected.", asset.Name),
				Err:     common.ErrAssetNotPublic,
			}
		}
		return &Block{Kind: KindFile, Bynder: asset.ID, URL: url, FileName: asset.Name}, nil
	}

	return nil, &Warning{
		Message: fmt.Sprintf("%s has unsupported type %q.", asset.Name, asset.Type),
		Err:     common.ErrUnsupportedAsset,
	}
}

// Gallery builds a Bynder gallery from a multi-select pick of images. Assets
// without a usable image are skipped; a pick with none left is a *Warning.
func Gallery(assets []Asset, imageDerivative string) (*Block, error) {
	if len(assets) == 0 {
		return nil, common.ErrNoAssetSelected
	}

	images := make([]GalleryImage, 0, len(assets))
	for _, a := range assets {
		url, ok := a.ImageURL(imageDerivative)
		if !ok {
			continue
		}
		images = append(images, GalleryImage{URL: url, Alt: a.Name, Bynder: a.ID})
	}
	if len(images) == 0 {
		return nil, &Warning{
			Message: "None of the selected assets has an image rendition that can be used.",
			Err:     common.ErrUnsupportedAsset,
		}
	}

	return &Block{Kind: KindGallery, Images: images, BynderGallery: true}, nil
}

// AppendToGallery merges newly picked images into an existing Bynder gallery,
// keeping the current images first. Appended images use the webImage rendition.
func AppendToGallery(b *Block, assets []Asset) (*Block, error) {
	if b == nil || b.Kind != KindGallery || !b.BynderGallery {
		return nil, common.ErrNotBynderGallery
	}

	out := *b
	out.Images = append(make([]GalleryImage, 0, len(b.Images)+len(assets)), b.Images...)
	for _, a := range assets {
		url, ok := a.WebImageURL()
		if !ok {
			continue
		}
		out.Images = append(out.Images, GalleryImage{URL: url, Alt: a.Name, Bynder: a.ID})
	}
	return &out, nil
}
