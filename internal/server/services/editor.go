package services

import (
	"context"

	"github.com/dmitrijs2005/bynderpress/internal/blocks"
)

// SettingsLoader yields the settings for a single operation.
type SettingsLoader interface {
	Load(ctx context.Context) (*Settings, error)
}

// BlockResult is a built block together with its serialized markup.
type BlockResult struct {
	Block  *blocks.Block `json:"block"`
	Markup string        `json:"markup"`
}

// EditorService turns Compact View selections into blocks using the
// current settings.
type EditorService struct {
	settings SettingsLoader
	language string
}

func NewEditorService(settings SettingsLoader, language string) *EditorService {
	return &EditorService{settings: settings, language: language}
}

// Config returns the picker options for the editor.
func (s *EditorService) Config(ctx context.Context) (blocks.EditorConfig, error) {
	st, err := s.settings.Load(ctx)
	if err != nil {
		return blocks.EditorConfig{}, err
	}
	return blocks.NewEditorConfig(s.language, st.Domain, st.DefaultSearchTerm, st.ImageDerivative), nil
}

// AssetBlock builds the block for a single-select pick. A rejected asset
// comes back as a *blocks.Warning.
func (s *EditorService) AssetBlock(ctx context.Context, assets []blocks.Asset) (*BlockResult, error) {
	st, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	b, err := blocks.FromAsset(assets, st.ImageDerivative)
	if err != nil {
		return nil, err
	}
	return render(b)
}

// GalleryBlock builds a new Bynder gallery from a multi-select pick.
func (s *EditorService) GalleryBlock(ctx context.Context, assets []blocks.Asset) (*BlockResult, error) {
	st, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	b, err := blocks.Gallery(assets, st.ImageDerivative)
	if err != nil {
		return nil, err
	}
	return render(b)
}

// AppendToGallery adds a pick to the gallery serialized in markup.
func (s *EditorService) AppendToGallery(_ context.Context, markup string, assets []blocks.Asset) (*BlockResult, error) {
	existing, err := blocks.Parse(markup)
	if err != nil {
		return nil, err
	}
	b, err := blocks.AppendToGallery(existing, assets)
	if err != nil {
		return nil, err
	}
	return render(b)
}

// Parse reads block markup back into block attributes.
func (s *EditorService) Parse(markup string) (*blocks.Block, error) {
	return blocks.Parse(markup)
}

func render(b *blocks.Block) (*BlockResult, error) {
	markup, err := b.Markup()
	if err != nil {
		return nil, err
	}
	return &BlockResult{Block: b, Markup: markup}, nil
}
