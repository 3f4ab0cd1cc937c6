package blocks

// Picker identifies which editor control opens Compact View.
type Picker string

const (
	PickerAsset   Picker = "asset"
	PickerGallery Picker = "gallery"
)

const (
	ModeSingleSelect = "SingleSelect"
	ModeMultiSelect  = "MultiSelect"
)

// CompactViewOptions is everything the embedded widget needs to open.
type CompactViewOptions struct {
	Language          string      `json:"language"`
	PortalURL         string      `json:"portalUrl"`
	PortalEditable    bool        `json:"portalEditable"`
	AssetTypes        []AssetType `json:"assetTypes"`
	DefaultSearchTerm string      `json:"defaultSearchTerm,omitempty"`
	Mode              string      `json:"mode"`
}

// EditorConfig is handed to the editor once per page load.
type EditorConfig struct {
	ImageDerivative string                        `json:"imageDerivative,omitempty"`
	Pickers         map[Picker]CompactViewOptions `json:"pickers"`
}

// NewEditorConfig builds the picker options from the current settings.
func NewEditorConfig(language, domain, searchTerm, imageDerivative string) EditorConfig {
	base := CompactViewOptions{
		Language:          language,
		PortalURL:         domain,
		DefaultSearchTerm: searchTerm,
	}

	asset := base
	asset.AssetTypes = []AssetType{AssetImage, AssetVideo, AssetDocument}
	asset.Mode = ModeSingleSelect

	gallery := base
	gallery.AssetTypes = []AssetType{AssetImage}
	gallery.Mode = ModeMultiSelect

	return EditorConfig{
		ImageDerivative: imageDerivative,
		Pickers: map[Picker]CompactViewOptions{
			PickerAsset:   asset,
			PickerGallery: gallery,
		},
	}
}
