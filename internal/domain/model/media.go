package model

// Media descriptor _type values.
const (
	MediaTypeImage      = "image"
	MediaTypeFile       = "file"
	MediaTypeCloudinary = "cloudinary.asset"
)

// MediaAsset describes an image or video. CMS-hosted assets carry an Asset
// reference; assets on the external CDN carry PublicID, ResourceType and Format.
type MediaAsset struct {
	Type         string     `json:"_type"`
	Asset        *Reference `json:"asset,omitempty"`
	Alt          string     `json:"alt,omitempty"`
	Caption      string     `json:"caption,omitempty"`
	PublicID     string     `json:"public_id,omitempty"`
	ResourceType string     `json:"resource_type,omitempty"`
	Format       string     `json:"format,omitempty"`
}

// Block _type values.
const (
	BlockTypeText     = "block"
	BlockTypeImage    = "imageBlock"
	BlockTypeVideo    = "videoBlock"
	BlockTypeMarkdown = "markdown"
)

// Block is one element of a block-based body.
type Block struct {
	Key      string      `json:"_key,omitempty"`
	Type     string      `json:"_type"`
	Style    string      `json:"style,omitempty"`
	Children []Span      `json:"children,omitempty"`
	Image    *MediaAsset `json:"image,omitempty"`
	Video    *MediaAsset `json:"video,omitempty"`
	Caption  string      `json:"caption,omitempty"`
	Markdown string      `json:"markdown,omitempty"`
}

// Span is a run of text inside a text block.
type Span struct {
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}
