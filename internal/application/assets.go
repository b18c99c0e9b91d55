package application

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// AssetConfig configures where media assets are served from.
type AssetConfig struct {
	ProjectID string
	Dataset   string
	// ImageBaseURL is the CMS asset CDN, e.g. "https://cdn.sanity.io".
	ImageBaseURL string
	// ExternalBaseURL is the external image/video CDN, e.g. "https://res.cloudinary.com".
	ExternalBaseURL string
	// ExternalCloud is the account segment on the external CDN.
	ExternalCloud string
	// FallbackURL is returned for absent or unrecognized descriptors.
	FallbackURL string
}

// Transform holds optional size and crop parameters. Zero values are omitted.
type Transform struct {
	Width  int
	Height int
	Crop   bool
}

// AssetResolver maps media descriptors to fully qualified URLs. It holds no
// mutable state and is safe for concurrent use.
type AssetResolver struct {
	cfg AssetConfig
}

var (
	dimensionsPattern = regexp.MustCompile(`^\d+x\d+$`)
	assetIDPattern    = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	publicIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_\-]+(/[A-Za-z0-9_\-.]+)*$`)
)

// NewAssetResolver creates an AssetResolver. Missing base URLs fall back to
// the public CDN hosts.
func NewAssetResolver(cfg AssetConfig) *AssetResolver {
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = "https://cdn.sanity.io"
	}
	if cfg.ExternalBaseURL == "" {
		cfg.ExternalBaseURL = "https://res.cloudinary.com"
	}
	cfg.ImageBaseURL = strings.TrimRight(cfg.ImageBaseURL, "/")
	cfg.ExternalBaseURL = strings.TrimRight(cfg.ExternalBaseURL, "/")
	return &AssetResolver{cfg: cfg}
}

// Fallback returns the configured fallback URL.
func (r *AssetResolver) Fallback() string {
	return r.cfg.FallbackURL
}

// URL returns the asset URL, or the fallback URL when the descriptor is nil,
// of an unknown type, or malformed.
func (r *AssetResolver) URL(asset *model.MediaAsset, t Transform) string {
	u, _ := r.Resolve(asset, t)
	return u
}

// Resolve returns the asset URL and true, or the fallback URL and false when
// the descriptor cannot be resolved. Callers use the flag to hide elements
// (videos) rather than show a placeholder.
func (r *AssetResolver) Resolve(asset *model.MediaAsset, t Transform) (string, bool) {
	if asset == nil {
		return r.cfg.FallbackURL, false
	}

	var (
		u  string
		ok bool
	)
	switch asset.Type {
	case model.MediaTypeImage:
		u, ok = r.cmsImageURL(asset, t)
	case model.MediaTypeFile:
		u, ok = r.cmsFileURL(asset)
	case model.MediaTypeCloudinary:
		u, ok = r.externalURL(asset, t)
	}
	if !ok {
		return r.cfg.FallbackURL, false
	}
	return u, true
}

// cmsImageURL handles refs of the form "image-<id>-<w>x<h>-<ext>".
func (r *AssetResolver) cmsImageURL(asset *model.MediaAsset, t Transform) (string, bool) {
	if asset.Asset == nil || r.cfg.ProjectID == "" || r.cfg.Dataset == "" {
		return "", false
	}

	parts := strings.Split(asset.Asset.Ref, "-")
	if len(parts) != 4 || parts[0] != "image" {
		return "", false
	}
	id, dims, ext := parts[1], parts[2], parts[3]
	if !assetIDPattern.MatchString(id) || !dimensionsPattern.MatchString(dims) || !assetIDPattern.MatchString(ext) {
		return "", false
	}

	u := r.cfg.ImageBaseURL + "/images/" + url.PathEscape(r.cfg.ProjectID) + "/" + url.PathEscape(r.cfg.Dataset) +
		"/" + id + "-" + dims + "." + ext

	params := url.Values{}
	if t.Width > 0 {
		params.Set("w", strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		params.Set("h", strconv.Itoa(t.Height))
	}
	if t.Crop && t.Width > 0 && t.Height > 0 {
		params.Set("fit", "crop")
	}
	if len(params) > 0 {
		params.Set("auto", "format")
		u += "?" + params.Encode()
	}

	return u, true
}

// cmsFileURL handles refs of the form "file-<id>-<ext>". Files take no transforms.
func (r *AssetResolver) cmsFileURL(asset *model.MediaAsset) (string, bool) {
	if asset.Asset == nil || r.cfg.ProjectID == "" || r.cfg.Dataset == "" {
		return "", false
	}

	parts := strings.Split(asset.Asset.Ref, "-")
	if len(parts) != 3 || parts[0] != "file" {
		return "", false
	}
	id, ext := parts[1], parts[2]
	if !assetIDPattern.MatchString(id) || !assetIDPattern.MatchString(ext) {
		return "", false
	}

	return r.cfg.ImageBaseURL + "/files/" + url.PathEscape(r.cfg.ProjectID) + "/" + url.PathEscape(r.cfg.Dataset) +
		"/" + id + "." + ext, true
}

// externalURL builds "<base>/<cloud>/<resource_type>/upload/[<transforms>/]<public_id>.<format>".
func (r *AssetResolver) externalURL(asset *model.MediaAsset, t Transform) (string, bool) {
	if r.cfg.ExternalCloud == "" || !publicIDPattern.MatchString(asset.PublicID) || strings.Contains(asset.PublicID, "..") {
		return "", false
	}

	resourceType := asset.ResourceType
	if resourceType == "" {
		resourceType = "image"
	}
	format := asset.Format
	switch resourceType {
	case "image":
		if format == "" {
			format = "jpg"
		}
	case "video":
		if format == "" {
			format = "mp4"
		}
	default:
		return "", false
	}
	if !assetIDPattern.MatchString(format) {
		return "", false
	}

	var transforms []string
	if t.Crop && t.Width > 0 && t.Height > 0 {
		transforms = append(transforms, "c_fill")
	}
	if t.Width > 0 {
		transforms = append(transforms, "w_"+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		transforms = append(transforms, "h_"+strconv.Itoa(t.Height))
	}

	var b strings.Builder
	b.WriteString(r.cfg.ExternalBaseURL)
	b.WriteString("/")
	b.WriteString(url.PathEscape(r.cfg.ExternalCloud))
	b.WriteString("/")
	b.WriteString(resourceType)
	b.WriteString("/upload/")
	if len(transforms) > 0 {
		b.WriteString(strings.Join(transforms, ","))
		b.WriteString("/")
	}
	b.WriteString(asset.PublicID)
	b.WriteString(".")
	b.WriteString(format)

	return b.String(), true
}
