package application_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

const fallbackURL = "/static/img/placeholder.svg"

func newResolver() *application.AssetResolver {
	return application.NewAssetResolver(application.AssetConfig{
		ProjectID:     "abc123",
		Dataset:       "production",
		ExternalCloud: "marquee",
		FallbackURL:   fallbackURL,
	})
}

func cmsImage(ref string) *model.MediaAsset {
	return &model.MediaAsset{Type: model.MediaTypeImage, Asset: &model.Reference{Ref: ref}}
}

func TestAssetResolver_CMSImage(t *testing.T) {
	r := newResolver()

	got := r.URL(cmsImage("image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg"), application.Transform{})

	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg", got)
}

func TestAssetResolver_CMSImageWithTransform(t *testing.T) {
	r := newResolver()

	got := r.URL(cmsImage("image-abc-800x600-png"), application.Transform{Width: 640, Height: 400, Crop: true})

	u, err := url.Parse(got)
	assert.NoError(t, err)
	assert.Equal(t, "/images/abc123/production/abc-800x600.png", u.Path)
	assert.Equal(t, "640", u.Query().Get("w"))
	assert.Equal(t, "400", u.Query().Get("h"))
	assert.Equal(t, "crop", u.Query().Get("fit"))
	assert.Equal(t, "format", u.Query().Get("auto"))
}

func TestAssetResolver_CMSFile(t *testing.T) {
	r := newResolver()

	got, ok := r.Resolve(&model.MediaAsset{Type: model.MediaTypeFile, Asset: &model.Reference{Ref: "file-a1b2c3-mp4"}}, application.Transform{Width: 100})

	assert.True(t, ok)
	assert.Equal(t, "https://cdn.sanity.io/files/abc123/production/a1b2c3.mp4", got)
}

func TestAssetResolver_External(t *testing.T) {
	r := newResolver()

	tests := []struct {
		name  string
		asset model.MediaAsset
		t     application.Transform
		want  string
	}{
		{
			name:  "video with crop",
			asset: model.MediaAsset{Type: model.MediaTypeCloudinary, PublicID: "reels/showreel-2026", ResourceType: "video", Format: "webm"},
			t:     application.Transform{Width: 1280, Height: 720, Crop: true},
			want:  "https://res.cloudinary.com/marquee/video/upload/c_fill,w_1280,h_720/reels/showreel-2026.webm",
		},
		{
			name:  "image defaults",
			asset: model.MediaAsset{Type: model.MediaTypeCloudinary, PublicID: "stills/poster"},
			want:  "https://res.cloudinary.com/marquee/image/upload/stills/poster.jpg",
		},
		{
			name:  "width only",
			asset: model.MediaAsset{Type: model.MediaTypeCloudinary, PublicID: "stills/poster", Format: "png"},
			t:     application.Transform{Width: 300, Crop: true},
			want:  "https://res.cloudinary.com/marquee/image/upload/w_300/stills/poster.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := tt.asset
			assert.Equal(t, tt.want, r.URL(&asset, tt.t))
		})
	}
}

func TestAssetResolver_FallbackForUnresolvable(t *testing.T) {
	r := newResolver()

	tests := []struct {
		name  string
		asset *model.MediaAsset
	}{
		{name: "nil descriptor", asset: nil},
		{name: "unknown type", asset: &model.MediaAsset{Type: "mux.video", PublicID: "x"}},
		{name: "empty type", asset: &model.MediaAsset{}},
		{name: "image without asset", asset: &model.MediaAsset{Type: model.MediaTypeImage}},
		{name: "image ref missing dimensions", asset: cmsImage("image-abc-jpg")},
		{name: "image ref bad dimensions", asset: cmsImage("image-abc-wide-jpg")},
		{name: "file ref passed as image", asset: cmsImage("file-abc-mp4")},
		{name: "file ref malformed", asset: &model.MediaAsset{Type: model.MediaTypeFile, Asset: &model.Reference{Ref: "file-"}}},
		{name: "external without public id", asset: &model.MediaAsset{Type: model.MediaTypeCloudinary}},
		{name: "external path traversal", asset: &model.MediaAsset{Type: model.MediaTypeCloudinary, PublicID: "../secret"}},
		{name: "external unknown resource type", asset: &model.MediaAsset{Type: model.MediaTypeCloudinary, PublicID: "a", ResourceType: "raw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.asset, application.Transform{Width: 10, Height: 10, Crop: true})
			assert.False(t, ok)
			assert.Equal(t, fallbackURL, got)
		})
	}
}

func TestAssetResolver_FallbackWithoutProjectConfig(t *testing.T) {
	r := application.NewAssetResolver(application.AssetConfig{FallbackURL: fallbackURL})

	assert.Equal(t, fallbackURL, r.URL(cmsImage("image-abc-800x600-png"), application.Transform{}))
	assert.Equal(t, fallbackURL, r.URL(&model.MediaAsset{Type: model.MediaTypeCloudinary, PublicID: "a"}, application.Transform{}))
	assert.Equal(t, fallbackURL, r.Fallback())
}
