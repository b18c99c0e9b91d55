package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vm "github.com/ericfisherdev/marquee/internal/adapter/driving/web/viewmodel"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestHero_VideoUsesImageAsPoster(t *testing.T) {
	out := render(t, Hero(vm.HeroViewModel{
		Title: "Marquee",
		Video: vm.MediaViewModel{URL: "https://cdn.example/reel.mp4"},
		Image: vm.MediaViewModel{URL: "https://cdn.example/still.jpg", Alt: "Still"},
	}))

	assert.Contains(t, out, `poster="https://cdn.example/still.jpg"`)
	assert.Contains(t, out, `src="https://cdn.example/reel.mp4"`)
	assert.NotContains(t, out, "<img")
}

func TestHero_SanitizesMediaURLs(t *testing.T) {
	out := render(t, Hero(vm.HeroViewModel{
		Title: "Marquee",
		Video: vm.MediaViewModel{URL: "javascript:alert(1)"},
		Image: vm.MediaViewModel{URL: "javascript:alert(2)"},
	}))

	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `poster="about:invalid#TemplFailedSanitizationURL"`)
}

func TestVideo_PosterIsSanitized(t *testing.T) {
	out := render(t, Video(vm.MediaViewModel{URL: "/v.mp4", Poster: `javascript:alert("x")`}, "project-video"))

	assert.Contains(t, out, `class="project-video"`)
	assert.Contains(t, out, "controls")
	assert.NotContains(t, out, "javascript:")
}

func TestMedia_EmptyURLRendersNothing(t *testing.T) {
	assert.Empty(t, render(t, Image(vm.MediaViewModel{Alt: "missing"}, "card-image")))
	assert.Empty(t, render(t, Video(vm.MediaViewModel{Poster: "/p.jpg"}, "")))
}

func TestCard(t *testing.T) {
	t.Run("linked card escapes text", func(t *testing.T) {
		out := render(t, Card(vm.CardViewModel{Title: `<script>alert("x")</script>`, LinkPath: "/portfolio/a"}))

		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
		assert.Contains(t, out, `<a class="card-link" href="/portfolio/a">`)
	})

	t.Run("unlinked card", func(t *testing.T) {
		out := render(t, Card(vm.CardViewModel{Title: "Sound", Eyebrow: "Division"}))

		assert.NotContains(t, out, "<a")
		assert.Contains(t, out, `<p class="eyebrow">Division</p><h3>Sound</h3>`)
	})
}

func TestCardGrid_Empty(t *testing.T) {
	assert.Equal(t, `<p class="empty">No news yet.</p>`, render(t, CardGrid(nil, "No news yet.")))
	assert.Empty(t, render(t, CardGrid(nil, "")))
}

func TestSection_HiddenWithoutCards(t *testing.T) {
	assert.Empty(t, render(t, Section("Latest news", "/news", nil)))

	out := render(t, Section("Latest news", "/news", []vm.CardViewModel{{Title: "Launch"}}))
	assert.Contains(t, out, `<a class="more" href="/news">View all</a>`)
}

func TestBlocks_SkipsUnresolvedMedia(t *testing.T) {
	out := render(t, Blocks([]vm.BlockViewModel{
		{Kind: "html", HTML: "<p>Hello</p>"},
		{Kind: "video", Caption: "hidden"},
		{Kind: "image", Media: vm.MediaViewModel{URL: "https://cdn.example/a.jpg", Alt: "A"}, Caption: "Shown"},
		{Kind: "unknown", HTML: "<p>never</p>"},
	}))

	assert.Contains(t, out, "<p>Hello</p>")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "never")
	assert.Contains(t, out, `src="https://cdn.example/a.jpg"`)
	assert.Contains(t, out, "<figcaption>Shown</figcaption>")
}
