package web

import (
	"html"
	"strings"

	vm "github.com/ericfisherdev/marquee/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

var blockTags = map[string]string{
	"":           "p",
	"normal":     "p",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"blockquote": "blockquote",
}

var markTags = map[string]string{
	"strong": "strong",
	"em":     "em",
	"code":   "code",
}

// blocks converts a block body into rendered view models. Unknown block
// types are dropped.
func (m mapper) blocks(body []model.Block) []vm.BlockViewModel {
	out := make([]vm.BlockViewModel, 0, len(body))
	for _, b := range body {
		switch b.Type {
		case model.BlockTypeText:
			if rendered := renderTextBlock(b); rendered != "" {
				out = append(out, vm.BlockViewModel{Key: b.Key, Kind: "html", HTML: rendered})
			}
		case model.BlockTypeMarkdown:
			if rendered := RenderMarkdown(b.Markdown); rendered != "" {
				out = append(out, vm.BlockViewModel{Key: b.Key, Kind: "html", HTML: rendered})
			}
		case model.BlockTypeImage:
			caption := b.Caption
			if caption == "" && b.Image != nil {
				caption = b.Image.Caption
			}
			out = append(out, vm.BlockViewModel{
				Key:     b.Key,
				Kind:    "image",
				Media:   m.image(b.Image, bodySize, caption),
				Caption: caption,
			})
		case model.BlockTypeVideo:
			media := m.video(b.Video, bodySize)
			if media.URL == "" {
				continue
			}
			out = append(out, vm.BlockViewModel{Key: b.Key, Kind: "video", Media: media, Caption: b.Caption})
		}
	}
	return out
}

// renderTextBlock renders a styled text block with escaped span text.
func renderTextBlock(b model.Block) string {
	tag, ok := blockTags[b.Style]
	if !ok {
		tag = "p"
	}

	var inner strings.Builder
	for _, span := range b.Children {
		text := html.EscapeString(span.Text)
		text = strings.ReplaceAll(text, "\n", "<br>")
		for _, mark := range span.Marks {
			if t, ok := markTags[mark]; ok {
				text = "<" + t + ">" + text + "</" + t + ">"
			}
		}
		inner.WriteString(text)
	}
	if strings.TrimSpace(inner.String()) == "" {
		return ""
	}

	return "<" + tag + ">" + inner.String() + "</" + tag + ">"
}
