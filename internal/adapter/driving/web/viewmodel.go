package web

import (
	"net/url"
	"strconv"
	"strings"

	vm "github.com/ericfisherdev/marquee/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// Image sizes requested from the asset CDNs.
var (
	heroSize  = application.Transform{Width: 1920, Height: 1080, Crop: true}
	cardSize  = application.Transform{Width: 800, Height: 500, Crop: true}
	photoSize = application.Transform{Width: 480, Height: 480, Crop: true}
	logoSize  = application.Transform{Width: 320}
	bodySize  = application.Transform{Width: 1200}
)

// mapper converts domain records into view models, resolving media through
// the asset resolver.
type mapper struct {
	assets *application.AssetResolver
}

// detailPath builds "/<section>/<slug or id>". Records without a slug link
// by document ID.
func detailPath(section string, meta model.Meta) string {
	return "/" + section + "/" + url.PathEscape(meta.LinkTarget())
}

// image resolves an image, substituting the fallback URL when the descriptor
// cannot be resolved.
func (m mapper) image(asset *model.MediaAsset, t application.Transform, alt string) vm.MediaViewModel {
	if asset != nil && asset.Alt != "" {
		alt = asset.Alt
	}
	return vm.MediaViewModel{URL: m.assets.URL(asset, t), Alt: alt}
}

// video resolves a video. Unresolvable videos yield an empty view model so
// the element is hidden rather than pointed at a placeholder.
func (m mapper) video(asset *model.MediaAsset, t application.Transform) vm.MediaViewModel {
	u, ok := m.assets.Resolve(asset, t)
	if !ok {
		return vm.MediaViewModel{}
	}
	return vm.MediaViewModel{URL: u, IsVideo: true}
}

// optionalImage resolves an image but yields an empty view model when the
// record has none, for places where a placeholder would look wrong.
func (m mapper) optionalImage(asset *model.MediaAsset, t application.Transform, alt string) vm.MediaViewModel {
	if asset == nil {
		return vm.MediaViewModel{}
	}
	return m.image(asset, t, alt)
}

func (m mapper) hero(title, subtitle string, img, vid *model.MediaAsset) vm.HeroViewModel {
	return vm.HeroViewModel{
		Title:    title,
		Subtitle: subtitle,
		Image:    m.optionalImage(img, heroSize, title),
		Video:    m.video(vid, heroSize),
	}
}

func (m mapper) divisionCard(d model.Division) vm.CardViewModel {
	img := d.HeroImage
	if img == nil {
		img = d.Logo
	}
	return vm.CardViewModel{
		Title:    d.Title,
		Summary:  d.Tagline,
		Image:    m.image(img, cardSize, d.Title),
		LinkPath: detailPath("divisions", d.Meta),
	}
}

func (m mapper) projectCard(p model.PortfolioProject) vm.CardViewModel {
	eyebrow := p.Client
	if p.Year > 0 {
		if eyebrow != "" {
			eyebrow += " · "
		}
		eyebrow += strconv.Itoa(p.Year)
	}
	return vm.CardViewModel{
		Title:    p.Title,
		Eyebrow:  eyebrow,
		Summary:  p.Summary,
		Image:    m.image(p.CoverImage, cardSize, p.Title),
		LinkPath: detailPath("portfolio", p.Meta),
	}
}

func (m mapper) articleCard(a model.NewsArticle) vm.CardViewModel {
	return vm.CardViewModel{
		Title:    a.Title,
		Eyebrow:  a.PublishedAt.Display(),
		Summary:  a.Excerpt,
		Image:    m.image(a.MainImage, cardSize, a.Title),
		LinkPath: detailPath("news", a.Meta),
	}
}

func mapCards[T any](records []T, card func(T) vm.CardViewModel) []vm.CardViewModel {
	cards := make([]vm.CardViewModel, 0, len(records))
	for _, r := range records {
		cards = append(cards, card(r))
	}
	return cards
}

func (m mapper) home(c application.HomeContent, siteName string) vm.HomeViewModel {
	title := c.Page.HeroTitle
	if title == "" {
		title = siteName
	}
	return vm.HomeViewModel{
		Hero:      m.hero(title, c.Page.HeroSubtitle, c.Page.HeroImage, c.Page.HeroVideo),
		Intro:     c.Page.Intro,
		Divisions: mapCards(c.Divisions, m.divisionCard),
		Projects:  mapCards(c.Projects, m.projectCard),
		News:      mapCards(c.News, m.articleCard),
	}
}

func (m mapper) division(d application.DivisionDetail) vm.DivisionViewModel {
	page := vm.DivisionViewModel{
		Hero:        m.hero(d.Division.Title, d.Division.Tagline, d.Division.HeroImage, d.Division.HeroVideo),
		Description: d.Division.Description,
		Logo:        m.optionalImage(d.Division.Logo, logoSize, d.Division.Title),
		Projects:    mapCards(d.Projects, m.projectCard),
	}
	if d.Author != nil {
		page.AuthorName = d.Author.Name
	}
	return page
}

func (m mapper) project(d application.ProjectDetail) vm.ProjectViewModel {
	p := d.Project
	page := vm.ProjectViewModel{
		Hero:      m.hero(p.Title, p.Client, p.CoverImage, nil),
		Client:    p.Client,
		Year:      p.Year,
		Summary:   p.Summary,
		Published: p.PublishedAt.Display(),
		Video:     m.video(p.Video, application.Transform{}),
	}
	if page.Video.URL != "" {
		page.Video.Poster = m.optionalImage(p.CoverImage, heroSize, "").URL
	}
	if d.Division != nil {
		page.DivisionName = d.Division.Title
		page.DivisionPath = detailPath("divisions", d.Division.Meta)
	}
	return page
}

func (m mapper) article(d application.ArticleDetail) vm.ArticleViewModel {
	a := d.Article
	page := vm.ArticleViewModel{
		Hero:      m.hero(a.Title, "", a.MainImage, nil),
		Published: a.PublishedAt.Display(),
		Excerpt:   a.Excerpt,
		Blocks:    m.blocks(a.Body),
	}
	if d.Author != nil {
		page.AuthorName = d.Author.Name
	}
	return page
}

func (m mapper) team(members []model.TeamMember) vm.TeamViewModel {
	page := vm.TeamViewModel{Members: make([]vm.TeamMemberViewModel, 0, len(members))}
	for _, tm := range members {
		page.Members = append(page.Members, vm.TeamMemberViewModel{
			Anchor: tm.LinkTarget(),
			Name:   tm.Name,
			Role:   tm.Role,
			Bio:    tm.Bio,
			Photo:  m.image(tm.Photo, photoSize, tm.Name),
		})
	}
	return page
}

func (m mapper) page(p model.Page) vm.PageViewModel {
	return vm.PageViewModel{
		Hero:   m.hero(p.Title, p.Description, p.HeroImage, nil),
		Blocks: m.blocks(p.Body),
	}
}

func contact(s model.SiteSettings) vm.ContactViewModel {
	page := vm.ContactViewModel{
		Email:  s.ContactEmail,
		Phone:  s.Phone,
		Social: socialLinks(s.SocialLinks),
	}
	if s.ContactEmail != "" {
		page.MailTo = "mailto:" + s.ContactEmail
	}
	if s.Phone != "" {
		page.TelLink = "tel:" + telDigits(s.Phone)
	}
	for _, line := range strings.Split(s.Address, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			page.Address = append(page.Address, line)
		}
	}
	page.HasAny = page.Email != "" || page.Phone != "" || len(page.Address) > 0 || len(page.Social) > 0
	return page
}

func socialLinks(links []model.SocialLink) []vm.LinkViewModel {
	out := make([]vm.LinkViewModel, 0, len(links))
	for _, l := range links {
		if l.URL == "" {
			continue
		}
		label := l.Platform
		if label == "" {
			label = l.URL
		}
		out = append(out, vm.LinkViewModel{Label: label, URL: l.URL})
	}
	return out
}

// telDigits keeps the leading plus and digits of a phone number.
func telDigits(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
