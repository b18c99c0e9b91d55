package model

import "strings"

// Slug is the CMS slug object. Current holds the URL-safe identifier.
type Slug struct {
	Current string `json:"current"`
}

// Reference points at another document by ID.
type Reference struct {
	Ref  string `json:"_ref"`
	Type string `json:"_type,omitempty"`
}

// Meta holds the envelope fields shared by every typed record.
type Meta struct {
	ID   string `json:"_id"`
	Type string `json:"_type"`
	Rev  string `json:"_rev,omitempty"`
	Slug *Slug  `json:"slug,omitempty"`
}

// SlugValue returns the trimmed slug, or "" when the record has none.
func (m Meta) SlugValue() string {
	if m.Slug == nil {
		return ""
	}
	return strings.TrimSpace(m.Slug.Current)
}

// LinkTarget returns the slug when present, otherwise the record's ID.
func (m Meta) LinkTarget() string {
	if s := m.SlugValue(); s != "" {
		return s
	}
	return m.ID
}

// Author writes news articles and signs off on divisions.
type Author struct {
	Meta
	Name  string      `json:"name"`
	Bio   string      `json:"bio,omitempty"`
	Image *MediaAsset `json:"image,omitempty"`
}

// Division is one of the company's business units.
type Division struct {
	Meta
	Title       string      `json:"title"`
	Tagline     string      `json:"tagline,omitempty"`
	Description string      `json:"description,omitempty"`
	Logo        *MediaAsset `json:"logo,omitempty"`
	HeroImage   *MediaAsset `json:"heroImage,omitempty"`
	HeroVideo   *MediaAsset `json:"heroVideo,omitempty"`
	Author      *Reference  `json:"author,omitempty"`
	Order       int         `json:"order,omitempty"`
}

// PortfolioProject is a showcased production or campaign.
type PortfolioProject struct {
	Meta
	Title       string      `json:"title"`
	Client      string      `json:"client,omitempty"`
	Year        int         `json:"year,omitempty"`
	Summary     string      `json:"summary,omitempty"`
	Division    *Reference  `json:"division,omitempty"`
	CoverImage  *MediaAsset `json:"coverImage,omitempty"`
	Video       *MediaAsset `json:"video,omitempty"`
	PublishedAt Date        `json:"publishedAt"`
}

// NewsArticle is a newsroom post.
type NewsArticle struct {
	Meta
	Title       string      `json:"title"`
	Excerpt     string      `json:"excerpt,omitempty"`
	PublishedAt Date        `json:"publishedAt"`
	MainImage   *MediaAsset `json:"mainImage,omitempty"`
	Author      *Reference  `json:"author,omitempty"`
	Body        []Block     `json:"body,omitempty"`
}

// TeamMember is a person listed on the team page.
type TeamMember struct {
	Meta
	Name  string      `json:"name"`
	Role  string      `json:"role,omitempty"`
	Bio   string      `json:"bio,omitempty"`
	Photo *MediaAsset `json:"photo,omitempty"`
	Order int         `json:"order,omitempty"`
}

// HomePage is the singleton landing page document.
type HomePage struct {
	Meta
	HeroTitle         string      `json:"heroTitle"`
	HeroSubtitle      string      `json:"heroSubtitle,omitempty"`
	HeroImage         *MediaAsset `json:"heroImage,omitempty"`
	HeroVideo         *MediaAsset `json:"heroVideo,omitempty"`
	Intro             string      `json:"intro,omitempty"`
	FeaturedDivisions []Reference `json:"featuredDivisions,omitempty"`
	FeaturedProjects  []Reference `json:"featuredProjects,omitempty"`
}

// Page is a generic page composed of body blocks (about, legal, etc.).
type Page struct {
	Meta
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	HeroImage   *MediaAsset `json:"heroImage,omitempty"`
	Body        []Block     `json:"body,omitempty"`
}

// SocialLink is one outbound social profile link.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// SiteSettings is the singleton holding site-wide contact details.
type SiteSettings struct {
	Meta
	SiteTitle    string       `json:"siteTitle,omitempty"`
	Tagline      string       `json:"tagline,omitempty"`
	ContactEmail string       `json:"contactEmail,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Address      string       `json:"address,omitempty"`
	SocialLinks  []SocialLink `json:"socialLinks,omitempty"`
}
