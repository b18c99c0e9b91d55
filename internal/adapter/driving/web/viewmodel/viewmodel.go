// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// SiteViewModel holds the site-wide data every page renders in its layout.
type SiteViewModel struct {
	Name         string
	Tagline      string
	ContactEmail string
	Phone        string
	Social       []LinkViewModel
	Nav          []NavItemViewModel
}

// NavItemViewModel is one entry in the primary navigation.
type NavItemViewModel struct {
	Label  string
	Path   string
	Active bool
}

// LinkViewModel is a labelled outbound link.
type LinkViewModel struct {
	Label string
	URL   string
}

// PageMeta holds the head metadata for a rendered page.
type PageMeta struct {
	Title       string // composed "<page> | <site>"
	Description string
	Path        string
	BodyClass   string
}

// MediaViewModel is a resolved image or video. An empty URL means there is
// nothing to show.
type MediaViewModel struct {
	URL     string
	Alt     string
	IsVideo bool
	Poster  string
}

// HeroViewModel holds the banner at the top of a page.
type HeroViewModel struct {
	Title    string
	Subtitle string
	Image    MediaViewModel
	Video    MediaViewModel
}

// CardViewModel is a teaser linking to a detail page.
type CardViewModel struct {
	Title    string
	Eyebrow  string // small label above the title (client, date, role)
	Summary  string
	Image    MediaViewModel
	LinkPath string // empty renders an unlinked card
}

// BlockViewModel is one rendered body block.
type BlockViewModel struct {
	Key     string
	Kind    string // "html", "image" or "video"
	HTML    string // sanitized markup for "html" blocks
	Media   MediaViewModel
	Caption string
}

// HomeViewModel holds everything the home page renders.
type HomeViewModel struct {
	Hero      HeroViewModel
	Intro     string
	Divisions []CardViewModel
	Projects  []CardViewModel
	News      []CardViewModel
}

// ListViewModel holds a listing page of cards.
type ListViewModel struct {
	Heading string
	Intro   string
	Cards   []CardViewModel
	Empty   string // shown when there are no cards
}

// DivisionViewModel holds a division detail page.
type DivisionViewModel struct {
	Hero        HeroViewModel
	Description string
	Logo        MediaViewModel
	AuthorName  string
	Projects    []CardViewModel
}

// ProjectViewModel holds a portfolio project detail page.
type ProjectViewModel struct {
	Hero         HeroViewModel
	Client       string
	Year         int
	Summary      string
	Published    string
	DivisionName string
	DivisionPath string
	Video        MediaViewModel
}

// ArticleViewModel holds a news article page.
type ArticleViewModel struct {
	Hero       HeroViewModel
	Published  string
	AuthorName string
	Excerpt    string
	Blocks     []BlockViewModel
}

// TeamMemberViewModel holds one person on the team page.
type TeamMemberViewModel struct {
	Anchor string // fragment id; slug or document id
	Name   string
	Role   string
	Bio    string
	Photo  MediaViewModel
}

// TeamViewModel holds the team page.
type TeamViewModel struct {
	Members []TeamMemberViewModel
}

// ContactViewModel holds the contact page.
type ContactViewModel struct {
	Email   string
	MailTo  string
	Phone   string
	TelLink string
	Address []string
	Social  []LinkViewModel
	HasAny  bool
}

// PageViewModel holds a generic block page.
type PageViewModel struct {
	Hero   HeroViewModel
	Blocks []BlockViewModel
}

// ErrorViewModel holds an error page.
type ErrorViewModel struct {
	Status  int
	Heading string
	Message string
}
