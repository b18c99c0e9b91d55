// Package web implements the public website driving adapter using templ
// components.
package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/marquee/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/marquee/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/marquee/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// aboutSlug is the page document rendered at /about.
const aboutSlug = "about"

var navItems = []vm.NavItemViewModel{
	{Label: "About", Path: "/about"},
	{Label: "Divisions", Path: "/divisions"},
	{Label: "Portfolio", Path: "/portfolio"},
	{Label: "News", Path: "/news"},
	{Label: "Team", Path: "/team"},
	{Label: "Contact", Path: "/contact"},
}

// Handler is the website driving adapter that serves HTML via templ components.
type Handler struct {
	content  *application.ContentService
	mapper   mapper
	tokens   *application.TokenSet
	siteName string
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	content *application.ContentService,
	assets *application.AssetResolver,
	tokens *application.TokenSet,
	siteName string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		content:  content,
		mapper:   mapper{assets: assets},
		tokens:   tokens,
		siteName: siteName,
		logger:   logger,
	}
}

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.content.Home(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	page := h.mapper.home(home, h.siteName)
	h.render(w, r, http.StatusOK, vm.PageMeta{Description: home.Page.HeroSubtitle, BodyClass: "home"}, pages.Home(page))
}

// About renders the page document with the "about" slug.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, aboutSlug)
}

// Page renders a generic block page by slug or ID.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, r.PathValue("slug"))
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, target string) {
	p, err := application.ContentBySlug[model.Page](r.Context(), h.content, model.ContentTypePage, target)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	meta := vm.PageMeta{Title: p.Title, Description: p.Description}
	h.render(w, r, http.StatusOK, meta, pages.Page(h.mapper.page(p)))
}

// Divisions renders the division listing.
func (h *Handler) Divisions(w http.ResponseWriter, r *http.Request) {
	divisions, err := application.ListContent[model.Division](r.Context(), h.content, model.ContentTypeDivision)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	application.SortDivisions(divisions)

	page := vm.ListViewModel{
		Heading: "Divisions",
		Cards:   mapCards(divisions, h.mapper.divisionCard),
		Empty:   "Our divisions will be announced soon.",
	}
	h.render(w, r, http.StatusOK, vm.PageMeta{Title: page.Heading}, pages.List(page))
}

// Division renders one division by slug or ID.
func (h *Handler) Division(w http.ResponseWriter, r *http.Request) {
	detail, err := h.content.Division(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	meta := vm.PageMeta{Title: detail.Division.Title, Description: detail.Division.Tagline}
	h.render(w, r, http.StatusOK, meta, pages.Division(h.mapper.division(detail)))
}

// Portfolio renders the project listing.
func (h *Handler) Portfolio(w http.ResponseWriter, r *http.Request) {
	projects, err := application.ListContent[model.PortfolioProject](r.Context(), h.content, model.ContentTypePortfolioProject)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	page := vm.ListViewModel{
		Heading: "Portfolio",
		Cards:   mapCards(projects, h.mapper.projectCard),
		Empty:   "No projects to show yet.",
	}
	h.render(w, r, http.StatusOK, vm.PageMeta{Title: page.Heading}, pages.List(page))
}

// Project renders one portfolio project by slug or ID.
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	detail, err := h.content.Project(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	meta := vm.PageMeta{Title: detail.Project.Title, Description: detail.Project.Summary}
	h.render(w, r, http.StatusOK, meta, pages.Project(h.mapper.project(detail)))
}

// News renders the newsroom listing.
func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	articles, err := application.ListContent[model.NewsArticle](r.Context(), h.content, model.ContentTypeNewsArticle)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	page := vm.ListViewModel{
		Heading: "News",
		Cards:   mapCards(articles, h.mapper.articleCard),
		Empty:   "No news yet.",
	}
	h.render(w, r, http.StatusOK, vm.PageMeta{Title: page.Heading}, pages.List(page))
}

// Article renders one news article by slug or ID.
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	detail, err := h.content.Article(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	meta := vm.PageMeta{Title: detail.Article.Title, Description: detail.Article.Excerpt}
	h.render(w, r, http.StatusOK, meta, pages.Article(h.mapper.article(detail)))
}

// Team renders the team page.
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	members, err := application.ListContent[model.TeamMember](r.Context(), h.content, model.ContentTypeTeamMember)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	application.SortTeam(members)

	h.render(w, r, http.StatusOK, vm.PageMeta{Title: "Team"}, pages.Team(h.mapper.team(members)))
}

// Contact renders the contact page from the site settings.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	settings, err := h.content.SiteSettings(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, vm.PageMeta{Title: "Contact"}, pages.Contact(contact(settings)))
}

// NotFound renders the 404 page for unmatched paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, application.ErrNotFound)
}

// TokensCSS serves the design tokens as CSS custom properties.
func (h *Handler) TokensCSS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(h.tokens.CSS())
}

// renderError maps ErrNotFound to the 404 page and every other error to a
// logged 500 page.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, application.ErrNotFound) {
		h.render(w, r, http.StatusNotFound, vm.PageMeta{Title: "Page not found"}, pages.Error(vm.ErrorViewModel{
			Status:  http.StatusNotFound,
			Heading: "Page not found",
			Message: "The page you are looking for has moved or never existed.",
		}))
		return
	}

	h.logger.Error("failed to load page", "path", r.URL.Path, "error", err)
	h.render(w, r, http.StatusInternalServerError, vm.PageMeta{Title: "Something went wrong"}, pages.Error(vm.ErrorViewModel{
		Status:  http.StatusInternalServerError,
		Heading: "Something went wrong",
		Message: "We could not load this page. Please try again shortly.",
	}))
}

// render wraps body in the layout, buffers the output and writes it with
// status. A render failure becomes a plain 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, meta vm.PageMeta, body templ.Component) {
	site := h.site(r.Context(), r.URL.Path)
	meta.Title = templates.ComposePageTitle(meta.Title, site.Name)
	meta.Path = r.URL.Path

	var buf bytes.Buffer
	if err := templates.Layout(meta, site, body).Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// site builds the layout data. Settings are best effort: a failed read is
// logged and the configured site name is used.
func (h *Handler) site(ctx context.Context, path string) vm.SiteViewModel {
	site := vm.SiteViewModel{Name: h.siteName, Nav: make([]vm.NavItemViewModel, len(navItems))}
	for i, item := range navItems {
		item.Active = path == item.Path || strings.HasPrefix(path, item.Path+"/")
		site.Nav[i] = item
	}

	settings, err := h.content.SiteSettings(ctx)
	if err != nil {
		h.logger.Warn("site settings unavailable", "error", err)
		return site
	}

	if settings.SiteTitle != "" {
		site.Name = settings.SiteTitle
	}
	site.Tagline = settings.Tagline
	site.ContactEmail = settings.ContactEmail
	site.Phone = settings.Phone
	site.Social = socialLinks(settings.SocialLinks)
	return site
}
