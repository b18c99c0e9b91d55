package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all website routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
	mux.HandleFunc("GET /tokens.css", h.TokensCSS)

	// Page routes.
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /about", h.About)
	mux.HandleFunc("GET /divisions", h.Divisions)
	mux.HandleFunc("GET /divisions/{slug}", h.Division)
	mux.HandleFunc("GET /portfolio", h.Portfolio)
	mux.HandleFunc("GET /portfolio/{slug}", h.Project)
	mux.HandleFunc("GET /news", h.News)
	mux.HandleFunc("GET /news/{slug}", h.Article)
	mux.HandleFunc("GET /team", h.Team)
	mux.HandleFunc("GET /contact", h.Contact)
	mux.HandleFunc("GET /pages/{slug}", h.Page)

	// Everything else is a 404 page rather than the mux's plain-text default.
	mux.HandleFunc("GET /", h.NotFound)
}
