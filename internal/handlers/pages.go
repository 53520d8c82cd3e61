package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"

	"lfg-site/internal/components"
	"lfg-site/internal/contact"
	"lfg-site/internal/site"
	"lfg-site/internal/starfield"
)

type PagesHandler struct {
	site *site.Site
}

func NewPagesHandler(s *site.Site) *PagesHandler {
	return &PagesHandler{site: s}
}

// Page renders the catalogue page at the request path, relative to the
// base path the router is mounted under.
func (h *PagesHandler) Page(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, h.site.BasePath)
	if path == "" {
		path = "/"
	}

	page, ok := site.Lookup(path)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if page.Path != path {
		http.Redirect(w, r, h.site.URL(page.Path)+querySuffix(r), http.StatusMovedPermanently)
		return
	}

	writeHTML(w, http.StatusOK, components.Page(h.site, page, contact.FormView{}))
}

func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusNotFound, components.NotFoundPage(h.site))
}

func querySuffix(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}

func writeHTML(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		slog.Error("failed to render page", "error", err)
	}
}

const (
	maxImageSide   = 2560
	maxImageFrames = 600
)

// StarfieldImage serves a rendered starfield frame as the no-script page
// background and share image. Query: w, h, frames, seed.
func StarfieldImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := starfield.RenderOptions{
		Options: starfield.PageOptions,
		Width:   clampInt(q.Get("w"), 1200, 1, maxImageSide),
		Height:  clampInt(q.Get("h"), 630, 1, maxImageSide),
		Frames:  clampInt(q.Get("frames"), 0, 0, maxImageFrames),
		Seed:    int64(clampInt(q.Get("seed"), 1, 0, 1<<31-1)),
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if err := starfield.RenderPNG(w, opts); err != nil {
		slog.Error("failed to encode starfield", "error", err)
	}
}

func clampInt(s string, def, lo, hi int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return min(max(n, lo), hi)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
