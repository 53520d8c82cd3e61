// Package site is the page catalogue of the marketing site and the URL rules
// for the hosting target it is served or exported for.
package site

import (
	"strings"

	"lfg-site/internal/starfield"
)

const (
	DefaultTitle       = "LFG.tech | AI Automation Agency"
	DefaultDescription = "Free up time, reduce cost, and scale faster with our AI automation solutions for forward-thinking businesses."
)

type Kind string

const (
	KindHome         Kind = "home"
	KindTimeline     Kind = "timeline"
	KindWhatsAppDemo Kind = "whatsapp-demo"
	KindWebsiteDemo  Kind = "website-demo"
	KindContact      Kind = "contact"
	KindNotFound     Kind = "not-found"
)

// Page is one route of the site. Paths always end in a slash.
type Page struct {
	Path        string
	Title       string
	Description string
	Kind        Kind
	Timeline    *Timeline
}

// Site carries the deployment-specific parts of every rendered URL.
type Site struct {
	BasePath    string
	AssetPrefix string
	APIBase     string
	Stars       starfield.Options
	// SPARedirect adds the static-host 404 fallback scripts.
	SPARedirect bool
}

func New(basePath, assetPrefix, apiBase string) *Site {
	return &Site{
		BasePath:    strings.TrimSuffix(basePath, "/"),
		AssetPrefix: strings.TrimSuffix(assetPrefix, "/"),
		APIBase:     strings.TrimSuffix(apiBase, "/"),
		Stars:       starfield.PageOptions,
	}
}

// URL prefixes an in-site path (optionally with a #fragment) with the base
// path.
func (s *Site) URL(p string) string {
	if p == "" {
		p = "/"
	}
	if strings.HasPrefix(p, "#") {
		p = "/" + p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return s.BasePath + p
}

// Asset prefixes a static asset path with the asset prefix.
func (s *Site) Asset(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return s.AssetPrefix + p
}

// API returns the absolute or base-relative URL of an API route.
func (s *Site) API(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if s.APIBase != "" {
		return s.APIBase + p
	}
	return s.BasePath + p
}

var pages = []Page{
	{Path: "/", Kind: KindHome},
	{Path: "/WhatsAppTimeline/", Title: "WhatsApp Customer Service | LFG.tech", Kind: KindTimeline, Timeline: &WhatsAppTimeline},
	{Path: "/WebsiteTimeline/", Title: "Custom Website Development | LFG.tech", Kind: KindTimeline, Timeline: &WebsiteTimeline},
	{Path: "/CustomPlanTimeline/", Title: "Custom AI Solution | LFG.tech", Kind: KindTimeline, Timeline: &CustomPlanTimeline},
	{Path: "/ProcessTimeline/", Title: "How This Usually Goes | LFG.tech", Kind: KindTimeline, Timeline: &ProcessTimeline},
	{Path: "/WhatsAppDemo/", Title: "WhatsApp AI Customer Service | LFG.tech", Kind: KindWhatsAppDemo},
	{Path: "/WebsiteDemo/", Title: "Website Demo | LFG.tech", Kind: KindWebsiteDemo},
	{Path: "/contact/", Title: "Contact | LFG.tech", Kind: KindContact},
}

// NotFound is rendered for unknown paths and exported as 404.html.
var NotFound = Page{Path: "/404/", Title: "Page Not Found | LFG.tech", Kind: KindNotFound}

// Pages lists every routable page in a stable order.
func Pages() []Page {
	out := make([]Page, len(pages))
	for i, p := range pages {
		out[i] = withDefaults(p)
	}
	return out
}

// Lookup finds the page for path, with or without its trailing slash.
func Lookup(path string) (Page, bool) {
	path = Canonical(path)
	for _, p := range pages {
		if p.Path == path {
			return withDefaults(p), true
		}
	}
	return Page{}, false
}

// Canonical adds the trailing slash every page path carries.
func Canonical(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

func withDefaults(p Page) Page {
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Description == "" {
		p.Description = DefaultDescription
	}
	return p
}
