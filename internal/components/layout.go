package components

import (
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"lfg-site/internal/site"
	"lfg-site/internal/starfield"
)

type PageConfig struct {
	Title       string
	Description string
	Path        string
	// SPAFallback marks the page exported as 404.html on static hosts.
	SPAFallback bool
}

func Layout(s *site.Site, config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = site.DefaultTitle
	}

	if config.Description == "" {
		config.Description = site.DefaultDescription
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),

				Link(Rel("stylesheet"), Href(s.Asset("/static/styles.css"))),
				g.If(s.SPARedirect && config.SPAFallback,
					Script(Src(s.Asset("/static/js/spa-404.js")), Data("segments", strconv.Itoa(pathSegments(s.BasePath)))),
				),
				g.If(s.SPARedirect, Script(Src(s.Asset("/static/js/redirect.js")))),
			),
			Body(
				Data("base-path", s.BasePath),
				Data("api-base", s.API("/api/v1")),
				Starfield(s, s.Stars),
				Div(
					Class("page"),
					g.Group(content),
				),
				PageFooter(s),

				Script(Src(s.Asset("/static/js/starfield.js")), Defer()),
				Script(Src(s.Asset("/static/js/contact.js")), Defer()),
				Script(Src(s.Asset("/static/js/chat.js")), Defer()),
			),
		),
	})
}

// Starfield is the fixed background canvas. Without scripts a pre-rendered
// frame is shown instead.
func Starfield(s *site.Site, opts starfield.Options) g.Node {
	return g.Group([]g.Node{
		Canvas(
			ID("starfield"),
			Class("starfield"),
			Data("star-count", strconv.Itoa(opts.Count)),
			Data("speed", strconv.FormatFloat(opts.Speed, 'f', -1, 64)),
			Aria("hidden", "true"),
		),
		NoScript(
			Img(Class("starfield"), Src(s.URL("/starfield.png")), Alt("")),
		),
	})
}

func PageFooter(s *site.Site) g.Node {
	return Footer(
		Class("site-footer"),
		A(Href(s.URL("/")), Class("logo"), g.Text("LFG.tech")),
		Nav(
			A(Href(s.URL("/#"+site.ServicesAnchor)), g.Text("Services")),
			A(Href(s.URL("/ProcessTimeline/")), g.Text("Process")),
			A(Href(s.URL("/contact/")), g.Text("Contact")),
		),
	)
}

func pathSegments(base string) int {
	n := 0
	for _, seg := range strings.Split(base, "/") {
		if seg != "" {
			n++
		}
	}
	return n
}
