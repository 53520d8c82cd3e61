package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"lfg-site/internal/site"
)

func Hero(s *site.Site) g.Node {
	return Section(
		ID("hero-section"),
		Class("section hero"),
		H1(g.Text(site.Hero.Heading)),
		P(Class("accent lead"), g.Text(site.Hero.Subheading)),
		A(Href(s.URL("/#"+site.ServicesAnchor)), Class("btn btn-primary"), g.Text(site.Hero.Button)),
	)
}

func Services(s *site.Site) g.Node {
	return Section(
		ID(site.ServicesAnchor),
		Class("section"),
		H2(g.Text(site.ServicesHeading)),
		Div(
			Class("cards"),
			g.Map(site.Services, func(svc site.Service) g.Node {
				return Div(
					Class("card"),
					g.If(svc.Hot, Span(Class("badge"), g.Text("🔥 HOT"))),
					H3(g.Text(svc.Title)),
					g.If(svc.Summary != "", P(g.Text(svc.Summary))),
					Ul(g.Map(svc.Bullets, func(b string) g.Node { return Li(g.Text(b)) })),
					Div(
						Class("card-links"),
						g.Map(svc.Links, func(l site.Link) g.Node {
							class := "btn btn-secondary"
							if l.Primary {
								class = "btn btn-primary"
							}
							return A(Href(s.URL(l.Path)), Class(class), g.Text(l.Label))
						}),
					),
				)
			}),
		),
	)
}

func WhyChooseUs() g.Node {
	return g.Group([]g.Node{
		H2(g.Text(site.WhyHeading)),
		Div(
			Class("cards"),
			g.Map(site.Benefits, func(b site.Benefit) g.Node {
				return Div(
					Class("card"),
					Div(Class("card-title"), icon(b.Icon, "icon"), H3(g.Text(b.Title))),
					Ul(g.Map(b.Items, func(item string) g.Node { return Li(g.Text(item)) })),
				)
			}),
		),
	})
}

func Guarantee(s *site.Site) g.Node {
	return Div(
		Class("guarantee"),
		icon(site.Guarantee.Icon, "icon icon-large"),
		Div(
			H3(Class("accent"), g.Text(site.Guarantee.Heading)),
			P(g.Text(site.Guarantee.Body)),
			A(Href(s.URL("/#"+site.ContactAnchor)), Class("btn btn-primary"), g.Text(site.Guarantee.Button)),
		),
	)
}

func icon(path, class string) g.Node {
	return SVG(
		Class(class),
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("fill", "none"),
		g.Attr("viewBox", "0 0 24 24"),
		g.Attr("stroke", "currentColor"),
		Aria("hidden", "true"),
		g.El("path",
			g.Attr("stroke-linecap", "round"),
			g.Attr("stroke-linejoin", "round"),
			g.Attr("stroke-width", "2"),
			g.Attr("d", path),
		),
	)
}
