package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"lfg-site/internal/site"
)

func BackLink(s *site.Site, label string) g.Node {
	return A(Href(s.URL("/#"+site.ServicesAnchor)), Class("back-link"), g.Text("← "+label))
}

func Timeline(s *site.Site, tl *site.Timeline) g.Node {
	return Section(
		Class("section timeline-page"),
		BackLink(s, tl.BackLabel),
		Div(
			Class("timeline-header"),
			H1(g.Text(tl.Heading)),
			P(Class("accent lead"), g.Text(tl.Subheading)),
		),
		Ol(
			Class("timeline"),
			g.Group(g.Map(indexed(tl.Steps), func(st indexedStep) g.Node {
				side := "left"
				if st.Index%2 == 1 {
					side = "right"
				}
				return Li(
					Class("timeline-step "+side),
					Span(Class("timeline-number"), g.Text(strconv.Itoa(st.Index+1))),
					Div(
						Class("card"),
						H3(Class("accent"), g.Text(st.Title)),
						P(g.Text(st.Description)),
					),
				)
			})),
		),
		CTA(s, tl.CTAHeading, site.ContactCTA),
	)
}

type indexedStep struct {
	site.Step
	Index int
}

func indexed(steps []site.Step) []indexedStep {
	out := make([]indexedStep, len(steps))
	for i, st := range steps {
		out[i] = indexedStep{Step: st, Index: i}
	}
	return out
}

// CTA links to the contact section of the home page.
func CTA(s *site.Site, heading, label string) g.Node {
	return Div(
		Class("cta"),
		H2(g.Text(heading)),
		A(Href(s.URL("/#"+site.ContactAnchor)), Class("btn btn-primary"), g.Text(label)),
	)
}
