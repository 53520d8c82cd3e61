package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"lfg-site/internal/chat"
	"lfg-site/internal/contact"
	"lfg-site/internal/site"
)

// Page renders a catalogue page. form carries the contact form state for
// pages that embed it.
func Page(s *site.Site, p site.Page, form contact.FormView) g.Node {
	config := PageConfig{Title: p.Title, Description: p.Description, Path: p.Path}

	switch p.Kind {
	case site.KindHome:
		return Layout(s, config,
			Hero(s),
			Services(s),
			Section(ID("why-choose-us"), Class("section"), WhyChooseUs(), Guarantee(s)),
			ContactSection(s, form),
		)
	case site.KindTimeline:
		return Layout(s, config, Timeline(s, p.Timeline))
	case site.KindWhatsAppDemo:
		return Layout(s, config, WhatsAppDemo(s))
	case site.KindWebsiteDemo:
		return Layout(s, config, WebsiteDemo(s))
	case site.KindContact:
		return Layout(s, config,
			Section(
				Class("section"),
				BackLink(s, "Back to Services"),
				H1(g.Text(site.ContactHeading)),
				ContactForm(s, form),
			),
		)
	default:
		return NotFoundPage(s)
	}
}

func WhatsAppDemo(s *site.Site) g.Node {
	d := site.WhatsAppDemo
	profile, _ := chat.LookupProfile(chat.ProfileDemo)

	return Section(
		Class("section demo"),
		Div(
			Class("demo-copy"),
			BackLink(s, "Back to Services"),
			H1(g.Text(d.Heading)),
			Div(
				Class("card"),
				P(Class("accent"), g.Text(d.Intro)),
				H2(g.Text("Key Benefits:")),
				Ul(g.Map(d.Benefits, func(b string) g.Node { return Li(g.Text(b)) })),
				P(Class("accent"), Strong(g.Text(d.TryIt)), g.Text(d.TryItBody)),
			),
			Div(
				Class("card"),
				H2(g.Text(d.CTAHeading)),
				A(Href(s.URL("/#"+site.ContactAnchor)), Class("btn btn-primary"), g.Text(d.CTAButton)),
			),
		),
		ChatWidget(s, profile),
	)
}

func WebsiteDemo(s *site.Site) g.Node {
	d := site.WebsiteDemo
	return Section(
		Class("section website-demo"),
		BackLink(s, "Back to Services"),
		H1(g.Text(d.Heading)),
		P(Class("accent lead"), g.Text(d.Lead)),
		P(g.Text(d.Body)),
		Div(Class("card"), P(Span(Class("accent"), g.Text("Fun fact:")), g.Text(d.FunFact))),
		A(Href(s.URL("/#"+site.ContactAnchor)), Class("btn btn-primary"), g.Text(d.Button)),
	)
}

func NotFoundPage(s *site.Site) g.Node {
	p := site.NotFound
	return Layout(s, PageConfig{Title: p.Title, Path: p.Path, SPAFallback: true},
		Section(
			Class("section not-found"),
			H1(g.Text("404")),
			P(Class("accent lead"), g.Text("This page could not be found.")),
			A(Href(s.URL("/")), Class("btn btn-primary"), g.Text("Back to Home")),
		),
	)
}
