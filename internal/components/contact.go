package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"lfg-site/internal/contact"
	"lfg-site/internal/site"
)

// ContactForm renders the lead form. It works without scripts: template
// buttons and the send button post back to the contact page.
func ContactForm(s *site.Site, v contact.FormView) g.Node {
	active := ""
	if v.ActiveTemplate != nil {
		active = string(*v.ActiveTemplate)
	}

	return Form(
		Class("contact-form"),
		Method("post"),
		Action(s.URL("/contact/")),
		Data("contact-api", s.API("/api/v1/contact")),
		g.Attr("novalidate"),

		g.If(v.Status == contact.StatusSuccess,
			Div(Class("form-status success"), Role("status"), g.Text(contact.SuccessMessage)),
		),
		g.If(v.Status == contact.StatusError,
			Div(Class("form-status error"), Role("alert"), g.Text(errorText(v.ErrorMessage))),
		),
		g.If(v.Status != contact.StatusSuccess && v.Status != contact.StatusError,
			Div(Class("form-status"), Role("status"), g.Attr("hidden")),
		),

		Div(
			Class("field"),
			Label(For("email"), g.Text("Email")),
			Input(
				Type("email"), ID("email"), Name(contact.FieldEmail),
				Placeholder("Your email"), Value(v.Email),
				g.If(v.Errors[contact.FieldEmail] != "", Class("invalid")),
			),
			fieldError(contact.FieldEmail, v.Errors[contact.FieldEmail]),
		),

		Div(
			Class("field"),
			Label(g.Text("What service are you interested in?")),
			Div(
				Class("template-buttons"),
				g.Map(contact.Templates, func(t contact.Template) g.Node {
					class := "btn btn-template"
					if string(t) == active {
						class += " active"
					}
					return Button(
						Type("submit"), Name("action"), Value("template:"+string(t)),
						Class(class),
						Data("template", string(t)),
						Data("template-text", t.Text()),
						g.Text(t.Label()),
					)
				}),
			),
			Input(Type("hidden"), Name("template"), Value(active)),
		),

		Div(
			Class("field"),
			Label(For("message"), g.Text("Message")),
			Textarea(
				ID("message"), Name(contact.FieldMessage), Rows("4"),
				Placeholder("Your message"),
				g.If(v.Errors[contact.FieldMessage] != "", Class("invalid")),
				g.Text(v.Message),
			),
			fieldError(contact.FieldMessage, v.Errors[contact.FieldMessage]),
		),

		Button(
			Type("submit"), Name("action"), Value("send"),
			Class("btn btn-primary btn-block"),
			g.If(v.Submitting, Disabled()),
			g.If(v.Submitting, g.Text("Sending...")),
			g.If(!v.Submitting, g.Text("Send Message")),
		),
	)
}

func fieldError(field, msg string) g.Node {
	return P(
		Class("field-error"),
		Data("error-for", field),
		g.If(msg == "", g.Attr("hidden")),
		g.Text(msg),
	)
}

func errorText(msg string) string {
	if msg == "" {
		return contact.DefaultErrorMessage
	}
	return msg
}

// ContactSection is the closing section of the home page.
func ContactSection(s *site.Site, v contact.FormView) g.Node {
	return Section(
		ID(site.ContactAnchor),
		Class("section"),
		H2(g.Text(site.ContactHeading)),
		ContactForm(s, v),
	)
}
