package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"lfg-site/internal/chat"
	"lfg-site/internal/site"
)

// ChatWidget renders the phone mockup with the profile's greeting already in
// the transcript. The script mounts a session and takes over from there.
func ChatWidget(s *site.Site, p chat.Profile) g.Node {
	return Div(
		Class("phone"),
		Data("chat-widget", p.Name),
		Data("chat-api", s.API("/api/v1/chat/sessions")),
		Div(
			Class("chat-header"),
			Div(Class("chat-avatar"), g.Text("AI")),
			Div(
				H3(g.Text(p.Title)),
				Span(Class("chat-presence"), g.Text("online")),
			),
		),
		Div(
			Class("chat-log"),
			Role("log"),
			Aria("live", "polite"),
			Div(Class("bubble assistant"), g.Text(p.InitialMessage)),
		),
		Form(
			Class("chat-input"),
			Input(Type("text"), Name("text"), Placeholder("Type a message"), AutoComplete("off"), Aria("label", "Message")),
			Button(Type("submit"), Class("btn btn-primary"), Aria("label", "Send"), g.Text("➤")),
		),
	)
}
