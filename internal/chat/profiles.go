package chat

import "sort"

// Profile parameterizes a widget: the greeting seeded at mount and the
// instruction sent ahead of every transcript.
type Profile struct {
	Name           string
	Title          string
	InitialMessage string
	SystemPrompt   string
}

const (
	ProfileDemo      = "whatsapp-demo"
	ProfileMockup    = "whatsapp-mockup"
	ProfileInterface = "whatsapp-interface"
)

const (
	greetingAssist = "👋 Hey there! This is our AI WhatsApp customer service demo. How can I assist you today?"
	greetingAsk    = "👋 Hey there! This is our AI WhatsApp customer service demo. Ask me anything about our services!"
)

func businessPrompt(company string) string {
	return "You are a helpful customer service AI assistant for a business. Respond in a friendly, professional manner. " +
		"Keep responses concise and helpful, typical of WhatsApp business messages (short and to the point). " +
		"You should act like a WhatsApp business assistant for a company called '" + company + "'. " +
		"If asked about pricing, mention that the WhatsApp AI service starts at $299/month and custom solutions are tailored to business needs. " +
		"If asked about products, mention AI solutions for WhatsApp, websites, and custom business automations."
}

var builtinProfiles = map[string]Profile{
	ProfileDemo: {
		Name:           ProfileDemo,
		Title:          "Your Business",
		InitialMessage: greetingAssist,
		SystemPrompt:   businessPrompt("Your Business"),
	},
	ProfileMockup: {
		Name:           ProfileMockup,
		Title:          "AI Customer Service",
		InitialMessage: greetingAssist,
		SystemPrompt:   businessPrompt("LFG Tech"),
	},
	ProfileInterface: {
		Name:           ProfileInterface,
		Title:          "AI Customer Service",
		InitialMessage: greetingAsk,
		SystemPrompt: "You are a helpful customer service AI assistant for a business. Respond in a friendly, professional manner. " +
			"Keep responses concise and helpful. You should act like a WhatsApp business assistant. " +
			"If asked about pricing, mention that our WhatsApp AI service starts at $299/month and our custom solutions are tailored to business needs.",
	},
}

// LookupProfile returns the built-in profile registered under name.
func LookupProfile(name string) (Profile, bool) {
	p, ok := builtinProfiles[name]
	return p, ok
}

// ProfileNames lists the built-in profiles in a stable order.
func ProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
