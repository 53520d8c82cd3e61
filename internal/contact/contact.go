// Package contact holds the lead-capture form: its templates, validation
// rules and the submit state machine shared by the JSON API and the
// server-rendered form.
package contact

import (
	"context"
	"regexp"
	"strings"
)

type Template string

const (
	TemplateWhatsApp Template = "whatsapp"
	TemplateWebsite  Template = "website"
	TemplateCustom   Template = "custom"
)

// Templates lists the one-click message fills in display order.
var Templates = []Template{TemplateWhatsApp, TemplateWebsite, TemplateCustom}

var templateText = map[Template]string{
	TemplateWhatsApp: "I would love to receive a demo of how a customer WhatsApp agent would work for my company.",
	TemplateWebsite:  "I'm interested in learning more about your website development services for my business.",
	TemplateCustom:   "I'd like to discuss a custom AI solution tailored to my specific business needs.",
}

var templateLabel = map[Template]string{
	TemplateWhatsApp: "WhatsApp Agent",
	TemplateWebsite:  "Website",
	TemplateCustom:   "Custom AI",
}

// ParseTemplate returns the template named s. ok is false for unknown names.
func ParseTemplate(s string) (Template, bool) {
	t := Template(strings.TrimSpace(s))
	_, ok := templateText[t]
	return t, ok
}

// Text is the literal message the template fills in.
func (t Template) Text() string { return templateText[t] }

func (t Template) Label() string { return templateLabel[t] }

const (
	FieldEmail   = "email"
	FieldMessage = "message"

	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Please enter a valid email address"
	MsgMessageRequired = "Message is required"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Submission is one contact request. It is forwarded and then discarded.
type Submission struct {
	Email    string
	Message  string
	Template *Template
}

func (s Submission) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(s.Email) == "" {
		errs[FieldEmail] = MsgEmailRequired
	} else if !emailPattern.MatchString(s.Email) {
		errs[FieldEmail] = MsgEmailInvalid
	}

	if strings.TrimSpace(s.Message) == "" {
		errs[FieldMessage] = MsgMessageRequired
	}

	return errs
}

// Sender delivers a validated submission to the form backend.
type Sender interface {
	Send(ctx context.Context, s Submission) error
}
