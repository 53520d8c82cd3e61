package models

// ContactRequest is the JSON body accepted by the contact endpoint.
type ContactRequest struct {
	Email    string `json:"email"`
	Message  string `json:"message"`
	Template string `json:"template"`
}

// FormspreePayload is forwarded to the form-processing backend. Template is
// null when no template was selected.
type FormspreePayload struct {
	Email    string  `json:"email"`
	Message  string  `json:"message"`
	Template *string `json:"template"`
}

// LeadNotification is queued for the mail worker after a successful submit.
type LeadNotification struct {
	Email    string `json:"email"`
	Message  string `json:"message"`
	Template string `json:"template,omitempty"`
}
