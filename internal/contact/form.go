package contact

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrInvalid    = errors.New("contact form has validation errors")
	ErrSubmitting = errors.New("a submission is already in progress")
)

type Status string

const (
	StatusNone    Status = ""
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	SuccessMessage      = "Thank you for your message! We'll get back to you as soon as possible."
	DefaultErrorMessage = "There was an error sending your message. Please try again later."
)

// Form is the editable state behind one contact form.
type Form struct {
	mu sync.Mutex

	Email          string
	Message        string
	ActiveTemplate *Template
	Errors         FieldErrors
	Status         Status
	ErrorMessage   string

	submitting bool
}

func NewForm() *Form {
	return &Form{Errors: FieldErrors{}}
}

// SetField updates a field and clears its error.
func (f *Form) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	default:
		return
	}
	delete(f.Errors, name)
}

// SelectTemplate overwrites the message with t's text and clears the message error.
func (f *Form) SelectTemplate(t Template) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Message = t.Text()
	f.ActiveTemplate = &t
	delete(f.Errors, FieldMessage)
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *Form) submission() Submission {
	return Submission{Email: f.Email, Message: f.Message, Template: f.ActiveTemplate}
}

// Submit validates and sends the form. Validation failures never reach the
// sender. On success the form is reset; on a send failure the error text is
// kept verbatim for display.
func (f *Form) Submit(ctx context.Context, sender Sender) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitting
	}

	errs := f.submission().Validate()
	f.Errors = errs
	if len(errs) > 0 {
		f.mu.Unlock()
		return ErrInvalid
	}

	f.submitting = true
	f.Status = StatusNone
	f.ErrorMessage = ""
	sub := f.submission()
	f.mu.Unlock()

	err := sender.Send(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		f.Status = StatusError
		f.ErrorMessage = err.Error()
		return err
	}

	f.Email = ""
	f.Message = ""
	f.ActiveTemplate = nil
	f.Errors = FieldErrors{}
	f.Status = StatusSuccess
	return nil
}

// FormView is a point-in-time copy of a Form for rendering.
type FormView struct {
	Email          string
	Message        string
	ActiveTemplate *Template
	Errors         FieldErrors
	Status         Status
	ErrorMessage   string
	Submitting     bool
}

func (f *Form) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(FieldErrors, len(f.Errors))
	for k, v := range f.Errors {
		errs[k] = v
	}
	v := FormView{
		Email:        f.Email,
		Message:      f.Message,
		Errors:       errs,
		Status:       f.Status,
		ErrorMessage: f.ErrorMessage,
		Submitting:   f.submitting,
	}
	if f.ActiveTemplate != nil {
		t := *f.ActiveTemplate
		v.ActiveTemplate = &t
	}
	return v
}
