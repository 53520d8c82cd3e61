package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"lfg-site/internal/contact"
	"lfg-site/internal/models"
)

const (
	DefaultFormspreeURL = "https://formspree.io/f/mvgkrzyk"

	formspreeFallbackError = "Something went wrong. Please try again."
)

// FormspreeClient relays contact submissions to the form-processing backend.
type FormspreeClient struct {
	url        string
	httpClient *http.Client
}

func NewFormspreeClient(url string, timeout time.Duration) *FormspreeClient {
	if url == "" {
		url = DefaultFormspreeURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FormspreeClient{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// Send posts {email, message, template}. The returned error's text is meant
// to be shown to the visitor as is.
func (c *FormspreeClient) Send(ctx context.Context, s contact.Submission) error {
	payload := models.FormspreePayload{Email: s.Email, Message: s.Message}
	if s.Template != nil {
		name := string(*s.Template)
		payload.Template = &name
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var data struct {
		Error string `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if data.Error != "" {
			return errors.New(data.Error)
		}
		return errors.New(formspreeFallbackError)
	}
	return nil
}
