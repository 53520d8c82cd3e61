package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"lfg-site/internal/chat"
	"lfg-site/internal/contact"
	"lfg-site/internal/middleware"
	"lfg-site/internal/models"
	"lfg-site/internal/site"
)

// ─── Fakes ───

type fakeCompleter struct {
	reply   string
	err     error
	release chan struct{}
}

func (f *fakeCompleter) Complete(ctx context.Context, _ []models.CompletionMessage) (string, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

type fakeEvents struct {
	mu     sync.Mutex
	closed []string
}

func (f *fakeEvents) Serve(w http.ResponseWriter, r *http.Request, sessionID string, hello interface{}) {
	writeJSON(w, http.StatusOK, hello)
}

func (f *fakeEvents) CloseSession(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, sessionID)
}

type fakeSender struct {
	err  error
	sent []contact.Submission
}

func (f *fakeSender) Send(_ context.Context, s contact.Submission) error {
	f.sent = append(f.sent, s)
	return f.err
}

type fakeLeads struct {
	leads []models.LeadNotification
}

func (f *fakeLeads) Enqueue(_ context.Context, lead models.LeadNotification) error {
	f.leads = append(f.leads, lead)
	return nil
}

// ─── Chat Handler Tests ───

var testSessions = middleware.NewSessionAuth("test-secret", time.Hour)

func newChatRouter(t *testing.T, completer chat.Completer) (http.Handler, *fakeEvents) {
	t.Helper()
	events := &fakeEvents{}
	reg := chat.NewRegistry(completer, chat.RegistryOptions{OnUnmount: events.CloseSession})
	t.Cleanup(reg.Close)

	h := NewChatHandler(reg, testSessions, events)

	r := chi.NewRouter()
	r.Post("/sessions", h.Start)
	r.Get("/sessions/{id}", h.Get)
	r.Post("/sessions/{id}/messages", h.Send)
	r.Delete("/sessions/{id}", h.Delete)
	r.Get("/sessions/{id}/ws", h.Stream)
	return r, events
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func start(t *testing.T, h http.Handler) models.ChatSession {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/sessions", models.StartChatRequest{Profile: chat.ProfileDemo})
	if rr.Code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var s models.ChatSession
	if err := json.NewDecoder(rr.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestChatHandler_Lifecycle(t *testing.T) {
	h, events := newChatRouter(t, &fakeCompleter{reply: "$299/month"})

	s := start(t, h)
	if s.SessionID == "" || s.Token == "" {
		t.Fatalf("expected session id and token, got %+v", s)
	}
	if len(s.Messages) != 1 || s.Messages[0].Sender != models.SenderAssistant {
		t.Fatalf("expected the seeded greeting, got %+v", s.Messages)
	}

	rr := do(t, h, http.MethodPost, "/sessions/"+s.SessionID+"/messages", models.SendMessageRequest{Text: "What's your pricing?"})
	if rr.Code != http.StatusOK {
		t.Fatalf("send: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp models.SendMessageResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Reply.Content != "$299/month" {
		t.Errorf("expected reply '$299/month', got %q", resp.Reply.Content)
	}
	if resp.State != string(chat.StateIdle) {
		t.Errorf("expected state idle, got %q", resp.State)
	}
	if len(resp.Messages) != 3 {
		t.Errorf("expected 3 messages, got %d", len(resp.Messages))
	}
	if id, err := testSessions.Verify(resp.Token); err != nil || id != s.SessionID {
		t.Errorf("expected a refreshed token for %s, got %q (%v)", s.SessionID, id, err)
	}

	rr = do(t, h, http.MethodGet, "/sessions/"+s.SessionID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rr.Code)
	}

	rr = do(t, h, http.MethodDelete, "/sessions/"+s.SessionID, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rr.Code)
	}
	events.mu.Lock()
	if len(events.closed) != 1 || events.closed[0] != s.SessionID {
		t.Errorf("expected event stream closed for %s, got %v", s.SessionID, events.closed)
	}
	events.mu.Unlock()

	rr = do(t, h, http.MethodGet, "/sessions/"+s.SessionID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", rr.Code)
	}
}

func TestChatHandler_StartWithEmptyBody(t *testing.T) {
	h, _ := newChatRouter(t, &fakeCompleter{reply: "ok"})

	rr := do(t, h, http.MethodPost, "/sessions", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var s models.ChatSession
	json.NewDecoder(rr.Body).Decode(&s)
	if s.Profile != chat.ProfileDemo {
		t.Errorf("expected default profile %s, got %s", chat.ProfileDemo, s.Profile)
	}
}

func TestChatHandler_GetRefreshesToken(t *testing.T) {
	h, _ := newChatRouter(t, &fakeCompleter{reply: "ok"})
	s := start(t, h)

	rr := do(t, h, http.MethodGet, "/sessions/"+s.SessionID, nil)
	var snap models.ChatSession
	json.NewDecoder(rr.Body).Decode(&snap)
	if id, err := testSessions.Verify(snap.Token); err != nil || id != s.SessionID {
		t.Errorf("expected a refreshed token for %s, got %q (%v)", s.SessionID, id, err)
	}
}

func TestChatHandler_FallbackIsNotAnError(t *testing.T) {
	h, _ := newChatRouter(t, &fakeCompleter{err: errors.New("dial tcp: refused")})
	s := start(t, h)

	rr := do(t, h, http.MethodPost, "/sessions/"+s.SessionID+"/messages", models.SendMessageRequest{Text: "hi"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp models.SendMessageResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Reply.Content != chat.FallbackConnection {
		t.Errorf("expected connection fallback, got %q", resp.Reply.Content)
	}
}

func TestChatHandler_Errors(t *testing.T) {
	h, _ := newChatRouter(t, &fakeCompleter{reply: "ok"})
	s := start(t, h)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"unknown profile", http.MethodPost, "/sessions", models.StartChatRequest{Profile: "nope"}, http.StatusBadRequest, "UNKNOWN_PROFILE"},
		{"malformed start", http.MethodPost, "/sessions", "{", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty message", http.MethodPost, "/sessions/" + s.SessionID + "/messages", models.SendMessageRequest{Text: "   "}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown session", http.MethodPost, "/sessions/missing/messages", models.SendMessageRequest{Text: "hi"}, http.StatusNotFound, "NOT_FOUND"},
		{"delete unknown", http.MethodDelete, "/sessions/missing", nil, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, tc.method, tc.path, tc.body)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rr.Code, rr.Body.String())
			}
			var resp models.ErrorResponse
			json.NewDecoder(rr.Body).Decode(&resp)
			if resp.Error.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, resp.Error.Code)
			}
		})
	}
}

func TestChatHandler_BusyWhileAwaiting(t *testing.T) {
	completer := &fakeCompleter{reply: "done", release: make(chan struct{})}
	h, _ := newChatRouter(t, completer)
	s := start(t, h)

	first := make(chan int, 1)
	go func() {
		rr := do(t, h, http.MethodPost, "/sessions/"+s.SessionID+"/messages", models.SendMessageRequest{Text: "one"})
		first <- rr.Code
	}()

	// Wait for the first turn to be in flight.
	deadline := time.Now().Add(2 * time.Second)
	for {
		rr := do(t, h, http.MethodGet, "/sessions/"+s.SessionID, nil)
		var snap models.ChatSession
		json.NewDecoder(rr.Body).Decode(&snap)
		if snap.State == string(chat.StateAwaitingResponse) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first turn never started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	rr := do(t, h, http.MethodPost, "/sessions/"+s.SessionID+"/messages", models.SendMessageRequest{Text: "two"})
	if rr.Code != http.StatusConflict {
		t.Errorf("expected 409 while awaiting, got %d", rr.Code)
	}

	close(completer.release)
	if code := <-first; code != http.StatusOK {
		t.Errorf("first turn: expected 200, got %d", code)
	}
}

func TestChatHandler_StreamSendsSnapshot(t *testing.T) {
	h, _ := newChatRouter(t, &fakeCompleter{reply: "ok"})
	s := start(t, h)

	rr := do(t, h, http.MethodGet, "/sessions/"+s.SessionID+"/ws", nil)
	var snap models.ChatSession
	if err := json.NewDecoder(rr.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.SessionID != s.SessionID {
		t.Errorf("expected snapshot for %s, got %s", s.SessionID, snap.SessionID)
	}
}

// ─── Contact Handler Tests ───

func TestContactHandler_Submit(t *testing.T) {
	tests := []struct {
		name      string
		body      interface{}
		sendErr   error
		status    int
		wantField string
		wantMsg   string
		wantLead  bool
	}{
		{
			name:     "valid",
			body:     models.ContactRequest{Email: "a@b.co", Message: "hello", Template: "website"},
			status:   http.StatusOK,
			wantLead: true,
		},
		{
			name:      "invalid email",
			body:      models.ContactRequest{Email: "nope", Message: "hello"},
			status:    http.StatusBadRequest,
			wantField: contact.FieldEmail,
		},
		{
			name:      "missing message",
			body:      models.ContactRequest{Email: "a@b.co"},
			status:    http.StatusBadRequest,
			wantField: contact.FieldMessage,
		},
		{
			name:      "unknown template",
			body:      models.ContactRequest{Email: "a@b.co", Message: "hi", Template: "seo"},
			status:    http.StatusBadRequest,
			wantField: "template",
		},
		{
			name:    "relay failure",
			body:    models.ContactRequest{Email: "a@b.co", Message: "hello"},
			sendErr: errors.New("Form not found"),
			status:  http.StatusBadGateway,
			wantMsg: "Form not found",
		},
		{
			name:   "malformed body",
			body:   "{",
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := &fakeSender{err: tc.sendErr}
			leads := &fakeLeads{}
			h := NewContactHandler(sender, leads, site.New("", "", ""))

			rr := do(t, http.HandlerFunc(h.Submit), http.MethodPost, "/api/v1/contact", tc.body)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rr.Code, rr.Body.String())
			}

			if tc.status == http.StatusOK {
				if !strings.Contains(rr.Body.String(), `"ok":true`) {
					t.Errorf("expected ok body, got %s", rr.Body.String())
				}
			} else {
				var resp models.ErrorResponse
				json.NewDecoder(rr.Body).Decode(&resp)
				if tc.wantField != "" && resp.Error.Fields[tc.wantField] == "" {
					t.Errorf("expected error for field %s, got %+v", tc.wantField, resp.Error.Fields)
				}
				if tc.wantMsg != "" && resp.Error.Message != tc.wantMsg {
					t.Errorf("expected message %q, got %q", tc.wantMsg, resp.Error.Message)
				}
			}

			if tc.wantField != "" && len(sender.sent) != 0 {
				t.Error("invalid submission must not reach the relay")
			}
			if got := len(leads.leads) == 1; got != tc.wantLead {
				t.Errorf("lead queued = %v, want %v", got, tc.wantLead)
			}
			if tc.wantLead && leads.leads[0].Template != "website" {
				t.Errorf("expected lead template website, got %q", leads.leads[0].Template)
			}
		})
	}
}

func postForm(t *testing.T, h http.HandlerFunc, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestContactHandler_SubmitForm(t *testing.T) {
	t.Run("template selection", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewContactHandler(sender, nil, site.New("", "", ""))

		rr := postForm(t, h.SubmitForm, url.Values{"email": {"a@b.co"}, "action": {"template:whatsapp"}})
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		body := rr.Body.String()
		if !strings.Contains(body, html.EscapeString(contact.TemplateWhatsApp.Text())) {
			t.Error("expected the whatsapp template text in the message field")
		}
		if !strings.Contains(body, `value="a@b.co"`) {
			t.Error("expected the email to be kept")
		}
		if len(sender.sent) != 0 {
			t.Error("template selection must not submit")
		}
	})

	t.Run("send success", func(t *testing.T) {
		sender := &fakeSender{}
		leads := &fakeLeads{}
		h := NewContactHandler(sender, leads, site.New("", "", ""))

		rr := postForm(t, h.SubmitForm, url.Values{
			"email": {"a@b.co"}, "message": {"hello"}, "template": {"custom"}, "action": {"send"},
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Thank you for your message!") {
			t.Error("expected success message")
		}
		if len(sender.sent) != 1 || sender.sent[0].Template == nil || *sender.sent[0].Template != contact.TemplateCustom {
			t.Errorf("expected one submission with template custom, got %+v", sender.sent)
		}
		if len(leads.leads) != 1 || leads.leads[0].Email != "a@b.co" {
			t.Errorf("expected a lead for a@b.co, got %+v", leads.leads)
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		h := NewContactHandler(&fakeSender{}, nil, site.New("", "", ""))
		rr := postForm(t, h.SubmitForm, url.Values{"action": {"send"}})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), contact.MsgEmailRequired) {
			t.Error("expected email error")
		}
	})

	t.Run("relay error", func(t *testing.T) {
		h := NewContactHandler(&fakeSender{err: errors.New("Form not found")}, nil, site.New("", "", ""))
		rr := postForm(t, h.SubmitForm, url.Values{"email": {"a@b.co"}, "message": {"hi"}, "action": {"send"}})
		if rr.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Form not found") {
			t.Error("expected relay error text")
		}
	})
}

// ─── Pages Tests ───

func TestPagesHandler(t *testing.T) {
	s := site.New("/LFG", "/LFG", "")
	h := NewPagesHandler(s)

	tests := []struct {
		path     string
		status   int
		location string
	}{
		{"/LFG/", http.StatusOK, ""},
		{"/LFG", http.StatusOK, ""},
		{"/LFG/WhatsAppDemo/", http.StatusOK, ""},
		{"/LFG/ProcessTimeline", http.StatusMovedPermanently, "/LFG/ProcessTimeline/"},
		{"/LFG/nope/", http.StatusNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Page(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if tc.location != "" && rr.Header().Get("Location") != tc.location {
				t.Errorf("expected redirect to %s, got %s", tc.location, rr.Header().Get("Location"))
			}
			if tc.status != http.StatusMovedPermanently && !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html") {
				t.Errorf("expected html, got %s", rr.Header().Get("Content-Type"))
			}
		})
	}
}

func TestStarfieldImage(t *testing.T) {
	rr := httptest.NewRecorder()
	StarfieldImage(rr, httptest.NewRequest(http.MethodGet, "/starfield.png?w=64&h=32&frames=3&seed=7", nil))

	if rr.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("expected image/png, got %s", rr.Header().Get("Content-Type"))
	}
	cfg, err := png.DecodeConfig(rr.Body)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 64 || cfg.Height != 32 {
		t.Errorf("expected 64x32, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 10},
		{"abc", 10},
		{"5", 5},
		{"-3", 1},
		{"99999", 100},
	}
	for _, tc := range tests {
		if got := clampInt(tc.in, 10, 1, 100); got != tc.want {
			t.Errorf("clampInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
