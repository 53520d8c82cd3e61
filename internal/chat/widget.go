// Package chat implements the customer-service chat widget: an append-only
// transcript that forwards each new user turn, with the full history, to a
// chat-completion backend and appends the single reply.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lfg-site/internal/models"
	"lfg-site/internal/services"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a reply is still pending")
	ErrClosed       = errors.New("chat widget is closed")
)

// Fallback replies shown in place of a completion.
const (
	FallbackNotConfigured = "Sorry, the AI service is not properly configured. Please contact the administrator."
	FallbackNoChoices     = "Sorry, I couldn't process that request."
	FallbackConnection    = "Sorry, there was an error connecting to the AI service. Please try again later."
)

type State string

const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting_response"
)

// Outcome classifies how a turn was answered.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeNotConfigured Outcome = "not_configured"
	OutcomeNoChoices     Outcome = "no_choices"
	OutcomeError         Outcome = "error"
	OutcomeDropped       Outcome = "dropped"
)

// Completer produces the assistant reply for an ordered list of messages.
type Completer interface {
	Complete(ctx context.Context, messages []models.CompletionMessage) (string, error)
}

// Observer receives every transcript and state change of a widget.
type Observer func(models.ChatEvent)

// Classify maps a completer error onto the reply shown to the visitor.
func Classify(err error) (Outcome, string) {
	switch {
	case err == nil:
		return OutcomeOK, ""
	case errors.Is(err, services.ErrNotConfigured):
		return OutcomeNotConfigured, FallbackNotConfigured
	case errors.Is(err, services.ErrNoChoices):
		return OutcomeNoChoices, FallbackNoChoices
	default:
		return OutcomeError, FallbackConnection
	}
}

type Widget struct {
	mu         sync.Mutex
	id         string
	profile    Profile
	completer  Completer
	messages   []models.ChatMessage
	state      State
	generation uint64
	closed     bool
	lastActive time.Time

	observer Observer
	onTurn   func(profile string, outcome Outcome)

	// lifetime is cancelled by Close and bounds every outbound call.
	lifetime context.Context
	cancel   context.CancelFunc
}

// NewWidget mounts a widget for p with its greeting already in the log.
func NewWidget(p Profile, completer Completer, observer Observer) *Widget {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Widget{
		id:         uuid.NewString(),
		profile:    p,
		completer:  completer,
		state:      StateIdle,
		lastActive: time.Now(),
		observer:   observer,
		lifetime:   ctx,
		cancel:     cancel,
	}
	w.messages = append(w.messages, newMessage(models.SenderAssistant, p.InitialMessage))
	return w
}

func newMessage(sender models.Sender, content string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: time.Now(),
	}
}

func (w *Widget) ID() string { return w.id }

func (w *Widget) Profile() Profile { return w.profile }

func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Widget) Messages() []models.ChatMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.ChatMessage(nil), w.messages...)
}

func (w *Widget) Snapshot() models.ChatSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	return models.ChatSession{
		SessionID: w.id,
		Profile:   w.profile.Name,
		State:     string(w.state),
		Messages:  append([]models.ChatMessage(nil), w.messages...),
	}
}

func (w *Widget) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// idleSince reports when the widget was last used, and false while a reply
// is pending.
func (w *Widget) idleSince() (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive, w.state == StateIdle
}

// Submit appends text as a user turn and blocks until the assistant turn is
// appended. Completer failures become fallback replies, never errors. The
// outbound call ignores ctx's cancellation and ends only with the widget.
func (w *Widget) Submit(ctx context.Context, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return models.ChatMessage{}, ErrClosed
	}
	if w.state == StateAwaitingResponse {
		w.mu.Unlock()
		return models.ChatMessage{}, ErrBusy
	}

	payload := w.payloadLocked(text)
	userMsg := newMessage(models.SenderUser, text)
	w.messages = append(w.messages, userMsg)
	w.state = StateAwaitingResponse
	w.lastActive = time.Now()
	gen := w.generation
	w.mu.Unlock()

	w.notify(models.ChatEvent{Type: models.EventMessage, Message: &userMsg})
	w.notify(models.ChatEvent{Type: models.EventState, State: string(StateAwaitingResponse)})

	callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(w.lifetime, cancel)
	reply, err := w.completer.Complete(callCtx, payload)
	stop()
	cancel()

	outcome, fallback := Classify(err)
	if err != nil {
		slog.Warn("chat completion failed", "widget", w.id, "profile", w.profile.Name, "outcome", outcome, "error", err)
		reply = fallback
	}

	w.mu.Lock()
	if w.closed || gen != w.generation {
		w.mu.Unlock()
		w.recordTurn(OutcomeDropped)
		return models.ChatMessage{}, ErrClosed
	}
	replyMsg := newMessage(models.SenderAssistant, reply)
	w.messages = append(w.messages, replyMsg)
	w.state = StateIdle
	w.lastActive = time.Now()
	w.mu.Unlock()

	w.recordTurn(outcome)
	w.notify(models.ChatEvent{Type: models.EventMessage, Message: &replyMsg})
	w.notify(models.ChatEvent{Type: models.EventState, State: string(StateIdle)})
	return replyMsg, nil
}

// payloadLocked builds [system, transcript..., text]. The whole transcript is
// resent every turn.
func (w *Widget) payloadLocked(text string) []models.CompletionMessage {
	out := make([]models.CompletionMessage, 0, len(w.messages)+2)
	out = append(out, models.CompletionMessage{Role: models.RoleSystem, Content: w.profile.SystemPrompt})
	for _, m := range w.messages {
		out = append(out, models.CompletionMessage{Role: m.Sender.Role(), Content: m.Content})
	}
	return append(out, models.CompletionMessage{Role: models.RoleUser, Content: text})
}

// Close unmounts the widget. An in-flight call is cancelled and its reply,
// if it still arrives, is discarded.
func (w *Widget) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.generation++
	w.state = StateIdle
	w.mu.Unlock()

	w.cancel()
}

func (w *Widget) notify(ev models.ChatEvent) {
	if w.observer == nil {
		return
	}
	ev.SessionID = w.id
	w.observer(ev)
}

func (w *Widget) recordTurn(o Outcome) {
	if w.onTurn != nil {
		w.onTurn(w.profile.Name, o)
	}
}
