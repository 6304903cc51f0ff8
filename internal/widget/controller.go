// Package widget implements the chat widget's client-side behavior as a
// state machine: visibility transitions, the welcome message, the send
// loop, and the inline lead-capture form. The HTTP layer exposes the raw
// chat and lead operations; this controller is for embedders that want the
// full widget experience (SSR previews, the CLI smoke tool, tests) without
// a browser.
package widget

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
	"github.com/colormebooth/go-chat-gateway/internal/knowledge"
	"github.com/colormebooth/go-chat-gateway/internal/webhook"
)

// State is the widget's visibility state.
type State string

const (
	StateClosed    State = "closed"
	StateMinimized State = "minimized"
	StateOpen      State = "open"
)

// DefaultAutoOpenDelay is how long a visitor browses before the closed
// widget nudges itself to minimized.
const DefaultAutoOpenDelay = 30 * time.Second

const (
	connectErrorText = "Sorry, I'm having trouble connecting right now. Please try again or fill out the contact form below!"
	leadErrorText    = "Sorry, there was an error submitting your information. Please try again or use the contact form on the page."
)

// Conversant is the outbound surface the controller talks to. Both
// *webhook.Client and the service layer satisfy it.
type Conversant interface {
	SendChatMessage(ctx context.Context, req webhook.ChatRequest) (*webhook.ChatResult, error)
	SubmitLead(ctx context.Context, lead domain.LeadData) (*webhook.LeadResult, error)
}

// Config carries the per-visitor context the widget is mounted with.
type Config struct {
	SessionID string
	PageURL   string
	EventType domain.EventType

	// AutoOpenDelay overrides DefaultAutoOpenDelay; negative disables the
	// auto-open nudge entirely.
	AutoOpenDelay time.Duration

	// ChatbotConfigured reports whether a chatbot endpoint exists. When
	// false the widget neither auto-opens nor greets; sends still work so
	// the offline fallback can answer.
	ChatbotConfigured bool

	// Fallback, when set, answers from the knowledge base if the chatbot
	// webhook is unreachable.
	Fallback *knowledge.Matcher
}

// LeadForm is the inline lead-capture form's input.
type LeadForm struct {
	Name      string
	Email     string
	Phone     string
	EventDate string
}

// Controller drives one visitor's widget. All methods are safe for
// concurrent use.
type Controller struct {
	mu        sync.Mutex
	cfg       Config
	client    Conversant
	state     State
	messages  []domain.ChatMessage
	leadMode  bool
	composing bool
	autoTimer *time.Timer
}

// New mounts a widget controller in the closed state. Call Start to arm the
// auto-open timer.
func New(client Conversant, cfg Config) *Controller {
	if cfg.AutoOpenDelay == 0 {
		cfg.AutoOpenDelay = DefaultAutoOpenDelay
	}
	return &Controller{
		cfg:    cfg,
		client: client,
		state:  StateClosed,
	}
}

// Start arms the auto-open timer: after the configured delay a still-closed
// widget moves to minimized so the visitor notices it. No-op when the delay
// is disabled or no chatbot is configured.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg.AutoOpenDelay < 0 || !c.cfg.ChatbotConfigured || c.autoTimer != nil {
		return
	}
	c.autoTimer = time.AfterFunc(c.cfg.AutoOpenDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == StateClosed {
			c.state = StateMinimized
		}
	})
}

// Stop cancels the pending auto-open nudge, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.autoTimer != nil {
		c.autoTimer.Stop()
		c.autoTimer = nil
	}
}

// State returns the current visibility state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle flips visibility: closed and minimized both open the widget, open
// collapses it to minimized. Opening an empty transcript posts the greeting.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateClosed, StateMinimized:
		c.state = StateOpen
		c.greetLocked()
	default:
		c.state = StateMinimized
	}
}

// Close dismisses the widget from any state. The transcript is kept so a
// later Toggle resumes the conversation.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
}

func (c *Controller) greetLocked() {
	if len(c.messages) > 0 || !c.cfg.ChatbotConfigured {
		return
	}
	c.messages = append(c.messages, domain.ChatMessage{
		Role:      domain.RoleAssistant,
		Content:   WelcomeMessage(c.cfg.EventType),
		CreatedAt: time.Now().UTC(),
	})
}

// WelcomeMessage is the greeting posted when the widget first opens,
// personalized to the page's event type.
func WelcomeMessage(eventType domain.EventType) string {
	return fmt.Sprintf(
		"Hi there! 👋 Welcome to ColorMe Booth! I'm here to help you plan an unforgettable %s. What would you like to know?",
		eventType.Label(),
	)
}

// Messages returns a copy of the transcript.
func (c *Controller) Messages() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// LeadCaptureMode reports whether the inline lead form is showing.
func (c *Controller) LeadCaptureMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leadMode
}

// Composing reports whether a send is in flight.
func (c *Controller) Composing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composing
}

// Send posts a visitor message and returns the assistant's reply. Blank
// input and overlapping sends are ignored (nil return). Delivery failures
// never surface as errors: the reply falls back to the knowledge base and
// then to a canned apology, so the conversation keeps moving.
func (c *Controller) Send(ctx context.Context, text string) *domain.ChatMessage {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if text == "" || c.composing {
		c.mu.Unlock()
		return nil
	}
	c.composing = true

	// History excludes the message being sent.
	history := make([]domain.ChatMessage, len(c.messages))
	copy(history, c.messages)

	c.messages = append(c.messages, domain.ChatMessage{
		Role:      domain.RoleUser,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	})
	req := webhook.ChatRequest{
		SessionID:           c.cfg.SessionID,
		Message:             text,
		PageURL:             c.cfg.PageURL,
		EventType:           c.cfg.EventType,
		ConversationHistory: history,
	}
	c.mu.Unlock()

	res, err := c.client.SendChatMessage(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.composing = false

	reply := domain.ChatMessage{
		Role:      domain.RoleAssistant,
		CreatedAt: time.Now().UTC(),
	}
	switch {
	case err == nil:
		reply.Content = res.Response
		if res.CaptureLead() {
			c.leadMode = true
		}
	default:
		if entry := c.fallbackMatch(text); entry != nil {
			reply.Content = entry.Answer
		} else {
			reply.Content = connectErrorText
		}
	}
	c.messages = append(c.messages, reply)
	return &reply
}

func (c *Controller) fallbackMatch(text string) *domain.KnowledgeBaseEntry {
	if c.cfg.Fallback == nil {
		return nil
	}
	return c.cfg.Fallback.Match(text, c.cfg.EventType)
}

// SubmitLead validates and submits the inline lead form. Validation
// problems come back as a field-keyed error map and nothing is sent. After
// validation the submission itself never fails the caller: success posts a
// personalized thank-you to the transcript and leaves lead-capture mode,
// delivery errors post an apology and keep the form up.
func (c *Controller) SubmitLead(ctx context.Context, form LeadForm) (map[string]string, *domain.ChatMessage) {
	fieldErrs := ValidateLeadForm(form)
	if len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	c.mu.Lock()
	lead := domain.LeadData{
		Source:    domain.SourceChatbot,
		EventType: c.cfg.EventType,
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		EventDate: form.EventDate,
		PageURL:   c.cfg.PageURL,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	c.mu.Unlock()

	_, err := c.client.SubmitLead(ctx, lead)

	c.mu.Lock()
	defer c.mu.Unlock()

	reply := domain.ChatMessage{
		Role:      domain.RoleAssistant,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		reply.Content = leadErrorText
	} else {
		reply.Content = fmt.Sprintf(
			"Thank you %s! We've received your information and someone from our team will reach out within 24-48 hours. Is there anything else you'd like to know in the meantime?",
			form.Name,
		)
		c.leadMode = false
	}
	c.messages = append(c.messages, reply)
	return nil, &reply
}

// ValidateLeadForm checks required fields and email shape, returning a map
// keyed by field name. An empty map means the form is submittable.
func ValidateLeadForm(form LeadForm) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(form.Name) == "" {
		errs["name"] = "Name is required"
	}
	email := strings.TrimSpace(form.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !webhook.ValidEmail(email) {
		errs["email"] = "Please enter a valid email"
	}
	return errs
}

// SuggestedQuestions are the quick-start prompts shown under the greeting.
func SuggestedQuestions() []string {
	return []string{
		"How much does it cost?",
		"What areas do you serve?",
		"How do I book?",
	}
}
