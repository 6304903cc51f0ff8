package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
	"github.com/colormebooth/go-chat-gateway/internal/sysutil"
)

// DefaultTimeout bounds every outbound webhook call. Requests still running
// at the deadline are hard-cancelled and surface as a timeout NetworkError.
const DefaultTimeout = 30 * time.Second

// emailRE is the syntactic email check applied before transmission:
// non-empty local part, "@", non-empty domain, ".", non-empty TLD.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s passes the client's syntactic email check.
// The same pattern is mirrored by the widget's lead form validation.
func ValidEmail(s string) bool { return emailRE.MatchString(s) }

// Endpoints holds the configured webhook URLs. Lead capture resolves to
// LeadCapture first and falls back to ContactForm; chat turns require
// Chatbot. Base is informational (shared URL prefix in deployments that use
// one) and is not consulted for resolution.
type Endpoints struct {
	Base        string
	LeadCapture string
	Chatbot     string
	ContactForm string
}

// ChatbotConfigured reports whether a chat turn could resolve a URL.
func (e Endpoints) ChatbotConfigured() bool { return strings.TrimSpace(e.Chatbot) != "" }

// LeadConfigured reports whether a lead submission could resolve a URL.
func (e Endpoints) LeadConfigured() bool {
	return sysutil.FirstNonEmpty(e.LeadCapture, e.ContactForm) != ""
}

// ChatRequest is one conversational turn forwarded to the chatbot endpoint.
type ChatRequest struct {
	SessionID           string               `json:"session_id"`
	Message             string               `json:"message"`
	PageURL             string               `json:"page_url"`
	EventType           domain.EventType     `json:"event_type"`
	ConversationHistory []domain.ChatMessage `json:"conversation_history,omitempty"`
}

// ChatResult is the canonical, normalized chatbot reply. Both capture flags
// are preserved as received; callers treat either as "enter lead capture".
type ChatResult struct {
	Response           string   `json:"response"`
	SessionID          string   `json:"session_id"`
	LeadCapturePrompt  bool     `json:"lead_capture_prompt,omitempty"`
	ShouldCaptureLead  bool     `json:"should_capture_lead,omitempty"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty"`
}

// CaptureLead reports whether the reply signaled a lead-capture opportunity.
func (r *ChatResult) CaptureLead() bool { return r.LeadCapturePrompt || r.ShouldCaptureLead }

// LeadResult is the canonical result of a lead submission. All fields are
// optional; a bare 2xx with a non-JSON body yields the zero value.
type LeadResult struct {
	LeadID    string   `json:"lead_id,omitempty"`
	Message   string   `json:"message,omitempty"`
	LeadScore *float64 `json:"lead_score,omitempty"`
}

// Client performs validated, timeout-bounded POSTs to the configured
// endpoints and normalizes responses. It is safe for concurrent use.
//
// The client deliberately does not retry: duplicate calls produce duplicate
// downstream leads and messages, so retrying is the caller's decision.
type Client struct {
	endpoints Endpoints
	timeout   time.Duration
	http      *http.Client
}

// New returns a Client over the given endpoints. A non-positive timeout
// falls back to DefaultTimeout.
func New(endpoints Endpoints, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoints: endpoints,
		timeout:   timeout,
		http:      &http.Client{},
	}
}

// Endpoints returns the client's configured endpoints.
func (c *Client) Endpoints() Endpoints { return c.endpoints }

// SubmitLead validates and forwards a lead record. On a 2xx JSON response
// the lead_id/message/lead_score fields are mapped into the result; a 2xx
// non-JSON body is bare success. The Timestamp field is stamped with the
// current UTC instant when the caller left it empty.
func (c *Client) SubmitLead(ctx context.Context, lead domain.LeadData) (res *LeadResult, err error) {
	start := time.Now()
	defer func() { observe("lead_capture", outcomeFor(err), start) }()

	tr := otel.Tracer("webhook/Client")
	ctx, span := tr.Start(ctx, "SubmitLead",
		trace.WithAttributes(
			attribute.String("lead.source", string(lead.Source)),
			attribute.String("lead.event_type", string(lead.EventType)),
		),
	)
	defer span.End()

	if err = validateLead(lead); err != nil {
		return nil, err
	}

	url := sysutil.FirstNonEmpty(c.endpoints.LeadCapture, c.endpoints.ContactForm)
	if url == "" {
		return nil, &ConfigError{Endpoint: "lead_capture"}
	}

	if strings.TrimSpace(lead.Timestamp) == "" {
		lead.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	body, status, isJSON, err := c.post(ctx, url, lead)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &WebhookError{StatusCode: status, Detail: errorDetail(body)}
	}

	out := &LeadResult{}
	if isJSON {
		// Best effort: a malformed JSON success body still counts as success.
		_ = json.Unmarshal(body, out)
	}
	return out, nil
}

// SendChatMessage validates and forwards one chat turn. The reply text is
// taken from the response's "response" field, falling back to "message",
// and finally to a fixed apology when the body carried neither; the session
// id echoes the request's when the endpoint omits it.
func (c *Client) SendChatMessage(ctx context.Context, req ChatRequest) (res *ChatResult, err error) {
	start := time.Now()
	defer func() { observe("chatbot", outcomeFor(err), start) }()

	tr := otel.Tracer("webhook/Client")
	ctx, span := tr.Start(ctx, "SendChatMessage",
		trace.WithAttributes(
			attribute.String("chat.session_id", req.SessionID),
			attribute.String("chat.event_type", string(req.EventType)),
		),
	)
	defer span.End()

	if err = validateChatRequest(req); err != nil {
		return nil, err
	}

	url := strings.TrimSpace(c.endpoints.Chatbot)
	if url == "" {
		return nil, &ConfigError{Endpoint: "chatbot"}
	}

	body, status, isJSON, err := c.post(ctx, url, req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &WebhookError{StatusCode: status, Detail: errorDetail(body)}
	}

	// Raw webhook reply; n8n workflows are inconsistent about which of
	// response/message they populate.
	var raw struct {
		Response           string   `json:"response"`
		Message            string   `json:"message"`
		SessionID          string   `json:"session_id"`
		LeadCapturePrompt  bool     `json:"lead_capture_prompt"`
		ShouldCaptureLead  bool     `json:"should_capture_lead"`
		SuggestedQuestions []string `json:"suggested_questions"`
	}
	if isJSON {
		_ = json.Unmarshal(body, &raw)
	}

	out := &ChatResult{
		Response:           sysutil.FirstNonEmpty(raw.Response, raw.Message, "Sorry, I couldn't process that message."),
		SessionID:          sysutil.FirstNonEmpty(raw.SessionID, req.SessionID),
		LeadCapturePrompt:  raw.LeadCapturePrompt,
		ShouldCaptureLead:  raw.ShouldCaptureLead,
		SuggestedQuestions: raw.SuggestedQuestions,
	}
	return out, nil
}

// post performs exactly one JSON POST bounded by the client timeout and
// returns the response body, status code, and whether the response declared
// a JSON content type.
func (c *Client) post(ctx context.Context, url string, payload any) (body []byte, status int, isJSON bool, err error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, false, &NetworkError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, 0, false, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, false, &NetworkError{Timeout: true, Err: err}
		}
		return nil, 0, false, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, false, &NetworkError{Err: err}
	}

	ct := resp.Header.Get("Content-Type")
	return body, resp.StatusCode, strings.Contains(ct, "application/json"), nil
}

// errorDetail extracts a human-readable detail from a non-2xx body:
// the JSON "message" or "error" field when present, else the raw text.
func errorDetail(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if d := sysutil.FirstNonEmpty(parsed.Message, parsed.Error); d != "" {
			return d
		}
	}
	if len(body) == 0 {
		return "unknown error"
	}
	return strings.TrimSpace(string(body))
}

// validateLead enforces the required-field and email rules for leads.
func validateLead(lead domain.LeadData) error {
	if strings.TrimSpace(lead.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if strings.TrimSpace(lead.Email) == "" {
		return &ValidationError{Field: "email", Reason: "email is required"}
	}
	if !ValidEmail(lead.Email) {
		return &ValidationError{Field: "email", Reason: "please enter a valid email address"}
	}
	if lead.Source == "" {
		return &ValidationError{Field: "source", Reason: "source is required"}
	}
	if !lead.Source.Valid() {
		return &ValidationError{Field: "source", Reason: "unknown lead source"}
	}
	if lead.EventType == "" {
		return &ValidationError{Field: "event_type", Reason: "event type is required"}
	}
	if !lead.EventType.Valid() {
		return &ValidationError{Field: "event_type", Reason: "unknown event type"}
	}
	if strings.TrimSpace(lead.PageURL) == "" {
		return &ValidationError{Field: "page_url", Reason: "page URL is required"}
	}
	return nil
}

// validateChatRequest enforces the required-field rules for chat turns.
func validateChatRequest(req ChatRequest) error {
	if strings.TrimSpace(req.SessionID) == "" {
		return &ValidationError{Field: "session_id", Reason: "session ID is required"}
	}
	if strings.TrimSpace(req.Message) == "" {
		return &ValidationError{Field: "message", Reason: "message is required"}
	}
	if strings.TrimSpace(req.PageURL) == "" {
		return &ValidationError{Field: "page_url", Reason: "page URL is required"}
	}
	if req.EventType == "" {
		return &ValidationError{Field: "event_type", Reason: "event type is required"}
	}
	return nil
}
