package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
)

// Inquiry channels.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelCall     = "call"
	ChannelMailto   = "mailto"
	ChannelEmail    = "email"
)

// ErrSendInFlight is returned when an email send is attempted while a
// previous one has not settled yet. The caller re-submits manually.
var ErrSendInFlight = errors.New("an email send is already in flight")

// ValidationError reports missing required inquiry data. It is detected
// before any network call and never retried automatically.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

// EmailSender delivers a composed email and returns the provider's
// delivery identifier.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body, fromName, replyTo string) (string, error)
}

// InquiryLogger persists dispatched inquiries. Implementations may be
// absent entirely; the dispatcher treats a nil logger as a no-op.
type InquiryLogger interface {
	LogInquiry(ctx context.Context, rec model.InquiryLog) error
}

// Dispatcher translates a user-chosen contact channel into an external
// action: a tel:/wa.me/mailto: deep link, or a provider email send. Link
// composition is pure; only the email branch has real failure modes.
type Dispatcher struct {
	sender  EmailSender
	logger  InquiryLogger
	sending atomic.Bool
}

// NewDispatcher creates an inquiry dispatcher. logger may be nil.
func NewDispatcher(sender EmailSender, logger InquiryLogger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger}
}

// TelLink builds a telephone URI from the company phone number, stripping
// whitespace. Errors only when no number is configured.
func (d *Dispatcher) TelLink(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", &ValidationError{Field: "phone"}
	}
	return "tel:" + strings.Join(strings.Fields(phone), ""), nil
}

// WhatsAppLink builds a messaging deep link carrying the composed inquiry
// message. All non-digit characters are stripped from the number.
func (d *Dispatcher) WhatsAppLink(phone string, payload model.InquiryPayload) (string, error) {
	digits := digitsOnly(phone)
	if digits == "" {
		return "", &ValidationError{Field: "phone"}
	}
	message := ComposeMessage(payload)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message), nil
}

// MailtoLink builds the client-side mailto fallback, distinct from the
// provider send path.
func (d *Dispatcher) MailtoLink(to string, payload model.InquiryPayload) (string, error) {
	if strings.TrimSpace(to) == "" {
		return "", &ValidationError{Field: "email"}
	}
	query := url.Values{}
	query.Set("subject", ComposeSubject(payload))
	query.Set("body", ComposeMessage(payload))
	return "mailto:" + to + "?" + query.Encode(), nil
}

// SendEmail validates the request and forwards it to the mail provider.
// At most one send may be in flight per dispatcher; a concurrent attempt
// fails with ErrSendInFlight rather than issuing a duplicate request.
// Once issued, the send runs to completion or failure; there is no
// cancellation and no timeout beyond the transport's own.
func (d *Dispatcher) SendEmail(ctx context.Context, req model.EmailRequest) (*model.SendResult, error) {
	if err := validateEmailRequest(req); err != nil {
		return nil, err
	}
	if !d.sending.CompareAndSwap(false, true) {
		return nil, ErrSendInFlight
	}
	defer d.sending.Store(false)

	start := time.Now()
	deliveryID, err := d.sender.Send(ctx, req.To, req.Subject, req.Message, req.FromName, req.FromEmail)
	if err != nil {
		return nil, err
	}

	d.logInquiry(model.InquiryLog{
		ID:         uuid.NewString(),
		Channel:    ChannelEmail,
		Recipient:  req.To,
		Subject:    req.Subject,
		DeliveryID: deliveryID,
		TookMs:     time.Since(start).Milliseconds(),
	})

	return &model.SendResult{ID: deliveryID, Status: "sent"}, nil
}

// logInquiry records the dispatch without blocking the caller. Failures
// are logged and swallowed; the log is best-effort bookkeeping.
func (d *Dispatcher) logInquiry(rec model.InquiryLog) {
	if d.logger == nil {
		return
	}
	go func() {
		if err := d.logger.LogInquiry(context.Background(), rec); err != nil {
			log.Printf("Warning: failed to log inquiry %s: %v", rec.ID, err)
		}
	}()
}

// ComposeMessage assembles the free-text inquiry message from payload
// fields in a fixed, human-readable order.
func ComposeMessage(p model.InquiryPayload) string {
	var b strings.Builder
	if p.Name != "" {
		fmt.Fprintf(&b, "Hello, my name is %s.\n", p.Name)
	} else {
		b.WriteString("Hello,\n")
	}
	if p.PropertyTitle != "" {
		fmt.Fprintf(&b, "I am interested in: %s", p.PropertyTitle)
		if p.PropertySlug != "" {
			fmt.Fprintf(&b, " (%s)", p.PropertySlug)
		}
		b.WriteString("\n")
	}
	if p.Message != "" {
		b.WriteString(p.Message)
		b.WriteString("\n")
	}
	if p.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", p.Phone)
	}
	if p.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", p.Email)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ComposeSubject builds the email subject line for an inquiry.
func ComposeSubject(p model.InquiryPayload) string {
	if p.PropertyTitle != "" {
		return "Property inquiry: " + p.PropertyTitle
	}
	return "New property inquiry"
}

func validateEmailRequest(req model.EmailRequest) error {
	if strings.TrimSpace(req.To) == "" {
		return &ValidationError{Field: "to"}
	}
	if strings.TrimSpace(req.Subject) == "" {
		return &ValidationError{Field: "subject"}
	}
	if strings.TrimSpace(req.Message) == "" {
		return &ValidationError{Field: "message"}
	}
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
