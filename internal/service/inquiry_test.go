package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
)

// stubSender records calls and optionally blocks until released.
type stubSender struct {
	id      string
	err     error
	started chan struct{}
	release chan struct{}
	calls   int32
}

func (s *stubSender) Send(ctx context.Context, to, subject, body, fromName, replyTo string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	return s.id, s.err
}

func TestDispatcher_TelLink(t *testing.T) {
	d := NewDispatcher(nil, nil)

	link, err := d.TelLink(" +234 801 234 5678 ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if link != "tel:+2348012345678" {
		t.Errorf("Expected whitespace stripped, got %q", link)
	}

	if _, err := d.TelLink("   "); err == nil {
		t.Error("Expected error for missing phone number")
	}
}

func TestDispatcher_WhatsAppLink(t *testing.T) {
	d := NewDispatcher(nil, nil)
	payload := model.InquiryPayload{
		Name:          "Ada Obi",
		Message:       "Is this still available?",
		PropertyTitle: "4 Bedroom Duplex",
	}

	link, err := d.WhatsAppLink("+234 (0) 801-234-5678", payload)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.HasPrefix(link, "https://wa.me/23408012345678?text=") {
		t.Errorf("Expected digits-only wa.me link, got %q", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("Link does not parse: %v", err)
	}
	text := parsed.Query().Get("text")
	if !strings.Contains(text, "Ada Obi") || !strings.Contains(text, "4 Bedroom Duplex") {
		t.Errorf("Expected composed message in link, got %q", text)
	}

	if _, err := d.WhatsAppLink("no digits here", payload); err == nil {
		t.Error("Expected error when number has no digits")
	}
}

func TestDispatcher_MailtoLink(t *testing.T) {
	d := NewDispatcher(nil, nil)
	payload := model.InquiryPayload{Name: "Ada", Message: "Hi", PropertyTitle: "Plot in Epe"}

	link, err := d.MailtoLink("sales@example.com", payload)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(link, "mailto:sales@example.com?") {
		t.Errorf("Unexpected mailto link %q", link)
	}

	if _, err := d.MailtoLink("", payload); err == nil {
		t.Error("Expected error for missing address")
	}
}

func TestComposeMessage_FixedOrder(t *testing.T) {
	msg := ComposeMessage(model.InquiryPayload{
		Name:          "Ada Obi",
		Phone:         "0801",
		Email:         "ada@example.com",
		Message:       "Please call me back.",
		PropertyTitle: "4 Bedroom Duplex",
		PropertySlug:  "lekki-duplex",
	})

	wantOrder := []string{
		"Hello, my name is Ada Obi.",
		"I am interested in: 4 Bedroom Duplex (lekki-duplex)",
		"Please call me back.",
		"Phone: 0801",
		"Email: ada@example.com",
	}
	last := -1
	for _, part := range wantOrder {
		idx := strings.Index(msg, part)
		if idx < 0 {
			t.Fatalf("Message missing %q:\n%s", part, msg)
		}
		if idx < last {
			t.Errorf("Part %q out of order in:\n%s", part, msg)
		}
		last = idx
	}
}

func TestDispatcher_SendEmailValidation(t *testing.T) {
	sender := &stubSender{id: "email_1"}
	d := NewDispatcher(sender, nil)

	tests := []struct {
		name string
		req  model.EmailRequest
	}{
		{"missing to", model.EmailRequest{Subject: "x", Message: "y"}},
		{"missing subject", model.EmailRequest{To: "a@b.c", Message: "y"}},
		{"missing message", model.EmailRequest{To: "a@b.c", Subject: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.SendEmail(context.Background(), tt.req)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected validation error, got %v", err)
			}
		})
	}

	if atomic.LoadInt32(&sender.calls) != 0 {
		t.Error("Provider must not be contacted on validation failure")
	}
}

func TestDispatcher_SendEmailSuccess(t *testing.T) {
	sender := &stubSender{id: "email_abc123"}
	d := NewDispatcher(sender, nil)

	result, err := d.SendEmail(context.Background(), model.EmailRequest{
		To: "sales@example.com", Subject: "Inquiry", Message: "Hello",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.ID != "email_abc123" {
		t.Errorf("Expected delivery id from provider, got %q", result.ID)
	}
	if result.Status != "sent" {
		t.Errorf("Expected status sent, got %q", result.Status)
	}
}

func TestDispatcher_SendEmailProviderError(t *testing.T) {
	sender := &stubSender{err: errors.New("provider rejected")}
	d := NewDispatcher(sender, nil)

	_, err := d.SendEmail(context.Background(), model.EmailRequest{
		To: "sales@example.com", Subject: "Inquiry", Message: "Hello",
	})
	if err == nil || !strings.Contains(err.Error(), "provider rejected") {
		t.Errorf("Expected provider error surfaced, got %v", err)
	}

	// The guard must be released after failure so a manual retry works.
	sender.err = nil
	sender.id = "email_retry"
	if _, err := d.SendEmail(context.Background(), model.EmailRequest{
		To: "sales@example.com", Subject: "Inquiry", Message: "Hello",
	}); err != nil {
		t.Errorf("Expected retry after failure to succeed, got %v", err)
	}
}

func TestDispatcher_AtMostOneInFlight(t *testing.T) {
	sender := &stubSender{
		id:      "email_1",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	d := NewDispatcher(sender, nil)

	req := model.EmailRequest{To: "sales@example.com", Subject: "Inquiry", Message: "Hello"}

	done := make(chan error, 1)
	go func() {
		_, err := d.SendEmail(context.Background(), req)
		done <- err
	}()

	<-sender.started

	if _, err := d.SendEmail(context.Background(), req); !errors.Is(err, ErrSendInFlight) {
		t.Errorf("Expected ErrSendInFlight for concurrent send, got %v", err)
	}

	close(sender.release)
	if err := <-done; err != nil {
		t.Errorf("First send should have succeeded, got %v", err)
	}

	if atomic.LoadInt32(&sender.calls) != 1 {
		t.Errorf("Expected exactly one provider call, got %d", sender.calls)
	}
}
