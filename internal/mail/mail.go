// Package mail composes the studio's notification emails and hands them to a
// delivery provider.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ErrNotConfigured is returned when no provider credentials are available.
var ErrNotConfigured = errors.New("mail: email delivery is not configured")

// Message is one outgoing email. At least one of Text and HTML is set.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a message and returns the provider's message id. Each call is
// exactly one delivery attempt.
type Sender interface {
	Send(ctx context.Context, m Message) (string, error)
}

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender returns a sender authenticated with apiKey, or
// ErrNotConfigured when the key is empty.
func NewResendSender(apiKey string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	return &ResendSender{client: resend.NewClient(apiKey)}, nil
}

// NewResendSenderWithClient wraps a preconfigured Resend client.
func NewResendSenderWithClient(client *resend.Client) *ResendSender {
	return &ResendSender{client: client}
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, m Message) (string, error) {
	if len(m.To) == 0 {
		return "", errors.New("send email: no recipients")
	}

	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.From,
		To:      m.To,
		ReplyTo: m.ReplyTo,
		Subject: m.Subject,
		Text:    m.Text,
		Html:    m.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("send email %q: %w", m.Subject, err)
	}
	return resp.Id, nil
}
