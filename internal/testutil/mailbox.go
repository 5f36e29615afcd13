package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/psxcreative/engine/internal/mail"
)

// Mailbox is an in-memory mail.Sender. Fail, when set, decides per message
// whether delivery fails.
type Mailbox struct {
	Fail func(mail.Message) error

	mu   sync.Mutex
	sent []mail.Message
}

// Send records m and returns a sequential id.
func (b *Mailbox) Send(_ context.Context, m mail.Message) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Fail != nil {
		if err := b.Fail(m); err != nil {
			return "", err
		}
	}
	b.sent = append(b.sent, m)
	return fmt.Sprintf("email-%d", len(b.sent)), nil
}

// Sent returns the delivered messages in order.
func (b *Mailbox) Sent() []mail.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]mail.Message(nil), b.sent...)
}
