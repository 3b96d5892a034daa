package memory

import (
	"context"
	"sync"

	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.Notifier = (*Notifier)(nil)

// Notification is one delivered notification retained by the in-process
// notifier.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

// Notifier retains notifications in memory. It backs the "none" notifier
// kind and serves as a test fixture.
type Notifier struct {
	mu   sync.Mutex
	sent []Notification
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// SendNotification implements ports.Notifier.
func (n *Notifier) SendNotification(_ context.Context, recipient, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, Notification{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

// Sent returns a copy of everything delivered so far.
func (n *Notifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notification, len(n.sent))
	copy(out, n.sent)
	return out
}
