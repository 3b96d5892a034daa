// Package smtp delivers notifications as plain-text email over an
// authenticated SMTP connection.
package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.Notifier = (*Notifier)(nil)

// Notifier sends mail through a single SMTP relay. The configured
// username doubles as the From address.
type Notifier struct {
	host     string
	port     int
	username string
	password string
}

// NewNotifier creates a Notifier for the given relay.
func NewNotifier(host string, port int, username, password string) *Notifier {
	return &Notifier{host: host, port: port, username: username, password: password}
}

// SendNotification implements ports.Notifier. The context deadline is not
// propagated into the SMTP dial; callers should keep bodies small and
// rely on the relay's own timeouts.
func (n *Notifier) SendNotification(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.username)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	auth := smtp.PlainAuth("", n.username, n.password, n.host)

	if err := smtp.SendMail(addr, auth, n.username, []string{recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("sending mail to %s: %w", recipient, err)
	}
	return nil
}
