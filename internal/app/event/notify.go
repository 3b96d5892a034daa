package event

import (
	"context"
	"fmt"
	"log/slog"

	"tasklane/internal/domain/user"
	"tasklane/internal/ports"
)

// WelcomeNotifier sends a welcome notification when a user registers.
// It runs next to the broker publisher on the same user.created event.
type WelcomeNotifier struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewWelcomeNotifier creates a WelcomeNotifier.
func NewWelcomeNotifier(notifier ports.Notifier, logger *slog.Logger) *WelcomeNotifier {
	return &WelcomeNotifier{notifier: notifier, logger: logger}
}

// Handle sends the welcome message to the new user's email.
func (h *WelcomeNotifier) Handle(ctx context.Context, evt user.Created) (struct{}, error) {
	subject := "Welcome to Tasklane"
	body := fmt.Sprintf("Hi %s, your account is ready.", evt.Username)

	if err := h.notifier.SendNotification(ctx, evt.Email, subject, body); err != nil {
		h.logger.ErrorContext(ctx, "failed to send welcome notification",
			slog.String("operation", "WelcomeNotifier"),
			slog.String("user_oid", evt.UserOID),
			slog.Any("error", err),
		)
		return struct{}{}, fmt.Errorf("sending welcome notification: %w", err)
	}

	return struct{}{}, nil
}
