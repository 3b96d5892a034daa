package ports

import (
	"context"
	"time"
)

// MessageBroker publishes serialized domain events to a topic. Only event
// handlers talk to it; command and query handlers never do.
type MessageBroker interface {
	// Start establishes the connection. Called once during bootstrap.
	Start(ctx context.Context) error

	// Publish sends one message. The key selects the partition.
	Publish(ctx context.Context, topic string, key, value []byte) error

	// Stop flushes and closes the connection.
	Stop() error
}

// Notifier delivers a human-readable notification to a recipient.
type Notifier interface {
	SendNotification(ctx context.Context, recipient, subject, body string) error
}

// TokenCodec signs and verifies access tokens.
type TokenCodec interface {
	// Encode produces a signed token carrying the claims, expiring after ttl.
	Encode(claims map[string]any, ttl time.Duration) (string, error)

	// Decode verifies the token's signature and expiry and returns its
	// claims. Invalid or expired tokens return an error wrapping
	// domain.ErrUnauthorized.
	Decode(token string) (map[string]any, error)
}

// PasswordHasher hashes raw passwords and verifies them against stored
// hashes with a constant-time comparison.
type PasswordHasher interface {
	Hash(raw string) (string, error)

	// Verify returns nil when raw matches hash, and an error wrapping
	// domain.ErrUnauthorized otherwise.
	Verify(raw, hash string) error
}
