package memory

import (
	"context"
	"sync"

	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.MessageBroker = (*Broker)(nil)

// Message is one published record retained by the in-process broker.
type Message struct {
	Topic string
	Key   []byte
	Value []byte
}

// Broker retains published messages in memory. The local profile runs on
// it when Kafka is disabled, and tests use it to assert on publications.
type Broker struct {
	mu       sync.Mutex
	started  bool
	messages []Message
}

// NewBroker creates an empty Broker.
func NewBroker() *Broker {
	return &Broker{}
}

// Start implements ports.MessageBroker.
func (b *Broker) Start(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = true
	return nil
}

// Publish implements ports.MessageBroker. Key and value are copied so
// callers may reuse their buffers.
func (b *Broker) Publish(_ context.Context, topic string, key, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.messages = append(b.messages, Message{
		Topic: topic,
		Key:   append([]byte(nil), key...),
		Value: append([]byte(nil), value...),
	})
	return nil
}

// Stop implements ports.MessageBroker.
func (b *Broker) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = false
	return nil
}

// Messages returns a copy of everything published so far.
func (b *Broker) Messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Message, len(b.messages))
	copy(out, b.messages)
	return out
}
