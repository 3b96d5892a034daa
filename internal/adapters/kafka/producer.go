// Package kafka implements the message broker port over a kafka-go
// writer.
package kafka

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/segmentio/kafka-go"

	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.MessageBroker = (*Producer)(nil)

// Producer wraps a kafka.Writer for publishing event envelopes. Messages
// route by the topic set per message, so one producer serves all topics.
type Producer struct {
	brokers []string
	w       *kafka.Writer
}

// NewProducer creates a producer for the given broker addresses. The
// writer is created in Start so a constructed-but-unstarted producer
// holds no connection.
func NewProducer(brokers []string) *Producer {
	return &Producer{brokers: brokers}
}

// Start implements ports.MessageBroker. It creates the writer and
// verifies at least one broker is reachable.
func (p *Producer) Start(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no broker addresses configured")
	}

	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("dialing broker %s: %w", p.brokers[0], err)
	}
	_ = conn.Close()

	p.w = &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return nil
}

// Publish implements ports.MessageBroker. The key selects the partition.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if p.w == nil {
		return fmt.Errorf("producer not started")
	}

	err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("writing message to %s: %w", topic, err)
	}
	return nil
}

// Stop implements ports.MessageBroker. It flushes and closes the writer.
func (p *Producer) Stop() error {
	if p.w == nil {
		return nil
	}
	return p.w.Close()
}

// Name implements ports.HealthChecker.
func (p *Producer) Name() string { return "kafka" }

// HealthCheck implements ports.HealthChecker by dialing the first broker.
func (p *Producer) HealthCheck(ctx context.Context) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("broker unreachable: %w", err)
	}
	return conn.Close()
}
