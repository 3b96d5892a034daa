// Package mediator routes typed messages to their registered handlers.
// Three message kinds get three delivery contracts: commands and queries
// require a registered handler and fail with ErrHandlerNotRegistered
// otherwise, while events fan out to zero or more handlers.
//
// Registries are keyed by the stable kind tag each message declares
// (CommandKind, QueryKind, EventKind) and are populated once at bootstrap.
// After Seal they are read-only, so concurrent dispatch during request
// processing needs no locking.
package mediator

import (
	"context"
	"errors"
	"fmt"

	"tasklane/internal/domain"
)

// ErrHandlerNotRegistered is returned when a command or query arrives
// with no handler for its kind. This is a programming error in the
// bootstrap wiring, not a user-facing condition.
var ErrHandlerNotRegistered = errors.New("mediator: handler not registered")

// errSealed is the panic value for registrations after Seal.
var errSealed = errors.New("mediator: registration after seal")

// Command expresses intent to change state. Dispatched to the handlers
// registered for its kind; conventionally exactly one.
type Command interface {
	CommandKind() string
}

// Query expresses intent to read state. Dispatched to exactly one handler.
type Query interface {
	QueryKind() string
}

// CommandHandler handles one command kind. Registered through
// RegisterCommand, which also adapts typed handler funcs.
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) (any, error)
}

// QueryHandler handles one query kind.
type QueryHandler interface {
	Handle(ctx context.Context, q Query) (any, error)
}

// EventHandler consumes a published domain event. Multiple handlers per
// kind are invoked in registration order.
type EventHandler interface {
	Handle(ctx context.Context, evt domain.Event) (any, error)
}

// Publisher is the slice of the mediator that command handlers depend on
// to publish entity-pulled events without seeing the full dispatch API.
type Publisher interface {
	Publish(ctx context.Context, events ...domain.Event) ([]any, error)
}

// Mediator holds the three handler registries and the dispatch logic.
// It carries no business logic.
type Mediator struct {
	commands map[string][]CommandHandler
	queries  map[string]QueryHandler
	events   map[string][]EventHandler
	sealed   bool
}

// New creates an empty Mediator ready for registration.
func New() *Mediator {
	return &Mediator{
		commands: make(map[string][]CommandHandler),
		queries:  make(map[string]QueryHandler),
		events:   make(map[string][]EventHandler),
	}
}

// Seal marks the end of bootstrap. Any registration afterwards panics,
// which keeps the registries safe for lock-free concurrent reads.
func (m *Mediator) Seal() {
	m.sealed = true
}

// Send dispatches a command to its registered handlers in registration
// order and returns their results. At least one handler must be
// registered; conventionally there is exactly one and its result is
// results[0] (see the typed Send helper).
func (m *Mediator) Send(ctx context.Context, cmd Command) ([]any, error) {
	handlers := m.commands[cmd.CommandKind()]
	if len(handlers) == 0 {
		return nil, fmt.Errorf("%w: command %q", ErrHandlerNotRegistered, cmd.CommandKind())
	}

	results := make([]any, 0, len(handlers))
	for _, h := range handlers {
		res, err := h.Handle(ctx, cmd)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Ask dispatches a query to its single registered handler and returns the
// handler's result directly.
func (m *Mediator) Ask(ctx context.Context, q Query) (any, error) {
	h, ok := m.queries[q.QueryKind()]
	if !ok {
		return nil, fmt.Errorf("%w: query %q", ErrHandlerNotRegistered, q.QueryKind())
	}
	return h.Handle(ctx, q)
}

// Publish delivers each event to every handler registered for its kind,
// in registration order, and collects the results. Events with no
// handlers are skipped silently. The first handler error aborts
// publication and is returned.
func (m *Mediator) Publish(ctx context.Context, events ...domain.Event) ([]any, error) {
	var results []any
	for _, evt := range events {
		for _, h := range m.events[evt.EventKind()] {
			res, err := h.Handle(ctx, evt)
			if err != nil {
				return results, err
			}
			results = append(results, res)
		}
	}
	return results, nil
}

func (m *Mediator) registerCommand(kind string, h CommandHandler) {
	if m.sealed {
		panic(errSealed)
	}
	m.commands[kind] = append(m.commands[kind], h)
}

func (m *Mediator) registerQuery(kind string, h QueryHandler) {
	if m.sealed {
		panic(errSealed)
	}
	if _, exists := m.queries[kind]; exists {
		panic(fmt.Errorf("mediator: query %q registered twice", kind))
	}
	m.queries[kind] = h
}

func (m *Mediator) registerEvent(kind string, h EventHandler) {
	if m.sealed {
		panic(errSealed)
	}
	m.events[kind] = append(m.events[kind], h)
}
