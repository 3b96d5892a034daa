package mediator

import (
	"context"
	"fmt"

	"tasklane/internal/domain"
)

// The typed helpers below keep handler implementations free of type
// assertions. Registration derives the kind tag from the message type's
// zero value, so a kind can never drift from the handler registered for it.

// commandFunc adapts a typed command handler func to CommandHandler.
type commandFunc[C Command, R any] struct {
	fn func(ctx context.Context, cmd C) (R, error)
}

func (h commandFunc[C, R]) Handle(ctx context.Context, cmd Command) (any, error) {
	c, ok := cmd.(C)
	if !ok {
		return nil, fmt.Errorf("mediator: command %q dispatched as %T", cmd.CommandKind(), cmd)
	}
	return h.fn(ctx, c)
}

// RegisterCommand registers a typed handler func for the command type C.
// Registering a second handler for the same kind appends it; dispatch then
// runs both in registration order.
func RegisterCommand[C Command, R any](m *Mediator, fn func(ctx context.Context, cmd C) (R, error)) {
	var zero C
	m.registerCommand(zero.CommandKind(), commandFunc[C, R]{fn: fn})
}

// queryFunc adapts a typed query handler func to QueryHandler.
type queryFunc[Q Query, R any] struct {
	fn func(ctx context.Context, q Q) (R, error)
}

func (h queryFunc[Q, R]) Handle(ctx context.Context, q Query) (any, error) {
	qq, ok := q.(Q)
	if !ok {
		return nil, fmt.Errorf("mediator: query %q dispatched as %T", q.QueryKind(), q)
	}
	return h.fn(ctx, qq)
}

// RegisterQuery registers the typed handler func for the query type Q.
// Exactly one handler per query kind; a duplicate registration panics.
func RegisterQuery[Q Query, R any](m *Mediator, fn func(ctx context.Context, q Q) (R, error)) {
	var zero Q
	m.registerQuery(zero.QueryKind(), queryFunc[Q, R]{fn: fn})
}

// eventFunc adapts a typed event handler func to EventHandler.
type eventFunc[E domain.Event, R any] struct {
	fn func(ctx context.Context, evt E) (R, error)
}

func (h eventFunc[E, R]) Handle(ctx context.Context, evt domain.Event) (any, error) {
	e, ok := evt.(E)
	if !ok {
		return nil, fmt.Errorf("mediator: event %q dispatched as %T", evt.EventKind(), evt)
	}
	return h.fn(ctx, e)
}

// RegisterEvent registers a typed handler func for the event type E.
// Any number of handlers may be registered per event kind.
func RegisterEvent[E domain.Event, R any](m *Mediator, fn func(ctx context.Context, evt E) (R, error)) {
	var zero E
	m.registerEvent(zero.EventKind(), eventFunc[E, R]{fn: fn})
}

// Send dispatches cmd and returns the first handler's result as R. It is
// the conventional path for the one-handler-per-command setup.
func Send[R any](ctx context.Context, m *Mediator, cmd Command) (R, error) {
	var zero R

	results, err := m.Send(ctx, cmd)
	if err != nil {
		return zero, err
	}

	r, ok := results[0].(R)
	if !ok {
		return zero, fmt.Errorf("mediator: command %q returned %T, want %T", cmd.CommandKind(), results[0], zero)
	}
	return r, nil
}

// Ask dispatches q and returns its handler's result as R.
func Ask[R any](ctx context.Context, m *Mediator, q Query) (R, error) {
	var zero R

	result, err := m.Ask(ctx, q)
	if err != nil {
		return zero, err
	}

	r, ok := result.(R)
	if !ok {
		return zero, fmt.Errorf("mediator: query %q returned %T, want %T", q.QueryKind(), result, zero)
	}
	return r, nil
}
