package mediator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasklane/internal/domain"
	"tasklane/internal/mediator"
)

type pingCmd struct{ Value string }

func (pingCmd) CommandKind() string { return "test.ping" }

type otherCmd struct{}

func (otherCmd) CommandKind() string { return "test.other" }

type lookupQuery struct{ Key string }

func (lookupQuery) QueryKind() string { return "test.lookup" }

type missingQuery struct{}

func (missingQuery) QueryKind() string { return "test.missing" }

type thingHappened struct {
	domain.EventMeta

	Detail string
}

func (thingHappened) EventKind() string { return "test.thing_happened" }

type unheardEvent struct {
	domain.EventMeta
}

func (unheardEvent) EventKind() string { return "test.unheard" }

func newEvent(detail string) thingHappened {
	return thingHappened{EventMeta: domain.NewEventMeta(), Detail: detail}
}

func TestSend_DispatchesToRegisteredHandler(t *testing.T) {
	t.Parallel()

	m := mediator.New()
	mediator.RegisterCommand(m, func(_ context.Context, cmd pingCmd) (string, error) {
		return "pong:" + cmd.Value, nil
	})
	m.Seal()

	got, err := mediator.Send[string](context.Background(), m, pingCmd{Value: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "pong:1" {
		t.Errorf("result = %q, want %q", got, "pong:1")
	}
}

func TestSend_NoHandlerRegistered(t *testing.T) {
	t.Parallel()

	m := mediator.New()
	mediator.RegisterCommand(m, func(_ context.Context, _ pingCmd) (string, error) {
		return "", nil
	})
	m.Seal()

	_, err := m.Send(context.Background(), otherCmd{})
	if !errors.Is(err, mediator.ErrHandlerNotRegistered) {
		t.Errorf("error = %v, want ErrHandlerNotRegistered", err)
	}
}

func TestSend_MultipleHandlersRunInRegistrationOrder(t *testing.T) {
	t.Parallel()

	m := mediator.New()
	mediator.RegisterCommand(m, func(_ context.Context, _ pingCmd) (string, error) {
		return "first", nil
	})
	mediator.RegisterCommand(m, func(_ context.Context, _ pingCmd) (string, error) {
		return "second", nil
	})
	m.Seal()

	results, err := m.Send(context.Background(), pingCmd{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0] != "first" || results[1] != "second" {
		t.Errorf("results = %v, want [first second]", results)
	}
}

func TestSend_HandlerErrorAbortsDispatch(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	secondCalled := false

	m := mediator.New()
	mediator.RegisterCommand(m, func(_ context.Context, _ pingCmd) (string, error) {
		return "", boom
	})
	mediator.RegisterCommand(m, func(_ context.Context, _ pingCmd) (string, error) {
		secondCalled = true
		return "", nil
	})
	m.Seal()

	_, err := m.Send(context.Background(), pingCmd{})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
	if secondCalled {
		t.Error("second handler ran after the first failed")
	}
}

func TestAsk_ReturnsHandlerResultDirectly(t *testing.T) {
	t.Parallel()

	m := mediator.New()
	mediator.RegisterQuery(m, func(_ context.Context, q lookupQuery) (int, error) {
		return len(q.Key), nil
	})
	m.Seal()

	got, err := mediator.Ask[int](context.Background(), m, lookupQuery{Key: "abcd"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("result = %d, want 4", got)
	}
}

func TestAsk_NoHandlerRegistered(t *testing.T) {
	t.Parallel()

	m := mediator.New()
	m.Seal()

	_, err := m.Ask(context.Background(), missingQuery{})
	if !errors.Is(err, mediator.ErrHandlerNotRegistered) {
		t.Errorf("error = %v, want ErrHandlerNotRegistered", err)
	}
}

func TestRegisterQuery_DuplicatePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate query registration")
		}
	}()

	m := mediator.New()
	mediator.RegisterQuery(m, func(_ context.Context, _ lookupQuery) (int, error) { return 0, nil })
	mediator.RegisterQuery(m, func(_ context.Context, _ lookupQuery) (int, error) { return 0, nil })
}

func TestPublish_FansOutInRegistrationOrder(t *testing.T) {
	t.Parallel()

	var order []string

	m := mediator.New()
	mediator.RegisterEvent(m, func(_ context.Context, _ thingHappened) (struct{}, error) {
		order = append(order, "a")
		return struct{}{}, nil
	})
	mediator.RegisterEvent(m, func(_ context.Context, _ thingHappened) (struct{}, error) {
		order = append(order, "b")
		return struct{}{}, nil
	})
	m.Seal()

	results, err := m.Publish(context.Background(), newEvent("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("handler order = %v, want [a b]", order)
	}
}

func TestPublish_NoHandlersIsSilentNoOp(t *testing.T) {
	t.Parallel()

	m := mediator.New()
	m.Seal()

	results, err := m.Publish(context.Background(), unheardEvent{EventMeta: domain.NewEventMeta()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestPublish_MultipleEventsInOrder(t *testing.T) {
	t.Parallel()

	var seen []string

	m := mediator.New()
	mediator.RegisterEvent(m, func(_ context.Context, evt thingHappened) (struct{}, error) {
		seen = append(seen, evt.Detail)
		return struct{}{}, nil
	})
	m.Seal()

	_, err := m.Publish(context.Background(), newEvent("1"), newEvent("2"), newEvent("3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 3 || seen[0] != "1" || seen[2] != "3" {
		t.Errorf("delivery order = %v, want [1 2 3]", seen)
	}
}

func TestPublish_FirstHandlerErrorAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("broker down")

	m := mediator.New()
	mediator.RegisterEvent(m, func(_ context.Context, _ thingHappened) (struct{}, error) {
		return struct{}{}, nil
	})
	mediator.RegisterEvent(m, func(_ context.Context, _ thingHappened) (struct{}, error) {
		return struct{}{}, boom
	})
	m.Seal()

	results, err := m.Publish(context.Background(), newEvent("x"))
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
	// The result of the handler that succeeded before the failure survives.
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestRegisterAfterSealPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		register func(m *mediator.Mediator)
	}{
		{name: "Command", register: func(m *mediator.Mediator) {
			mediator.RegisterCommand(m, func(_ context.Context, _ pingCmd) (string, error) { return "", nil })
		}},
		{name: "Query", register: func(m *mediator.Mediator) {
			mediator.RegisterQuery(m, func(_ context.Context, _ lookupQuery) (int, error) { return 0, nil })
		}},
		{name: "Event", register: func(m *mediator.Mediator) {
			mediator.RegisterEvent(m, func(_ context.Context, _ thingHappened) (struct{}, error) { return struct{}{}, nil })
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic on registration after Seal")
				}
			}()

			m := mediator.New()
			m.Seal()
			tt.register(m)
		})
	}
}

func TestTypedSend_WrongResultType(t *testing.T) {
	t.Parallel()

	m := mediator.New()
	mediator.RegisterCommand(m, func(_ context.Context, _ pingCmd) (string, error) {
		return "pong", nil
	})
	m.Seal()

	_, err := mediator.Send[time.Duration](context.Background(), m, pingCmd{})
	if err == nil {
		t.Error("expected type mismatch error")
	}
}

func TestConcurrentDispatchAfterSeal(t *testing.T) {
	t.Parallel()

	m := mediator.New()
	mediator.RegisterCommand(m, func(_ context.Context, cmd pingCmd) (string, error) {
		return cmd.Value, nil
	})
	mediator.RegisterQuery(m, func(_ context.Context, q lookupQuery) (int, error) {
		return len(q.Key), nil
	})
	m.Seal()

	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			if _, err := mediator.Send[string](context.Background(), m, pingCmd{Value: "v"}); err != nil {
				t.Errorf("Send: %v", err)
			}
			if _, err := mediator.Ask[int](context.Background(), m, lookupQuery{Key: "k"}); err != nil {
				t.Errorf("Ask: %v", err)
			}
		}()
	}
	for i := 0; i < 20; i++ {
		<-done
	}
}
