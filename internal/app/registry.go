// Package app wires the command, query, and event handlers into a sealed
// mediator. Registration happens exactly once, at bootstrap; the request
// layer only ever dispatches.
package app

import (
	"context"
	"log/slog"

	"tasklane/internal/app/command"
	"tasklane/internal/app/event"
	"tasklane/internal/app/query"
	"tasklane/internal/domain/task"
	"tasklane/internal/domain/user"
	"tasklane/internal/mediator"
	"tasklane/internal/ports"
)

// Dependencies carries everything the handlers need. The composition root
// fills it and passes it by explicit reference; nothing is looked up from
// ambient globals at request time.
type Dependencies struct {
	Users    ports.UserRepository
	Tasks    ports.TaskRepository
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenCodec
	Broker   ports.MessageBroker
	Notifier ports.Notifier

	BrokerTopic string
	BulkWorkers int
	Logger      *slog.Logger
}

// NewMediator builds and seals the mediator with every handler registered.
func NewMediator(deps Dependencies) *mediator.Mediator {
	m := mediator.New()
	log := deps.Logger

	// Commands. The mediator itself is the publisher handed to the
	// handlers that drain entity events.
	mediator.RegisterCommand(m, command.NewCreateUserHandler(deps.Users, deps.Hasher, m, log).Handle)
	mediator.RegisterCommand(m, command.NewDeleteUserHandler(deps.Users, log).Handle)
	mediator.RegisterCommand(m, command.NewEditUserHandler(deps.Users, log).Handle)
	mediator.RegisterCommand(m, command.NewAuthenticateUserHandler(deps.Users, deps.Hasher, log).Handle)
	mediator.RegisterCommand(m, command.NewCreateAccessTokenHandler(deps.Tokens, log).Handle)
	mediator.RegisterCommand(m, command.NewCreateTaskHandler(deps.Tasks, deps.Users, m, log).Handle)
	mediator.RegisterCommand(m, command.NewCompleteTaskHandler(deps.Tasks, deps.Users, m, log).Handle)
	mediator.RegisterCommand(m, command.NewEditTaskHandler(deps.Tasks, deps.Users, m, log).Handle)
	mediator.RegisterCommand(m, command.NewDeleteTaskHandler(deps.Tasks, deps.Users, log).Handle)
	mediator.RegisterCommand(m, command.NewBulkCompleteTasksHandler(m, deps.BulkWorkers, log).Handle)

	// Queries.
	mediator.RegisterQuery(m, query.NewGetUserByOIDHandler(deps.Users, log).Handle)
	mediator.RegisterQuery(m, query.NewGetUserByEmailHandler(deps.Users, log).Handle)
	mediator.RegisterQuery(m, query.NewGetCurrentUserHandler(deps.Users, deps.Tokens, log).Handle)
	mediator.RegisterQuery(m, query.NewListTasksHandler(deps.Tasks, deps.Users, log).Handle)
	mediator.RegisterQuery(m, query.NewGetTaskByOIDHandler(deps.Tasks, deps.Users, log).Handle)

	// Events. The broker publisher consumes every kind; the welcome
	// notifier joins it on user.created, in registration order.
	bp := event.NewBrokerPublisher(deps.Broker, deps.BrokerTopic, log)
	mediator.RegisterEvent(m, func(ctx context.Context, evt user.Created) (struct{}, error) {
		return bp.Handle(ctx, evt)
	})
	mediator.RegisterEvent(m, func(ctx context.Context, evt task.Created) (struct{}, error) {
		return bp.Handle(ctx, evt)
	})
	mediator.RegisterEvent(m, func(ctx context.Context, evt task.Completed) (struct{}, error) {
		return bp.Handle(ctx, evt)
	})
	mediator.RegisterEvent(m, func(ctx context.Context, evt task.Edited) (struct{}, error) {
		return bp.Handle(ctx, evt)
	})
	mediator.RegisterEvent(m, event.NewWelcomeNotifier(deps.Notifier, log).Handle)

	m.Seal()
	return m
}
