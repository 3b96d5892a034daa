package user

import "tasklane/internal/domain"

// KindCreated tags the event emitted when a user account is registered.
const KindCreated = "user.created"

// Created is emitted by the New factory once per registration.
type Created struct {
	domain.EventMeta

	UserOID  string `json:"user_oid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// EventKind implements domain.Event.
func (Created) EventKind() string { return KindCreated }
