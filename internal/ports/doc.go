// Package ports defines the interfaces between layers. Repository and
// client ports are implemented by outbound adapters and consumed by the
// command/query/event handlers; the handlers never see a concrete
// database, broker, or SMTP connection.
package ports
