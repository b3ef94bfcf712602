package ports

import "context"

// NotificationEnqueuer schedules fire-and-forget transactional email.
// Enqueue failures are logged by implementations and must never fail
// the surrounding request.
type NotificationEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, email, name string) error
	EnqueueGoodbyeEmail(ctx context.Context, email, name string) error
}

// Mailer delivers a single message to the email provider. The sender
// address is implementation configuration.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
