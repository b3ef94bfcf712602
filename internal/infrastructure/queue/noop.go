package queue

import (
	"context"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
)

// NoopEnqueuer drops notifications when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueWelcomeEmail(ctx context.Context, email, name string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueGoodbyeEmail(ctx context.Context, email, name string) error {
	return nil
}

var _ ports.NotificationEnqueuer = (*NoopEnqueuer)(nil)
