package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
)

const (
	TypeSendWelcomeEmail = "email:welcome"
	TypeSendGoodbyeEmail = "email:goodbye"
)

// emailPayload is the JSON body of both email task types.
type emailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NotificationEnqueuer implements ports.NotificationEnqueuer on Asynq.
// Failures are logged and returned, but callers treat dispatch as
// fire-and-forget.
type NotificationEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewNotificationEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *NotificationEnqueuer {
	return &NotificationEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *NotificationEnqueuer) Close() error {
	return q.client.Close()
}

func (q *NotificationEnqueuer) EnqueueWelcomeEmail(ctx context.Context, email, name string) error {
	return q.enqueue(ctx, TypeSendWelcomeEmail, email, name)
}

func (q *NotificationEnqueuer) EnqueueGoodbyeEmail(ctx context.Context, email, name string) error {
	return q.enqueue(ctx, TypeSendGoodbyeEmail, email, name)
}

func (q *NotificationEnqueuer) enqueue(ctx context.Context, taskType, email, name string) error {
	payload, _ := json.Marshal(emailPayload{Email: email, Name: name})
	if _, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, payload)); err != nil {
		q.log.Warn().Err(err).Str("type", taskType).Str("email", email).Msg("enqueue email failed")
		return err
	}
	return nil
}

var _ ports.NotificationEnqueuer = (*NotificationEnqueuer)(nil)
