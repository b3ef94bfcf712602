package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
)

// Worker runs the Asynq handlers that turn queued email tasks into
// Mailer deliveries. A delivery failure is retried by Asynq and can
// never affect the request that enqueued it.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	mailer ports.Mailer
	log    zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run()
// to start.
func NewWorker(redisOpt asynq.RedisClientOpt, mailer ports.Mailer, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, mailer: mailer, log: log}
	mux.HandleFunc(TypeSendWelcomeEmail, w.handleSendWelcome)
	mux.HandleFunc(TypeSendGoodbyeEmail, w.handleSendGoodbye)
	return w
}

func (w *Worker) handleSendWelcome(ctx context.Context, t *asynq.Task) error {
	var p emailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("welcome email task payload invalid")
		return err
	}
	return w.mailer.Send(ctx, p.Email,
		"Thanks for joining!",
		fmt.Sprintf("Welcome to the app, %s. Let us know how you like it.", p.Name))
}

func (w *Worker) handleSendGoodbye(ctx context.Context, t *asynq.Task) error {
	var p emailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("goodbye email task payload invalid")
		return err
	}
	return w.mailer.Send(ctx, p.Email,
		"Sorry to see you go",
		fmt.Sprintf("Goodbye, %s. We hope you return soon!", p.Name))
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
