package email

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
)

// LogMailer writes outgoing mail to the log instead of a provider.
// Swap in a real provider implementation behind ports.Mailer to send
// actual email; the queue and handlers do not change.
type LogMailer struct {
	from string
	log  zerolog.Logger
}

func NewLogMailer(from string, log zerolog.Logger) *LogMailer {
	return &LogMailer{from: from, log: log}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.log.Info().
		Str("from", m.from).
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("email (log only; configure a provider for real delivery)")
	return nil
}

var _ ports.Mailer = (*LogMailer)(nil)
