// Package notify announces finished builds on a NATS subject.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
)

const connectTimeout = 5 * time.Second

// Event is the JSON payload published after a successful build.
type Event struct {
	RunID      string    `json:"run_id"`
	Repository string    `json:"repository"`
	Label      string    `json:"label"`
	Outcome    string    `json:"outcome"`
	Published  int       `json:"published"`
	Skipped    int       `json:"skipped"`
	Posts      []int     `json:"posts"`
	Files      []string  `json:"files"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
}

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// Publisher sends build events to one subject.
type Publisher struct {
	conn    conn
	subject string
}

// Connect dials url and returns a publisher for subject.
func Connect(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("issueblog"),
		nats.Timeout(connectTimeout),
		nats.NoReconnect())
	if err != nil {
		return nil, errors.NotifyError("failed to connect to NATS").
			WithCause(err).
			WithContext("url", url).
			Build()
	}
	slog.Debug("NATS connected", logfields.URL(url), logfields.Subject(subject))
	return &Publisher{conn: nc, subject: subject}, nil
}

// Publish encodes ev and waits until the server has it.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.InternalError("failed to encode build event").WithCause(err).Build()
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return errors.NotifyError("failed to publish build event").
			WithCause(err).
			WithContext("subject", p.subject).
			Build()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return errors.NotifyError("failed to flush build event").
			WithCause(err).
			WithContext("subject", p.subject).
			Build()
	}
	slog.Info("Build event published", logfields.Subject(p.subject), logfields.RunID(ev.RunID))
	return nil
}

// Close drops the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// Send connects, publishes ev and disconnects. An empty url disables it.
// Failures are logged at warn and returned so callers can record them, but
// they never fail a build.
func Send(ctx context.Context, url, subject string, ev Event) error {
	if url == "" {
		return nil
	}
	p, err := Connect(url, subject)
	if err != nil {
		slog.Warn("Build notification skipped", logfields.URL(url), logfields.Error(err))
		return err
	}
	defer p.Close()

	if err := p.Publish(ctx, ev); err != nil {
		slog.Warn("Build notification failed", logfields.Subject(subject), logfields.Error(err))
		return err
	}
	return nil
}
