package notify

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

type fakeConn struct {
	subject  string
	data     []byte
	pubErr   error
	flushErr error
	closed   bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return f.pubErr
}

func (f *fakeConn) FlushWithContext(context.Context) error { return f.flushErr }
func (f *fakeConn) Close()                                 { f.closed = true }

func TestPublishEncodesEvent(t *testing.T) {
	fc := &fakeConn{}
	p := &Publisher{conn: fc, subject: "issueblog.build.completed"}
	ev := Event{
		RunID:      "run-1",
		Repository: "o/r",
		Outcome:    "success",
		Published:  2,
		Posts:      []int{2, 1},
		FinishedAt: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.Publish(context.Background(), ev))
	assert.Equal(t, "issueblog.build.completed", fc.subject)

	var got Event
	require.NoError(t, json.Unmarshal(fc.data, &got))
	assert.Equal(t, ev, got)

	p.Close()
	assert.True(t, fc.closed)
}

func TestPublishErrorsAreNotifyCategory(t *testing.T) {
	tests := []struct {
		name string
		conn *fakeConn
	}{
		{"publish", &fakeConn{pubErr: stderrors.New("connection closed")}},
		{"flush", &fakeConn{flushErr: stderrors.New("timeout")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Publisher{conn: tt.conn, subject: "s"}
			err := p.Publish(context.Background(), Event{})
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryNotify))
		})
	}
}

func TestSendDisabledWithoutURL(t *testing.T) {
	assert.NoError(t, Send(context.Background(), "", "s", Event{}))
}

func TestSendUnreachableServer(t *testing.T) {
	err := Send(context.Background(), "nats://127.0.0.1:1", "s", Event{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotify))
}
