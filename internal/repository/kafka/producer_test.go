package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestProducer_PublishJSON(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "returns.notification.outcome")

	err := p.PublishJSON(context.Background(), KeyFromInt64(42), map[string]any{"ok": true})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	assert.Equal(t, []byte("42"), w.msgs[0].Key)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, true, got["ok"])
}

func TestProducer_PublishJSON_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newProducer(w, "sms.jobs")

	err := p.PublishJSON(context.Background(), nil, struct{}{})
	require.EqualError(t, err, "broker down")
}

func TestProducer_PublishJSON_MarshalError(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "sms.jobs")

	err := p.PublishJSON(context.Background(), nil, map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Empty(t, w.msgs)
}
