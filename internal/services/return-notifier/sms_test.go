package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	key []byte
	v   any
}

type fakePublisher struct {
	err  error
	msgs []published
}

func (f *fakePublisher) PublishJSON(_ context.Context, key []byte, v any) error {
	f.msgs = append(f.msgs, published{key: key, v: v})
	return f.err
}

func TestKafkaSMS_PublishesJob(t *testing.T) {
	pub := &fakePublisher{}
	s := NewKafkaSMS(pub, zap.NewNop())
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.clock = func() time.Time { return now }

	mc := returns.MessageContext{returns.KeyClientName: "Ivan"}
	ok, msg := s.SendSms(context.Background(), 1, 10, returns.EventChangeReturnStatus, returns.StatusRejected, mc)
	assert.True(t, ok)
	assert.Empty(t, msg)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, []byte("10"), pub.msgs[0].key)

	job, isJob := pub.msgs[0].v.(SmsJob)
	require.True(t, isJob)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, int64(1), job.ResellerID)
	assert.Equal(t, int64(10), job.ClientID)
	assert.Equal(t, returns.EventChangeReturnStatus, job.Event)
	assert.Equal(t, 2, job.Status)
	assert.Equal(t, mc, job.Context)
	assert.Equal(t, now, job.CreatedAt)
}

func TestKafkaSMS_PublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("kafka: leader not available")}
	s := NewKafkaSMS(pub, zap.NewNop())

	ok, msg := s.SendSms(context.Background(), 1, 10, returns.EventChangeReturnStatus, returns.StatusPending, nil)
	assert.False(t, ok)
	assert.Equal(t, "kafka: leader not available", msg)
}
