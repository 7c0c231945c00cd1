package notifier

import (
	"context"
	"time"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	kafkax "github.com/NordCoder/tsreturn/internal/repository/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ returns.SmsNotifier = (*KafkaSMS)(nil)

type jsonPublisher interface {
	PublishJSON(ctx context.Context, key []byte, v any) error
}

// SmsJob is the message consumed by the SMS gateway.
type SmsJob struct {
	ID         string                 `json:"id"`
	ResellerID int64                  `json:"reseller_id"`
	ClientID   int64                  `json:"client_id"`
	Event      string                 `json:"event"`
	Status     int                    `json:"status"`
	Context    returns.MessageContext `json:"context"`
	CreatedAt  time.Time              `json:"created_at"`
}

// KafkaSMS hands SMS jobs to the gateway topic. A job counts as sent once the
// broker has acknowledged it.
type KafkaSMS struct {
	pub   jsonPublisher
	log   *zap.Logger
	clock func() time.Time
}

func NewKafkaSMS(pub jsonPublisher, log *zap.Logger) *KafkaSMS {
	if log == nil {
		log = zap.L()
	}
	return &KafkaSMS{
		pub:   pub,
		log:   log.With(zap.String("component", "return-notifier.sms")),
		clock: func() time.Time { return time.Now().UTC() },
	}
}

func (s *KafkaSMS) SendSms(
	ctx context.Context,
	resellerID, clientID int64,
	event string,
	status returns.Status,
	mc returns.MessageContext,
) (bool, string) {
	job := SmsJob{
		ID:         uuid.NewString(),
		ResellerID: resellerID,
		ClientID:   clientID,
		Event:      event,
		Status:     int(status),
		Context:    mc,
		CreatedAt:  s.clock(),
	}
	if err := s.pub.PublishJSON(ctx, kafkax.KeyFromInt64(clientID), job); err != nil {
		s.log.Warn("sms job publish failed", zap.String("job_id", job.ID), zap.Error(err))
		return false, err.Error()
	}
	s.log.Debug("sms job published", zap.String("job_id", job.ID), zap.Int64("client_id", clientID))
	return true, ""
}
