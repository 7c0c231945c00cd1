package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	kafkax "github.com/NordCoder/tsreturn/internal/repository/kafka"
	"go.uber.org/zap"
)

type Processor interface {
	ProcessReturnNotification(ctx context.Context, raw map[string]any) (*returns.Outcome, error)
}

// OutcomeEvent is published for every consumed request, rejected ones included.
type OutcomeEvent struct {
	Key         string           `json:"key"`
	Outcome     *returns.Outcome `json:"outcome,omitempty"`
	Error       string           `json:"error,omitempty"`
	ProcessedAt time.Time        `json:"processed_at"`
}

type Controller struct {
	Log *zap.Logger
	Sub *kafkax.Consumer
	Pub jsonPublisher
	UC  Processor
}

func (c *Controller) Run(ctx context.Context) error {
	return c.Sub.Consume(ctx, kafkax.JSONHandler(c.handle, c.reject))
}

// handle returns only infrastructure errors; the consumer redelivers those.
func (c *Controller) handle(ctx context.Context, key []byte, payload map[string]any) error {
	out, err := c.UC.ProcessReturnNotification(ctx, payload)
	if err != nil {
		if !isRequestError(err) {
			return err
		}
		return c.reject(ctx, key, err)
	}
	c.publish(ctx, OutcomeEvent{Key: string(key), Outcome: out, ProcessedAt: time.Now().UTC()})
	return nil
}

func (c *Controller) reject(ctx context.Context, key []byte, err error) error {
	c.Log.Warn("return notification rejected", zap.ByteString("key", key), zap.Error(err))
	c.publish(ctx, OutcomeEvent{Key: string(key), Error: err.Error(), ProcessedAt: time.Now().UTC()})
	return nil
}

func (c *Controller) publish(ctx context.Context, ev OutcomeEvent) {
	if c.Pub == nil {
		return
	}
	if err := c.Pub.PublishJSON(ctx, []byte(ev.Key), ev); err != nil {
		c.Log.Warn("publish outcome", zap.Error(err))
	}
}

// isRequestError reports errors caused by the request itself; retrying them is pointless.
func isRequestError(err error) bool {
	return errors.Is(err, kafkax.ErrMalformedPayload) ||
		errors.Is(err, returns.ErrValidation) ||
		errors.Is(err, returns.ErrNotFound) ||
		errors.Is(err, returns.ErrNotCustomer) ||
		errors.Is(err, returns.ErrInvalidDifferences)
}
