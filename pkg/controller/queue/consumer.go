package queue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/utils/errutil"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
	"github.com/m-mizutani/gdstation/pkg/utils/metrics"
)

// Consumer feeds findings from a queue to the use case, one at a time.
type Consumer struct {
	queue      interfaces.FindingQueue
	uc         interfaces.UseCase
	errorPause time.Duration
}

type Option func(*Consumer)

// WithErrorPause sets the wait after the queue itself failed.
func WithErrorPause(d time.Duration) Option {
	return func(x *Consumer) {
		x.errorPause = d
	}
}

func New(queue interfaces.FindingQueue, uc interfaces.UseCase, options ...Option) *Consumer {
	x := &Consumer{
		queue:      queue,
		uc:         uc,
		errorPause: time.Second,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

// Run processes messages until ctx is cancelled. Failed findings are reported
// and skipped.
func (x *Consumer) Run(ctx context.Context) error {
	logging.From(ctx).Info("start consuming findings")

	for {
		if ctx.Err() != nil {
			return nil
		}

		msg, err := x.queue.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			metrics.QueueMessagesTotal.WithLabelValues("queue_error").Inc()
			errutil.HandleError(ctx, "failed to pop finding", err)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(x.errorPause):
			}
			continue
		}
		if msg == nil {
			continue
		}

		x.handle(ctx, msg)
	}
}

func (x *Consumer) handle(ctx context.Context, msg []byte) {
	reqID, ctx := logging.CtxRequestID(ctx)
	ctx = logging.With(ctx, logging.From(ctx).With(slog.String("request_id", string(reqID))))

	finding, err := model.ParseFinding(msg)
	if err != nil {
		metrics.QueueMessagesTotal.WithLabelValues("malformed").Inc()
		errutil.HandleError(ctx, "dropped malformed message", goerr.Wrap(err, "invalid message", goerr.V("size", len(msg))))
		return
	}

	// a popped message is gone from the queue, so shutdown must not cut its write
	report, err := x.uc.HandleFinding(logging.DetachContext(ctx), finding)
	if err != nil {
		result := "failed"
		if errors.Is(err, types.ErrMalformedInput) {
			result = "malformed"
		}
		metrics.QueueMessagesTotal.WithLabelValues(result).Inc()
		errutil.HandleError(ctx, "failed to handle finding", err)
		return
	}

	metrics.QueueMessagesTotal.WithLabelValues("done").Inc()
	logging.From(ctx).Info("finding handled",
		slog.String("report_id", report.ID.String()),
		slog.String("external_id", report.ExternalID.String()),
	)
}
