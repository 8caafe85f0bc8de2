package errutil

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gdstation/pkg/utils/logging"
	"github.com/m-mizutani/gdstation/pkg/utils/metrics"
)

// reasons that describe a bad finding rather than a fault of this service.
// They are logged but not sent to Sentry.
var unreported = map[string]struct{}{
	"malformed_input": {},
}

// HandleError logs err and sends it to Sentry tagged with its failure reason
// and the request ID of ctx.
func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}
	reason := metrics.ErrorReason(err)

	var evID *sentry.EventID
	if _, skip := unreported[reason]; !skip {
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("reason", reason)
			if reqID, ok := logging.RequestIDFrom(ctx); ok {
				scope.SetTag("request_id", string(reqID))
			}
			if goErr := goerr.Unwrap(err); goErr != nil {
				for k, v := range goErr.Values() {
					scope.SetExtra(fmt.Sprintf("%v", k), v)
				}
			}
		})
		evID = hub.CaptureException(err)
	}

	logging.From(ctx).Error(msg,
		"error", err,
		"reason", reason,
		"sentry.EventID", evID,
	)
}
