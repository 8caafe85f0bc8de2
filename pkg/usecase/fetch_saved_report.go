package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

// FetchSavedReport looks the report up until Station returns it, at most
// attempts times with interval between them. It returns nil if the report
// could not be fetched; lookup errors count as failed attempts.
func FetchSavedReport(ctx context.Context, station interfaces.Station, externalID types.ExternalID, attempts int, interval time.Duration) *model.Report {
	logger := logging.From(ctx).With(slog.String("external_id", externalID.String()))
	if attempts < 1 {
		attempts = 1
	}

	var policy backoff.BackOff = backoff.NewConstantBackOff(interval)
	policy = backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx)

	var saved *model.Report
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		report, err := station.GetReport(ctx, externalID)
		if err != nil {
			logger.Warn("failed to fetch saved report", slog.Int("attempt", attempt), slog.Any("error", err))
			return err
		}
		if report == nil {
			logger.Debug("saved report not found yet", slog.Int("attempt", attempt))
			return goerr.New("saved report not found")
		}
		saved = report
		return nil
	}, policy)

	if err != nil {
		logger.Error("gave up fetching saved report", slog.Int("attempts", attempt), slog.Any("error", err))
		return nil
	}
	return saved
}
