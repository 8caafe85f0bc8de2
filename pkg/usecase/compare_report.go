package usecase

import (
	"context"
	"log/slog"
	"slices"

	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

// DefaultIgnoredAttributes are assigned by Station and differ between the
// written and the saved report by nature.
var DefaultIgnoredAttributes = []string{"id", "created", "updated"}

type reportAttribute struct {
	name  string
	equal func(a, b *model.Report) bool
	value func(r *model.Report) any
}

var reportAttributes = []reportAttribute{
	{
		name:  "id",
		equal: func(a, b *model.Report) bool { return a.ID == b.ID },
		value: func(r *model.Report) any { return r.ID },
	},
	{
		name:  "title",
		equal: func(a, b *model.Report) bool { return a.Title == b.Title },
		value: func(r *model.Report) any { return r.Title },
	},
	{
		name:  "reportBody",
		equal: func(a, b *model.Report) bool { return a.Body == b.Body },
		value: func(r *model.Report) any { return r.Body },
	},
	{
		// ISO-8601 text on the written side, epoch millis on the saved side
		name:  "timeBegan",
		equal: func(a, b *model.Report) bool { return a.TimeBegan.Equal(b.TimeBegan) },
		value: func(r *model.Report) any { return r.TimeBegan.String() },
	},
	{
		name:  "externalUrl",
		equal: func(a, b *model.Report) bool { return a.ExternalURL == b.ExternalURL },
		value: func(r *model.Report) any { return r.ExternalURL },
	},
	{
		name:  "externalTrackingId",
		equal: func(a, b *model.Report) bool { return a.ExternalID == b.ExternalID },
		value: func(r *model.Report) any { return r.ExternalID },
	},
	{
		name:  "enclaveIds",
		equal: func(a, b *model.Report) bool { return model.SameEnclaves(a.EnclaveIDs, b.EnclaveIDs) },
		value: func(r *model.Report) any { return r.EnclaveIDs },
	},
	{
		name:  "distributionType",
		equal: func(a, b *model.Report) bool { return a.DistributionType == b.DistributionType },
		value: func(r *model.Report) any { return r.DistributionType },
	},
	{
		name:  "created",
		equal: func(a, b *model.Report) bool { return a.Created == b.Created },
		value: func(r *model.Report) any { return r.Created },
	},
	{
		name:  "updated",
		equal: func(a, b *model.Report) bool { return a.Updated == b.Updated },
		value: func(r *model.Report) any { return r.Updated },
	},
}

// CompareReports logs every attribute that differs between the upserted and
// the saved report and returns whether all of them are equal. Attributes in
// ignore are skipped; DefaultIgnoredAttributes is used if none are given.
func CompareReports(ctx context.Context, upserted, saved *model.Report, ignore ...string) bool {
	logger := logging.From(ctx)
	if upserted == nil || saved == nil {
		logger.Error("report to compare is missing",
			slog.Bool("upserted", upserted != nil),
			slog.Bool("saved", saved != nil),
		)
		return false
	}

	if len(ignore) == 0 {
		ignore = DefaultIgnoredAttributes
	}

	equal := true
	for _, attr := range reportAttributes {
		if slices.Contains(ignore, attr.name) {
			continue
		}
		if attr.equal(upserted, saved) {
			continue
		}

		equal = false
		logger.Error("saved report differs from upserted report",
			slog.String("attribute", attr.name),
			slog.Any("upserted", attr.value(upserted)),
			slog.Any("saved", attr.value(saved)),
			slog.String("external_id", upserted.ExternalID.String()),
		)
	}

	return equal
}
