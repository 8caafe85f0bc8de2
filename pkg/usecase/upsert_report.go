package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

// UpsertReport creates the report in Station, or merges it into the report
// already stored under the same external ID. Permissions are checked before
// any write. The returned report carries the ID assigned by Station.
func (x *UseCase) UpsertReport(ctx context.Context, report *model.Report) (*model.UpsertResult, error) {
	station := x.clients.Station()
	if station == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "station client is not configured")
	}
	if x.enclaveID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "enclave ID is not set")
	}

	logger := logging.From(ctx).With(
		slog.String("external_id", report.ExternalID.String()),
		slog.String("title", report.Title),
	)

	destination := []types.EnclaveID{x.enclaveID}
	report = report.Clone()
	if len(report.EnclaveIDs) > 0 && !model.SameEnclaves(report.EnclaveIDs, destination) {
		return nil, goerr.Wrap(types.ErrScopeMismatch, "report enclaves differ from destination",
			goerr.V("report_enclaves", report.EnclaveIDs),
			goerr.V("destination", destination),
		)
	}
	report.EnclaveIDs = destination
	report.DistributionType = types.DistributionEnclave

	if err := x.checkPermissions(ctx, destination); err != nil {
		return nil, err
	}

	existing, err := station.GetReport(ctx, report.ExternalID)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrLookup, err), "failed to look up report by external ID",
			goerr.V("external_id", report.ExternalID))
	}

	if existing == nil {
		submitted, err := station.SubmitReport(ctx, report)
		if err != nil {
			logger.Error("failed to submit report", slog.Any("error", err))
			return nil, goerr.Wrap(errors.Join(types.ErrSubmit, err), "failed to submit report",
				goerr.V("external_id", report.ExternalID),
				goerr.V("title", report.Title),
			)
		}

		logger.Info("report submitted", slog.String("report_id", submitted.ID.String()))
		return &model.UpsertResult{Action: types.ReportActionSubmitted, Report: submitted}, nil
	}

	if !model.SameEnclaves(existing.EnclaveIDs, destination) {
		if !x.ignoreMismatch {
			logger.Error("existing report belongs to other enclaves, not updating",
				slog.String("report_id", existing.ID.String()),
				slog.Any("existing_enclaves", existing.EnclaveIDs),
				slog.Any("destination", destination),
			)
			return nil, goerr.Wrap(types.ErrScopeMismatch, "existing report enclaves differ from destination",
				goerr.V("report_id", existing.ID),
				goerr.V("existing_enclaves", existing.EnclaveIDs),
				goerr.V("destination", destination),
			)
		}

		logger.Warn("existing report belongs to other enclaves, updating anyway",
			slog.String("report_id", existing.ID.String()),
			slog.Any("existing_enclaves", existing.EnclaveIDs),
			slog.Any("destination", destination),
		)
	}

	merged := mergeReport(existing, report)
	updated, err := station.UpdateReport(ctx, merged)
	if err != nil {
		logger.Error("failed to update report",
			slog.String("report_id", merged.ID.String()),
			slog.Any("error", err),
		)
		return nil, goerr.Wrap(errors.Join(types.ErrUpdate, err), "failed to update report",
			goerr.V("report_id", merged.ID),
			goerr.V("external_id", merged.ExternalID),
		)
	}

	logger.Info("report updated", slog.String("report_id", updated.ID.String()))
	return &model.UpsertResult{Action: types.ReportActionUpdated, Report: updated}, nil
}

// mergeReport overwrites the fields built from the finding on a copy of the
// stored report. Everything else, including the enclaves, stays as stored.
func mergeReport(existing, report *model.Report) *model.Report {
	merged := existing.Clone()
	merged.Title = report.Title
	merged.Body = report.Body
	merged.TimeBegan = report.TimeBegan
	merged.ExternalURL = report.ExternalURL
	merged.ExternalID = report.ExternalID
	return merged
}

func (x *UseCase) checkPermissions(ctx context.Context, enclaves []types.EnclaveID) error {
	checker := NewPermissionChecker(x.permissions)
	if x.permissions == nil {
		fetched, err := FetchPermissions(ctx, x.clients.Station())
		if err != nil {
			return err
		}
		checker = fetched
	}

	required := []types.Capability{types.CapabilityCreate}
	if x.requireUpdate {
		required = append(required, types.CapabilityUpdate)
	}

	for _, enclaveID := range enclaves {
		if err := checker.Require(enclaveID, required...); err != nil {
			return err
		}
	}
	return nil
}
