package usecase

import (
	"context"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/utils/errutil"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
	"github.com/m-mizutani/gdstation/pkg/utils/metrics"
)

var _ interfaces.UseCase = (*UseCase)(nil)

// HandleFinding builds a report from the finding and upserts it. With
// verification enabled, the saved report is fetched, compared and returned
// instead of the written one.
func (x *UseCase) HandleFinding(ctx context.Context, finding model.Finding) (*model.Report, error) {
	report, err := BuildReport(ctx, finding, x.enclaveID)
	if err != nil {
		metrics.FindingsTotal.WithLabelValues(metrics.ErrorReason(err)).Inc()
		return nil, err
	}

	result, err := x.UpsertReport(ctx, report)
	if err != nil {
		metrics.FindingsTotal.WithLabelValues(metrics.ErrorReason(err)).Inc()
		return nil, err
	}
	metrics.FindingsTotal.WithLabelValues(string(result.Action)).Inc()

	record := &model.AuditRecord{
		ID:         types.NewAuditID(),
		Timestamp:  logging.CtxTime(ctx).UTC(),
		FindingID:  finding.ID(),
		ExternalID: result.Report.ExternalID,
		ReportID:   result.Report.ID,
		Title:      result.Report.Title,
		Action:     result.Action,
	}
	for _, id := range result.Report.EnclaveIDs {
		record.EnclaveIDs = append(record.EnclaveIDs, id.String())
	}

	output := result.Report
	if x.verify {
		record.Verified = true
		saved := FetchSavedReport(ctx, x.clients.Station(), result.Report.ExternalID, x.verifyAttempts, x.verifyInterval)
		switch {
		case saved == nil:
			metrics.VerifyTotal.WithLabelValues("unavailable").Inc()
			logging.From(ctx).Warn("saved report is not available, returning upserted report",
				slog.String("external_id", result.Report.ExternalID.String()))

		case CompareReports(ctx, result.Report, saved):
			record.VerifyEqual = true
			metrics.VerifyTotal.WithLabelValues("equal").Inc()
			output = saved

		default:
			metrics.VerifyTotal.WithLabelValues("different").Inc()
			output = saved
		}
	}

	if x.clients.BigQuery() != nil {
		if err := insertAuditRecord(ctx, x.clients.BigQuery(), record); err != nil {
			metrics.AuditInsertErrorsTotal.Inc()
			errutil.HandleError(ctx, "failed to insert audit record", err)
		}
	}

	return output, nil
}

func insertAuditRecord(ctx context.Context, bq interfaces.BigQuery, record *model.AuditRecord) error {
	raw := &model.AuditRawRecord{
		AuditRecord: *record,
		Timestamp:   record.Timestamp.UnixMicro(),
	}

	schema, err := createOrUpdateBigQueryTable(ctx, bq, raw)
	if err != nil {
		return err
	}

	if err := bq.Insert(ctx, schema, raw); err != nil {
		return goerr.Wrap(err, "failed to insert audit record to BigQuery", goerr.V("audit_id", record.ID))
	}
	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, record any) (bigquery.Schema, error) {
	schema, err := bqs.Infer(record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer audit schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
