package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/gdstation/pkg/domain/mock"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/infra"
	"github.com/m-mizutani/gdstation/pkg/repository/memory"
	"github.com/m-mizutani/gdstation/pkg/usecase"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

func newBigQueryMock(inserted *[]any) *mock.BigQueryMock {
	return &mock.BigQueryMock{
		GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
			return nil, nil
		},
		CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
			return nil
		},
		InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
			*inserted = append(*inserted, data)
			return nil
		},
	}
}

func TestHandleFinding(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return fixed })

	t.Run("submit then update with audit records", func(t *testing.T) {
		var inserted []any
		station := memory.New(memory.WithPermissions(memory.FullPermissions(testEnclave)...))
		uc := usecase.New(infra.New(
			infra.WithStation(station),
			infra.WithBigQuery(newBigQueryMock(&inserted)),
		), usecase.WithEnclaveID(testEnclave))

		finding := parseFinding(t, sampleFinding)
		first := gt.R1(uc.HandleFinding(ctx, finding)).NoError(t)
		second := gt.R1(uc.HandleFinding(ctx, finding)).NoError(t)
		gt.V(t, second.ID).Equal(first.ID)
		gt.V(t, len(station.Reports())).Equal(1)

		gt.V(t, len(inserted)).Equal(2)
		rec1 := inserted[0].(*model.AuditRawRecord)
		rec2 := inserted[1].(*model.AuditRawRecord)
		gt.V(t, rec1.Action).Equal(types.ReportActionSubmitted)
		gt.V(t, rec2.Action).Equal(types.ReportActionUpdated)
		gt.V(t, rec1.FindingID).Equal("16afba5c5c43e07c9e3e5e2e544e95df")
		gt.V(t, rec1.ReportID).Equal(first.ID)
		gt.V(t, rec1.EnclaveIDs).Equal([]string{string(testEnclave)})
		gt.V(t, rec1.Timestamp).Equal(fixed.UnixMicro())
		gt.False(t, rec1.Verified)
	})

	t.Run("verification returns saved report", func(t *testing.T) {
		var inserted []any
		station := memory.New(memory.WithPermissions(memory.FullPermissions(testEnclave)...))
		uc := usecase.New(infra.New(
			infra.WithStation(station),
			infra.WithBigQuery(newBigQueryMock(&inserted)),
		),
			usecase.WithEnclaveID(testEnclave),
			usecase.WithVerify(true),
			usecase.WithVerifyRetry(2, time.Millisecond),
		)

		report := gt.R1(uc.HandleFinding(ctx, parseFinding(t, sampleFinding))).NoError(t)
		gt.True(t, report.TimeBegan.IsMillis())
		gt.V(t, report.Created).Equal(fixed.UnixMilli())

		rec := inserted[0].(*model.AuditRawRecord)
		gt.True(t, rec.Verified)
		gt.True(t, rec.VerifyEqual)
	})

	t.Run("upserted report is returned when saved report is unavailable", func(t *testing.T) {
		station := &mock.StationMock{
			GetEnclavePermissionsFunc: fullPermissions,
			GetReportFunc: func(ctx context.Context, externalID types.ExternalID) (*model.Report, error) {
				return nil, nil
			},
			SubmitReportFunc: func(ctx context.Context, r *model.Report) (*model.Report, error) {
				c := r.Clone()
				c.ID = "r1"
				return c, nil
			},
		}
		uc := usecase.New(infra.New(infra.WithStation(station)),
			usecase.WithEnclaveID(testEnclave),
			usecase.WithVerify(true),
			usecase.WithVerifyRetry(3, time.Millisecond),
		)

		report := gt.R1(uc.HandleFinding(ctx, parseFinding(t, sampleFinding))).NoError(t)
		gt.V(t, report.ID).Equal(types.ReportID("r1"))
		gt.V(t, len(station.GetReportCalls())).Equal(4)
	})

	t.Run("missing detail fails before any station call", func(t *testing.T) {
		station := &mock.StationMock{}
		uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID(testEnclave))

		_, err := uc.HandleFinding(ctx, parseFinding(t, `{}`))
		gt.True(t, errors.Is(err, types.ErrMalformedInput))
		gt.V(t, len(station.GetEnclavePermissionsCalls())).Equal(0)
		gt.V(t, len(station.GetReportCalls())).Equal(0)
		gt.V(t, len(station.SubmitReportCalls())).Equal(0)
	})

	t.Run("audit failure does not fail the finding", func(t *testing.T) {
		station := memory.New(memory.WithPermissions(memory.FullPermissions(testEnclave)...))
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, errors.New("bigquery is down")
			},
		}
		uc := usecase.New(infra.New(infra.WithStation(station), infra.WithBigQuery(bq)),
			usecase.WithEnclaveID(testEnclave))

		report := gt.R1(uc.HandleFinding(ctx, parseFinding(t, sampleFinding))).NoError(t)
		gt.V(t, report.ID).NotEqual(types.ReportID(""))
		gt.V(t, len(bq.InsertCalls())).Equal(0)
	})
}

func TestCreateOrUpdateBigQueryTable(t *testing.T) {
	ctx := context.Background()
	record := &model.AuditRawRecord{}

	t.Run("table is created when absent", func(t *testing.T) {
		var inserted []any
		bq := newBigQueryMock(&inserted)
		schema := gt.R1(usecase.CreateOrUpdateBigQueryTableForTest(ctx, bq, record)).NoError(t)
		gt.V(t, len(bq.CreateTableCalls())).Equal(1)
		gt.V(t, len(schema)).NotEqual(0)
	})

	t.Run("table is left alone when schema is equal", func(t *testing.T) {
		var inserted []any
		bq := newBigQueryMock(&inserted)
		schema := gt.R1(usecase.CreateOrUpdateBigQueryTableForTest(ctx, bq, record)).NoError(t)

		bq.GetMetadataFunc = func(ctx context.Context) (*bigquery.TableMetadata, error) {
			return &bigquery.TableMetadata{Schema: schema, ETag: "etag"}, nil
		}
		gt.R1(usecase.CreateOrUpdateBigQueryTableForTest(ctx, bq, record)).NoError(t)
		gt.V(t, len(bq.UpdateTableCalls())).Equal(0)
	})

	t.Run("schema is merged when a column is missing", func(t *testing.T) {
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{
					Schema: bigquery.Schema{{Name: "id", Type: bigquery.StringFieldType}},
					ETag:   "etag",
				}, nil
			},
			UpdateTableFunc: func(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
				gt.V(t, eTag).Equal("etag")
				return nil
			},
		}
		schema := gt.R1(usecase.CreateOrUpdateBigQueryTableForTest(ctx, bq, record)).NoError(t)
		gt.V(t, len(bq.UpdateTableCalls())).Equal(1)
		gt.True(t, len(schema) > 1)
	})
}
