package bq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/infra/bq"
	"github.com/m-mizutani/gdstation/pkg/utils/testutil"
)

func TestClient(t *testing.T) {
	env := testutil.GetEnvsOrSkip(t, "TEST_BIGQUERY_PROJECT_ID", "TEST_BIGQUERY_DATASET_ID")
	projectID, datasetID := env[0], env[1]

	ctx := context.Background()

	tblName := types.BQTableID(time.Now().Format("audit_test_20060102_150405"))
	client := gt.R1(bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)).NoError(t)

	var schema bigquery.Schema

	t.Run("GetMetadata before creation returns nil", func(t *testing.T) {
		md := gt.R1(client.GetMetadata(ctx)).NoError(t)
		gt.V(t, md).Equal(nil)
	})

	t.Run("Create table from audit record schema", func(t *testing.T) {
		schema = gt.R1(bqs.Infer(&model.AuditRawRecord{})).NoError(t)
		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))
	})

	t.Run("Insert audit record", func(t *testing.T) {
		now := time.Now().UTC()
		record := &model.AuditRawRecord{
			AuditRecord: model.AuditRecord{
				ID:         types.NewAuditID(),
				FindingID:  "60baffd3f9042e38640f2300d5c5a631",
				ExternalID: "ZXhhbXBsZQ==",
				ReportID:   "report-1",
				Title:      "test finding",
				EnclaveIDs: []string{"enclave-1"},
				Action:     types.ReportActionSubmitted,
			},
			Timestamp: now.UnixMicro(),
		}
		gt.NoError(t, client.Insert(ctx, schema, record))
	})
}

func TestProtoFieldJSONName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "keeps valid names",
			input: "external_id",
			want:  "external_id",
		},
		{
			name:  "renames invalid names",
			input: "ruby-advisory-db",
			want:  "col_cnVieS1hZHZpc29yeS1kYg",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gt.V(t, bq.ProtoFieldJSONName(tc.input)).Equal(tc.want)
		})
	}
}

func TestSanitizeProtoJSON(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"extra":{"finding-type":3,"nvd":2}}`)
	sanitized := gt.R1(bq.SanitizeProtoJSON(raw)).NoError(t)

	dec := json.NewDecoder(bytes.NewReader(sanitized))
	dec.UseNumber()
	payload := map[string]any{}
	gt.NoError(t, dec.Decode(&payload))

	extra, ok := payload["extra"].(map[string]any)
	gt.True(t, ok)

	_, renamed := extra[bq.ProtoFieldJSONName("finding-type")]
	gt.True(t, renamed)
	_, original := extra["finding-type"]
	gt.False(t, original)
	gt.V(t, extra["nvd"]).Equal(json.Number("2"))
}

func TestIsSchemaNotFoundError(t *testing.T) {
	const msg = "Input schema has more fields than BigQuery schema, extra fields: 'verify_equal'"

	t.Run("detects gRPC InvalidArgument with schema mismatch message", func(t *testing.T) {
		err := status.Error(codes.InvalidArgument, msg)
		gt.True(t, bq.IsSchemaNotFoundError(err))
	})

	t.Run("detects wrapped gRPC error with goerr", func(t *testing.T) {
		err := goerr.Wrap(goerr.Wrap(status.Error(codes.InvalidArgument, msg), "level 1"), "level 2")
		gt.True(t, bq.IsSchemaNotFoundError(err))
	})

	t.Run("returns false for InvalidArgument with different message", func(t *testing.T) {
		err := status.Error(codes.InvalidArgument, "Invalid request parameters")
		gt.False(t, bq.IsSchemaNotFoundError(err))
	})

	t.Run("returns false for different gRPC code", func(t *testing.T) {
		err := status.Error(codes.PermissionDenied, msg)
		gt.False(t, bq.IsSchemaNotFoundError(err))
	})

	t.Run("returns false for non-gRPC error", func(t *testing.T) {
		gt.False(t, bq.IsSchemaNotFoundError(errors.New("some other error")))
	})
}
