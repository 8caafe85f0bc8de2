package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . Station BigQuery FindingQueue

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
)

// Station is the report store of the threat intelligence platform.
type Station interface {
	// GetEnclavePermissions returns the capabilities of the API credentials per enclave.
	GetEnclavePermissions(ctx context.Context) ([]*model.EnclavePermission, error)

	// GetReport looks a report up by its external ID. It returns (nil, nil) if
	// no such report exists and an error only when the lookup itself failed.
	GetReport(ctx context.Context, externalID types.ExternalID) (*model.Report, error)

	// SubmitReport creates a report and returns it with the ID assigned by Station.
	SubmitReport(ctx context.Context, report *model.Report) (*model.Report, error)

	// UpdateReport replaces the report identified by report.ID.
	UpdateReport(ctx context.Context, report *model.Report) (*model.Report, error)
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// FindingQueue delivers finding events one by one.
type FindingQueue interface {
	// Pop blocks until a message arrives or the wait times out. It returns
	// (nil, nil) on timeout.
	Pop(ctx context.Context) ([]byte, error)
}
