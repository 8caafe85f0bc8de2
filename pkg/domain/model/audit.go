package model

import (
	"time"

	"github.com/m-mizutani/gdstation/pkg/domain/types"
)

// AuditRecord is one upsert outcome as stored in BigQuery.
type AuditRecord struct {
	ID          types.AuditID      `bigquery:"id" json:"id"`
	Timestamp   time.Time          `bigquery:"timestamp" json:"timestamp"`
	FindingID   string             `bigquery:"finding_id" json:"finding_id"`
	ExternalID  types.ExternalID   `bigquery:"external_id" json:"external_id"`
	ReportID    types.ReportID     `bigquery:"report_id" json:"report_id"`
	Title       string             `bigquery:"title" json:"title"`
	EnclaveIDs  []string           `bigquery:"enclave_ids" json:"enclave_ids"`
	Action      types.ReportAction `bigquery:"action" json:"action"`
	Verified    bool               `bigquery:"verified" json:"verified"`
	VerifyEqual bool               `bigquery:"verify_equal" json:"verify_equal"`
}

// AuditRawRecord is AuditRecord with the timestamp in microseconds, as the
// Storage Write API expects for TIMESTAMP columns.
type AuditRawRecord struct {
	AuditRecord
	Timestamp int64 `bigquery:"timestamp" json:"timestamp"`
}
