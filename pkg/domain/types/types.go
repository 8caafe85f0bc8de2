package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	EnclaveID        string
	ReportID         string
	ExternalID       string
	StationAPIKey    string
	StationAPISecret string
	ClientMetatag    string

	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string

	ServerAPIKey string

	RequestID string
	AuditID   string
)

func (x EnclaveID) String() string  { return string(x) }
func (x ReportID) String() string   { return string(x) }
func (x ExternalID) String() string { return string(x) }

func (x StationAPISecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x StationAPISecret) String() string {
	return "***********"
}

func (x ServerAPIKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func NewAuditID() AuditID {
	return AuditID(uuid.NewString())
}

func (x AuditID) String() string { return string(x) }

// ReportAction is the write issued by an upsert.
type ReportAction string

const (
	ReportActionSubmitted ReportAction = "submitted"
	ReportActionUpdated   ReportAction = "updated"
)

// Capability is an enclave permission checked before writing.
type Capability string

const (
	CapabilityRead   Capability = "read"
	CapabilityCreate Capability = "create"
	CapabilityUpdate Capability = "update"
)

const (
	// DistributionEnclave restricts a report to its enclaves.
	DistributionEnclave = "ENCLAVE"

	// DefaultClientMetatag identifies this integration to Station.
	DefaultClientMetatag ClientMetatag = "AWS_GUARD_DUTY"
)
