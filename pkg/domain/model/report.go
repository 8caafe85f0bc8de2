package model

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/m-mizutani/gdstation/pkg/domain/types"
)

// Report is a finding as a Station report. ID, Created and Updated are
// assigned by Station and are empty until the report has been stored once.
type Report struct {
	ID               types.ReportID    `json:"id,omitempty"`
	Title            string            `json:"title"`
	Body             string            `json:"reportBody"`
	TimeBegan        *Timestamp        `json:"timeBegan,omitempty"`
	ExternalURL      string            `json:"externalUrl,omitempty"`
	ExternalID       types.ExternalID  `json:"externalTrackingId,omitempty"`
	EnclaveIDs       []types.EnclaveID `json:"enclaveIds,omitempty"`
	DistributionType string            `json:"distributionType,omitempty"`
	Created          int64             `json:"created,omitempty"`
	Updated          int64             `json:"updated,omitempty"`

	// Extra keeps attributes Station returns that this integration does not
	// own, so that an update sends them back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

var reportKeys = map[string]struct{}{
	"id":                 {},
	"title":              {},
	"reportBody":         {},
	"timeBegan":          {},
	"externalUrl":        {},
	"externalTrackingId": {},
	"enclaveIds":         {},
	"distributionType":   {},
	"created":            {},
	"updated":            {},
}

type reportAlias Report

func (x Report) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(reportAlias(x))
	if err != nil || len(x.Extra) == 0 {
		return base, err
	}

	merged := make(map[string]json.RawMessage, len(x.Extra)+len(reportKeys))
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range x.Extra {
		if _, owned := merged[k]; !owned {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func (x *Report) UnmarshalJSON(data []byte) error {
	var alias reportAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if _, known := reportKeys[k]; known {
			delete(raw, k)
		}
	}
	alias.Extra = nil
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*x = Report(alias)
	return nil
}

// Clone returns a deep copy of the report.
func (x *Report) Clone() *Report {
	if x == nil {
		return nil
	}
	c := *x
	if x.TimeBegan != nil {
		tb := *x.TimeBegan
		c.TimeBegan = &tb
	}
	c.EnclaveIDs = slices.Clone(x.EnclaveIDs)
	if x.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(x.Extra))
		for k, v := range x.Extra {
			c.Extra[k] = slices.Clone(v)
		}
	}
	return &c
}

func (x *Report) LogValue() slog.Value {
	if x == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.String("id", x.ID.String()),
		slog.String("external_id", x.ExternalID.String()),
		slog.String("title", x.Title),
		slog.Any("enclave_ids", x.EnclaveIDs),
	)
}

// SameEnclaves reports whether a and b contain the same set of enclave IDs.
func SameEnclaves(a, b []types.EnclaveID) bool {
	setA := make(map[types.EnclaveID]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}
	setB := make(map[types.EnclaveID]struct{}, len(b))
	for _, id := range b {
		if _, ok := setA[id]; !ok {
			return false
		}
		setB[id] = struct{}{}
	}
	return len(setA) == len(setB)
}

// UpsertResult is the outcome of an upsert.
type UpsertResult struct {
	Action types.ReportAction
	Report *Report
}
