package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf16"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

// DefaultTitle is the report title for findings without one.
const DefaultTitle = "NO TITLE FOUND IN GUARDDUTY EVENT"

// bodyFields are the detail fields copied into the report body.
var bodyFields = []string{"title", "description", "severity", "createdAt", "updatedAt", "service"}

// BuildReport converts a finding into a report for the enclave. It fails with
// types.ErrMalformedInput if the finding has no detail or no detail.id.
func BuildReport(ctx context.Context, finding model.Finding, enclaveID types.EnclaveID) (*model.Report, error) {
	if enclaveID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "enclave ID is not set")
	}

	detail := finding.Detail()
	if len(detail) == 0 {
		return nil, goerr.Wrap(types.ErrMalformedInput, "finding has no detail")
	}

	rawID, ok := finding.DetailString("id")
	if !ok || rawID == "" {
		return nil, goerr.Wrap(types.ErrMalformedInput, "finding has no detail.id")
	}

	body, err := buildBody(detail)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		Title:            DefaultTitle,
		Body:             body,
		TimeBegan:        timeBeganOf(detail),
		ExternalID:       model.ReversibleExternalID(ctx, enclaveID, rawID),
		EnclaveIDs:       []types.EnclaveID{enclaveID},
		DistributionType: types.DistributionEnclave,
	}
	if title, ok := finding.DetailString("title"); ok {
		report.Title = title
	}
	if arn, ok := finding.DetailString("arn"); ok {
		report.ExternalURL = arn
	}

	logging.From(ctx).Debug("report built from finding",
		slog.String("finding_id", rawID),
		slog.Any("report", report),
		slog.String("time_began", report.TimeBegan.String()),
	)

	return report, nil
}

// timeBeganOf returns detail.service.eventFirstSeen, or nil if absent.
func timeBeganOf(detail map[string]any) *model.Timestamp {
	service, ok := detail["service"].(map[string]any)
	if !ok {
		return nil
	}

	switch v := service["eventFirstSeen"].(type) {
	case string:
		return model.TimestampFromString(v)
	case json.Number:
		if ms, err := v.Int64(); err == nil {
			return model.TimestampFromMillis(ms)
		}
		return model.TimestampFromString(v.String())
	default:
		return nil
	}
}

// buildBody renders the whitelisted detail fields as JSON with sorted keys,
// four space indentation and non-ASCII characters escaped. Absent fields are
// written as "" while explicit nulls stay null. The output is compared byte by
// byte with stored reports, so it must stay stable.
func buildBody(detail map[string]any) (string, error) {
	fields := make(map[string]any, len(bodyFields))
	for _, key := range bodyFields {
		v, ok := detail[key]
		if !ok {
			v = ""
		}
		fields[key] = v
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(fields); err != nil {
		return "", goerr.Wrap(err, "failed to encode report body")
	}

	return escapeNonASCII(strings.TrimSuffix(buf.String(), "\n")), nil
}

// escapeNonASCII replaces runes outside ASCII with \uXXXX escapes, using
// surrogate pairs above the BMP. It is only valid for encoded JSON, where such
// runes can only appear inside strings.
func escapeNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}
