package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
)

// Finding is a GuardDuty finding event as delivered by EventBridge. It is kept
// as an opaque structure, only the "detail" object is interpreted.
type Finding map[string]any

// DecodeFinding reads one finding event. Numbers are kept as json.Number so that
// they are serialized again exactly as received.
func DecodeFinding(r io.Reader) (Finding, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var finding Finding
	if err := dec.Decode(&finding); err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrMalformedInput, err), "failed to decode finding")
	}
	if finding == nil {
		return nil, goerr.Wrap(types.ErrMalformedInput, "finding is null")
	}

	return finding, nil
}

// ParseFinding is DecodeFinding for an in-memory payload.
func ParseFinding(data []byte) (Finding, error) {
	return DecodeFinding(bytes.NewReader(data))
}

// Detail returns the "detail" object, or nil if it is missing or not an object.
func (x Finding) Detail() map[string]any {
	detail, ok := x["detail"].(map[string]any)
	if !ok {
		return nil
	}
	return detail
}

// ID returns detail.id, the finding identifier assigned by GuardDuty.
func (x Finding) ID() string {
	id, _ := x.DetailString("id")
	return id
}

// DetailString returns detail[key] as text. Values that are not strings are
// rendered as JSON. ok is false if the key is absent or null.
func (x Finding) DetailString(key string) (string, bool) {
	v, ok := x.Detail()[key]
	if !ok || v == nil {
		return "", false
	}
	return stringify(v), true
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
