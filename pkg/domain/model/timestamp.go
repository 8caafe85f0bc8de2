package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Timestamp holds a time in the representation it was received in: ISO-8601
// text with an offset (as sent by GuardDuty) or epoch milliseconds (as returned
// by Station). It is not normalized, Time() converts on demand.
type Timestamp struct {
	text     string
	millis   int64
	isMillis bool
}

func TimestampFromString(s string) *Timestamp {
	return &Timestamp{text: s}
}

func TimestampFromMillis(ms int64) *Timestamp {
	return &Timestamp{millis: ms, isMillis: true}
}

func TimestampFromTime(t time.Time) *Timestamp {
	return TimestampFromMillis(t.UnixMilli())
}

func (x *Timestamp) IsMillis() bool {
	return x != nil && x.isMillis
}

// Time converts the timestamp to a timezone-aware instant.
func (x *Timestamp) Time() (time.Time, error) {
	if x == nil {
		return time.Time{}, goerr.New("timestamp is empty")
	}
	if x.isMillis {
		return time.UnixMilli(x.millis).UTC(), nil
	}

	t, err := time.Parse(time.RFC3339Nano, x.text)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "timestamp is not ISO-8601 with a timezone designator", goerr.V("value", x.text))
	}
	return t, nil
}

// Millis returns epoch milliseconds of the timestamp.
func (x *Timestamp) Millis() (int64, error) {
	if x.IsMillis() {
		return x.millis, nil
	}
	t, err := x.Time()
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// Equal reports whether both timestamps denote the same instant.
func (x *Timestamp) Equal(y *Timestamp) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	tx, err := x.Time()
	if err != nil {
		return false
	}
	ty, err := y.Time()
	if err != nil {
		return false
	}
	return tx.Equal(ty)
}

func (x *Timestamp) String() string {
	if x == nil {
		return ""
	}
	if x.isMillis {
		return strconv.FormatInt(x.millis, 10)
	}
	return x.text
}

func (x Timestamp) MarshalJSON() ([]byte, error) {
	if x.isMillis {
		return []byte(strconv.FormatInt(x.millis, 10)), nil
	}
	return json.Marshal(x.text)
}

func (x *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*x = Timestamp{text: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return goerr.Wrap(err, "timestamp must be a string or a number", goerr.V("value", string(data)))
	}
	ms, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return goerr.Wrap(err, "invalid epoch milliseconds", goerr.V("value", n.String()))
		}
		ms = int64(f)
	}
	*x = Timestamp{millis: ms, isMillis: true}
	return nil
}
