package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
)

func TestTimestamp(t *testing.T) {
	t.Run("ISO text and epoch millis denote the same instant", func(t *testing.T) {
		iso := model.TimestampFromString("2020-02-01T00:00:01+00:00")
		ms := model.TimestampFromMillis(1580515201000)
		gt.True(t, iso.Equal(ms))
	})

	t.Run("differing milliseconds are not equal", func(t *testing.T) {
		iso := model.TimestampFromString("2020-02-01T00:00:01+00:00")
		ms := model.TimestampFromMillis(1580515201456)
		gt.False(t, iso.Equal(ms))
	})

	t.Run("offset is honored", func(t *testing.T) {
		iso := model.TimestampFromString("2020-02-01T09:00:01+09:00")
		gt.True(t, iso.Equal(model.TimestampFromMillis(1580515201000)))
	})

	t.Run("Z designator is accepted", func(t *testing.T) {
		tm := gt.R1(model.TimestampFromString("2017-10-31T23:16:23Z").Time()).NoError(t)
		gt.V(t, tm.Equal(time.Date(2017, 10, 31, 23, 16, 23, 0, time.UTC))).Equal(true)
	})

	t.Run("text without timezone fails to convert", func(t *testing.T) {
		_, err := model.TimestampFromString("2017-10-31T23:16:23").Time()
		gt.Error(t, err)
	})

	t.Run("representation is preserved through JSON", func(t *testing.T) {
		var v struct {
			A *model.Timestamp `json:"a"`
			B *model.Timestamp `json:"b"`
			C *model.Timestamp `json:"c,omitempty"`
		}
		gt.NoError(t, json.Unmarshal([]byte(`{"a":"2017-10-31T23:16:23Z","b":1509491783000}`), &v))
		gt.False(t, v.A.IsMillis())
		gt.True(t, v.B.IsMillis())
		gt.True(t, v.C == nil)
		gt.True(t, v.A.Equal(v.B))

		out := gt.R1(json.Marshal(v)).NoError(t)
		gt.V(t, string(out)).Equal(`{"a":"2017-10-31T23:16:23Z","b":1509491783000}`)
	})

	t.Run("nil timestamps", func(t *testing.T) {
		var a, b *model.Timestamp
		gt.True(t, a.Equal(b))
		gt.False(t, a.Equal(model.TimestampFromMillis(0)))
		gt.V(t, a.String()).Equal("")
	})
}
