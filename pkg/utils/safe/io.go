package safe

import (
	"io"
	"log/slog"

	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

// Close safely closes the resource and logs error if any
func Close(closer io.Closer) {
	if closer != nil {
		if err := closer.Close(); err != nil {
			if err == io.EOF {
				return
			}
			logging.Default().Warn("Fail to close resource", slog.Any("error", err))
		}
	}
}

// DrainClose reads the rest of an HTTP response body before closing it so the
// connection can be reused.
func DrainClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		logging.Default().Debug("Fail to drain body", slog.Any("error", err))
	}
	Close(body)
}
