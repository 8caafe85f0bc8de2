package model

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

// External IDs have to be derived identically on every invocation and must be
// usable in query strings, where Station looks reports up by them.

// ExternalIDDelimiter separates the enclave ID and the raw ID in reversible
// external IDs. It is not escaped: a raw ID containing it cannot be split back
// unambiguously, see SplitReversibleExternalID.
const ExternalIDDelimiter = "|"

// enclaveNamespace is the namespace for enclave IDs that are not UUIDs.
var enclaveNamespace = uuid.MustParse("f541adc0-f8b4-42a3-a1d9-fbcbfb2820a5")

// IrreversibleExternalID derives a UUIDv5 from rawID in a namespace bound to
// the enclave, so the same raw ID yields different external IDs per enclave.
func IrreversibleExternalID(enclaveID types.EnclaveID, rawID string) types.ExternalID {
	namespace, err := uuid.Parse(string(enclaveID))
	if err != nil {
		// some staging enclave IDs are not UUIDs
		namespace = uuid.NewSHA1(enclaveNamespace, []byte(enclaveID))
	}

	return types.ExternalID(uuid.NewSHA1(namespace, []byte(rawID)).String())
}

// ReversibleExternalID base64-encodes "<enclaveID>|<rawID>". The result is
// decoded again and a mismatch is logged as an error; it never fails.
func ReversibleExternalID(ctx context.Context, enclaveID types.EnclaveID, rawID string) types.ExternalID {
	s := string(enclaveID) + ExternalIDDelimiter + rawID
	encoded := types.ExternalID(base64.StdEncoding.EncodeToString([]byte(s)))

	if decoded, err := DecodeReversibleExternalID(encoded); err != nil || decoded != s {
		logging.From(ctx).Error("external ID does not reverse",
			slog.String("source", s),
			slog.String("encoded", encoded.String()),
			slog.String("decoded", decoded),
			slog.Any("error", err),
		)
	}

	return encoded
}

// DecodeReversibleExternalID returns the "<enclaveID>|<rawID>" string an
// external ID was made from.
func DecodeReversibleExternalID(id types.ExternalID) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(string(id))
	if err != nil {
		return "", goerr.Wrap(err, "external ID is not base64", goerr.V("external_id", id))
	}
	return string(raw), nil
}

// SplitReversibleExternalID splits a reversible external ID at the first
// delimiter. An enclave ID containing the delimiter is split wrongly.
func SplitReversibleExternalID(id types.ExternalID) (types.EnclaveID, string, error) {
	s, err := DecodeReversibleExternalID(id)
	if err != nil {
		return "", "", err
	}

	enclaveID, rawID, ok := strings.Cut(s, ExternalIDDelimiter)
	if !ok {
		return "", "", goerr.New("external ID has no delimiter", goerr.V("decoded", s))
	}
	return types.EnclaveID(enclaveID), rawID, nil
}
