package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption = goerr.New("invalid option")

	// ErrMalformedInput is returned when a finding lacks the structure a report is built from.
	ErrMalformedInput = goerr.New("malformed finding")

	ErrUnknownScope           = goerr.New("no access to enclave")
	ErrInsufficientPermission = goerr.New("insufficient enclave permission")

	// ErrScopeMismatch is returned when a report's enclaves disagree with the destination enclaves.
	ErrScopeMismatch = goerr.New("enclave mismatch")

	ErrLookup = goerr.New("failed to look up report")
	ErrSubmit = goerr.New("failed to submit report")
	ErrUpdate = goerr.New("failed to update report")

	ErrStationAPI = goerr.New("station API error")
)
