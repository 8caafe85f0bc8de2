package repository

import "github.com/m-mizutani/goerr/v2"

// Errors returned by Station implementations kept in this package. The HTTP
// client reports the same conditions as types.ErrStationAPI with the status.
var (
	ErrReportNotFound      = goerr.New("report not found")
	ErrDuplicateExternalID = goerr.New("external ID already used")
	ErrInvalidReport       = goerr.New("invalid report")
)
