package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/usecase"
)

// Upsert holds the options deciding where and how reports are written.
type Upsert struct {
	enclaveID      types.EnclaveID
	verify         bool
	verifyAttempts int64
	verifyInterval time.Duration
	ignoreMismatch bool
	requireUpdate  bool
}

func (x *Upsert) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "enclave-id",
			Usage:       "Enclave the reports are written to",
			Category:    "Upsert",
			Destination: (*string)(&x.enclaveID),
			Sources:     cli.EnvVars("GDSTATION_ENCLAVE_ID", "ENCLAVE_ID"),
		},
		&cli.BoolFlag{
			Name:        "verify",
			Usage:       "Fetch the saved report after writing and return it",
			Category:    "Upsert",
			Destination: &x.verify,
			Sources:     cli.EnvVars("GDSTATION_VERIFY", "RETURN_SAVED_REPORT"),
		},
		&cli.Int64Flag{
			Name:        "verify-attempts",
			Usage:       "Number of fetch attempts when verifying",
			Category:    "Upsert",
			Value:       usecase.DefaultVerifyAttempts,
			Destination: &x.verifyAttempts,
			Sources:     cli.EnvVars("GDSTATION_VERIFY_ATTEMPTS"),
		},
		&cli.DurationFlag{
			Name:        "verify-interval",
			Usage:       "Wait between fetch attempts when verifying",
			Category:    "Upsert",
			Value:       usecase.DefaultVerifyInterval,
			Destination: &x.verifyInterval,
			Sources:     cli.EnvVars("GDSTATION_VERIFY_INTERVAL"),
		},
		&cli.BoolFlag{
			Name:        "ignore-enclave-mismatch",
			Usage:       "Update an existing report even if it belongs to other enclaves",
			Category:    "Upsert",
			Destination: &x.ignoreMismatch,
			Sources:     cli.EnvVars("GDSTATION_IGNORE_ENCLAVE_MISMATCH"),
		},
		&cli.BoolFlag{
			Name:        "require-update-permission",
			Usage:       "Refuse to run without update permission on the enclave",
			Category:    "Upsert",
			Destination: &x.requireUpdate,
			Sources:     cli.EnvVars("GDSTATION_REQUIRE_UPDATE_PERMISSION"),
		},
	}
}

func (x *Upsert) EnclaveID() types.EnclaveID {
	return x.enclaveID
}

func (x *Upsert) Validate() error {
	if x.enclaveID == "" {
		return goerr.Wrap(types.ErrInvalidOption, "enclave ID is required")
	}
	if x.verifyAttempts < 1 {
		return goerr.Wrap(types.ErrInvalidOption, "verify attempts must be positive", goerr.V("attempts", x.verifyAttempts))
	}
	return nil
}

// Options converts the flags into use case options.
func (x *Upsert) Options() []usecase.Option {
	return []usecase.Option{
		usecase.WithEnclaveID(x.enclaveID),
		usecase.WithVerify(x.verify),
		usecase.WithVerifyRetry(int(x.verifyAttempts), x.verifyInterval),
		usecase.WithIgnoreEnclaveMismatch(x.ignoreMismatch),
		usecase.WithRequireUpdatePermission(x.requireUpdate),
	}
}

func (x Upsert) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("EnclaveID", x.enclaveID),
		slog.Bool("Verify", x.verify),
		slog.Int64("VerifyAttempts", x.verifyAttempts),
		slog.Duration("VerifyInterval", x.verifyInterval),
		slog.Bool("IgnoreEnclaveMismatch", x.ignoreMismatch),
		slog.Bool("RequireUpdatePermission", x.requireUpdate),
	)
}
