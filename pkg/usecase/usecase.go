package usecase

import (
	"time"

	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/infra"
)

const (
	DefaultVerifyAttempts = 10
	DefaultVerifyInterval = 2 * time.Second
)

type UseCase struct {
	clients *infra.Clients

	enclaveID      types.EnclaveID
	permissions    []*model.EnclavePermission
	requireUpdate  bool
	ignoreMismatch bool

	verify         bool
	verifyAttempts int
	verifyInterval time.Duration
}

type Option func(*UseCase)

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:        clients,
		verifyAttempts: DefaultVerifyAttempts,
		verifyInterval: DefaultVerifyInterval,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// WithEnclaveID sets the enclave reports are written to.
func WithEnclaveID(id types.EnclaveID) Option {
	return func(x *UseCase) {
		x.enclaveID = id
	}
}

// WithPermissions sets enclave permissions fetched in advance. Without it,
// permissions are fetched from Station on every upsert.
func WithPermissions(perms []*model.EnclavePermission) Option {
	return func(x *UseCase) {
		x.permissions = perms
	}
}

// WithRequireUpdatePermission makes the update permission mandatory in addition to create.
func WithRequireUpdatePermission(required bool) Option {
	return func(x *UseCase) {
		x.requireUpdate = required
	}
}

// WithIgnoreEnclaveMismatch lets an existing report be updated even if its
// enclaves differ from the destination enclave.
func WithIgnoreEnclaveMismatch(ignore bool) Option {
	return func(x *UseCase) {
		x.ignoreMismatch = ignore
	}
}

// WithVerify enables fetching the saved report after writing and comparing it
// with the written one. The saved report is returned instead.
func WithVerify(verify bool) Option {
	return func(x *UseCase) {
		x.verify = verify
	}
}

func WithVerifyRetry(attempts int, interval time.Duration) Option {
	return func(x *UseCase) {
		x.verifyAttempts = attempts
		x.verifyInterval = interval
	}
}
