package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
)

// PermissionChecker answers capability queries about the enclaves the API
// credentials can access.
type PermissionChecker struct {
	perms map[types.EnclaveID]*model.EnclavePermission
}

func NewPermissionChecker(perms []*model.EnclavePermission) *PermissionChecker {
	checker := &PermissionChecker{
		perms: make(map[types.EnclaveID]*model.EnclavePermission, len(perms)),
	}
	for _, p := range perms {
		if p != nil {
			checker.perms[p.ID] = p
		}
	}
	return checker
}

// FetchPermissions builds a PermissionChecker from the enclaves Station reports
// for the credentials.
func FetchPermissions(ctx context.Context, station interfaces.Station) (*PermissionChecker, error) {
	perms, err := station.GetEnclavePermissions(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get enclave permissions")
	}
	return NewPermissionChecker(perms), nil
}

// Can reports whether the capability is granted in the enclave. An enclave
// the credentials have no access to at all is types.ErrUnknownScope, not false.
func (x *PermissionChecker) Can(enclaveID types.EnclaveID, capability types.Capability) (bool, error) {
	p, ok := x.perms[enclaveID]
	if !ok {
		return false, goerr.Wrap(types.ErrUnknownScope, "enclave is not accessible with the credentials",
			goerr.V("enclave_id", enclaveID))
	}

	switch capability {
	case types.CapabilityRead:
		return p.Read, nil
	case types.CapabilityCreate:
		return p.Create, nil
	case types.CapabilityUpdate:
		return p.Update, nil
	default:
		return false, goerr.Wrap(types.ErrInvalidOption, "unknown capability", goerr.V("capability", capability))
	}
}

func (x *PermissionChecker) CanRead(enclaveID types.EnclaveID) (bool, error) {
	return x.Can(enclaveID, types.CapabilityRead)
}

func (x *PermissionChecker) CanCreate(enclaveID types.EnclaveID) (bool, error) {
	return x.Can(enclaveID, types.CapabilityCreate)
}

func (x *PermissionChecker) CanUpdate(enclaveID types.EnclaveID) (bool, error) {
	return x.Can(enclaveID, types.CapabilityUpdate)
}

// Require fails with types.ErrInsufficientPermission naming the first
// capability that is not granted.
func (x *PermissionChecker) Require(enclaveID types.EnclaveID, capabilities ...types.Capability) error {
	for _, capability := range capabilities {
		ok, err := x.Can(enclaveID, capability)
		if err != nil {
			return err
		}
		if !ok {
			return goerr.Wrap(types.ErrInsufficientPermission, "capability is not granted",
				goerr.V("enclave_id", enclaveID),
				goerr.V("capability", capability),
			)
		}
	}
	return nil
}
