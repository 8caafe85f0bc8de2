package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/repository"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

// Station is a process local report store behaving like Station: it assigns
// report IDs and timestamps, and returns timeBegan as epoch milliseconds.
type Station struct {
	mu           sync.RWMutex
	reports      map[types.ReportID]*model.Report
	byExternalID map[types.ExternalID]types.ReportID
	permissions  []*model.EnclavePermission
}

var _ interfaces.Station = (*Station)(nil)

type Option func(*Station)

// WithPermissions sets the enclave permissions returned by GetEnclavePermissions.
func WithPermissions(perms ...*model.EnclavePermission) Option {
	return func(x *Station) {
		x.permissions = append(x.permissions, perms...)
	}
}

// FullPermissions grants every capability in the enclaves.
func FullPermissions(enclaveIDs ...types.EnclaveID) []*model.EnclavePermission {
	perms := make([]*model.EnclavePermission, 0, len(enclaveIDs))
	for _, id := range enclaveIDs {
		perms = append(perms, &model.EnclavePermission{
			ID:     id,
			Name:   id.String(),
			Type:   "INTERNAL",
			Read:   true,
			Create: true,
			Update: true,
		})
	}
	return perms
}

// New creates a new in-memory Station
func New(options ...Option) *Station {
	x := &Station{
		reports:      make(map[types.ReportID]*model.Report),
		byExternalID: make(map[types.ExternalID]types.ReportID),
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *Station) GetEnclavePermissions(ctx context.Context) ([]*model.EnclavePermission, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	perms := make([]*model.EnclavePermission, 0, len(x.permissions))
	for _, p := range x.permissions {
		c := *p
		perms = append(perms, &c)
	}
	return perms, nil
}

func (x *Station) GetReport(ctx context.Context, externalID types.ExternalID) (*model.Report, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	id, ok := x.byExternalID[externalID]
	if !ok {
		return nil, nil
	}
	return x.reports[id].Clone(), nil
}

func (x *Station) SubmitReport(ctx context.Context, report *model.Report) (*model.Report, error) {
	if report.ID != "" {
		return nil, goerr.Wrap(repository.ErrInvalidReport, "new report must not have an ID", goerr.V("id", report.ID))
	}

	stored, err := normalize(report)
	if err != nil {
		return nil, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if stored.ExternalID != "" {
		if _, exists := x.byExternalID[stored.ExternalID]; exists {
			return nil, goerr.Wrap(repository.ErrDuplicateExternalID, "external ID is already used",
				goerr.V("external_id", stored.ExternalID))
		}
	}

	now := logging.CtxTime(ctx).UnixMilli()
	stored.ID = types.ReportID(uuid.NewString())
	stored.Created = now
	stored.Updated = now

	x.reports[stored.ID] = stored
	if stored.ExternalID != "" {
		x.byExternalID[stored.ExternalID] = stored.ID
	}

	return stored.Clone(), nil
}

func (x *Station) UpdateReport(ctx context.Context, report *model.Report) (*model.Report, error) {
	stored, err := normalize(report)
	if err != nil {
		return nil, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	current, ok := x.reports[report.ID]
	if !ok {
		return nil, goerr.Wrap(repository.ErrReportNotFound, "report not found", goerr.V("id", report.ID))
	}
	if owner, used := x.byExternalID[stored.ExternalID]; used && owner != stored.ID {
		return nil, goerr.Wrap(repository.ErrDuplicateExternalID, "external ID is used by another report",
			goerr.V("external_id", stored.ExternalID),
			goerr.V("owner", owner),
		)
	}

	stored.Created = current.Created
	stored.Updated = logging.CtxTime(ctx).UnixMilli()

	if current.ExternalID != stored.ExternalID {
		delete(x.byExternalID, current.ExternalID)
	}
	x.reports[stored.ID] = stored
	if stored.ExternalID != "" {
		x.byExternalID[stored.ExternalID] = stored.ID
	}

	return stored.Clone(), nil
}

// Reports returns all stored reports ordered by creation.
func (x *Station) Reports() []*model.Report {
	x.mu.RLock()
	defer x.mu.RUnlock()

	reports := make([]*model.Report, 0, len(x.reports))
	for _, r := range x.reports {
		reports = append(reports, r.Clone())
	}
	slices.SortFunc(reports, func(a, b *model.Report) int {
		if c := cmp.Compare(a.Created, b.Created); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return reports
}

// normalize copies the report in the representation Station stores.
func normalize(report *model.Report) (*model.Report, error) {
	stored := report.Clone()
	if stored.TimeBegan != nil {
		ms, err := stored.TimeBegan.Millis()
		if err != nil {
			return nil, goerr.Wrap(errors.Join(repository.ErrInvalidReport, err), "invalid timeBegan",
				goerr.V("time_began", stored.TimeBegan.String()),
			)
		}
		stored.TimeBegan = model.TimestampFromMillis(ms)
	}
	if len(stored.EnclaveIDs) == 0 {
		return nil, goerr.Wrap(repository.ErrInvalidReport, "report has no enclave")
	}
	return stored, nil
}
