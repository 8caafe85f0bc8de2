package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/gdstation/pkg/domain/mock"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/infra"
	"github.com/m-mizutani/gdstation/pkg/repository/memory"
	"github.com/m-mizutani/gdstation/pkg/usecase"
)

func fullPermissions(ctx context.Context) ([]*model.EnclavePermission, error) {
	return memory.FullPermissions(testEnclave), nil
}

func buildSampleReport(t *testing.T) *model.Report {
	t.Helper()
	return gt.R1(usecase.BuildReport(context.Background(), parseFinding(t, sampleFinding), testEnclave)).NoError(t)
}

func TestUpsertReportIdempotent(t *testing.T) {
	ctx := context.Background()
	station := memory.New(memory.WithPermissions(memory.FullPermissions(testEnclave)...))
	uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID(testEnclave))

	first := gt.R1(uc.UpsertReport(ctx, buildSampleReport(t))).NoError(t)
	gt.V(t, first.Action).Equal(types.ReportActionSubmitted)
	gt.V(t, first.Report.ID).NotEqual(types.ReportID(""))
	stored1 := gt.R1(station.GetReport(ctx, first.Report.ExternalID)).NoError(t)

	second := gt.R1(uc.UpsertReport(ctx, buildSampleReport(t))).NoError(t)
	gt.V(t, second.Action).Equal(types.ReportActionUpdated)
	gt.V(t, second.Report.ID).Equal(first.Report.ID)
	stored2 := gt.R1(station.GetReport(ctx, first.Report.ExternalID)).NoError(t)

	gt.V(t, len(station.Reports())).Equal(1)
	gt.V(t, stored2.Title).Equal(stored1.Title)
	gt.V(t, stored2.Body).Equal(stored1.Body)
	gt.V(t, stored2.ExternalURL).Equal(stored1.ExternalURL)
	gt.V(t, stored2.ExternalID).Equal(stored1.ExternalID)
	gt.V(t, stored2.TimeBegan.String()).Equal(stored1.TimeBegan.String())
	gt.V(t, stored2.Created).Equal(stored1.Created)
}

func TestUpsertReportMerge(t *testing.T) {
	ctx := context.Background()
	report := buildSampleReport(t)

	existing := &model.Report{
		ID:               "internal-1",
		Title:            "old title",
		Body:             "old body",
		TimeBegan:        model.TimestampFromMillis(1),
		ExternalURL:      "old arn",
		ExternalID:       report.ExternalID,
		EnclaveIDs:       []types.EnclaveID{testEnclave},
		DistributionType: types.DistributionEnclave,
		Created:          100,
		Updated:          200,
		Extra:            map[string]json.RawMessage{"sector": json.RawMessage(`{"name":"Finance"}`)},
	}

	var updatedWith *model.Report
	station := &mock.StationMock{
		GetEnclavePermissionsFunc: fullPermissions,
		GetReportFunc: func(ctx context.Context, externalID types.ExternalID) (*model.Report, error) {
			gt.V(t, externalID).Equal(report.ExternalID)
			return existing.Clone(), nil
		},
		UpdateReportFunc: func(ctx context.Context, r *model.Report) (*model.Report, error) {
			updatedWith = r
			return r, nil
		},
	}
	uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID(testEnclave))

	result := gt.R1(uc.UpsertReport(ctx, report)).NoError(t)
	gt.V(t, result.Action).Equal(types.ReportActionUpdated)
	gt.V(t, len(station.SubmitReportCalls())).Equal(0)

	t.Run("owned fields are overwritten", func(t *testing.T) {
		gt.V(t, updatedWith.Title).Equal(report.Title)
		gt.V(t, updatedWith.Body).Equal(report.Body)
		gt.V(t, updatedWith.ExternalURL).Equal(report.ExternalURL)
		gt.V(t, updatedWith.ExternalID).Equal(report.ExternalID)
		gt.True(t, updatedWith.TimeBegan.Equal(report.TimeBegan))
	})

	t.Run("server managed attributes pass through", func(t *testing.T) {
		gt.V(t, updatedWith.ID).Equal(existing.ID)
		gt.V(t, updatedWith.Created).Equal(existing.Created)
		gt.V(t, updatedWith.Updated).Equal(existing.Updated)
		gt.V(t, string(updatedWith.Extra["sector"])).Equal(`{"name":"Finance"}`)
	})
}

func TestUpsertReportScopeMismatch(t *testing.T) {
	ctx := context.Background()

	newStation := func() *mock.StationMock {
		return &mock.StationMock{
			GetEnclavePermissionsFunc: func(ctx context.Context) ([]*model.EnclavePermission, error) {
				return memory.FullPermissions("Y"), nil
			},
			GetReportFunc: func(ctx context.Context, externalID types.ExternalID) (*model.Report, error) {
				return &model.Report{ID: "r1", ExternalID: externalID, EnclaveIDs: []types.EnclaveID{"X"}}, nil
			},
			UpdateReportFunc: func(ctx context.Context, r *model.Report) (*model.Report, error) {
				return r, nil
			},
		}
	}
	report := &model.Report{Title: "t", ExternalID: "ext"}

	t.Run("mismatch aborts without update by default", func(t *testing.T) {
		station := newStation()
		uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID("Y"))

		_, err := uc.UpsertReport(ctx, report)
		gt.True(t, errors.Is(err, types.ErrScopeMismatch))
		gt.V(t, len(station.UpdateReportCalls())).Equal(0)
		gt.V(t, len(station.SubmitReportCalls())).Equal(0)
	})

	t.Run("mismatch is ignored when configured", func(t *testing.T) {
		station := newStation()
		uc := usecase.New(infra.New(infra.WithStation(station)),
			usecase.WithEnclaveID("Y"),
			usecase.WithIgnoreEnclaveMismatch(true),
		)

		result := gt.R1(uc.UpsertReport(ctx, report)).NoError(t)
		gt.V(t, result.Action).Equal(types.ReportActionUpdated)
		gt.V(t, len(station.UpdateReportCalls())).Equal(1)
		gt.V(t, station.UpdateReportCalls()[0].Report.EnclaveIDs).Equal([]types.EnclaveID{"X"})
	})

	t.Run("report built for another enclave is rejected", func(t *testing.T) {
		station := newStation()
		uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID("Y"))

		_, err := uc.UpsertReport(ctx, &model.Report{Title: "t", ExternalID: "ext", EnclaveIDs: []types.EnclaveID{"Z"}})
		gt.True(t, errors.Is(err, types.ErrScopeMismatch))
		gt.V(t, len(station.GetReportCalls())).Equal(0)
	})
}

func TestUpsertReportPermissionGate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing create permission fails before lookup", func(t *testing.T) {
		station := &mock.StationMock{
			GetEnclavePermissionsFunc: func(ctx context.Context) ([]*model.EnclavePermission, error) {
				return []*model.EnclavePermission{{ID: testEnclave, Read: true, Update: true}}, nil
			},
		}
		uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID(testEnclave))

		_, err := uc.UpsertReport(ctx, buildSampleReport(t))
		gt.True(t, errors.Is(err, types.ErrInsufficientPermission))
		gt.V(t, len(station.GetReportCalls())).Equal(0)
		gt.V(t, len(station.SubmitReportCalls())).Equal(0)
		gt.V(t, len(station.UpdateReportCalls())).Equal(0)
	})

	t.Run("unknown enclave fails", func(t *testing.T) {
		station := &mock.StationMock{
			GetEnclavePermissionsFunc: func(ctx context.Context) ([]*model.EnclavePermission, error) {
				return memory.FullPermissions("other"), nil
			},
		}
		uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID(testEnclave))

		_, err := uc.UpsertReport(ctx, buildSampleReport(t))
		gt.True(t, errors.Is(err, types.ErrUnknownScope))
	})

	t.Run("update permission is required when configured", func(t *testing.T) {
		station := &mock.StationMock{
			GetEnclavePermissionsFunc: func(ctx context.Context) ([]*model.EnclavePermission, error) {
				return []*model.EnclavePermission{{ID: testEnclave, Create: true}}, nil
			},
		}
		uc := usecase.New(infra.New(infra.WithStation(station)),
			usecase.WithEnclaveID(testEnclave),
			usecase.WithRequireUpdatePermission(true),
		)

		_, err := uc.UpsertReport(ctx, buildSampleReport(t))
		gt.True(t, errors.Is(err, types.ErrInsufficientPermission))
		gt.V(t, len(station.GetReportCalls())).Equal(0)
	})

	t.Run("cached permissions are not fetched", func(t *testing.T) {
		station := memory.New()
		uc := usecase.New(infra.New(infra.WithStation(station)),
			usecase.WithEnclaveID(testEnclave),
			usecase.WithPermissions(memory.FullPermissions(testEnclave)),
		)

		result := gt.R1(uc.UpsertReport(ctx, buildSampleReport(t))).NoError(t)
		gt.V(t, result.Action).Equal(types.ReportActionSubmitted)
	})
}

func TestUpsertReportFailures(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection reset")

	t.Run("lookup failure is not treated as not found", func(t *testing.T) {
		station := &mock.StationMock{
			GetEnclavePermissionsFunc: fullPermissions,
			GetReportFunc: func(ctx context.Context, externalID types.ExternalID) (*model.Report, error) {
				return nil, cause
			},
		}
		uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID(testEnclave))

		_, err := uc.UpsertReport(ctx, buildSampleReport(t))
		gt.True(t, errors.Is(err, types.ErrLookup))
		gt.True(t, errors.Is(err, cause))
		gt.V(t, len(station.SubmitReportCalls())).Equal(0)
	})

	t.Run("submit failure keeps the cause", func(t *testing.T) {
		station := &mock.StationMock{
			GetEnclavePermissionsFunc: fullPermissions,
			GetReportFunc: func(ctx context.Context, externalID types.ExternalID) (*model.Report, error) {
				return nil, nil
			},
			SubmitReportFunc: func(ctx context.Context, r *model.Report) (*model.Report, error) {
				return nil, cause
			},
		}
		uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID(testEnclave))

		_, err := uc.UpsertReport(ctx, buildSampleReport(t))
		gt.True(t, errors.Is(err, types.ErrSubmit))
		gt.True(t, errors.Is(err, cause))
		gt.V(t, len(station.SubmitReportCalls())).Equal(1)
	})

	t.Run("update failure keeps the cause", func(t *testing.T) {
		station := &mock.StationMock{
			GetEnclavePermissionsFunc: fullPermissions,
			GetReportFunc: func(ctx context.Context, externalID types.ExternalID) (*model.Report, error) {
				return &model.Report{ID: "r1", ExternalID: externalID, EnclaveIDs: []types.EnclaveID{testEnclave}}, nil
			},
			UpdateReportFunc: func(ctx context.Context, r *model.Report) (*model.Report, error) {
				return nil, cause
			},
		}
		uc := usecase.New(infra.New(infra.WithStation(station)), usecase.WithEnclaveID(testEnclave))

		_, err := uc.UpsertReport(ctx, buildSampleReport(t))
		gt.True(t, errors.Is(err, types.ErrUpdate))
		gt.True(t, errors.Is(err, cause))
	})

	t.Run("station is required", func(t *testing.T) {
		uc := usecase.New(infra.New(), usecase.WithEnclaveID(testEnclave))
		_, err := uc.UpsertReport(ctx, buildSampleReport(t))
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestMergeReport(t *testing.T) {
	existing := &model.Report{ID: "r1", Title: "old", EnclaveIDs: []types.EnclaveID{"X"}, Created: 1}
	report := &model.Report{Title: "new", Body: "body", EnclaveIDs: []types.EnclaveID{"Y"}}

	merged := usecase.MergeReportForTest(existing, report)
	gt.V(t, merged.Title).Equal("new")
	gt.V(t, merged.Body).Equal("body")
	gt.V(t, merged.EnclaveIDs).Equal([]types.EnclaveID{"X"})
	gt.V(t, existing.Title).Equal("old")
}
