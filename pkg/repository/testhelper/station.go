package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
)

// TestAll runs all test cases for Station
// This is the main entry point for testing any Station implementation. The
// credentials must be able to create and update reports in the enclave.
func TestAll(t *testing.T, station interfaces.Station, enclaveID types.EnclaveID) {
	t.Run("EnclavePermissions", func(t *testing.T) {
		TestEnclavePermissions(t, station, enclaveID)
	})
	t.Run("GetReportNotFound", func(t *testing.T) {
		TestGetReportNotFound(t, station, enclaveID)
	})
	t.Run("SubmitAndGet", func(t *testing.T) {
		TestSubmitAndGet(t, station, enclaveID)
	})
	t.Run("Update", func(t *testing.T) {
		TestUpdate(t, station, enclaveID)
	})
}

func newReport(enclaveID types.EnclaveID) *model.Report {
	rawID := uuid.NewString()
	return &model.Report{
		Title:            fmt.Sprintf("gdstation test %s", rawID[:8]),
		Body:             `{"title": "test"}`,
		TimeBegan:        model.TimestampFromString("2020-02-01T00:00:01+00:00"),
		ExternalURL:      "arn:aws:guardduty:us-east-1:123456789012:detector/test/finding/" + rawID,
		ExternalID:       model.IrreversibleExternalID(enclaveID, rawID),
		EnclaveIDs:       []types.EnclaveID{enclaveID},
		DistributionType: types.DistributionEnclave,
	}
}

// TestEnclavePermissions checks the enclave is listed with create permission
func TestEnclavePermissions(t *testing.T, station interfaces.Station, enclaveID types.EnclaveID) {
	ctx := context.Background()

	perms := gt.R1(station.GetEnclavePermissions(ctx)).NoError(t)
	var found *model.EnclavePermission
	for _, p := range perms {
		if p.ID == enclaveID {
			found = p
		}
	}
	gt.V(t, found).NotEqual(nil)
	gt.True(t, found.Create)
}

// TestGetReportNotFound checks an unknown external ID is (nil, nil)
func TestGetReportNotFound(t *testing.T, station interfaces.Station, enclaveID types.EnclaveID) {
	ctx := context.Background()

	report := gt.R1(station.GetReport(ctx, model.IrreversibleExternalID(enclaveID, uuid.NewString()))).NoError(t)
	gt.V(t, report).Equal(nil)
}

// TestSubmitAndGet checks a submitted report can be looked up by external ID
func TestSubmitAndGet(t *testing.T, station interfaces.Station, enclaveID types.EnclaveID) {
	ctx := context.Background()
	report := newReport(enclaveID)

	submitted := gt.R1(station.SubmitReport(ctx, report)).NoError(t)
	gt.V(t, submitted.ID).NotEqual("")
	gt.V(t, submitted.ExternalID).Equal(report.ExternalID)

	saved := gt.R1(station.GetReport(ctx, report.ExternalID)).NoError(t)
	gt.V(t, saved).NotEqual(nil)
	gt.V(t, saved.ID).Equal(submitted.ID)
	gt.V(t, saved.Title).Equal(report.Title)
	gt.V(t, saved.Body).Equal(report.Body)
	gt.V(t, saved.ExternalURL).Equal(report.ExternalURL)
	gt.True(t, saved.TimeBegan.Equal(report.TimeBegan))
	gt.True(t, model.SameEnclaves(saved.EnclaveIDs, report.EnclaveIDs))
}

// TestUpdate checks an update keeps the report ID and replaces owned fields
func TestUpdate(t *testing.T, station interfaces.Station, enclaveID types.EnclaveID) {
	ctx := context.Background()
	report := newReport(enclaveID)

	submitted := gt.R1(station.SubmitReport(ctx, report)).NoError(t)
	saved := gt.R1(station.GetReport(ctx, report.ExternalID)).NoError(t)
	gt.V(t, saved).NotEqual(nil)

	saved.Title = report.Title + " (updated)"
	saved.Body = `{"title": "updated"}`
	updated := gt.R1(station.UpdateReport(ctx, saved)).NoError(t)
	gt.V(t, updated.ID).Equal(submitted.ID)

	again := gt.R1(station.GetReport(ctx, report.ExternalID)).NoError(t)
	gt.V(t, again).NotEqual(nil)
	gt.V(t, again.ID).Equal(submitted.ID)
	gt.V(t, again.Title).Equal(saved.Title)
	gt.V(t, again.Body).Equal(saved.Body)
}
