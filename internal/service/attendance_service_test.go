package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
)

type mockAttendanceRepo struct {
	batches  [][]models.AttendanceInput
	result   *models.BatchResult
	writeErr error
	records  []models.AttendanceRecord
}

func (m *mockAttendanceRepo) WriteBatch(ctx context.Context, actorID, paradeID string, records []models.AttendanceInput) (*models.BatchResult, error) {
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	m.batches = append(m.batches, records)
	if m.result != nil {
		return m.result, nil
	}
	return &models.BatchResult{Expected: len(records), Written: len(records)}, nil
}

func (m *mockAttendanceRepo) ListByParade(ctx context.Context, paradeID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	return m.records, nil
}

type mockRoster struct {
	cadets []models.Cadet
}

func (m *mockRoster) ListActive(ctx context.Context, filter models.CadetFilter) ([]models.Cadet, error) {
	return m.cadets, nil
}

type mockCoveringPermissions struct {
	permissions []models.Permission
}

func (m *mockCoveringPermissions) ListCovering(ctx context.Context, paradeID string, paradeDate time.Time) ([]models.Permission, error) {
	return m.permissions, nil
}

type mockInvalidator struct {
	invalidated []string
}

func (m *mockInvalidator) InvalidateParade(ctx context.Context, paradeID string) {
	m.invalidated = append(m.invalidated, paradeID)
}

func newAttendanceFixture(status models.ParadeStatus) (*AttendanceService, *mockAttendanceRepo, *mockParadeRepo, *mockInvalidator) {
	paradeRepo := &mockParadeRepo{items: map[string]*models.Parade{
		"parade-1": {
			ID:         "parade-1",
			ParadeDate: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
			Categories: []string{"A", "B"},
			Status:     status,
		},
	}}
	attendanceRepo := &mockAttendanceRepo{}
	roster := &mockRoster{cadets: testRoster()}
	invalidator := &mockInvalidator{}
	svc := NewAttendanceService(attendanceRepo, roster, &mockCoveringPermissions{}, paradeRepo, invalidator, validator.New(), zap.NewNop())
	return svc, attendanceRepo, paradeRepo, invalidator
}

func TestAttendanceServiceSubmit(t *testing.T) {
	svc, repo, _, invalidator := newAttendanceFixture(models.ParadeStatusActive)

	summary, err := svc.Submit(context.Background(), "parade-1", "user-1", SubmitAttendanceRequest{
		Category: "A",
		Division: "SD",
		Marks:    map[string]bool{"c1": true, "c2": true},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Absent)

	require.Len(t, repo.batches, 1)
	assert.Len(t, repo.batches[0], 3)
	assert.Equal(t, []string{"parade-1"}, invalidator.invalidated)
}

func TestAttendanceServiceSubmitMismatch(t *testing.T) {
	svc, repo, _, invalidator := newAttendanceFixture(models.ParadeStatusActive)
	repo.result = &models.BatchResult{Expected: 10, Written: 9}

	_, err := svc.Submit(context.Background(), "parade-1", "user-1", SubmitAttendanceRequest{
		Category: "A",
		Division: "SD",
		Marks:    map[string]bool{"c1": true},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMismatch.Code, appErrors.FromError(err).Code)
	// A failed batch must not invalidate caches for state that never changed.
	assert.Empty(t, invalidator.invalidated)
}

func TestAttendanceServiceSubmitEditModeOverwrites(t *testing.T) {
	// attendance_submitted keeps the parade open; a resubmission re-runs the
	// same full-scope write.
	svc, repo, _, _ := newAttendanceFixture(models.ParadeStatusAttendanceSubmitted)

	_, err := svc.Submit(context.Background(), "parade-1", "user-1", SubmitAttendanceRequest{
		Category: "A",
		Division: "SD",
		Marks:    map[string]bool{"c3": true},
	})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "parade-1", "user-1", SubmitAttendanceRequest{
		Category: "A",
		Division: "SD",
		Marks:    map[string]bool{"c1": true},
	})
	require.NoError(t, err)

	require.Len(t, repo.batches, 2)
	assert.Len(t, repo.batches[1], 3)
	assert.Equal(t, models.AttendancePresent, repo.batches[1][0].Status)
	assert.Equal(t, models.AttendanceWithoutPermission, repo.batches[1][2].Status)
}

func TestAttendanceServiceSubmitCompletedParade(t *testing.T) {
	svc, _, _, _ := newAttendanceFixture(models.ParadeStatusCompleted)

	_, err := svc.Submit(context.Background(), "parade-1", "user-1", SubmitAttendanceRequest{
		Category: "A",
		Division: "SD",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrLocked.Code, appErrors.FromError(err).Code)
}

func TestAttendanceServiceSubmitUnknownParade(t *testing.T) {
	svc, _, _, _ := newAttendanceFixture(models.ParadeStatusActive)

	_, err := svc.Submit(context.Background(), "missing", "user-1", SubmitAttendanceRequest{
		Category: "A",
		Division: "SD",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAttendanceServiceSubmitCategoryNotInParade(t *testing.T) {
	svc, _, _, _ := newAttendanceFixture(models.ParadeStatusActive)

	_, err := svc.Submit(context.Background(), "parade-1", "user-1", SubmitAttendanceRequest{
		Category: "C",
		Division: "SD",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAttendanceServiceSubmitPermissionPrecedence(t *testing.T) {
	paradeRepo := &mockParadeRepo{items: map[string]*models.Parade{
		"parade-1": {
			ID:         "parade-1",
			ParadeDate: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
			Categories: []string{"A"},
			Status:     models.ParadeStatusActive,
		},
	}}
	permissions := &mockCoveringPermissions{permissions: []models.Permission{
		{ID: "p1", ParadeID: "parade-1", CadetID: "c1", Reason: models.ReasonCampDuty, ToDate: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)},
	}}
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, &mockRoster{cadets: testRoster()}, permissions, paradeRepo, nil, validator.New(), zap.NewNop())

	summary, err := svc.Submit(context.Background(), "parade-1", "user-1", SubmitAttendanceRequest{
		Category: "A",
		Division: "SD",
		Marks:    map[string]bool{"c1": true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Permission)
	assert.Equal(t, 0, summary.Present)
	assert.Equal(t, models.AttendanceWithPermission, repo.batches[0][0].Status)
}

func TestAttendanceServiceSubmitEmptyScope(t *testing.T) {
	paradeRepo := &mockParadeRepo{items: map[string]*models.Parade{
		"parade-1": {ID: "parade-1", Categories: []string{"A"}, Status: models.ParadeStatusActive},
	}}
	svc := NewAttendanceService(&mockAttendanceRepo{}, &mockRoster{}, &mockCoveringPermissions{}, paradeRepo, nil, validator.New(), zap.NewNop())

	_, err := svc.Submit(context.Background(), "parade-1", "user-1", SubmitAttendanceRequest{
		Category: "A",
		Division: "SD",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAttendanceServiceList(t *testing.T) {
	repo := &mockAttendanceRepo{records: []models.AttendanceRecord{
		{ID: "r1", ParadeID: "parade-1", CadetID: "c1", Status: models.AttendancePresent},
	}}
	svc := NewAttendanceService(repo, &mockRoster{}, &mockCoveringPermissions{}, &mockParadeRepo{}, nil, validator.New(), zap.NewNop())

	records, err := svc.List(context.Background(), "parade-1", models.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c1", records[0].CadetID)
}
