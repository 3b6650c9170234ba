package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	"github.com/noah-isme/ncc-parade-api/internal/repository"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
)

type mockParadeRepo struct {
	items       map[string]*models.Parade
	open        *models.Parade
	lastTypeMap models.ParadeTypeMap
	createErr   error
	closeErr    error
	remarks     map[string]string
}

func (m *mockParadeRepo) Create(ctx context.Context, parade *models.Parade) (*models.Parade, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.items == nil {
		m.items = make(map[string]*models.Parade)
	}
	cp := *parade
	cp.ID = "generated"
	cp.Status = models.ParadeStatusActive
	m.items[cp.ID] = &cp
	m.open = &cp
	return &cp, nil
}

func (m *mockParadeRepo) FindByID(ctx context.Context, id string) (*models.Parade, error) {
	if parade, ok := m.items[id]; ok {
		cp := *parade
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockParadeRepo) FindOpen(ctx context.Context) (*models.Parade, error) {
	if m.open == nil {
		return nil, sql.ErrNoRows
	}
	cp := *m.open
	return &cp, nil
}

func (m *mockParadeRepo) LastCompletedTypeMap(ctx context.Context) (models.ParadeTypeMap, error) {
	if m.lastTypeMap == nil {
		return nil, sql.ErrNoRows
	}
	return m.lastTypeMap, nil
}

func (m *mockParadeRepo) UpdateRemarks(ctx context.Context, id, remarks string) error {
	parade, ok := m.items[id]
	if !ok || parade.Status != models.ParadeStatusAttendanceSubmitted {
		return sql.ErrNoRows
	}
	if m.remarks == nil {
		m.remarks = make(map[string]string)
	}
	m.remarks[id] = remarks
	parade.AnoRemarks = &remarks
	return nil
}

func (m *mockParadeRepo) Close(ctx context.Context, actorID, paradeID string) error {
	if m.closeErr != nil {
		return m.closeErr
	}
	if parade, ok := m.items[paradeID]; ok {
		parade.Status = models.ParadeStatusCompleted
	}
	m.open = nil
	return nil
}

func validCreateRequest() CreateParadeRequest {
	return CreateParadeRequest{
		ParadeDate: time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
		Session:    "morning",
		Categories: []string{"A", "B"},
		ParadeTypeMap: map[string]models.ParadeType{
			"A": models.ParadeTypeDrill,
			"B": models.ParadeTypeTheory,
		},
	}
}

func TestParadeServiceCreate(t *testing.T) {
	repo := &mockParadeRepo{}
	svc := NewParadeService(repo, validator.New(), zap.NewNop())

	parade, err := svc.Create(context.Background(), validCreateRequest(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.ParadeStatusActive, parade.Status)
	assert.Equal(t, "user-1", parade.CreatedBy)
	assert.Equal(t, models.ParadeTypeDrill, parade.ParadeTypeMap["A"])
}

func TestParadeServiceCreateRejectsSecondOpenParade(t *testing.T) {
	repo := &mockParadeRepo{open: &models.Parade{ID: "existing", Status: models.ParadeStatusActive}}
	svc := NewParadeService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), validCreateRequest(), "user-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestParadeServiceCreateRaceLosesToStoreIndex(t *testing.T) {
	repo := &mockParadeRepo{createErr: repository.ErrOpenParadeExists}
	svc := NewParadeService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), validCreateRequest(), "user-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestParadeServiceCreateValidation(t *testing.T) {
	svc := NewParadeService(&mockParadeRepo{}, validator.New(), zap.NewNop())

	cases := map[string]func(*CreateParadeRequest){
		"invalid session":     func(r *CreateParadeRequest) { r.Session = "noon" },
		"past date":           func(r *CreateParadeRequest) { r.ParadeDate = "2020-01-01" },
		"bad date format":     func(r *CreateParadeRequest) { r.ParadeDate = "01-01-2030" },
		"missing type":        func(r *CreateParadeRequest) { delete(r.ParadeTypeMap, "B") },
		"invalid parade type": func(r *CreateParadeRequest) { r.ParadeTypeMap["A"] = "Picnic" },
		"empty categories":    func(r *CreateParadeRequest) { r.Categories = nil },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validCreateRequest()
			mutate(&req)
			_, err := svc.Create(context.Background(), req, "user-1")
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestParadeServiceGetOpenNone(t *testing.T) {
	svc := NewParadeService(&mockParadeRepo{}, validator.New(), zap.NewNop())

	_, err := svc.GetOpen(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestParadeServiceLastTypeMapEmptyWhenNoHistory(t *testing.T) {
	svc := NewParadeService(&mockParadeRepo{}, validator.New(), zap.NewNop())

	typeMap, err := svc.LastTypeMap(context.Background())
	require.NoError(t, err)
	assert.Empty(t, typeMap)
}

func TestParadeServiceUpdateRemarks(t *testing.T) {
	repo := &mockParadeRepo{items: map[string]*models.Parade{
		"parade-1": {ID: "parade-1", Status: models.ParadeStatusAttendanceSubmitted},
	}}
	svc := NewParadeService(repo, validator.New(), zap.NewNop())

	parade, err := svc.UpdateRemarks(context.Background(), "parade-1", "well turned out")
	require.NoError(t, err)
	require.NotNil(t, parade.AnoRemarks)
	assert.Equal(t, "well turned out", *parade.AnoRemarks)
}

func TestParadeServiceUpdateRemarksLockedStates(t *testing.T) {
	for _, status := range []models.ParadeStatus{models.ParadeStatusActive, models.ParadeStatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			repo := &mockParadeRepo{items: map[string]*models.Parade{
				"parade-1": {ID: "parade-1", Status: status},
			}}
			svc := NewParadeService(repo, validator.New(), zap.NewNop())

			_, err := svc.UpdateRemarks(context.Background(), "parade-1", "late remark")
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrLocked.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestParadeServiceClose(t *testing.T) {
	repo := &mockParadeRepo{items: map[string]*models.Parade{
		"parade-1": {ID: "parade-1", Status: models.ParadeStatusAttendanceSubmitted},
	}}
	svc := NewParadeService(repo, validator.New(), zap.NewNop())

	require.NoError(t, svc.Close(context.Background(), "parade-1", "user-1", nil))
	assert.Equal(t, models.ParadeStatusCompleted, repo.items["parade-1"].Status)
}

func TestParadeServiceClosePersistsFinalRemarks(t *testing.T) {
	repo := &mockParadeRepo{items: map[string]*models.Parade{
		"parade-1": {ID: "parade-1", Status: models.ParadeStatusAttendanceSubmitted},
	}}
	svc := NewParadeService(repo, validator.New(), zap.NewNop())

	remarks := "final remarks"
	require.NoError(t, svc.Close(context.Background(), "parade-1", "user-1", &remarks))
	assert.Equal(t, "final remarks", repo.remarks["parade-1"])
}

func TestParadeServiceCloseErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{"attendance pending", repository.ErrAttendancePending, appErrors.ErrAttendancePending.Code},
		{"parade not ready", repository.ErrParadeNotReady, appErrors.ErrParadeNotReady.Code},
		{"store failure", sql.ErrConnDone, appErrors.ErrStore.Code},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockParadeRepo{
				items: map[string]*models.Parade{
					"parade-1": {ID: "parade-1", Status: models.ParadeStatusAttendanceSubmitted},
				},
				closeErr: tc.repoErr,
			}
			svc := NewParadeService(repo, validator.New(), zap.NewNop())

			err := svc.Close(context.Background(), "parade-1", "user-1", nil)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, appErrors.FromError(err).Code)
		})
	}
}

func TestParadeStatusLifecycle(t *testing.T) {
	assert.True(t, models.ParadeStatusActive.CanTransitionTo(models.ParadeStatusAttendanceSubmitted))
	assert.True(t, models.ParadeStatusAttendanceSubmitted.CanTransitionTo(models.ParadeStatusCompleted))

	// No skips, no backward moves.
	assert.False(t, models.ParadeStatusActive.CanTransitionTo(models.ParadeStatusCompleted))
	assert.False(t, models.ParadeStatusAttendanceSubmitted.CanTransitionTo(models.ParadeStatusActive))
	assert.False(t, models.ParadeStatusCompleted.CanTransitionTo(models.ParadeStatusActive))
	assert.False(t, models.ParadeStatusCompleted.CanTransitionTo(models.ParadeStatusAttendanceSubmitted))
}
