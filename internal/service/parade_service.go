package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	"github.com/noah-isme/ncc-parade-api/internal/repository"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
)

type paradeRepository interface {
	Create(ctx context.Context, parade *models.Parade) (*models.Parade, error)
	FindByID(ctx context.Context, id string) (*models.Parade, error)
	FindOpen(ctx context.Context) (*models.Parade, error)
	LastCompletedTypeMap(ctx context.Context) (models.ParadeTypeMap, error)
	UpdateRemarks(ctx context.Context, id, remarks string) error
	Close(ctx context.Context, actorID, paradeID string) error
}

// ParadeService owns the parade lifecycle: creation under the single-open
// invariant, the remarks window and the atomic close transaction.
type ParadeService struct {
	repo      paradeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewParadeService constructs the parade service.
func NewParadeService(repo paradeRepository, validate *validator.Validate, logger *zap.Logger) *ParadeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParadeService{repo: repo, validator: validate, logger: logger}
}

// CreateParadeRequest is the creation payload.
type CreateParadeRequest struct {
	ParadeDate    string                       `json:"parade_date" validate:"required"`
	Session       string                       `json:"session" validate:"required"`
	Categories    []string                     `json:"categories" validate:"required,min=1"`
	ParadeTypeMap map[string]models.ParadeType `json:"parade_type_map" validate:"required"`
}

// Create opens a new parade. Exactly one parade may be open system-wide; the
// check here is backed by the store's partial unique index, so a concurrent
// creation race still resolves to a single winner.
func (s *ParadeService) Create(ctx context.Context, req CreateParadeRequest, actorID string) (*models.Parade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid parade payload")
	}

	session := models.ParadeSession(req.Session)
	if !session.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid parade session")
	}

	paradeDate, err := time.Parse("2006-01-02", req.ParadeDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "parade_date must be YYYY-MM-DD")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if paradeDate.Before(today) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot create a parade for a past date")
	}

	typeMap := make(models.ParadeTypeMap, len(req.Categories))
	for _, category := range req.Categories {
		paradeType, ok := req.ParadeTypeMap[category]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "missing parade type for category "+category)
		}
		if !paradeType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid parade type for category "+category)
		}
		typeMap[category] = paradeType
	}

	if _, err := s.repo.FindOpen(ctx); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an open parade already exists, close it before creating a new one")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to check open parade")
	}

	parade := &models.Parade{
		ParadeDate:    paradeDate,
		Session:       session,
		Categories:    req.Categories,
		ParadeTypeMap: typeMap,
		CreatedBy:     actorID,
	}

	stored, err := s.repo.Create(ctx, parade)
	if err != nil {
		if errors.Is(err, repository.ErrOpenParadeExists) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "an open parade already exists, close it before creating a new one")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create parade")
	}

	s.logger.Info("parade created",
		zap.String("parade_id", stored.ID),
		zap.String("parade_date", req.ParadeDate),
		zap.String("session", string(session)))
	return stored, nil
}

// Get returns a parade by id.
func (s *ParadeService) Get(ctx context.Context, id string) (*models.Parade, error) {
	parade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "parade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch parade")
	}
	return parade, nil
}

// GetOpen returns the current open parade.
func (s *ParadeService) GetOpen(ctx context.Context) (*models.Parade, error) {
	parade, err := s.repo.FindOpen(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no open parade")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch open parade")
	}
	return parade, nil
}

// LastTypeMap returns the type map of the most recently completed parade so
// the creation form can be prefilled. An empty map is returned when no parade
// has completed yet.
func (s *ParadeService) LastTypeMap(ctx context.Context) (models.ParadeTypeMap, error) {
	typeMap, err := s.repo.LastCompletedTypeMap(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ParadeTypeMap{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch last parade type map")
	}
	return typeMap, nil
}

// UpdateRemarks writes the reviewing officer's remarks. Remarks open up once
// attendance is submitted and freeze when the parade completes.
func (s *ParadeService) UpdateRemarks(ctx context.Context, paradeID, remarks string) (*models.Parade, error) {
	parade, err := s.Get(ctx, paradeID)
	if err != nil {
		return nil, err
	}
	if parade.Status != models.ParadeStatusAttendanceSubmitted {
		return nil, appErrors.Clone(appErrors.ErrLocked, "remarks are writable only after attendance submission and before closing")
	}
	if err := s.repo.UpdateRemarks(ctx, paradeID, remarks); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrLocked, "remarks are writable only after attendance submission and before closing")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update remarks")
	}
	return s.Get(ctx, paradeID)
}

// Close drives the atomic close transaction. Any pending remarks edit is
// persisted first, then the server-side procedure verifies status and pending
// slots and flips the parade to completed, all or nothing.
func (s *ParadeService) Close(ctx context.Context, paradeID, actorID string, remarks *string) error {
	if remarks != nil {
		if _, err := s.UpdateRemarks(ctx, paradeID, *remarks); err != nil {
			return err
		}
	}

	if err := s.repo.Close(ctx, actorID, paradeID); err != nil {
		switch {
		case errors.Is(err, repository.ErrAttendancePending):
			return appErrors.Clone(appErrors.ErrAttendancePending, "cannot close parade, attendance is still pending")
		case errors.Is(err, repository.ErrParadeNotReady):
			return appErrors.Clone(appErrors.ErrParadeNotReady, "parade is not ready to be closed")
		default:
			return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "close transaction failed")
		}
	}

	s.logger.Info("parade closed", zap.String("parade_id", paradeID), zap.String("actor_id", actorID))
	return nil
}
