package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
)

type permissionRepository interface {
	Upsert(ctx context.Context, permission *models.Permission) (*models.Permission, error)
	Delete(ctx context.Context, paradeID, cadetID string) error
	Get(ctx context.Context, paradeID, cadetID string) (*models.Permission, error)
	ListByParade(ctx context.Context, paradeID string) ([]models.Permission, error)
	ListCovering(ctx context.Context, paradeID string, paradeDate time.Time) ([]models.Permission, error)
}

type permissionParadeReader interface {
	FindByID(ctx context.Context, id string) (*models.Parade, error)
}

// PermissionService is the advance-excusal ledger. All mutations are legal
// only while the owning parade is active; the window check lives here so no
// caller can bypass it.
type PermissionService struct {
	repo      permissionRepository
	parades   permissionParadeReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPermissionService constructs the permission service.
func NewPermissionService(repo permissionRepository, parades permissionParadeReader, validate *validator.Validate, logger *zap.Logger) *PermissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionService{repo: repo, parades: parades, validator: validate, logger: logger}
}

// UpsertPermissionRequest is the ledger write payload.
type UpsertPermissionRequest struct {
	CadetID string `json:"cadet_id" validate:"required"`
	Reason  string `json:"reason" validate:"required"`
	ToDate  string `json:"to_date"`
}

func (s *PermissionService) activeParade(ctx context.Context, paradeID string) (*models.Parade, error) {
	parade, err := s.parades.FindByID(ctx, paradeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "parade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch parade")
	}
	if parade.Status != models.ParadeStatusActive {
		return nil, appErrors.Clone(appErrors.ErrLocked, "permissions are locked after attendance submission")
	}
	return parade, nil
}

// Upsert records or replaces the permission for (parade, cadet).
func (s *PermissionService) Upsert(ctx context.Context, paradeID string, req UpsertPermissionRequest) (*models.Permission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid permission payload")
	}

	reason := models.PermissionReason(req.Reason)
	if !reason.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid permission reason")
	}

	parade, err := s.activeParade(ctx, paradeID)
	if err != nil {
		return nil, err
	}

	toDate := parade.ParadeDate
	if req.ToDate != "" {
		toDate, err = time.Parse("2006-01-02", req.ToDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "to_date must be YYYY-MM-DD")
		}
	}
	if toDate.Before(parade.ParadeDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "permission date cannot be before the parade date")
	}

	stored, err := s.repo.Upsert(ctx, &models.Permission{
		ParadeID: paradeID,
		CadetID:  req.CadetID,
		Reason:   reason,
		ToDate:   toDate,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to save permission")
	}
	return stored, nil
}

// Remove deletes the permission for (parade, cadet), under the same locking
// rule as Upsert.
func (s *PermissionService) Remove(ctx context.Context, paradeID, cadetID string) error {
	if _, err := s.activeParade(ctx, paradeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, paradeID, cadetID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete permission")
	}
	return nil
}

// Get returns the current permission for (parade, cadet), or nil when none
// exists.
func (s *PermissionService) Get(ctx context.Context, paradeID, cadetID string) (*models.Permission, error) {
	permission, err := s.repo.Get(ctx, paradeID, cadetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch permission")
	}
	return permission, nil
}

// ListByParade returns the permissions issued against a parade.
func (s *PermissionService) ListByParade(ctx context.Context, paradeID string) ([]models.Permission, error) {
	permissions, err := s.repo.ListByParade(ctx, paradeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list permissions")
	}
	return permissions, nil
}
