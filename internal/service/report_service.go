package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
)

type paradeReportRepository interface {
	Upsert(ctx context.Context, report *models.ParadeReport) (*models.ParadeReport, error)
	Get(ctx context.Context, paradeID, category string) (*models.ParadeReport, error)
	ListByParade(ctx context.Context, paradeID string) ([]models.ParadeReport, error)
}

// ReportService manages the per-category parade reports seniors write after
// the activity. Reports stay editable until the parade completes.
type ReportService struct {
	repo      paradeReportRepository
	parades   permissionParadeReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(repo paradeReportRepository, parades permissionParadeReader, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, parades: parades, validator: validate, logger: logger}
}

// UpsertReportRequest is the report write payload.
type UpsertReportRequest struct {
	ReportText string `json:"report_text" validate:"required"`
}

// Upsert saves or replaces the report for (parade, category). The parade type
// is copied from the parade's type map at save time so later type-map edits
// cannot rewrite history.
func (s *ReportService) Upsert(ctx context.Context, paradeID, category, actorID string, req UpsertReportRequest) (*models.ParadeReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}

	parade, err := s.parades.FindByID(ctx, paradeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "parade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch parade")
	}
	if parade.Status == models.ParadeStatusCompleted {
		return nil, appErrors.Clone(appErrors.ErrLocked, "reports are locked once the parade is completed")
	}

	paradeType, ok := parade.ParadeTypeMap[category]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "category is not part of this parade")
	}

	stored, err := s.repo.Upsert(ctx, &models.ParadeReport{
		ParadeID:   paradeID,
		Category:   category,
		ReportText: req.ReportText,
		ParadeType: paradeType,
		UpdatedBy:  &actorID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to save report")
	}
	return stored, nil
}

// Get returns the report for (parade, category), or nil when none exists.
func (s *ReportService) Get(ctx context.Context, paradeID, category string) (*models.ParadeReport, error) {
	report, err := s.repo.Get(ctx, paradeID, category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch report")
	}
	return report, nil
}

// ListByParade returns all reports submitted for a parade.
func (s *ReportService) ListByParade(ctx context.Context, paradeID string) ([]models.ParadeReport, error) {
	reports, err := s.repo.ListByParade(ctx, paradeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list reports")
	}
	return reports, nil
}

// Template returns the prefill skeleton for the category's parade type.
func (s *ReportService) Template(ctx context.Context, paradeID, category string) (string, error) {
	parade, err := s.parades.FindByID(ctx, paradeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "parade not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch parade")
	}
	paradeType, ok := parade.ParadeTypeMap[category]
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, "category is not part of this parade")
	}
	return ReportTemplate(paradeType), nil
}
