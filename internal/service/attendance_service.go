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

type attendanceRepository interface {
	WriteBatch(ctx context.Context, actorID, paradeID string, records []models.AttendanceInput) (*models.BatchResult, error)
	ListByParade(ctx context.Context, paradeID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
}

type rosterReader interface {
	ListActive(ctx context.Context, filter models.CadetFilter) ([]models.Cadet, error)
}

type coveringPermissionReader interface {
	ListCovering(ctx context.Context, paradeID string, paradeDate time.Time) ([]models.Permission, error)
}

type summaryInvalidator interface {
	InvalidateParade(ctx context.Context, paradeID string)
}

// AttendanceService drives the submission workflow: it reconciles the scoped
// roster against permissions and manual marks, writes the result as one atomic
// batch, and verifies the store applied it in full.
type AttendanceService struct {
	repo        attendanceRepository
	cadets      rosterReader
	permissions coveringPermissionReader
	parades     permissionParadeReader
	summaries   summaryInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, cadets rosterReader, permissions coveringPermissionReader, parades permissionParadeReader, summaries summaryInvalidator, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		repo:        repo,
		cadets:      cadets,
		permissions: permissions,
		parades:     parades,
		summaries:   summaries,
		validator:   validate,
		logger:      logger,
	}
}

// SubmitAttendanceRequest is the submission payload for one (category,
// division) scope. Marks keys are cadet IDs; a missing key means unmarked.
type SubmitAttendanceRequest struct {
	Category string          `json:"category" validate:"required"`
	Division string          `json:"division" validate:"required"`
	Marks    map[string]bool `json:"marks"`
}

// Submit reconciles and atomically persists attendance for the caller's
// scope. A first submission advances the parade to attendance_submitted;
// while the parade stays in that state the same operation re-runs as an
// edit-mode full overwrite. The count check implements the wire contract: a
// mismatch is retryable and the batch must be resubmitted whole, since the
// store makes no promise about which rows landed.
func (s *AttendanceService) Submit(ctx context.Context, paradeID, actorID string, req SubmitAttendanceRequest) (*models.SubmissionSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	parade, err := s.loadOpenParade(ctx, paradeID)
	if err != nil {
		return nil, err
	}
	if !parade.IncludesCategory(req.Category) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "category is not part of this parade")
	}

	roster, err := s.cadets.ListActive(ctx, models.CadetFilter{Category: req.Category, Division: req.Division})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load roster")
	}
	if len(roster) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no active cadets in the submitted scope")
	}

	permissions, err := s.permissions.ListCovering(ctx, parade.ID, parade.ParadeDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load permissions")
	}

	records := ReconcileAttendance(parade, roster, permissions, req.Marks)

	result, err := s.repo.WriteBatch(ctx, actorID, parade.ID, records)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "attendance batch write failed")
	}
	if result.Written != result.Expected {
		s.logger.Warn("attendance batch mismatch",
			zap.String("parade_id", parade.ID),
			zap.Int("expected", result.Expected),
			zap.Int("written", result.Written))
		return nil, appErrors.Clone(appErrors.ErrMismatch, "")
	}

	if s.summaries != nil {
		s.summaries.InvalidateParade(ctx, parade.ID)
	}

	summary := SummarizeBatch(records)
	s.logger.Info("attendance submitted",
		zap.String("parade_id", parade.ID),
		zap.String("category", req.Category),
		zap.String("division", req.Division),
		zap.Int("total", summary.Total))
	return &summary, nil
}

// List returns persisted records for a parade.
func (s *AttendanceService) List(ctx context.Context, paradeID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ListByParade(ctx, paradeID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list attendance")
	}
	return records, nil
}

func (s *AttendanceService) loadOpenParade(ctx context.Context, paradeID string) (*models.Parade, error) {
	parade, err := s.parades.FindByID(ctx, paradeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "parade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch parade")
	}
	if !parade.Status.Open() {
		return nil, appErrors.Clone(appErrors.ErrLocked, "parade is closed, attendance is frozen")
	}
	return parade, nil
}
