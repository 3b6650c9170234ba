package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
	"github.com/noah-isme/ncc-parade-api/pkg/jobs"
)

type notificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) error
	ListActive(ctx context.Context, paradeID string, role models.UserRole, category, division string) ([]models.Notification, error)
}

type notificationQueue interface {
	Enqueue(job jobs.Job) error
}

// NotificationService turns pending slots into addressed notice records for
// the seniors responsible for submitting them. Inserts are fanned out through
// the background queue so a slow store does not block the review screen.
type NotificationService struct {
	repo   notificationRepository
	queue  notificationQueue
	logger *zap.Logger
}

// NewNotificationService constructs the notification service. queue may be
// nil, in which case notices are written synchronously.
func NewNotificationService(repo notificationRepository, queue notificationQueue, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, queue: queue, logger: logger}
}

// PendingMessage renders the deterministic notice text for a pending slot.
func PendingMessage(slot models.PendingSlot) string {
	return fmt.Sprintf("Attendance for Category %s – %s is pending. Submit attendance immediately.", slot.Category, slot.Division)
}

func buildPendingNotification(paradeID string, slot models.PendingSlot) *models.Notification {
	category := slot.Category
	division := slot.Division
	return &models.Notification{
		ParadeID:       paradeID,
		Type:           models.NotificationPending,
		Message:        PendingMessage(slot),
		TargetRole:     models.RoleSenior,
		TargetCategory: &category,
		TargetDivision: &division,
		IsActive:       true,
	}
}

// NotifyPending creates exactly one notification per pending slot. Calling it
// with no slots is a usage error, not a silent success.
func (s *NotificationService) NotifyPending(ctx context.Context, paradeID string, slots []models.PendingSlot) (int, error) {
	if len(slots) == 0 {
		return 0, appErrors.Clone(appErrors.ErrNoPendingSlots, "")
	}

	for _, slot := range slots {
		notification := buildPendingNotification(paradeID, slot)
		if s.queue != nil {
			err := s.queue.Enqueue(jobs.Job{
				ID:      uuid.NewString(),
				Type:    "notification.pending",
				Payload: notification,
			})
			if err == nil {
				continue
			}
			s.logger.Warn("notification enqueue failed, inserting inline", zap.Error(err))
		}
		if err := s.repo.Insert(ctx, notification); err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create notification")
		}
	}

	s.logger.Info("pending notifications dispatched",
		zap.String("parade_id", paradeID),
		zap.Int("slots", len(slots)))
	return len(slots), nil
}

// HandleDispatchJob is the queue handler persisting one enqueued notice.
func (s *NotificationService) HandleDispatchJob(ctx context.Context, job jobs.Job) error {
	notification, ok := job.Payload.(*models.Notification)
	if !ok {
		return fmt.Errorf("unexpected notification payload %T", job.Payload)
	}
	return s.repo.Insert(ctx, notification)
}

// ListForRecipient returns active notices addressed to the caller's role and
// scope.
func (s *NotificationService) ListForRecipient(ctx context.Context, paradeID string, role models.UserRole, category, division string) ([]models.Notification, error) {
	notifications, err := s.repo.ListActive(ctx, paradeID, role, category, division)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list notifications")
	}
	return notifications, nil
}
