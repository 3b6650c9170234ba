package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
	"github.com/noah-isme/ncc-parade-api/pkg/jobs"
)

type mockNotificationRepo struct {
	inserted  []*models.Notification
	insertErr error
	active    []models.Notification
}

func (m *mockNotificationRepo) Insert(ctx context.Context, notification *models.Notification) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, notification)
	return nil
}

func (m *mockNotificationRepo) ListActive(ctx context.Context, paradeID string, role models.UserRole, category, division string) ([]models.Notification, error) {
	return m.active, nil
}

type mockQueue struct {
	jobs       []jobs.Job
	enqueueErr error
}

func (m *mockQueue) Enqueue(job jobs.Job) error {
	if m.enqueueErr != nil {
		return m.enqueueErr
	}
	m.jobs = append(m.jobs, job)
	return nil
}

func TestPendingMessage(t *testing.T) {
	message := PendingMessage(models.PendingSlot{Category: "B", Division: "SW"})
	assert.Equal(t, "Attendance for Category B – SW is pending. Submit attendance immediately.", message)
}

func TestNotifyPendingNoSlots(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{}, nil, zap.NewNop())

	_, err := svc.NotifyPending(context.Background(), "parade-1", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoPendingSlots.Code, appErrors.FromError(err).Code)
}

func TestNotifyPendingInsertsPerSlot(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, nil, zap.NewNop())

	count, err := svc.NotifyPending(context.Background(), "parade-1", []models.PendingSlot{
		{Category: "A", Division: "SD"},
		{Category: "B", Division: "SW"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.inserted, 2)

	first := repo.inserted[0]
	assert.Equal(t, "parade-1", first.ParadeID)
	assert.Equal(t, models.NotificationPending, first.Type)
	assert.Equal(t, models.RoleSenior, first.TargetRole)
	require.NotNil(t, first.TargetCategory)
	assert.Equal(t, "A", *first.TargetCategory)
	require.NotNil(t, first.TargetDivision)
	assert.Equal(t, "SD", *first.TargetDivision)
	assert.True(t, first.IsActive)
	assert.Equal(t, PendingMessage(models.PendingSlot{Category: "A", Division: "SD"}), first.Message)
}

func TestNotifyPendingUsesQueue(t *testing.T) {
	repo := &mockNotificationRepo{}
	queue := &mockQueue{}
	svc := NewNotificationService(repo, queue, zap.NewNop())

	count, err := svc.NotifyPending(context.Background(), "parade-1", []models.PendingSlot{
		{Category: "A", Division: "SD"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, "notification.pending", queue.jobs[0].Type)
	// Enqueued jobs are persisted by the worker, not inline.
	assert.Empty(t, repo.inserted)
}

func TestNotifyPendingFallsBackWhenQueueFails(t *testing.T) {
	repo := &mockNotificationRepo{}
	queue := &mockQueue{enqueueErr: errors.New("queue stopped")}
	svc := NewNotificationService(repo, queue, zap.NewNop())

	count, err := svc.NotifyPending(context.Background(), "parade-1", []models.PendingSlot{
		{Category: "A", Division: "SD"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, repo.inserted, 1)
}

func TestHandleDispatchJob(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, nil, zap.NewNop())

	notification := &models.Notification{ParadeID: "parade-1", Message: "msg"}
	require.NoError(t, svc.HandleDispatchJob(context.Background(), jobs.Job{
		ID:      "job-1",
		Type:    "notification.pending",
		Payload: notification,
	}))
	assert.Len(t, repo.inserted, 1)

	err := svc.HandleDispatchJob(context.Background(), jobs.Job{Payload: "not a notification"})
	require.Error(t, err)
}

func TestListForRecipient(t *testing.T) {
	repo := &mockNotificationRepo{active: []models.Notification{
		{ID: "n1", ParadeID: "parade-1", Message: "msg"},
	}}
	svc := NewNotificationService(repo, nil, zap.NewNop())

	notifications, err := svc.ListForRecipient(context.Background(), "parade-1", models.RoleSenior, "A", "SD")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "n1", notifications[0].ID)
}
