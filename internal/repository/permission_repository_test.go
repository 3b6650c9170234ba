package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ncc-parade-api/internal/models"
)

func permissionRows(id, paradeID, cadetID string, reason models.PermissionReason, toDate time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "parade_id", "cadet_id", "reason", "to_date", "created_at", "updated_at"}).
		AddRow(id, paradeID, cadetID, string(reason), toDate, time.Now(), time.Now())
}

func TestPermissionRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	toDate := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO permissions (.+) ON CONFLICT \\(parade_id, cadet_id\\)").
		WithArgs(sqlmock.AnyArg(), "parade-1", "c1", models.ReasonHealthIssue, toDate, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(permissionRows("perm-1", "parade-1", "c1", models.ReasonHealthIssue, toDate))

	stored, err := repo.Upsert(context.Background(), &models.Permission{
		ParadeID: "parade-1",
		CadetID:  "c1",
		Reason:   models.ReasonHealthIssue,
		ToDate:   toDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "perm-1", stored.ID)
	assert.Equal(t, models.ReasonHealthIssue, stored.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM permissions WHERE parade_id = $1 AND cadet_id = $2")).
		WithArgs("parade-1", "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "parade-1", "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM permissions WHERE parade_id").
		WithArgs("parade-1", "c1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "parade-1", "c1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPermissionRepositoryListCovering(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	paradeDate := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE parade_id = $1 OR to_date >= $2")).
		WithArgs("parade-1", paradeDate).
		WillReturnRows(permissionRows("perm-1", "parade-0", "c2", models.ReasonWentHome, paradeDate.AddDate(0, 0, 1)))

	permissions, err := repo.ListCovering(context.Background(), "parade-1", paradeDate)
	require.NoError(t, err)
	require.Len(t, permissions, 1)
	assert.Equal(t, "c2", permissions[0].CadetID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
