package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ncc-parade-api/internal/models"
)

func TestAttendanceRepositoryWriteBatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	records := []models.AttendanceInput{
		{CadetID: "c1", Status: models.AttendancePresent},
		{CadetID: "c2", Status: models.AttendanceWithoutPermission},
	}
	payload, err := json.Marshal(records)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT expected, written FROM write_attendance_batch($1, $2, $3::jsonb)")).
		WithArgs("user-1", "parade-1", payload).
		WillReturnRows(sqlmock.NewRows([]string{"expected", "written"}).AddRow(2, 2))

	result, err := repo.WriteBatch(context.Background(), "user-1", "parade-1", records)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Expected)
	assert.Equal(t, 2, result.Written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryWriteBatchReportsMismatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("SELECT expected, written FROM write_attendance_batch").
		WillReturnRows(sqlmock.NewRows([]string{"expected", "written"}).AddRow(10, 9))

	result, err := repo.WriteBatch(context.Background(), "user-1", "parade-1", []models.AttendanceInput{{CadetID: "c1", Status: models.AttendancePresent}})
	require.NoError(t, err)
	// The repository reports raw counts; interpreting the gap is the service's
	// job.
	assert.Equal(t, 10, result.Expected)
	assert.Equal(t, 9, result.Written)
}

func TestAttendanceRepositoryListByParade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "parade_id", "cadet_id", "status", "reason", "created_at", "updated_at"}).
		AddRow("r1", "parade-1", "c1", "present", nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM attendance a").
		WithArgs("parade-1").
		WillReturnRows(rows)

	records, err := repo.ListByParade(context.Background(), "parade-1", models.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendancePresent, records[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListByParadeFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	status := models.AttendanceWithPermission
	mock.ExpectQuery(regexp.QuoteMeta("c.category = $2")).
		WithArgs("parade-1", "A", "SD", status).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parade_id", "cadet_id", "status", "reason", "created_at", "updated_at"}))

	records, err := repo.ListByParade(context.Background(), "parade-1", models.AttendanceFilter{
		Category: "A",
		Division: "SD",
		Status:   &status,
	})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
