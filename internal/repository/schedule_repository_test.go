package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hufspace/classroom-finder/internal/model"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ScheduleRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewScheduleRepo(db)
}

func TestReplace_WritesRoomsAndSlots(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	idx := model.ScheduleIndex{
		"역사관 101호": {"월": {1, 2}, "화": {}},
		"사이버관":    {"월": {}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM room_schedules`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM classrooms`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO classrooms`).
		WithArgs("사이버관", "역사관 101호").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO room_schedules`).
		WithArgs("역사관 101호", "월", 1, "역사관 101호", "월", 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Replace(context.Background(), idx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_RollsBackOnError(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM room_schedules`).WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), model.ScheduleIndex{"A": {}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_BuildsIndex(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT name FROM classrooms`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("역사관 101호").AddRow("사이버관"))
	mock.ExpectQuery(`SELECT room, day, period FROM room_schedules`).
		WillReturnRows(sqlmock.NewRows([]string{"room", "day", "period"}).
			AddRow("역사관 101호", "월", 1).
			AddRow("역사관 101호", "월", 2).
			AddRow("역사관 101호", "수", 5))

	idx, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, idx, 2)
	assert.Equal(t, []int{1, 2}, idx["역사관 101호"]["월"])
	assert.Equal(t, []int{5}, idx["역사관 101호"]["수"])
	assert.Equal(t, []int{}, idx["사이버관"]["월"])
	assert.Len(t, idx["사이버관"], len(model.Days))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_Empty(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT name FROM classrooms`).WillReturnRows(sqlmock.NewRows([]string{"name"}))

	_, err := repo.Load(context.Background())
	assert.True(t, errors.Is(err, ErrEmptySchedule))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_ClassroomIterationError(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name"}).
		AddRow("역사관 101호").
		AddRow("사이버관").
		RowError(1, errors.New("connection reset"))
	mock.ExpectQuery(`SELECT name FROM classrooms`).WillReturnRows(rows)

	idx, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS classrooms`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS room_schedules`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
