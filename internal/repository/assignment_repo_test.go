package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestAssignmentRepositoryCreate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAssignmentRepository(mock)

	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO assignments").
		WithArgs(int64(42), int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "program_id", "completed_at", "created_at"}).
			AddRow(int64(1), int64(42), int64(7), (*time.Time)(nil), now))

	assignment, err := repo.Create(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), assignment.ID)
	assert.Equal(t, int64(42), assignment.UserID)
	assert.Equal(t, int64(7), assignment.ProgramID)
	assert.Nil(t, assignment.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryGetByUserAndProgramNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectQuery("FROM assignments").
		WithArgs(int64(42), int64(7)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByUserAndProgram(context.Background(), 42, 7)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryMarkCompletedStampsOnce(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectExec("UPDATE assignments").
		WithArgs(int64(42), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	stamped, err := repo.MarkCompleted(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.True(t, stamped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryMarkCompletedNoOpWhenAlreadyStamped(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectExec("UPDATE assignments").
		WithArgs(int64(42), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	stamped, err := repo.MarkCompleted(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.False(t, stamped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryListByUserIDAggregatesProgress(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAssignmentRepository(mock)

	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	completed := now.Add(time.Hour)
	mock.ExpectQuery("FROM assignments a").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "program_id", "completed_at", "created_at", "total_workouts", "done_workouts"}).
			AddRow(int64(2), int64(42), int64(8), &completed, now, int64(4), int64(4)).
			AddRow(int64(1), int64(42), int64(7), (*time.Time)(nil), now, int64(3), int64(1)))

	assignments, err := repo.ListByUserID(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	assert.NotNil(t, assignments[0].CompletedAt)
	assert.Equal(t, 4, assignments[0].DoneWorkouts)
	assert.Nil(t, assignments[1].CompletedAt)
	assert.Equal(t, 3, assignments[1].TotalWorkouts)
	assert.Equal(t, 1, assignments[1].DoneWorkouts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
