package repository

import (
	"context"

	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

type ProgressRepository struct {
	db DBTX
}

func NewProgressRepository(db DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// CreateForProgram materializes one pending entry per workout currently in the
// program. Runs inside the assignment transaction; returns the number of
// entries created.
func (r *ProgressRepository) CreateForProgram(ctx context.Context, userID, programID int64) (int64, error) {
	query := `
		INSERT INTO progress_entries (user_id, workout_id, status)
		SELECT $1, id, 'pending'
		FROM workouts
		WHERE program_id = $2
	`

	tag, err := r.db.Exec(ctx, query, userID, programID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CreateForWorkout back-fills one pending entry per user already assigned to
// the workout's program. Runs inside the workout-creation transaction.
func (r *ProgressRepository) CreateForWorkout(ctx context.Context, workoutID, programID int64) (int64, error) {
	query := `
		INSERT INTO progress_entries (user_id, workout_id, status)
		SELECT user_id, $1, 'pending'
		FROM assignments
		WHERE program_id = $2
	`

	tag, err := r.db.Exec(ctx, query, workoutID, programID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkDone flips the entry to done and refreshes its timestamp. Re-marking an
// already-done entry is a no-op update, never an error.
func (r *ProgressRepository) MarkDone(ctx context.Context, userID, workoutID int64) (*models.ProgressEntry, error) {
	query := `
		UPDATE progress_entries
		SET status = 'done', updated_at = now()
		WHERE user_id = $1 AND workout_id = $2
		RETURNING id, user_id, workout_id, status, created_at, updated_at
	`

	var entry models.ProgressEntry
	err := r.db.QueryRow(ctx, query, userID, workoutID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.WorkoutID,
		&entry.Status,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// CountForProgram returns total entries and remaining non-done entries for the
// user's assignment to the program.
func (r *ProgressRepository) CountForProgram(ctx context.Context, userID, programID int64) (total int64, pending int64, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE pe.status <> 'done')
		FROM progress_entries pe
		JOIN workouts w ON w.id = pe.workout_id
		WHERE pe.user_id = $1 AND w.program_id = $2
	`

	err = r.db.QueryRow(ctx, query, userID, programID).Scan(&total, &pending)
	if err != nil {
		return 0, 0, err
	}
	return total, pending, nil
}

func (r *ProgressRepository) ListForProgram(ctx context.Context, userID, programID int64) ([]models.ProgressEntry, error) {
	query := `
		SELECT pe.id, pe.user_id, pe.workout_id, pe.status, pe.created_at, pe.updated_at
		FROM progress_entries pe
		JOIN workouts w ON w.id = pe.workout_id
		WHERE pe.user_id = $1 AND w.program_id = $2
		ORDER BY pe.workout_id ASC
	`

	rows, err := r.db.Query(ctx, query, userID, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.ProgressEntry, 0)
	for rows.Next() {
		var entry models.ProgressEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.WorkoutID,
			&entry.Status,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
