package repository

import (
	"context"

	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

type AssignmentRepository struct {
	db DBTX
}

func NewAssignmentRepository(db DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, userID, programID int64) (*models.Assignment, error) {
	query := `
		INSERT INTO assignments (user_id, program_id)
		VALUES ($1, $2)
		RETURNING id, user_id, program_id, completed_at, created_at
	`

	var assignment models.Assignment
	err := r.db.QueryRow(ctx, query, userID, programID).Scan(
		&assignment.ID,
		&assignment.UserID,
		&assignment.ProgramID,
		&assignment.CompletedAt,
		&assignment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *AssignmentRepository) GetByUserAndProgram(ctx context.Context, userID, programID int64) (*models.Assignment, error) {
	query := `
		SELECT id, user_id, program_id, completed_at, created_at
		FROM assignments
		WHERE user_id = $1 AND program_id = $2
	`

	var assignment models.Assignment
	err := r.db.QueryRow(ctx, query, userID, programID).Scan(
		&assignment.ID,
		&assignment.UserID,
		&assignment.ProgramID,
		&assignment.CompletedAt,
		&assignment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// MarkCompleted stamps completed_at once. The IS NULL guard makes a repeated
// stamp a no-op, so concurrent final completions cannot double-write.
func (r *AssignmentRepository) MarkCompleted(ctx context.Context, userID, programID int64) (bool, error) {
	query := `
		UPDATE assignments
		SET completed_at = now()
		WHERE user_id = $1 AND program_id = $2 AND completed_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, userID, programID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AssignmentRepository) ListByUserID(ctx context.Context, userID int64) ([]models.AssignmentProgress, error) {
	query := `
		SELECT a.id, a.user_id, a.program_id, a.completed_at, a.created_at,
			COUNT(pe.id) AS total_workouts,
			COUNT(pe.id) FILTER (WHERE pe.status = 'done') AS done_workouts
		FROM assignments a
		LEFT JOIN workouts w ON w.program_id = a.program_id
		LEFT JOIN progress_entries pe ON pe.workout_id = w.id AND pe.user_id = a.user_id
		WHERE a.user_id = $1
		GROUP BY a.id
		ORDER BY a.created_at DESC, a.id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.AssignmentProgress, 0)
	for rows.Next() {
		var item models.AssignmentProgress
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProgramID,
			&item.CompletedAt,
			&item.CreatedAt,
			&item.TotalWorkouts,
			&item.DoneWorkouts,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
