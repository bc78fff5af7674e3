package repository

import (
	"context"

	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

type CreateWorkoutInput struct {
	ProgramID    int64
	TargetMuscle string
	Description  *string
	SetCount     int
	Equipment    *string
}

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, input CreateWorkoutInput) (*models.Workout, error) {
	query := `
		INSERT INTO workouts (program_id, target_muscle, description, set_count, equipment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, program_id, target_muscle, description, set_count, equipment, created_at
	`

	var workout models.Workout
	err := r.db.QueryRow(
		ctx,
		query,
		input.ProgramID,
		input.TargetMuscle,
		input.Description,
		input.SetCount,
		input.Equipment,
	).Scan(
		&workout.ID,
		&workout.ProgramID,
		&workout.TargetMuscle,
		&workout.Description,
		&workout.SetCount,
		&workout.Equipment,
		&workout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &workout, nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, workoutID int64) (*models.Workout, error) {
	query := `
		SELECT id, program_id, target_muscle, description, set_count, equipment, created_at
		FROM workouts
		WHERE id = $1
	`

	var workout models.Workout
	err := r.db.QueryRow(ctx, query, workoutID).Scan(
		&workout.ID,
		&workout.ProgramID,
		&workout.TargetMuscle,
		&workout.Description,
		&workout.SetCount,
		&workout.Equipment,
		&workout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &workout, nil
}

func (r *WorkoutRepository) ListByProgramID(ctx context.Context, programID int64) ([]models.Workout, error) {
	query := `
		SELECT id, program_id, target_muscle, description, set_count, equipment, created_at
		FROM workouts
		WHERE program_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var workout models.Workout
		if err := rows.Scan(
			&workout.ID,
			&workout.ProgramID,
			&workout.TargetMuscle,
			&workout.Description,
			&workout.SetCount,
			&workout.Equipment,
			&workout.CreatedAt,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}
