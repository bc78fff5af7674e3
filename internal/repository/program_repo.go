package repository

import (
	"context"

	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

type CreateProgramInput struct {
	CoachID     int64
	Name        string
	Description *string
}

type ProgramRepository struct {
	db DBTX
}

func NewProgramRepository(db DBTX) *ProgramRepository {
	return &ProgramRepository{db: db}
}

func (r *ProgramRepository) Create(ctx context.Context, input CreateProgramInput) (*models.Program, error) {
	query := `
		INSERT INTO programs (coach_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, coach_id, name, description, created_at
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, input.CoachID, input.Name, input.Description).Scan(
		&program.ID,
		&program.CoachID,
		&program.Name,
		&program.Description,
		&program.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &program, nil
}

func (r *ProgramRepository) GetByID(ctx context.Context, programID int64) (*models.Program, error) {
	query := `
		SELECT id, coach_id, name, description, created_at
		FROM programs
		WHERE id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, programID).Scan(
		&program.ID,
		&program.CoachID,
		&program.Name,
		&program.Description,
		&program.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &program, nil
}

func (r *ProgramRepository) ListByCoachID(ctx context.Context, coachID int64) ([]models.Program, error) {
	query := `
		SELECT id, coach_id, name, description, created_at
		FROM programs
		WHERE coach_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, coachID)
}

func (r *ProgramRepository) ListAssignedToUser(ctx context.Context, userID int64) ([]models.Program, error) {
	query := `
		SELECT p.id, p.coach_id, p.name, p.description, p.created_at
		FROM programs p
		JOIN assignments a ON a.program_id = p.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, p.id DESC
	`
	return r.list(ctx, query, userID)
}

func (r *ProgramRepository) list(ctx context.Context, query string, actorID int64) ([]models.Program, error) {
	rows, err := r.db.Query(ctx, query, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := make([]models.Program, 0)
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(
			&program.ID,
			&program.CoachID,
			&program.Name,
			&program.Description,
			&program.CreatedAt,
		); err != nil {
			return nil, err
		}
		programs = append(programs, program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}
