package repository

import (
	"context"

	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

type FeedbackRepository struct {
	db DBTX
}

func NewFeedbackRepository(db DBTX) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, userID, programID int64, message string) (*models.Feedback, error) {
	query := `
		INSERT INTO feedback (user_id, program_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, program_id, message, created_at
	`

	var feedback models.Feedback
	err := r.db.QueryRow(ctx, query, userID, programID, message).Scan(
		&feedback.ID,
		&feedback.UserID,
		&feedback.ProgramID,
		&feedback.Message,
		&feedback.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &feedback, nil
}

func (r *FeedbackRepository) Exists(ctx context.Context, userID, programID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM feedback WHERE user_id = $1 AND program_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, programID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
