package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/ProgramTrackBack/internal/authz"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

const maxFeedbackLength = 2000

type feedbackStore interface {
	Create(ctx context.Context, userID, programID int64, message string) (*models.Feedback, error)
	Exists(ctx context.Context, userID, programID int64) (bool, error)
}

type FeedbackService struct {
	assignmentRepo assignmentReader
	feedbackRepo   feedbackStore
}

func NewFeedbackService(assignmentRepo assignmentReader, feedbackRepo feedbackStore) *FeedbackService {
	return &FeedbackService{
		assignmentRepo: assignmentRepo,
		feedbackRepo:   feedbackRepo,
	}
}

// Submit admits one feedback message per completed assignment. Preconditions
// are checked in order so each failure keeps its own error: no assignment,
// assignment not completed, feedback already present.
func (s *FeedbackService) Submit(
	ctx context.Context,
	actorID int64,
	role string,
	programID int64,
	message string,
) (*models.Feedback, error) {
	if !authz.Can(role, authz.ActionSubmitFeedback) {
		return nil, ErrForbidden
	}
	if programID <= 0 {
		return nil, ErrInvalidInput
	}

	message = strings.TrimSpace(message)
	if message == "" || len(message) > maxFeedbackLength {
		return nil, ErrInvalidInput
	}

	assignment, err := s.assignmentRepo.GetByUserAndProgram(ctx, actorID, programID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotAssigned
		}
		return nil, err
	}

	if assignment.CompletedAt == nil {
		return nil, ErrNotCompleted
	}

	exists, err := s.feedbackRepo.Exists(ctx, actorID, programID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateFeedback
	}

	feedback, err := s.feedbackRepo.Create(ctx, actorID, programID, message)
	if err != nil {
		// The unique constraint closes the race between the Exists check and
		// the insert.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateFeedback
		}
		return nil, err
	}

	return feedback, nil
}
