package services

import (
	"context"

	"github.com/saeid-a/ProgramTrackBack/internal/authz"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
	"github.com/saeid-a/ProgramTrackBack/internal/repository"
)

type ProgressService struct {
	db txBeginner
}

func NewProgressService(db txBeginner) *ProgressService {
	return &ProgressService{db: db}
}

type MarkDoneResult struct {
	Entry            *models.ProgressEntry
	ProgramID        int64
	ProgramCompleted bool
}

// MarkDone flips a single workout's progress to done and re-evaluates program
// completion inside the same transaction. The completion stamp is guarded by
// completed_at IS NULL, so concurrent completions of the last workout race to
// a single stamp and the losers no-op.
func (s *ProgressService) MarkDone(
	ctx context.Context,
	actorID int64,
	role string,
	workoutID int64,
) (*MarkDoneResult, error) {
	if !authz.Can(role, authz.ActionMarkWorkoutDone) {
		return nil, ErrForbidden
	}
	if workoutID <= 0 {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txProgressRepo := repository.NewProgressRepository(tx)
	txWorkoutRepo := repository.NewWorkoutRepository(tx)
	txAssignmentRepo := repository.NewAssignmentRepository(tx)

	entry, err := txProgressRepo.MarkDone(ctx, actorID, workoutID)
	if err != nil {
		return nil, err
	}

	workout, err := txWorkoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	// The entry above guarantees at least one progress row exists, so a
	// pending count of zero means every materialized workout is done. A
	// program that had zero workouts at assignment time can never reach this
	// point without a real workout having been marked.
	_, pending, err := txProgressRepo.CountForProgram(ctx, actorID, workout.ProgramID)
	if err != nil {
		return nil, err
	}

	completed := pending == 0
	if completed {
		if _, err := txAssignmentRepo.MarkCompleted(ctx, actorID, workout.ProgramID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &MarkDoneResult{
		Entry:            entry,
		ProgramID:        workout.ProgramID,
		ProgramCompleted: completed,
	}, nil
}
