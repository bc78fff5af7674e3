package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saeid-a/ProgramTrackBack/internal/authz"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
	"github.com/saeid-a/ProgramTrackBack/internal/repository"
)

var (
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotAssigned       = errors.New("program not assigned")
	ErrNotCompleted      = errors.New("program not completed")
	ErrDuplicateFeedback = errors.New("feedback already submitted")
)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type programReader interface {
	GetByID(ctx context.Context, programID int64) (*models.Program, error)
}

type assignmentReader interface {
	GetByUserAndProgram(ctx context.Context, userID, programID int64) (*models.Assignment, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.AssignmentProgress, error)
}

type AssignmentService struct {
	db             txBeginner
	userRepo       userReader
	programRepo    programReader
	assignmentRepo assignmentReader
}

func NewAssignmentService(
	db txBeginner,
	userRepo userReader,
	programRepo programReader,
	assignmentRepo assignmentReader,
) *AssignmentService {
	return &AssignmentService{
		db:             db,
		userRepo:       userRepo,
		programRepo:    programRepo,
		assignmentRepo: assignmentRepo,
	}
}

type AssignResult struct {
	Assignment    *models.Assignment
	WorkoutsTotal int64
}

// Assign binds a client to a program and materializes one pending progress
// entry per workout currently in the program. The assignment row and its
// progress entries commit or roll back together.
func (s *AssignmentService) Assign(
	ctx context.Context,
	actorID int64,
	role string,
	userID int64,
	programID int64,
) (*AssignResult, error) {
	if !authz.Can(role, authz.ActionAssignProgram) {
		return nil, ErrForbidden
	}
	if userID <= 0 || programID <= 0 {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != authz.RoleClient {
		return nil, ErrInvalidInput
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if role != authz.RoleSuperAdmin && program.CoachID != actorID {
		return nil, ErrForbidden
	}

	_, err = s.assignmentRepo.GetByUserAndProgram(ctx, userID, programID)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txAssignmentRepo := repository.NewAssignmentRepository(tx)
	txProgressRepo := repository.NewProgressRepository(tx)

	assignment, err := txAssignmentRepo.Create(ctx, userID, programID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	created, err := txProgressRepo.CreateForProgram(ctx, userID, programID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &AssignResult{Assignment: assignment, WorkoutsTotal: created}, nil
}

func (s *AssignmentService) ListForUser(
	ctx context.Context,
	actorID int64,
	role string,
) ([]models.AssignmentProgress, error) {
	if role != authz.RoleClient {
		return nil, ErrForbidden
	}
	return s.assignmentRepo.ListByUserID(ctx, actorID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
