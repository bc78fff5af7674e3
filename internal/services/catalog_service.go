package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/ProgramTrackBack/internal/authz"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
	"github.com/saeid-a/ProgramTrackBack/internal/repository"
)

type programStore interface {
	Create(ctx context.Context, input repository.CreateProgramInput) (*models.Program, error)
	GetByID(ctx context.Context, programID int64) (*models.Program, error)
	ListByCoachID(ctx context.Context, coachID int64) ([]models.Program, error)
	ListAssignedToUser(ctx context.Context, userID int64) ([]models.Program, error)
}

type workoutReader interface {
	ListByProgramID(ctx context.Context, programID int64) ([]models.Workout, error)
}

// CatalogService covers coach-side authoring of programs and workouts, plus
// the read paths both roles use.
type CatalogService struct {
	db             txBeginner
	programRepo    programStore
	workoutRepo    workoutReader
	assignmentRepo assignmentReader
}

func NewCatalogService(
	db txBeginner,
	programRepo programStore,
	workoutRepo workoutReader,
	assignmentRepo assignmentReader,
) *CatalogService {
	return &CatalogService{
		db:             db,
		programRepo:    programRepo,
		workoutRepo:    workoutRepo,
		assignmentRepo: assignmentRepo,
	}
}

type CreateProgramInput struct {
	Name        string
	Description *string
}

func (s *CatalogService) CreateProgram(
	ctx context.Context,
	actorID int64,
	role string,
	input CreateProgramInput,
) (*models.Program, error) {
	if !authz.Can(role, authz.ActionCreateProgram) {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		description = &trimmed
	}

	return s.programRepo.Create(ctx, repository.CreateProgramInput{
		CoachID:     actorID,
		Name:        name,
		Description: description,
	})
}

type CreateWorkoutInput struct {
	TargetMuscle string
	Description  *string
	SetCount     int
	Equipment    *string
}

// CreateWorkout adds a workout to a program the coach owns. Users already
// assigned to the program get a pending progress entry for the new workout in
// the same transaction, keeping entry-per-assignment intact.
func (s *CatalogService) CreateWorkout(
	ctx context.Context,
	actorID int64,
	role string,
	programID int64,
	input CreateWorkoutInput,
) (*models.Workout, error) {
	if !authz.Can(role, authz.ActionCreateWorkout) {
		return nil, ErrForbidden
	}
	if programID <= 0 || input.SetCount <= 0 {
		return nil, ErrInvalidInput
	}

	targetMuscle := strings.TrimSpace(input.TargetMuscle)
	if targetMuscle == "" {
		return nil, ErrInvalidInput
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.CoachID != actorID {
		return nil, ErrForbidden
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txWorkoutRepo := repository.NewWorkoutRepository(tx)
	txProgressRepo := repository.NewProgressRepository(tx)

	workout, err := txWorkoutRepo.Create(ctx, repository.CreateWorkoutInput{
		ProgramID:    programID,
		TargetMuscle: targetMuscle,
		Description:  input.Description,
		SetCount:     input.SetCount,
		Equipment:    input.Equipment,
	})
	if err != nil {
		return nil, err
	}

	if _, err := txProgressRepo.CreateForWorkout(ctx, workout.ID, programID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return workout, nil
}

func (s *CatalogService) ListPrograms(
	ctx context.Context,
	actorID int64,
	role string,
) ([]models.Program, error) {
	switch role {
	case authz.RoleCoach:
		return s.programRepo.ListByCoachID(ctx, actorID)
	case authz.RoleClient:
		return s.programRepo.ListAssignedToUser(ctx, actorID)
	default:
		return nil, ErrForbidden
	}
}

func (s *CatalogService) GetProgram(
	ctx context.Context,
	actorID int64,
	role string,
	programID int64,
) (*models.ProgramDetail, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canAccessProgram(ctx, role, actorID, program)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}

	workouts, err := s.workoutRepo.ListByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}

	return &models.ProgramDetail{Program: *program, Workouts: workouts}, nil
}

func (s *CatalogService) canAccessProgram(
	ctx context.Context,
	role string,
	actorID int64,
	program *models.Program,
) (bool, error) {
	switch role {
	case authz.RoleCoach:
		return actorID == program.CoachID, nil
	case authz.RoleClient:
		_, err := s.assignmentRepo.GetByUserAndProgram(ctx, actorID, program.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	case authz.RoleSuperAdmin:
		return true, nil
	default:
		return false, nil
	}
}
