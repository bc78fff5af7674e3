package services

import (
	"context"
	"fmt"

	"github.com/saeid-a/ProgramTrackBack/internal/authz"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
	"github.com/saeid-a/ProgramTrackBack/pkg/utils"
)

const minPasswordLength = 8

type adminUserStore interface {
	UpdateRole(ctx context.Context, id int64, role string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) (*models.User, error)
	SetActive(ctx context.Context, id int64, active bool) (*models.User, error)
}

type auditReader interface {
	List(ctx context.Context, limit, offset int) ([]models.AuditRecord, error)
}

// auditRecorder is fire-and-forget: Record must never block the mutation and
// its failures stay inside the recorder.
type auditRecorder interface {
	Record(record models.AuditRecord)
}

type AdminService struct {
	userRepo  adminUserStore
	auditRepo auditReader
	recorder  auditRecorder
}

func NewAdminService(userRepo adminUserStore, auditRepo auditReader, recorder auditRecorder) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		recorder:  recorder,
	}
}

func (s *AdminService) ChangeRole(
	ctx context.Context,
	actorID int64,
	actorRole string,
	targetID int64,
	newRole string,
) (*models.User, error) {
	if !authz.Can(actorRole, authz.ActionChangeRole) {
		return nil, ErrForbidden
	}
	if targetID <= 0 || !authz.ValidRole(newRole) {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.UpdateRole(ctx, targetID, newRole)
	if err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("role set to %s", newRole)
	s.recorder.Record(models.AuditRecord{
		ActorID:  actorID,
		Action:   models.AuditRoleChange,
		TargetID: &targetID,
		Detail:   &detail,
	})

	return user, nil
}

func (s *AdminService) ResetPassword(
	ctx context.Context,
	actorID int64,
	actorRole string,
	targetID int64,
	newPassword string,
) (*models.User, error) {
	if !authz.Can(actorRole, authz.ActionResetPassword) {
		return nil, ErrForbidden
	}
	if targetID <= 0 || len(newPassword) < minPasswordLength {
		return nil, ErrInvalidInput
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdatePasswordHash(ctx, targetID, hash)
	if err != nil {
		return nil, err
	}

	// No detail: the audit log never carries credential material.
	s.recorder.Record(models.AuditRecord{
		ActorID:  actorID,
		Action:   models.AuditPasswordReset,
		TargetID: &targetID,
	})

	return user, nil
}

func (s *AdminService) SetActive(
	ctx context.Context,
	actorID int64,
	actorRole string,
	targetID int64,
	active bool,
) (*models.User, error) {
	if !authz.Can(actorRole, authz.ActionToggleActive) {
		return nil, ErrForbidden
	}
	if targetID <= 0 {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.SetActive(ctx, targetID, active)
	if err != nil {
		return nil, err
	}

	detail := "account deactivated"
	if active {
		detail = "account activated"
	}
	s.recorder.Record(models.AuditRecord{
		ActorID:  actorID,
		Action:   models.AuditActivationToggle,
		TargetID: &targetID,
		Detail:   &detail,
	})

	return user, nil
}

func (s *AdminService) ListAudit(
	ctx context.Context,
	actorRole string,
	limit, offset int,
) ([]models.AuditRecord, error) {
	if !authz.Can(actorRole, authz.ActionReadAudit) {
		return nil, ErrForbidden
	}
	return s.auditRepo.List(ctx, limit, offset)
}
