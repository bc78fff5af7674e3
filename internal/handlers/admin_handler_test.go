package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
	"github.com/saeid-a/ProgramTrackBack/internal/services"
)

type stubAdminService struct {
	user        *models.User
	err         error
	records     []models.AuditRecord
	listErr     error
	lastActor   int64
	lastRole    string
	lastTarget  int64
	lastNewRole string
	lastPass    string
	lastActive  bool
	lastLimit   int
	lastOffset  int
}

func (s *stubAdminService) ChangeRole(_ context.Context, actorID int64, actorRole string, targetID int64, newRole string) (*models.User, error) {
	s.lastActor = actorID
	s.lastRole = actorRole
	s.lastTarget = targetID
	s.lastNewRole = newRole
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubAdminService) ResetPassword(_ context.Context, actorID int64, actorRole string, targetID int64, newPassword string) (*models.User, error) {
	s.lastActor = actorID
	s.lastRole = actorRole
	s.lastTarget = targetID
	s.lastPass = newPassword
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubAdminService) SetActive(_ context.Context, actorID int64, actorRole string, targetID int64, active bool) (*models.User, error) {
	s.lastActor = actorID
	s.lastRole = actorRole
	s.lastTarget = targetID
	s.lastActive = active
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubAdminService) ListAudit(_ context.Context, actorRole string, limit, offset int) ([]models.AuditRecord, error) {
	s.lastRole = actorRole
	s.lastLimit = limit
	s.lastOffset = offset
	return s.records, s.listErr
}

func newAdminApp(service *stubAdminService, role string) *fiber.App {
	handler := NewAdminHandler(service)
	return newTestApp("1", role, func(app *fiber.App) {
		admin := app.Group("/admin")
		admin.Put("/users/:id/role", handler.ChangeRole)
		admin.Put("/users/:id/password", handler.ResetPassword)
		admin.Put("/users/:id/active", handler.SetActive)
		admin.Get("/audit", handler.ListAudit)
	})
}

func TestAdminHandlerChangeRole(t *testing.T) {
	service := &stubAdminService{user: &models.User{ID: 5, Email: "a@b.c", Role: "coach", IsActive: true}}
	app := newAdminApp(service, "super_admin")

	payload := bytes.NewBufferString(`{"role": "coach"}`)
	req := httptest.NewRequest("PUT", "/admin/users/5/role", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if service.lastActor != 1 || service.lastTarget != 5 || service.lastNewRole != "coach" {
		t.Fatalf("unexpected call: actor %d, target %d, role %q", service.lastActor, service.lastTarget, service.lastNewRole)
	}

	var body struct {
		User map[string]any `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.User["role"] != "coach" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if _, leaked := body.User["password_hash"]; leaked {
		t.Fatal("response leaked the password hash")
	}
}

func TestAdminHandlerChangeRoleForbidden(t *testing.T) {
	service := &stubAdminService{err: services.ErrForbidden}
	app := newAdminApp(service, "coach")

	payload := bytes.NewBufferString(`{"role": "coach"}`)
	req := httptest.NewRequest("PUT", "/admin/users/5/role", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestAdminHandlerRejectsBadTargetID(t *testing.T) {
	service := &stubAdminService{user: &models.User{ID: 5}}
	app := newAdminApp(service, "super_admin")

	for _, path := range []string{"/admin/users/abc/role", "/admin/users/0/role", "/admin/users/-2/role"} {
		payload := bytes.NewBufferString(`{"role": "coach"}`)
		req := httptest.NewRequest("PUT", path, payload)
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test %s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, resp.StatusCode)
		}
	}
}

func TestAdminHandlerResetPassword(t *testing.T) {
	service := &stubAdminService{user: &models.User{ID: 5, Email: "a@b.c", Role: "client", IsActive: true}}
	app := newAdminApp(service, "super_admin")

	payload := bytes.NewBufferString(`{"password": "newsecret"}`)
	req := httptest.NewRequest("PUT", "/admin/users/5/password", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastPass != "newsecret" {
		t.Fatalf("expected password to reach the service, got %q", service.lastPass)
	}
}

func TestAdminHandlerSetActiveRequiresFlag(t *testing.T) {
	service := &stubAdminService{user: &models.User{ID: 5}}
	app := newAdminApp(service, "super_admin")

	req := httptest.NewRequest("PUT", "/admin/users/5/active", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAdminHandlerSetActiveDeactivates(t *testing.T) {
	service := &stubAdminService{user: &models.User{ID: 5, IsActive: false}}
	app := newAdminApp(service, "super_admin")

	req := httptest.NewRequest("PUT", "/admin/users/5/active", bytes.NewBufferString(`{"active": false}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastActive {
		t.Fatal("expected deactivation to reach the service")
	}
}

func TestAdminHandlerListAuditPagination(t *testing.T) {
	service := &stubAdminService{records: []models.AuditRecord{{ID: 1, ActorID: 1, Action: models.AuditRoleChange}}}
	app := newAdminApp(service, "super_admin")

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/audit?page=2&limit=10", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastLimit != 10 || service.lastOffset != 10 {
		t.Fatalf("expected limit 10 offset 10, got %d/%d", service.lastLimit, service.lastOffset)
	}

	var body struct {
		AuditRecords []models.AuditRecord `json:"audit_records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.AuditRecords) != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}
