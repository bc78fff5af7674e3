package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/saeid-a/ProgramTrackBack/internal/repository"
	"github.com/saeid-a/ProgramTrackBack/pkg/utils"
)

const testJWTSecret = "test-secret"

func newAuthApp(t *testing.T) (pgxmock.PgxPoolIface, *fiber.App) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)

	handler := NewAuthHandler(repository.NewUserRepository(mock), testJWTSecret)
	app := fiber.New()
	app.Post("/register", handler.Register)
	app.Post("/login", handler.Login)
	return mock, app
}

func userRow(t *testing.T, password, role string, active bool) *pgxmock.Rows {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	return pgxmock.NewRows([]string{"id", "email", "display_name", "password_hash", "role", "is_active", "created_at", "updated_at"}).
		AddRow(int64(42), "client@example.com", "Client", hash, role, active, now, now)
}

func TestAuthHandlerRegisterLowercasesEmail(t *testing.T) {
	mock, app := newAuthApp(t)

	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("client@example.com", "Client", pgxmock.AnyArg(), "client").
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_active", "created_at", "updated_at"}).
			AddRow(int64(42), true, now, now))

	payload := bytes.NewBufferString(`{"email": "Client@Example.com", "display_name": "Client", "password": "longenough", "role": "client"}`)
	req := httptest.NewRequest("POST", "/register", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Token == "" {
		t.Fatal("expected a token in the response")
	}
	if body.User["email"] != "client@example.com" {
		t.Fatalf("expected lowercased email, got %v", body.User["email"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthHandlerRegisterValidation(t *testing.T) {
	_, app := newAuthApp(t)

	cases := []struct {
		name    string
		payload string
	}{
		{"bad email", `{"email": "not-an-email", "display_name": "C", "password": "longenough", "role": "client"}`},
		{"missing display name", `{"email": "c@example.com", "display_name": "  ", "password": "longenough", "role": "client"}`},
		{"short password", `{"email": "c@example.com", "display_name": "C", "password": "short", "role": "client"}`},
		{"unknown role", `{"email": "c@example.com", "display_name": "C", "password": "longenough", "role": "admin"}`},
		{"super admin refused", `{"email": "c@example.com", "display_name": "C", "password": "longenough", "role": "super_admin"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/register", bytes.NewBufferString(tc.payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestAuthHandlerRegisterDuplicateEmail(t *testing.T) {
	mock, app := newAuthApp(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("c@example.com", "C", pgxmock.AnyArg(), "client").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	payload := bytes.NewBufferString(`{"email": "c@example.com", "display_name": "C", "password": "longenough", "role": "client"}`)
	req := httptest.NewRequest("POST", "/register", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestAuthHandlerLoginIssuesToken(t *testing.T) {
	mock, app := newAuthApp(t)

	mock.ExpectQuery("FROM users").
		WithArgs("client@example.com").
		WillReturnRows(userRow(t, "longenough", "client", true))

	payload := bytes.NewBufferString(`{"email": "client@example.com", "password": "longenough"}`)
	req := httptest.NewRequest("POST", "/login", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	claims, err := utils.ValidateToken(body.Token, testJWTSecret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "42" || claims.Role != "client" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	mock, app := newAuthApp(t)

	mock.ExpectQuery("FROM users").
		WithArgs("client@example.com").
		WillReturnRows(userRow(t, "longenough", "client", true))

	payload := bytes.NewBufferString(`{"email": "client@example.com", "password": "wrongpass"}`)
	req := httptest.NewRequest("POST", "/login", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthHandlerLoginUnknownEmail(t *testing.T) {
	mock, app := newAuthApp(t)

	mock.ExpectQuery("FROM users").
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	payload := bytes.NewBufferString(`{"email": "ghost@example.com", "password": "longenough"}`)
	req := httptest.NewRequest("POST", "/login", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthHandlerLoginDeactivatedAccount(t *testing.T) {
	mock, app := newAuthApp(t)

	mock.ExpectQuery("FROM users").
		WithArgs("client@example.com").
		WillReturnRows(userRow(t, "longenough", "client", false))

	payload := bytes.NewBufferString(`{"email": "client@example.com", "password": "longenough"}`)
	req := httptest.NewRequest("POST", "/login", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "account_inactive" {
		t.Fatalf("expected code account_inactive, got %q", body["code"])
	}
}
