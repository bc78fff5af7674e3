package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx, so every repository works
// both on the shared pool and inside an open transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, display_name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, user.Email, user.DisplayName, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(ctx, query, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, display_name, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role string) (*models.User, error) {
	query := `
		UPDATE users
		SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, email, display_name, password_hash, role, is_active, created_at, updated_at
	`
	return r.scanOne(ctx, query, id, role)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) (*models.User, error) {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, email, display_name, password_hash, role, is_active, created_at, updated_at
	`
	return r.scanOne(ctx, query, id, hash)
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) (*models.User, error) {
	query := `
		UPDATE users
		SET is_active = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, email, display_name, password_hash, role, is_active, created_at, updated_at
	`
	return r.scanOne(ctx, query, id, active)
}

func (r *UserRepository) scanOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.Role,
			&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
