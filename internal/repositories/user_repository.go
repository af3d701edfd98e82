package repositories

import (
	"context"
	"database/sql"

	intconfig "hallbooking/internal/config"
	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail returns the user and its password hash for login.
func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, string, error) {
	var u models.User
	var hash string
	err := r.db().QueryRowContext(ctx, `
		SELECT id, COALESCE(full_name,''), email, COALESCE(phone,''), password_hash, role, status
		FROM users
		WHERE email=?
		LIMIT 1
	`, email).Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &hash, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return models.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, "", err
	}
	return u, hash, nil
}

// GetByID loads a user profile; drafts prefill applicant fields from it.
func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRowContext(ctx, `
		SELECT id, COALESCE(full_name,''), email, COALESCE(phone,''), role, status
		FROM users
		WHERE id=?
		LIMIT 1
	`, id).Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ExistsByEmail guards registration against duplicate accounts.
func (r UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE email=?
	`, email).Scan(&count)
	return count > 0, err
}

// Create inserts a new account and returns its id.
func (r UserRepository) Create(ctx context.Context, u models.User, passwordHash string) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (full_name, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'user', 'active', NOW(), NOW())
	`, u.FullName, u.Email, u.Phone, passwordHash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
