package user

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, name, email, passwordHash string, isGuest bool) (*User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, is_guest)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, is_guest, password_hash, created_at
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, name, email, passwordHash, isGuest).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.IsGuest,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, name, email, is_guest, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, is_guest, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *Repository) scanOne(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.IsGuest,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
