package settlement

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a settlement record
func (r *Repository) Create(ctx context.Context, s *Settlement) (*Settlement, error) {
	query := `
		INSERT INTO settlements (group_id, from_user_id, to_user_id, amount, method, note, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, group_id, from_user_id, to_user_id, amount, method, note, status, created_at
	`

	created := &Settlement{}
	err := r.db.QueryRowContext(ctx, query,
		s.GroupID, s.FromUserID, s.ToUserID, s.Amount, s.Method, s.Note, s.Status,
	).Scan(
		&created.ID,
		&created.GroupID,
		&created.FromUserID,
		&created.ToUserID,
		&created.Amount,
		&created.Method,
		&created.Note,
		&created.Status,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	return created, nil
}

// ListByGroupID retrieves a page of a group's settlements, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM settlements WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT s.id, s.group_id, s.from_user_id, s.to_user_id, s.amount, s.method, s.note, s.status, s.created_at,
		       uf.name, ut.name
		FROM settlements s
		JOIN users uf ON s.from_user_id = uf.id
		JOIN users ut ON s.to_user_id = ut.id
		WHERE s.group_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		if err := rows.Scan(
			&s.ID,
			&s.GroupID,
			&s.FromUserID,
			&s.ToUserID,
			&s.Amount,
			&s.Method,
			&s.Note,
			&s.Status,
			&s.CreatedAt,
			&s.FromUserName,
			&s.ToUserName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, total, rows.Err()
}
