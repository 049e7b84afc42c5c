package group

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group and its creator's membership in one transaction
func (r *Repository) Create(ctx context.Context, creatorID int64, name string) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	group := &Group{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO groups (name, creator_id)
		VALUES ($1, $2)
		RETURNING id, name, creator_id, created_at
	`, name, creatorID).Scan(&group.ID, &group.Name, &group.CreatorID, &group.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
	`, group.ID, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator as member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group creation: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `
		SELECT id, name, creator_id, created_at
		FROM groups
		WHERE id = $1
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.CreatorID,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// ListByUserID retrieves the groups a user belongs to, most recent first
func (r *Repository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Group, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	query := `
		SELECT g.id, g.name, g.creator_id, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.updated_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatorID, &group.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, total, rows.Err()
}

// GetMembers retrieves all members of a group with user details
func (r *Repository) GetMembers(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.joined_at, u.name, u.email, u.is_guest
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*GroupMember
	for rows.Next() {
		m := &GroupMember{}
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.JoinedAt, &m.Name, &m.Email, &m.IsGuest); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// IsMember reports whether the user belongs to the group
func (r *Repository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM group_members
			WHERE group_id = $1 AND user_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// AddMember inserts a membership row and returns it with user details
func (r *Repository) AddMember(ctx context.Context, groupID, userID int64) (*GroupMember, error) {
	query := `
		WITH inserted AS (
			INSERT INTO group_members (group_id, user_id)
			VALUES ($1, $2)
			RETURNING id, group_id, user_id, joined_at
		)
		SELECT i.id, i.group_id, i.user_id, i.joined_at, u.name, u.email, u.is_guest
		FROM inserted i
		JOIN users u ON i.user_id = u.id
	`

	m := &GroupMember{}
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(
		&m.ID, &m.GroupID, &m.UserID, &m.JoinedAt, &m.Name, &m.Email, &m.IsGuest,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return m, nil
}

// Delete removes a group; memberships, expenses, splits and settlements
// cascade at the database level
func (r *Repository) Delete(ctx context.Context, groupID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// RemoveMember removes a membership along with the member's splits in the
// group and any of their expenses left without splits, atomically
func (r *Repository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM expense_splits
		WHERE user_id = $1
		  AND expense_id IN (SELECT id FROM expenses WHERE group_id = $2)
	`, userID, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete member splits: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM expenses e
		WHERE e.group_id = $1
		  AND e.payer_id = $2
		  AND NOT EXISTS (SELECT 1 FROM expense_splits s WHERE s.expense_id = e.id)
	`, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete orphaned expenses: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM group_members
		WHERE group_id = $1 AND user_id = $2
	`, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member removal: %w", err)
	}

	return nil
}
