package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository loads balance snapshots from Postgres. It implements Store.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// IsMember reports whether the user belongs to the group
func (r *Repository) IsMember(ctx context.Context, userID, groupID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM group_members
			WHERE user_id = $1 AND group_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, groupID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// GroupIDsForUser lists the IDs of every group the user belongs to
func (r *Repository) GroupIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT group_id FROM group_members WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user groups: %w", err)
	}
	defer rows.Close()

	var groupIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		groupIDs = append(groupIDs, id)
	}

	return groupIDs, rows.Err()
}

// GetGroupName returns the display name of a group
func (r *Repository) GetGroupName(ctx context.Context, groupID int64) (string, error) {
	query := `SELECT name FROM groups WHERE id = $1`

	var name string
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrGroupNotFound
		}
		return "", fmt.Errorf("failed to get group: %w", err)
	}
	return name, nil
}

// ListExpenses loads all expenses, with their splits, for the given groups
func (r *Repository) ListExpenses(ctx context.Context, groupIDs []int64) ([]Expense, error) {
	query := `
		SELECT id, group_id, payer_id, amount
		FROM expenses
		WHERE group_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	index := make(map[int64]int)
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.GroupID, &e.PayerID, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	splitQuery := `
		SELECT s.expense_id, s.user_id, s.amount
		FROM expense_splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.group_id = ANY($1)
		ORDER BY s.expense_id, s.id
	`

	splitRows, err := r.db.QueryContext(ctx, splitQuery, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID int64
		var share SplitShare
		if err := splitRows.Scan(&expenseID, &share.UserID, &share.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].Splits = append(expenses[i].Splits, share)
		}
	}

	return expenses, splitRows.Err()
}

// ListCompletedSettlements loads all completed settlements for the given groups
func (r *Repository) ListCompletedSettlements(ctx context.Context, groupIDs []int64) ([]Settlement, error) {
	query := `
		SELECT from_user_id, to_user_id, amount
		FROM settlements
		WHERE group_id = ANY($1) AND status = 'COMPLETED'
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []Settlement
	for rows.Next() {
		var s Settlement
		if err := rows.Scan(&s.FromUserID, &s.ToUserID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, rows.Err()
}

// ListMembers loads the distinct members of the given groups
func (r *Repository) ListMembers(ctx context.Context, groupIDs []int64) ([]Member, error) {
	query := `
		SELECT DISTINCT u.id, u.name, u.email, u.is_guest
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.IsGuest); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
