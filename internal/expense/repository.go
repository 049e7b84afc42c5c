package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ymansouri/splitwise/internal/expense/split"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithSplits inserts an expense and all its splits in one transaction.
// Either everything is persisted or nothing is.
func (r *Repository) CreateWithSplits(ctx context.Context, payerID int64, req *CreateExpenseRequest, shares []split.Share) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO expenses (group_id, payer_id, description, amount, split_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, payer_id, description, amount, split_type, created_at
	`, req.GroupID, payerID, req.Description, req.Amount, req.SplitType).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splits := make([]*Split, len(shares))
	for i, share := range shares {
		s := &Split{}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO expense_splits (expense_id, user_id, amount)
			VALUES ($1, $2, $3)
			RETURNING id, expense_id, user_id, amount
		`, expense.ID, share.UserID, share.Amount).Scan(&s.ID, &s.ExpenseID, &s.UserID, &s.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		splits[i] = s
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense creation: %w", err)
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseIDs retrieves the splits for a set of expenses
func (r *Repository) GetSplitsByExpenseIDs(ctx context.Context, expenseIDs []int64) (map[int64][]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount, u.name
		FROM expense_splits s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = ANY($1)
		ORDER BY s.expense_id, s.id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(expenseIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	splits := make(map[int64][]*Split)
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.UserID, &s.Amount, &s.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits[s.ExpenseID] = append(splits[s.ExpenseID], s)
	}

	return splits, rows.Err()
}

// ListByGroupID retrieves a page of a group's expenses, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.SplitType,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, rows.Err()
}

// Delete removes an expense; its splits cascade at the database level
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
