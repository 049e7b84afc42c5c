package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents an expense in the system
type Expense struct {
	ID          int64           `json:"id"`
	GroupID     int64           `json:"group_id"`
	PayerID     int64           `json:"payer_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitType   string          `json:"split_type"` // EQUAL, PERCENTAGE, EXACT
	CreatedAt   time.Time       `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Split represents one member's share of an expense. The amount is the
// portion of the total that member consumed, not a payment.
type Split struct {
	ID        int64           `json:"id"`
	ExpenseID int64           `json:"expense_id"`
	UserID    int64           `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
