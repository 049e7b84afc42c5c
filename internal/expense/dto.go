package expense

import (
	"github.com/shopspring/decimal"

	"github.com/ymansouri/splitwise/internal/expense/split"
)

// SplitEntry is one participant in an expense creation request
type SplitEntry struct {
	UserID     int64            `json:"user_id" validate:"required"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *decimal.Decimal `json:"amount,omitempty"`     // For EXACT split
}

// ToSplitEntry converts to the split package's input type
func (e *SplitEntry) ToSplitEntry() split.Entry {
	return split.Entry{
		UserID:     e.UserID,
		Percentage: e.Percentage,
		Amount:     e.Amount,
	}
}

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID     int64           `json:"group_id" validate:"required"`
	Description string          `json:"description" validate:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	SplitType   string          `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE EXACT"`
	Splits      []*SplitEntry   `json:"splits" validate:"required,min=1,dive"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          int64            `json:"id"`
	GroupID     int64            `json:"group_id"`
	PayerID     int64            `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	SplitType   string           `json:"split_type"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"user_id"`
	UserName string          `json:"user_name,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount,
		SplitType:   e.SplitType,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:       s.ID,
		UserID:   s.UserID,
		UserName: s.UserName,
		Amount:   s.Amount,
	}
}
