package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods
const (
	MethodCash   = "CASH"
	MethodOnline = "ONLINE"
)

// StatusCompleted is the only settlement status. Settlements record a payment
// that already happened, so they complete at creation.
const StatusCompleted = "COMPLETED"

// Settlement represents a recorded payment between two group members
type Settlement struct {
	ID         int64           `json:"id"`
	GroupID    int64           `json:"group_id"`
	FromUserID int64           `json:"from_user_id"`
	ToUserID   int64           `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"` // CASH, ONLINE
	Note       *string         `json:"note,omitempty"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`

	// Populated via JOIN
	FromUserName string `json:"from_user_name,omitempty"`
	ToUserName   string `json:"to_user_name,omitempty"`
}
