package settlement

import "github.com/shopspring/decimal"

// CreateSettlementRequest represents the request to record a settlement
type CreateSettlementRequest struct {
	GroupID  int64           `json:"group_id" validate:"required"`
	ToUserID int64           `json:"to_user_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Method   string          `json:"method" validate:"required,oneof=CASH ONLINE"`
	Note     *string         `json:"note,omitempty" validate:"omitempty,max=255"`
}

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID           int64           `json:"id"`
	GroupID      int64           `json:"group_id"`
	FromUserID   int64           `json:"from_user_id"`
	FromUserName string          `json:"from_user_name,omitempty"`
	ToUserID     int64           `json:"to_user_id"`
	ToUserName   string          `json:"to_user_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	Note         *string         `json:"note,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"created_at"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		GroupID:      s.GroupID,
		FromUserID:   s.FromUserID,
		FromUserName: s.FromUserName,
		ToUserID:     s.ToUserID,
		ToUserName:   s.ToUserName,
		Amount:       s.Amount,
		Method:       s.Method,
		Note:         s.Note,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
