package balance

import "github.com/shopspring/decimal"

// UserRef identifies a member in a balance response
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DebtEntry is one simplified debt from the requesting user's point of view
type DebtEntry struct {
	User   *UserRef        `json:"user"`
	Amount decimal.Decimal `json:"amount"`
}

// DebtResponse is one simplified debt between two members
type DebtResponse struct {
	From   *UserRef        `json:"from"`
	To     *UserRef        `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// GroupBalancesResponse is the balance view for a single group
type GroupBalancesResponse struct {
	GroupID    int64           `json:"group_id"`
	GroupName  string          `json:"group_name"`
	YouOwe     []*DebtEntry    `json:"you_owe"`
	YouAreOwed []*DebtEntry    `json:"you_are_owed"`
	AllDebts   []*DebtResponse `json:"all_debts"`
}

// UserBalancesResponse is the balance view across all of a user's groups
type UserBalancesResponse struct {
	YouOwe     []*DebtEntry    `json:"you_owe"`
	YouAreOwed []*DebtEntry    `json:"you_are_owed"`
	TotalOwing decimal.Decimal `json:"total_owing"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
	NetBalance decimal.Decimal `json:"net_balance"`
}
