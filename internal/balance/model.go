// Package balance computes net member balances and simplifies the web of
// group debts into a small set of payer-to-payee transactions.
package balance

import "github.com/shopspring/decimal"

// Member is a scope participant as seen by the engine
type Member struct {
	ID      int64
	Name    string
	Email   string
	IsGuest bool
}

// SplitShare is one member's share of an expense
type SplitShare struct {
	UserID int64
	Amount decimal.Decimal
}

// Expense carries the expense data the engine needs
type Expense struct {
	ID      int64
	GroupID int64
	PayerID int64
	Amount  decimal.Decimal
	Splits  []SplitShare
}

// Settlement is a completed payment between two members
type Settlement struct {
	FromUserID int64
	ToUserID   int64
	Amount     decimal.Decimal
}

// Transaction is a simplified debt: FromUserID owes ToUserID the amount
type Transaction struct {
	FromUserID int64
	ToUserID   int64
	Amount     decimal.Decimal
}
