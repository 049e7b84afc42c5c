package balance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// settledThreshold is the cutoff below which a balance counts as settled.
var settledThreshold = decimal.New(1, -2) // 0.01

// SettledThreshold returns the cutoff below which a balance counts as settled.
func SettledThreshold() decimal.Decimal {
	return settledThreshold
}

// NetBalances computes each member's signed net position over a scope.
// Positive means the scope owes the member money, negative means the member
// owes. The sum over all members is always zero: every amount added for a
// payer is subtracted across split holders, and every settlement moves the
// same amount between exactly two members.
func NetBalances(expenses []Expense, settlements []Settlement, members []Member) map[int64]decimal.Decimal {
	balances := make(map[int64]decimal.Decimal, len(members))
	for _, m := range members {
		balances[m.ID] = decimal.Zero
	}

	for _, e := range expenses {
		// The payer advanced the full amount; each split holder consumed
		// their share, the payer's own share included.
		balances[e.PayerID] = balances[e.PayerID].Add(e.Amount)
		for _, s := range e.Splits {
			balances[s.UserID] = balances[s.UserID].Sub(s.Amount)
		}
	}

	for _, s := range settlements {
		balances[s.FromUserID] = balances[s.FromUserID].Add(s.Amount)
		balances[s.ToUserID] = balances[s.ToUserID].Sub(s.Amount)
	}

	return balances
}

// position is one side of the greedy match, amount always positive.
type position struct {
	userID int64
	amount decimal.Decimal
}

// Simplify reduces net balances to a near-minimal transaction set by greedily
// matching the largest creditor against the largest debtor. Members within
// settledThreshold of zero are excluded. Ordering is deterministic: positions
// sort by amount descending, ties by user ID ascending.
func Simplify(balances map[int64]decimal.Decimal) []Transaction {
	var creditors, debtors []position
	for userID, b := range balances {
		switch {
		case b.GreaterThan(settledThreshold):
			creditors = append(creditors, position{userID: userID, amount: b})
		case b.LessThan(settledThreshold.Neg()):
			debtors = append(debtors, position{userID: userID, amount: b.Neg()})
		}
	}

	sortPositions(creditors)
	sortPositions(debtors)

	var transactions []Transaction
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := decimal.Min(creditor.amount, debtor.amount)
		transactions = append(transactions, Transaction{
			FromUserID: debtor.userID,
			ToUserID:   creditor.userID,
			Amount:     amount.Round(2),
		})

		creditor.amount = creditor.amount.Sub(amount)
		debtor.amount = debtor.amount.Sub(amount)

		if creditor.amount.LessThan(settledThreshold) {
			i++
		}
		if debtor.amount.LessThan(settledThreshold) {
			j++
		}
	}

	return transactions
}

func sortPositions(ps []position) {
	sort.Slice(ps, func(a, b int) bool {
		if !ps[a].amount.Equal(ps[b].amount) {
			return ps[a].amount.GreaterThan(ps[b].amount)
		}
		return ps[a].userID < ps[b].userID
	})
}
