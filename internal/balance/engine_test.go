package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func members(ids ...int64) []Member {
	ms := make([]Member, len(ids))
	for i, id := range ids {
		ms[i] = Member{ID: id}
	}
	return ms
}

func TestNetBalances(t *testing.T) {
	tests := []struct {
		name        string
		expenses    []Expense
		settlements []Settlement
		members     []Member
		want        map[int64]string
	}{
		{
			name:    "no activity leaves everyone at zero",
			members: members(1, 2),
			want:    map[int64]string{1: "0", 2: "0"},
		},
		{
			name: "payer is credited the others' shares",
			expenses: []Expense{
				{PayerID: 1, Amount: dec("50.00"), Splits: []SplitShare{
					{UserID: 1, Amount: dec("25.00")},
					{UserID: 2, Amount: dec("25.00")},
				}},
			},
			members: members(1, 2),
			want:    map[int64]string{1: "25", 2: "-25"},
		},
		{
			name: "settlement cancels the debt",
			expenses: []Expense{
				{PayerID: 1, Amount: dec("50.00"), Splits: []SplitShare{
					{UserID: 1, Amount: dec("25.00")},
					{UserID: 2, Amount: dec("25.00")},
				}},
			},
			settlements: []Settlement{
				{FromUserID: 2, ToUserID: 1, Amount: dec("25.00")},
			},
			members: members(1, 2),
			want:    map[int64]string{1: "0", 2: "0"},
		},
		{
			name: "expenses in both directions offset",
			expenses: []Expense{
				{PayerID: 1, Amount: dec("30.00"), Splits: []SplitShare{
					{UserID: 1, Amount: dec("15.00")},
					{UserID: 2, Amount: dec("15.00")},
				}},
				{PayerID: 2, Amount: dec("20.00"), Splits: []SplitShare{
					{UserID: 1, Amount: dec("10.00")},
					{UserID: 2, Amount: dec("10.00")},
				}},
			},
			members: members(1, 2),
			want:    map[int64]string{1: "5", 2: "-5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetBalances(tt.expenses, tt.settlements, tt.members)
			require.Len(t, got, len(tt.want))

			sum := decimal.Zero
			for id, want := range tt.want {
				assert.True(t, got[id].Equal(dec(want)),
					"user %d net = %s, want %s", id, got[id], want)
				sum = sum.Add(got[id])
			}
			assert.True(t, sum.IsZero(), "net balances sum to %s, want 0", sum)
		})
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		balances map[int64]string
		want     []Transaction
	}{
		{
			name:     "all settled yields no transactions",
			balances: map[int64]string{1: "0", 2: "0"},
			want:     nil,
		},
		{
			name:     "dust below the threshold is ignored",
			balances: map[int64]string{1: "0.01", 2: "-0.01"},
			want:     nil,
		},
		{
			name:     "single debt",
			balances: map[int64]string{1: "25.00", 2: "-25.00"},
			want: []Transaction{
				{FromUserID: 2, ToUserID: 1, Amount: dec("25")},
			},
		},
		{
			name:     "chain collapses to one payment",
			balances: map[int64]string{1: "10.00", 2: "0", 3: "-10.00"},
			want: []Transaction{
				{FromUserID: 3, ToUserID: 1, Amount: dec("10")},
			},
		},
		{
			name:     "largest creditor matched first",
			balances: map[int64]string{1: "60.00", 2: "40.00", 3: "-100.00"},
			want: []Transaction{
				{FromUserID: 3, ToUserID: 1, Amount: dec("60")},
				{FromUserID: 3, ToUserID: 2, Amount: dec("40")},
			},
		},
		{
			name:     "equal amounts tie-break by user ID",
			balances: map[int64]string{4: "50.00", 2: "50.00", 7: "-50.00", 5: "-50.00"},
			want: []Transaction{
				{FromUserID: 5, ToUserID: 2, Amount: dec("50")},
				{FromUserID: 7, ToUserID: 4, Amount: dec("50")},
			},
		},
		{
			name:     "one debtor spread over several creditors",
			balances: map[int64]string{1: "30.00", 2: "20.00", 3: "10.00", 4: "-60.00"},
			want: []Transaction{
				{FromUserID: 4, ToUserID: 1, Amount: dec("30")},
				{FromUserID: 4, ToUserID: 2, Amount: dec("20")},
				{FromUserID: 4, ToUserID: 3, Amount: dec("10")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := make(map[int64]decimal.Decimal, len(tt.balances))
			for id, b := range tt.balances {
				balances[id] = dec(b)
			}

			got := Simplify(balances)
			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want.FromUserID, got[i].FromUserID, "transaction %d from", i)
				assert.Equal(t, want.ToUserID, got[i].ToUserID, "transaction %d to", i)
				assert.True(t, got[i].Amount.Equal(want.Amount),
					"transaction %d amount = %s, want %s", i, got[i].Amount, want.Amount)
			}
		})
	}
}

// Simplified transactions must reproduce the net balances they came from:
// applying every transaction as a payment settles everyone to within the
// threshold.
func TestSimplifyConservesBalances(t *testing.T) {
	balances := map[int64]decimal.Decimal{
		1: dec("123.45"),
		2: dec("-67.89"),
		3: dec("-55.56"),
		4: dec("88.10"),
		5: dec("-88.10"),
	}

	transactions := Simplify(balances)

	remaining := make(map[int64]decimal.Decimal, len(balances))
	for id, b := range balances {
		remaining[id] = b
	}
	for _, tr := range transactions {
		remaining[tr.FromUserID] = remaining[tr.FromUserID].Add(tr.Amount)
		remaining[tr.ToUserID] = remaining[tr.ToUserID].Sub(tr.Amount)
	}

	for id, b := range remaining {
		assert.True(t, b.Abs().LessThanOrEqual(SettledThreshold()),
			"user %d left with %s after settling", id, b)
	}

	// A near-minimal solution never needs more than n-1 payments.
	assert.LessOrEqual(t, len(transactions), len(balances)-1)
}

func TestSimplifyEndToEnd(t *testing.T) {
	// Three flatmates: 1 pays 90 split equally, 2 pays 30 split equally,
	// then 3 settles part of what they owe.
	expenses := []Expense{
		{PayerID: 1, Amount: dec("90.00"), Splits: []SplitShare{
			{UserID: 1, Amount: dec("30.00")},
			{UserID: 2, Amount: dec("30.00")},
			{UserID: 3, Amount: dec("30.00")},
		}},
		{PayerID: 2, Amount: dec("30.00"), Splits: []SplitShare{
			{UserID: 1, Amount: dec("10.00")},
			{UserID: 2, Amount: dec("10.00")},
			{UserID: 3, Amount: dec("10.00")},
		}},
	}
	settlements := []Settlement{
		{FromUserID: 3, ToUserID: 1, Amount: dec("20.00")},
	}

	// Nets: 1 = +90 -30 -10 -20 = +30, 2 = +30 -30 -10 = -10, 3 = -30 -10 +20 = -20
	got := Simplify(NetBalances(expenses, settlements, members(1, 2, 3)))

	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].FromUserID)
	assert.Equal(t, int64(1), got[0].ToUserID)
	assert.True(t, got[0].Amount.Equal(dec("20")))
	assert.Equal(t, int64(2), got[1].FromUserID)
	assert.Equal(t, int64(1), got[1].ToUserID)
	assert.True(t, got[1].Amount.Equal(dec("10")))
}
