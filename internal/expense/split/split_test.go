package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decP(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		name      string
		splitType string
		wantType  SplitType
		wantErr   error
	}{
		{name: "equal", splitType: "EQUAL", wantType: SplitTypeEqual},
		{name: "percentage", splitType: "PERCENTAGE", wantType: SplitTypePercentage},
		{name: "exact", splitType: "EXACT", wantType: SplitTypeExact},
		{name: "unknown type", splitType: "RANDOM", wantErr: ErrInvalidSplitType},
		{name: "lowercase is rejected", splitType: "equal", wantErr: ErrInvalidSplitType},
		{name: "empty", splitType: "", wantErr: ErrInvalidSplitType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := factory.CreateFromString(tt.splitType)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, strategy.Type())
		})
	}
}

func TestEqualStrategy(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		userIDs []int64
		want    []string
		wantErr error
	}{
		{
			name:    "divides evenly",
			total:   "90.00",
			userIDs: []int64{1, 2, 3},
			want:    []string{"30", "30", "30"},
		},
		{
			name:    "last entry absorbs the residual",
			total:   "100.00",
			userIDs: []int64{1, 2, 3},
			want:    []string{"33.33", "33.33", "33.34"},
		},
		{
			name:    "single participant gets everything",
			total:   "42.50",
			userIDs: []int64{7},
			want:    []string{"42.5"},
		},
		{
			name:    "residual can be negative",
			total:   "100.00",
			userIDs: []int64{1, 2, 3, 4, 5, 6},
			want:    []string{"16.67", "16.67", "16.67", "16.67", "16.67", "16.65"},
		},
		{
			name:    "no participants",
			total:   "10.00",
			userIDs: nil,
			wantErr: ErrInvalidSplit,
		},
		{
			name:    "zero total",
			total:   "0",
			userIDs: []int64{1, 2},
			wantErr: ErrInvalidSplit,
		},
		{
			name:    "negative total",
			total:   "-5.00",
			userIDs: []int64{1, 2},
			wantErr: ErrInvalidSplit,
		},
	}

	strategy := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]Entry, len(tt.userIDs))
			for i, id := range tt.userIDs {
				entries[i] = Entry{UserID: id}
			}

			shares, err := strategy.Calculate(dec(tt.total), entries)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, shares, len(tt.want))

			sum := decimal.Zero
			for i, share := range shares {
				assert.Equal(t, tt.userIDs[i], share.UserID)
				assert.True(t, share.Amount.Equal(dec(tt.want[i])),
					"share %d = %s, want %s", i, share.Amount, tt.want[i])
				sum = sum.Add(share.Amount)
			}
			assert.True(t, sum.Equal(dec(tt.total)), "shares sum to %s, want %s", sum, tt.total)
		})
	}
}

func TestPercentageStrategy(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		entries []Entry
		want    []string
		wantErr error
	}{
		{
			name:  "uneven thirds reconcile to the total",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Percentage: decP("33.33")},
				{UserID: 2, Percentage: decP("33.33")},
				{UserID: 3, Percentage: decP("33.34")},
			},
			want: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:  "50/30/20",
			total: "250.00",
			entries: []Entry{
				{UserID: 1, Percentage: decP("50")},
				{UserID: 2, Percentage: decP("30")},
				{UserID: 3, Percentage: decP("20")},
			},
			want: []string{"125", "75", "50"},
		},
		{
			name:  "sum within tolerance is accepted",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Percentage: decP("50")},
				{UserID: 2, Percentage: decP("49.99")},
			},
			want: []string{"50", "50"},
		},
		{
			name:  "zero percentage participant",
			total: "60.00",
			entries: []Entry{
				{UserID: 1, Percentage: decP("100")},
				{UserID: 2, Percentage: decP("0")},
			},
			want: []string{"60", "0"},
		},
		{
			name:  "sum below tolerance",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Percentage: decP("50")},
				{UserID: 2, Percentage: decP("49.98")},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name:  "sum above 100",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Percentage: decP("60")},
				{UserID: 2, Percentage: decP("60")},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name:  "missing percentage",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Percentage: decP("50")},
				{UserID: 2},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name:  "negative percentage",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Percentage: decP("110")},
				{UserID: 2, Percentage: decP("-10")},
			},
			wantErr: ErrInvalidSplit,
		},
	}

	strategy := &PercentageStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Calculate(dec(tt.total), tt.entries)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, shares, len(tt.want))

			sum := decimal.Zero
			for i, share := range shares {
				assert.True(t, share.Amount.Equal(dec(tt.want[i])),
					"share %d = %s, want %s", i, share.Amount, tt.want[i])
				sum = sum.Add(share.Amount)
			}
			assert.True(t, sum.Equal(dec(tt.total)), "shares sum to %s, want %s", sum, tt.total)
		})
	}
}

func TestExactStrategy(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		entries []Entry
		want    []string
		wantErr error
	}{
		{
			name:  "amounts pass through",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Amount: decP("60.00")},
				{UserID: 2, Amount: decP("40.00")},
			},
			want: []string{"60", "40"},
		},
		{
			name:  "zero amount is allowed",
			total: "25.00",
			entries: []Entry{
				{UserID: 1, Amount: decP("25.00")},
				{UserID: 2, Amount: decP("0")},
			},
			want: []string{"25", "0"},
		},
		{
			name:  "sum mismatch is not the strategy's concern",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Amount: decP("10.00")},
				{UserID: 2, Amount: decP("10.00")},
			},
			want: []string{"10", "10"},
		},
		{
			name:  "missing amount",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Amount: decP("50.00")},
				{UserID: 2},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name:  "negative amount",
			total: "100.00",
			entries: []Entry{
				{UserID: 1, Amount: decP("110.00")},
				{UserID: 2, Amount: decP("-10.00")},
			},
			wantErr: ErrInvalidSplit,
		},
	}

	strategy := &ExactStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Calculate(dec(tt.total), tt.entries)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, shares, len(tt.want))
			for i, share := range shares {
				assert.True(t, share.Amount.Equal(dec(tt.want[i])),
					"share %d = %s, want %s", i, share.Amount, tt.want[i])
			}
		})
	}
}
