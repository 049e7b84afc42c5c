package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// percentTolerance is how far the percentage sum may drift from 100.
var percentTolerance = decimal.New(1, -2) // 0.01

var oneHundred = decimal.NewFromInt(100)

// PercentageStrategy divides the total based on per-entry percentages, which
// must sum to 100. As with EqualStrategy, the last entry absorbs the rounding
// residual.
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() SplitType {
	return SplitTypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(totalAmount decimal.Decimal, entries []Entry) error {
	if err := validateCommon(totalAmount, entries); err != nil {
		return err
	}

	totalPercentage := decimal.Zero
	for _, e := range entries {
		if e.Percentage == nil {
			return fmt.Errorf("%w: percentage required for all participants", ErrInvalidSplit)
		}
		if e.Percentage.IsNegative() || e.Percentage.GreaterThan(oneHundred) {
			return fmt.Errorf("%w: percentage must be between 0 and 100", ErrInvalidSplit)
		}
		totalPercentage = totalPercentage.Add(*e.Percentage)
	}

	if totalPercentage.Sub(oneHundred).Abs().GreaterThan(percentTolerance) {
		return fmt.Errorf("%w: percentages must sum to 100, got %s", ErrInvalidSplit, totalPercentage)
	}

	return nil
}

// Calculate divides the total amount based on each entry's percentage
func (s *PercentageStrategy) Calculate(totalAmount decimal.Decimal, entries []Entry) ([]Share, error) {
	if err := s.Validate(totalAmount, entries); err != nil {
		return nil, err
	}

	shares := make([]Share, len(entries))
	sum := decimal.Zero
	for i, e := range entries {
		amount := totalAmount.Mul(*e.Percentage).Div(oneHundred).Round(two)
		shares[i] = Share{UserID: e.UserID, Amount: amount}
		sum = sum.Add(amount)
	}

	// Fold the rounding residual into the last share, same rule as EQUAL.
	residual := totalAmount.Sub(sum)
	last := len(shares) - 1
	shares[last].Amount = shares[last].Amount.Add(residual).Round(two)

	return shares, nil
}
