package split

import "github.com/shopspring/decimal"

// EqualStrategy divides the total evenly among all entries. The last entry
// absorbs the rounding residual, so entry order is significant for callers.
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() SplitType {
	return SplitTypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalAmount decimal.Decimal, entries []Entry) error {
	return validateCommon(totalAmount, entries)
}

// Calculate divides the total amount evenly among all entries
func (s *EqualStrategy) Calculate(totalAmount decimal.Decimal, entries []Entry) ([]Share, error) {
	if err := s.Validate(totalAmount, entries); err != nil {
		return nil, err
	}

	count := decimal.NewFromInt(int64(len(entries)))
	perPerson := totalAmount.Div(count).Round(two)

	shares := make([]Share, len(entries))
	for i, e := range entries {
		shares[i] = Share{UserID: e.UserID, Amount: perPerson}
	}

	// The rounded per-person amounts may not sum back to the total; fold the
	// residual into the last share so the sum reconciles exactly.
	residual := totalAmount.Sub(perPerson.Mul(count))
	last := len(shares) - 1
	shares[last].Amount = perPerson.Add(residual).Round(two)

	return shares, nil
}
