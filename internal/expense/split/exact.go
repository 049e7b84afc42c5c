package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExactStrategy uses caller-specified amounts as given. The expense-creation
// workflow is responsible for checking that they reconcile with the total.
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() SplitType {
	return SplitTypeExact
}

// Validate checks if the inputs are valid for an exact split
func (s *ExactStrategy) Validate(totalAmount decimal.Decimal, entries []Entry) error {
	if err := validateCommon(totalAmount, entries); err != nil {
		return err
	}

	for _, e := range entries {
		if e.Amount == nil {
			return fmt.Errorf("%w: exact amount required for all participants", ErrInvalidSplit)
		}
		if e.Amount.IsNegative() {
			return fmt.Errorf("%w: amounts cannot be negative", ErrInvalidSplit)
		}
	}

	return nil
}

// Calculate returns the specified amounts rounded to currency precision
func (s *ExactStrategy) Calculate(totalAmount decimal.Decimal, entries []Entry) ([]Share, error) {
	if err := s.Validate(totalAmount, entries); err != nil {
		return nil, err
	}

	shares := make([]Share, len(entries))
	for i, e := range entries {
		shares[i] = Share{UserID: e.UserID, Amount: e.Amount.Round(two)}
	}

	return shares, nil
}
