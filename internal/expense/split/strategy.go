// Package split converts an expense total and a split policy into exact
// per-member share amounts that reconcile to the total.
package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEqual      SplitType = "EQUAL"
	SplitTypePercentage SplitType = "PERCENTAGE"
	SplitTypeExact      SplitType = "EXACT"
)

var (
	// ErrInvalidSplitType is returned for an unrecognized split policy.
	ErrInvalidSplitType = errors.New("invalid split type")
	// ErrInvalidSplit is returned when split inputs cannot produce shares
	// that reconcile with the expense total.
	ErrInvalidSplit = errors.New("invalid split")
)

// Entry is one participant in a split with its policy-specific value
type Entry struct {
	UserID     int64            `json:"user_id"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *decimal.Decimal `json:"amount,omitempty"`     // For EXACT split
}

// Share is the calculated share for a single participant
type Share struct {
	UserID int64           `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

// Strategy is the interface that all split strategies implement.
// Calculate emits a share for every entry, the payer included: a share is the
// portion of the expense the member consumed, not a payment.
type Strategy interface {
	// Calculate computes the share amounts for all entries
	Calculate(totalAmount decimal.Decimal, entries []Entry) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount decimal.Decimal, entries []Entry) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqual:
		return &EqualStrategy{}, nil
	case SplitTypePercentage:
		return &PercentageStrategy{}, nil
	case SplitTypeExact:
		return &ExactStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidSplitType, splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

// two is the rounding precision for all monetary amounts
const two int32 = 2

func validateCommon(totalAmount decimal.Decimal, entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidSplit)
	}
	if !totalAmount.IsPositive() {
		return fmt.Errorf("%w: total amount must be positive", ErrInvalidSplit)
	}
	return nil
}
