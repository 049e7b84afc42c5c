package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ymansouri/splitwise/internal/expense/split"
	"github.com/ymansouri/splitwise/internal/group"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrAccessDenied    = errors.New("access denied: you are not a member of this group")
	ErrNotPayer        = errors.New("only the person who created this expense can delete it")
)

// reconcileTolerance is how far the sum of splits may drift from the expense
// total. Wider than the calculator's own rounding window to absorb compounding
// of per-entry rounding on EXACT splits.
var reconcileTolerance = decimal.New(2, -2) // 0.02

// Service handles expense business logic
type Service struct {
	repo         *Repository
	groupRepo    *group.Repository
	splitFactory *split.Factory
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, groupRepo *group.Repository, splitFactory *split.Factory) *Service {
	return &Service{
		repo:         repo,
		groupRepo:    groupRepo,
		splitFactory: splitFactory,
	}
}

// Create calculates splits with the requested strategy, checks that they
// reconcile with the total, and persists expense plus splits atomically.
// The payer must be a member of the group.
func (s *Service) Create(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	isMember, err := s.groupRepo.IsMember(ctx, req.GroupID, payerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrAccessDenied
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	entries := make([]split.Entry, len(req.Splits))
	for i, e := range req.Splits {
		entries[i] = e.ToSplitEntry()
	}

	shares, err := strategy.Calculate(req.Amount, entries)
	if err != nil {
		return nil, err
	}

	// EQUAL and PERCENTAGE reconcile exactly by construction; EXACT amounts
	// come from the caller and are only checked here.
	sum := decimal.Zero
	for _, share := range shares {
		sum = sum.Add(share.Amount)
	}
	if sum.Sub(req.Amount).Abs().GreaterThan(reconcileTolerance) {
		return nil, fmt.Errorf("%w: splits total %s must equal expense amount %s",
			split.ErrInvalidSplit, sum.StringFixed(2), req.Amount.StringFixed(2))
	}

	return s.repo.CreateWithSplits(ctx, payerID, req, shares)
}

// ListByGroup retrieves a page of a group's expenses with splits, members only
func (s *Service) ListByGroup(ctx context.Context, userID, groupID int64, page, perPage int) ([]*ExpenseResponse, int, error) {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, 0, err
	}
	if !isMember {
		return nil, 0, ErrAccessDenied
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	expenses, total, err := s.repo.ListByGroupID(ctx, groupID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	splits, err := s.repo.GetSplitsByExpenseIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		resp := e.ToResponse()
		for _, sp := range splits[e.ID] {
			resp.Splits = append(resp.Splits, sp.ToResponse())
		}
		responses[i] = resp
	}

	return responses, total, nil
}

// Delete removes an expense. Only the payer can delete it, and only while
// they are still a member of the group.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	if expense.PayerID != userID {
		return ErrNotPayer
	}

	isMember, err := s.groupRepo.IsMember(ctx, expense.GroupID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrAccessDenied
	}

	return s.repo.Delete(ctx, id)
}
