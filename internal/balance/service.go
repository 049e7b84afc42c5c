package balance

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrAccessDenied  = errors.New("access denied: you are not a member of this group")
	ErrGroupNotFound = errors.New("group not found")
)

// Store supplies the snapshot data the engine computes over. A scope is a set
// of group IDs: a single group, or all groups a user belongs to.
type Store interface {
	IsMember(ctx context.Context, userID, groupID int64) (bool, error)
	GroupIDsForUser(ctx context.Context, userID int64) ([]int64, error)
	GetGroupName(ctx context.Context, groupID int64) (string, error)
	ListExpenses(ctx context.Context, groupIDs []int64) ([]Expense, error)
	ListCompletedSettlements(ctx context.Context, groupIDs []int64) ([]Settlement, error)
	ListMembers(ctx context.Context, groupIDs []int64) ([]Member, error)
}

// Service computes balances over fresh snapshots loaded from the store.
// It holds no state between calls.
type Service struct {
	store Store
}

// NewService creates a new balance service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetGroupBalances computes the simplified debts for one group and the
// requesting member's side of them.
func (s *Service) GetGroupBalances(ctx context.Context, userID, groupID int64) (*GroupBalancesResponse, error) {
	isMember, err := s.store.IsMember(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrAccessDenied
	}

	groupName, err := s.store.GetGroupName(ctx, groupID)
	if err != nil {
		return nil, err
	}

	scope := []int64{groupID}
	expenses, settlements, members, err := s.loadScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	transactions := Simplify(NetBalances(expenses, settlements, members))
	users := memberIndex(members)

	resp := &GroupBalancesResponse{
		GroupID:    groupID,
		GroupName:  groupName,
		YouOwe:     []*DebtEntry{},
		YouAreOwed: []*DebtEntry{},
		AllDebts:   []*DebtResponse{},
	}
	for _, t := range transactions {
		resp.AllDebts = append(resp.AllDebts, toDebtResponse(t, users))
		switch userID {
		case t.FromUserID:
			resp.YouOwe = append(resp.YouOwe, &DebtEntry{User: users[t.ToUserID], Amount: t.Amount})
		case t.ToUserID:
			resp.YouAreOwed = append(resp.YouAreOwed, &DebtEntry{User: users[t.FromUserID], Amount: t.Amount})
		}
	}

	return resp, nil
}

// GetUserBalances merges every group the user belongs to into one scope and
// computes the user's overall position. A debt in one group cancels against a
// credit with the same counterparty in another.
func (s *Service) GetUserBalances(ctx context.Context, userID int64) (*UserBalancesResponse, error) {
	groupIDs, err := s.store.GroupIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &UserBalancesResponse{
		YouOwe:     []*DebtEntry{},
		YouAreOwed: []*DebtEntry{},
		TotalOwing: decimal.Zero,
		TotalOwed:  decimal.Zero,
		NetBalance: decimal.Zero,
	}
	if len(groupIDs) == 0 {
		return resp, nil
	}

	expenses, settlements, members, err := s.loadScope(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	transactions := Simplify(NetBalances(expenses, settlements, members))
	users := memberIndex(members)

	for _, t := range transactions {
		switch userID {
		case t.FromUserID:
			resp.YouOwe = append(resp.YouOwe, &DebtEntry{User: users[t.ToUserID], Amount: t.Amount})
			resp.TotalOwing = resp.TotalOwing.Add(t.Amount)
		case t.ToUserID:
			resp.YouAreOwed = append(resp.YouAreOwed, &DebtEntry{User: users[t.FromUserID], Amount: t.Amount})
			resp.TotalOwed = resp.TotalOwed.Add(t.Amount)
		}
	}
	resp.TotalOwing = resp.TotalOwing.Round(2)
	resp.TotalOwed = resp.TotalOwed.Round(2)
	resp.NetBalance = resp.TotalOwed.Sub(resp.TotalOwing).Round(2)

	return resp, nil
}

// MemberNet returns one member's net position within a single group. Used by
// the group feature to block removing a member who still owes or is owed.
func (s *Service) MemberNet(ctx context.Context, groupID, memberID int64) (decimal.Decimal, error) {
	scope := []int64{groupID}
	expenses, settlements, members, err := s.loadScope(ctx, scope)
	if err != nil {
		return decimal.Zero, err
	}

	return NetBalances(expenses, settlements, members)[memberID], nil
}

func (s *Service) loadScope(ctx context.Context, groupIDs []int64) ([]Expense, []Settlement, []Member, error) {
	expenses, err := s.store.ListExpenses(ctx, groupIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	settlements, err := s.store.ListCompletedSettlements(ctx, groupIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	members, err := s.store.ListMembers(ctx, groupIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	return expenses, settlements, members, nil
}

func memberIndex(members []Member) map[int64]*UserRef {
	users := make(map[int64]*UserRef, len(members))
	for _, m := range members {
		users[m.ID] = &UserRef{ID: m.ID, Name: m.Name, Email: m.Email}
	}
	return users
}

func toDebtResponse(t Transaction, users map[int64]*UserRef) *DebtResponse {
	return &DebtResponse{
		From:   users[t.FromUserID],
		To:     users[t.ToUserID],
		Amount: t.Amount,
	}
}
