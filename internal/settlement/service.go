package settlement

import (
	"context"
	"errors"

	"github.com/ymansouri/splitwise/internal/group"
)

// Common errors
var (
	ErrAccessDenied    = errors.New("access denied: you are not a member of this group")
	ErrPayeeNotInGroup = errors.New("recipient is not a member of this group")
	ErrInvalidAmount   = errors.New("settlement amount must be greater than zero")
	ErrSelfSettlement  = errors.New("cannot record a settlement to yourself")
)

// Service handles settlement business logic
type Service struct {
	repo      *Repository
	groupRepo *group.Repository
}

// NewService creates a new settlement service
func NewService(repo *Repository, groupRepo *group.Repository) *Service {
	return &Service{repo: repo, groupRepo: groupRepo}
}

// Create records a completed payment from the authenticated user to another
// group member. Both parties must belong to the group.
func (s *Service) Create(ctx context.Context, fromUserID int64, req *CreateSettlementRequest) (*Settlement, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fromUserID == req.ToUserID {
		return nil, ErrSelfSettlement
	}

	isMember, err := s.groupRepo.IsMember(ctx, req.GroupID, fromUserID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrAccessDenied
	}

	payeeIsMember, err := s.groupRepo.IsMember(ctx, req.GroupID, req.ToUserID)
	if err != nil {
		return nil, err
	}
	if !payeeIsMember {
		return nil, ErrPayeeNotInGroup
	}

	return s.repo.Create(ctx, &Settlement{
		GroupID:    req.GroupID,
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount.Round(2),
		Method:     req.Method,
		Note:       req.Note,
		Status:     StatusCompleted,
	})
}

// ListByGroup retrieves a page of a group's settlements, members only
func (s *Service) ListByGroup(ctx context.Context, userID, groupID int64, page, perPage int) ([]*SettlementResponse, int, error) {
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
	settlements, total, err := s.repo.ListByGroupID(ctx, groupID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*SettlementResponse, len(settlements))
	for i, st := range settlements {
		responses[i] = st.ToResponse()
	}

	return responses, total, nil
}
