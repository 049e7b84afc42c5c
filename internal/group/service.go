package group

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ymansouri/splitwise/internal/balance"
	"github.com/ymansouri/splitwise/internal/user"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found in this group")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
	ErrAccessDenied        = errors.New("access denied: you are not a member of this group")
	ErrNotCreator          = errors.New("only the group creator can perform this action")
	ErrLastMember          = errors.New("cannot remove the last member, delete the group instead")
	ErrCreatorCannotLeave  = errors.New("the group creator cannot leave, delete the group instead")
	ErrUnsettledBalance    = errors.New("cannot remove member with an unsettled balance, settle up first")
)

// Service handles group business logic
type Service struct {
	repo     *Repository
	userRepo *user.Repository
	balances *balance.Service
}

// NewService creates a new group service
func NewService(repo *Repository, userRepo *user.Repository, balances *balance.Service) *Service {
	return &Service{repo: repo, userRepo: userRepo, balances: balances}
}

// Create creates a new group with the creator as its first member
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*Group, error) {
	return s.repo.Create(ctx, creatorID, req.Name)
}

// ListForUser retrieves the groups a user belongs to, with members
func (s *Service) ListForUser(ctx context.Context, userID int64, page, perPage int) ([]*GroupResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	offset := (page - 1) * perPage
	groups, total, err := s.repo.ListByUserID(ctx, userID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		resp := g.ToResponse()
		members, err := s.repo.GetMembers(ctx, g.ID)
		if err != nil {
			return nil, 0, err
		}
		resp.Members = toMemberResponses(members)
		responses[i] = resp
	}

	return responses, total, nil
}

// GetDetails retrieves a group with its members, for members only
func (s *Service) GetDetails(ctx context.Context, userID, groupID int64) (*GroupResponse, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	isMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrAccessDenied
	}

	members, err := s.repo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	resp := group.ToResponse()
	resp.Members = toMemberResponses(members)
	return resp, nil
}

// AddMember adds a user to the group by email. When no account exists for the
// email, a guest account with a random password is created on the fly.
func (s *Service) AddMember(ctx context.Context, requesterID, groupID int64, req *AddMemberRequest) (*GroupMember, error) {
	isMember, err := s.repo.IsMember(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrAccessDenied
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		hash, err := randomPasswordHash()
		if err != nil {
			return nil, err
		}
		u, err = s.userRepo.Create(ctx, req.Name, req.Email, hash, true)
		if err != nil {
			return nil, err
		}
	}

	alreadyMember, err := s.repo.IsMember(ctx, groupID, u.ID)
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, ErrMemberAlreadyExists
	}

	return s.repo.AddMember(ctx, groupID, u.ID)
}

// Delete removes a group and all its data, creator only
func (s *Service) Delete(ctx context.Context, userID, groupID int64) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	isMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrAccessDenied
	}

	if group.CreatorID != userID {
		return ErrNotCreator
	}

	return s.repo.Delete(ctx, groupID)
}

// RemoveMember removes a member from the group, or lets a member leave.
// Members with an outstanding net balance cannot be removed; the creator can
// only leave by deleting the group; only the creator removes others.
func (s *Service) RemoveMember(ctx context.Context, requesterID, groupID, memberID int64) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	isRequesterMember, err := s.repo.IsMember(ctx, groupID, requesterID)
	if err != nil {
		return err
	}
	if !isRequesterMember {
		return ErrAccessDenied
	}

	isTargetMember, err := s.repo.IsMember(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if !isTargetMember {
		return ErrMemberNotFound
	}

	members, err := s.repo.GetMembers(ctx, groupID)
	if err != nil {
		return err
	}
	if len(members) == 1 {
		return ErrLastMember
	}

	if requesterID == memberID {
		if group.CreatorID == requesterID {
			return ErrCreatorCannotLeave
		}
	} else if group.CreatorID != requesterID {
		return ErrNotCreator
	}

	net, err := s.balances.MemberNet(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if net.Abs().GreaterThan(balance.SettledThreshold()) {
		return fmt.Errorf("%w: outstanding %s", ErrUnsettledBalance, net.Abs().StringFixed(2))
	}

	return s.repo.RemoveMember(ctx, groupID, memberID)
}

func toMemberResponses(members []*GroupMember) []*MemberResponse {
	responses := make([]*MemberResponse, len(members))
	for i, m := range members {
		responses[i] = m.ToResponse()
	}
	return responses
}

// randomPasswordHash generates a bcrypt hash of a throwaway password for
// guest accounts, which cannot log in until promoted
func randomPasswordHash() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate guest password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash guest password: %w", err)
	}
	return string(hash), nil
}
