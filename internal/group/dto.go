package group

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddMemberRequest represents the request to add a member by email. If no
// account exists for the email, a guest account is created.
type AddMemberRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	CreatorID int64             `json:"creator_id"`
	CreatedAt string            `json:"created_at"`
	Members   []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsGuest  bool   `json:"is_guest"`
	JoinedAt string `json:"joined_at"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatorID: g.CreatorID,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a GroupMember model to a MemberResponse DTO
func (m *GroupMember) ToResponse() *MemberResponse {
	return &MemberResponse{
		UserID:   m.UserID,
		Name:     m.Name,
		Email:    m.Email,
		IsGuest:  m.IsGuest,
		JoinedAt: m.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}
