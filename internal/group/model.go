package group

import "time"

// Group represents a group in the system
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatorID int64     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupMember represents a user's membership in a group
type GroupMember struct {
	ID       int64     `json:"id"`
	GroupID  int64     `json:"group_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`

	// Populated via JOIN
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	IsGuest bool   `json:"is_guest"`
}
