package user

import "time"

// User represents a user in the system. Guests are created on the fly when a
// group member adds someone by email who has no account yet.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsGuest      bool      `json:"is_guest"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
