package domain

import "time"

// Role is the access level assigned to a user at registration
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleReader  Role = "Reader"
	RoleCreator Role = "Creator"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleReader, RoleCreator:
		return true
	}
	return false
}

// User represents a registered account
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
