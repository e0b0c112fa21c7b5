// models/user.go
package models

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles known to the system.
type Role string

const (
	RoleAgent Role = "agent"
	RoleBuyer Role = "buyer"
)

// ParseRole validates a raw role string against the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAgent, RoleBuyer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity is the authenticated caller as seen by the service layer.
// It is produced at the auth boundary and trusted everywhere below it.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// User represents a registered agent or buyer account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// UserSummary is the public projection attached to enriched responses.
type UserSummary struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// Summary returns the public projection of a user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
