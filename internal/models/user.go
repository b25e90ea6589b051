package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User roles. Fixed at registration.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

// ParseRole normalizes a role string, falling back to buyer.
func ParseRole(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSeller:
		return RoleSeller
	default:
		return RoleBuyer
	}
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Email     string    `gorm:"size:150;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'buyer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
