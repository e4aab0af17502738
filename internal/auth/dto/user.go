package dto

import (
	"time"

	"github.com/rizkypriyadi/authkit/internal/auth/domain"
)

// UserOutput is the caller-facing identity. It has no password hash field
// at all, so a hash can never leak through serialization.
type UserOutput struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	IsActive    bool        `json:"is_active"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func NewUserOutput(u *domain.User) *UserOutput {
	return &UserOutput{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// Domain converts back to the domain shape. The hash field stays empty;
// this value must never be written to the credential store.
func (o *UserOutput) Domain() domain.User {
	return domain.User{
		ID:          o.ID,
		Email:       o.Email,
		Name:        o.Name,
		Role:        o.Role,
		IsActive:    o.IsActive,
		LastLoginAt: o.LastLoginAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// LoginOutput bundles the authenticated identity with its token pair.
type LoginOutput struct {
	User   *UserOutput      `json:"user"`
	Tokens domain.TokenPair `json:"tokens"`
}
