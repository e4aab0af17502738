package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
	RoleGuest   Role = "GUEST"
)

// User is a registered identity. PasswordHash never crosses the service
// boundary; every value handed back to a caller goes through dto.UserOutput.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	PasswordHash string     `json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Name  *string
	Email *string
}

// WithPatch returns a copy of u with the non-nil fields of p applied.
// The receiver is never mutated.
func (u User) WithPatch(p UserPatch) User {
	out := u
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	out.UpdatedAt = time.Now()
	return out
}

// TokenPair is the result of a successful login. ExpiresIn is the access
// token lifetime in seconds.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}
