package domain

import "context"

// CredentialStore resolves and persists identities together with their
// password hashes. Email uniqueness is guaranteed at the storage layer.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateLastLogin(ctx context.Context, userID string) error
}

// SessionRecord is the persisted shape of an authenticated session: both
// tokens plus the identity, stripped of its password hash.
type SessionRecord struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// SessionStore persists a single session record between process runs.
// Load returns (nil, nil) when no intact record exists; implementations
// treat a partially written or unparseable record as absent.
type SessionStore interface {
	Save(ctx context.Context, rec *SessionRecord) error
	Load(ctx context.Context) (*SessionRecord, error)
	Clear(ctx context.Context) error
}
