package domain

import (
	"context"
	"time"
)

// User represents a person who can join events. One user may participate in
// many events; the row is created or refreshed on first registration.
// swagger:model User
type User struct {
	ID          string    `json:"id"`
	AuthUserID  *string   `json:"auth_user_id,omitempty"`
	LinkedInURL string    `json:"linkedin_url"`
	LinkedInID  *string   `json:"linkedin_id,omitempty"`
	Name        string    `json:"name"`
	Headline    *string   `json:"headline,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Email       *string   `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(authUserID, linkedInURL, name string, createdAt, updatedAt time.Time) *User {
	u := &User{
		LinkedInURL: linkedInURL,
		Name:        name,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if authUserID != "" {
		u.AuthUserID = &authUserID
	}
	return u
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByAuthUserID(ctx context.Context, authUserID string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// Identity is the authenticated identity issued by the external login
// provider, with optional profile claims. It is passed explicitly per
// request; authorization decisions always re-check storage.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	PictureURL  string `json:"picture_url,omitempty"`
	ProfileLink string `json:"profile_link,omitempty"`
}

// IdentityProvider is the boundary to the social login provider.
type IdentityProvider interface {
	// AuthCodeURL returns the provider authorization URL for the given opaque
	// state, which carries the post-login continuation.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for the authenticated identity
	// and its profile claims.
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// TokenIssuer issues session tokens for an authenticated identity.
type TokenIssuer interface {
	Issue(authUserID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the identity it was
// issued for.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}
