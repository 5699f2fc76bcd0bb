package authcore

import (
	"context"
	"strings"
	"time"
)

// AccountStatus represents the lifecycle state of a user account as
// reported by the [UserProvider].
type AccountStatus uint8

const (
	// AccountActive allows login.
	AccountActive AccountStatus = iota
	// AccountDisabled refuses login regardless of credentials.
	AccountDisabled
)

// UserRecord is the account record returned by [UserProvider]. The Engine
// reads the stored credential hash and status; it never writes fields
// other than PasswordHash (via UpdatePasswordHash).
type UserRecord struct {
	UserID       string
	Email        string
	Name         string
	PasswordHash string
	Status       AccountStatus
}

// CreateUserInput is the payload handed to [UserProvider.CreateUser]
// during registration. PasswordHash is already derived; providers must
// never see the plaintext password.
type CreateUserInput struct {
	Email        string
	Name         string
	PasswordHash string
}

// UserProvider is the persistence collaborator callers must implement.
// GetUserByIdentifier and GetUserByID return [ErrUserNotFound] for missing
// users; CreateUser returns [ErrAccountExists] for duplicate identifiers.
type UserProvider interface {
	GetUserByIdentifier(ctx context.Context, identifier string) (UserRecord, error)
	GetUserByID(ctx context.Context, userID string) (UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
}

// LoginOptions selects between the named session-lifetime policies.
type LoginOptions struct {
	// Extended requests the remember-me TTL instead of the default
	// session TTL.
	Extended bool
}

// LoginResult is returned by Login and Register on success.
type LoginResult struct {
	UserID    string
	Email     string
	Name      string
	Token     string
	ExpiresAt time.Time
}

// RegisterInput is the payload for [Engine.Register]. Name is sanitized
// before it reaches the provider; Email and Password are validated against
// the configured policy.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// BearerToken extracts the token from an Authorization header value.
// It returns false when the header is absent or not a Bearer scheme.
func BearerToken(authorization string) (string, bool) {
	tok, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}
