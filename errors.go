package authcore

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown identifiers and
	// wrong passwords so that responses cannot be used to probe for
	// account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when a session token fails verification.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTokenExpired is returned for structurally valid tokens whose
	// expiry has passed.
	ErrTokenExpired = errors.New("session token expired")
	// ErrAccountLocked is returned while a lockout record is active for
	// the identifier.
	ErrAccountLocked = errors.New("account locked")
	// ErrRateLimited is returned when a rate-limit policy denies the request.
	ErrRateLimited = errors.New("rate limited")
	// ErrAccountExists is returned by registration when the identifier is
	// already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountDisabled is returned when the account status forbids login.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrUserNotFound is returned by provider lookups for missing users.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotFound is returned by ownership checks when the resource has
	// no owner on record.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is returned when a caller attempts to access a
	// resource owned by another user.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidIdentifier is returned for empty or malformed identifiers.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrPasswordPolicy is returned when a new password fails the
	// configured policy.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrPasswordReuse is returned when a password change supplies the
	// current password as the new one.
	ErrPasswordReuse = errors.New("new password must be different from current password")
	// ErrBackendUnavailable is returned when a limiter or lockout backend
	// cannot be reached.
	ErrBackendUnavailable = errors.New("auth backend unavailable")
	// ErrEngineNotReady is returned when the Engine is used before Build
	// completed.
	ErrEngineNotReady = errors.New("engine not initialized")
)
