package authcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/nutrifit/authcore/audit"
)

// ChangePassword rotates a user's credential after verifying the
// current one. The new password must satisfy the configured policy and
// differ from the current password.
func (e *Engine) ChangePassword(ctx context.Context, userID, current, next string) error {
	if err := e.ready(); err != nil {
		return err
	}

	user, err := e.provider.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if !e.hasher.Verify(current, user.PasswordHash) {
		e.auditLog.Record(audit.TypeLoginFailure, audit.Options{
			UserID:    user.UserID,
			IP:        clientIPFromContext(ctx),
			UserAgent: userAgentFromContext(ctx),
			Details:   map[string]string{"reason": "password change verification failed"},
		})
		return ErrInvalidCredentials
	}
	if next == current {
		return ErrPasswordReuse
	}
	if len(next) < e.config.Password.MinLength {
		return ErrPasswordPolicy
	}

	newHash, err := e.hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := e.provider.UpdatePasswordHash(ctx, user.UserID, newHash); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	e.auditLog.Record(audit.TypePasswordChange, audit.Options{
		UserID:    user.UserID,
		IP:        clientIPFromContext(ctx),
		UserAgent: userAgentFromContext(ctx),
	})
	e.metricInc(MetricPasswordChange)
	return nil
}

// UnlockAccount clears an active lockout and the identifier's login
// rate-limit window. Intended for support tooling; the action is
// recorded as an admin event.
func (e *Engine) UnlockAccount(ctx context.Context, identifier string) error {
	if err := e.ready(); err != nil {
		return err
	}
	if identifier == "" {
		return ErrInvalidIdentifier
	}

	if err := e.lockouts.Unlock(ctx, identifier); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if err := e.loginLimiter.Reset(ctx, identifier); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	e.auditLog.Record(audit.TypeAdminAction, audit.Options{
		IP:        clientIPFromContext(ctx),
		UserAgent: userAgentFromContext(ctx),
		Details: map[string]string{
			"action":     "unlock_account",
			"identifier": identifier,
		},
		Severity: audit.SeverityWarning,
	})
	e.metricInc(MetricAccountUnlocked)
	return nil
}

// VerifyResourceOwnership enforces that userID owns the resource. An
// empty owner reads as a missing resource rather than an ownership
// failure; a mismatch is recorded as unauthorized access.
func (e *Engine) VerifyResourceOwnership(ctx context.Context, userID, ownerID, resource string) error {
	if err := e.ready(); err != nil {
		return err
	}
	if ownerID == "" {
		return ErrNotFound
	}
	if userID == ownerID {
		return nil
	}

	e.auditLog.Record(audit.TypeUnauthorized, audit.Options{
		UserID:    userID,
		IP:        clientIPFromContext(ctx),
		UserAgent: userAgentFromContext(ctx),
		Details: map[string]string{
			"resource":  resource,
			"attempted": "ownership violation",
		},
		Severity: audit.SeverityError,
	})
	e.metricInc(MetricUnauthorizedAccess)
	return ErrForbidden
}
