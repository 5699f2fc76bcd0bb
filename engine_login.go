package authcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/nutrifit/authcore/audit"
	"github.com/nutrifit/authcore/internal/sanitize"
	"github.com/nutrifit/authcore/token"
)

// Login authenticates identifier and password under the default session
// TTL. See LoginWithOptions.
func (e *Engine) Login(ctx context.Context, identifier, plaintext string) (LoginResult, error) {
	return e.LoginWithOptions(ctx, identifier, plaintext, LoginOptions{})
}

// LoginWithOptions authenticates a credential pair and issues a session
// token. The flow checks the account lockout first, then the login rate
// limit, then the credentials; failures are recorded in the audit log
// and count toward lockout. Unknown identifiers and wrong passwords both
// return [ErrInvalidCredentials].
func (e *Engine) LoginWithOptions(ctx context.Context, identifier, plaintext string, opts LoginOptions) (LoginResult, error) {
	if err := e.ready(); err != nil {
		return LoginResult{}, err
	}
	if identifier == "" {
		return LoginResult{}, ErrInvalidIdentifier
	}

	status, err := e.lockouts.IsLocked(ctx, identifier)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if status.Locked {
		e.metricInc(MetricLoginLocked)
		return LoginResult{}, ErrAccountLocked
	}

	clientIP := clientIPFromContext(ctx)
	rateKey := clientIP
	if rateKey == "" {
		rateKey = identifier
	}
	limited, err := e.loginLimiter.Limited(ctx, rateKey)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if limited {
		e.auditLog.Record(audit.TypeRateLimitExceeded, audit.Options{
			IP:        clientIP,
			UserAgent: userAgentFromContext(ctx),
			Details:   map[string]string{"policy": "login"},
		})
		e.metricInc(MetricLoginRateLimited)
		e.metricInc(MetricRateLimitHit)
		return LoginResult{}, ErrRateLimited
	}

	user, err := e.provider.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return LoginResult{}, e.loginFailed(ctx, identifier)
		}
		return LoginResult{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if user.Status == AccountDisabled {
		e.auditLog.Record(audit.TypeLoginFailure, audit.Options{
			UserID:    identifier,
			IP:        clientIP,
			UserAgent: userAgentFromContext(ctx),
			Details:   map[string]string{"reason": "account disabled"},
		})
		e.metricInc(MetricLoginFailure)
		return LoginResult{}, ErrAccountDisabled
	}

	if !e.hasher.Verify(plaintext, user.PasswordHash) {
		return LoginResult{}, e.loginFailed(ctx, identifier)
	}

	e.auditLog.Record(audit.TypeLoginSuccess, audit.Options{
		UserID:    user.UserID,
		IP:        clientIP,
		UserAgent: userAgentFromContext(ctx),
	})
	e.metricInc(MetricLoginSuccess)

	if e.config.Password.UpgradeOnLogin && e.hasher.NeedsUpgrade(user.PasswordHash) {
		e.upgradeHash(ctx, user.UserID, plaintext)
	}

	ttl := e.config.Token.SessionTTL
	if opts.Extended {
		ttl = e.config.Token.ExtendedSessionTTL
	}
	signed, expiresAt, err := e.tokens.Issue(user.UserID, ttl)
	if err != nil {
		return LoginResult{}, err
	}
	e.metricInc(MetricTokenIssued)

	return LoginResult{
		UserID:    user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// loginFailed records the failure, advances the lockout counter and
// returns the error the caller should surface.
func (e *Engine) loginFailed(ctx context.Context, identifier string) error {
	e.auditLog.Record(audit.TypeLoginFailure, audit.Options{
		UserID:    identifier,
		IP:        clientIPFromContext(ctx),
		UserAgent: userAgentFromContext(ctx),
	})
	e.metricInc(MetricLoginFailure)

	locked, _, err := e.lockouts.CheckAndLockOnFailure(ctx, identifier)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if locked {
		e.metricInc(MetricAccountLocked)
		return ErrAccountLocked
	}
	return ErrInvalidCredentials
}

// upgradeHash rehashes the verified plaintext at current parameters.
// Best effort: a failed upgrade never fails the login.
func (e *Engine) upgradeHash(ctx context.Context, userID, plaintext string) {
	newHash, err := e.hasher.Hash(plaintext)
	if err != nil {
		return
	}
	if err := e.provider.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return
	}
	e.metricInc(MetricPasswordUpgrade)
}

// Register creates an account and logs the new user in. The email must
// be well formed, the password must satisfy the configured minimum
// length and the display name is sanitized before storage.
func (e *Engine) Register(ctx context.Context, input RegisterInput) (LoginResult, error) {
	if err := e.ready(); err != nil {
		return LoginResult{}, err
	}
	if !sanitize.ValidEmail(input.Email) {
		e.metricInc(MetricRegisterFailure)
		return LoginResult{}, ErrInvalidIdentifier
	}
	if len(input.Password) < e.config.Password.MinLength {
		e.metricInc(MetricRegisterFailure)
		return LoginResult{}, ErrPasswordPolicy
	}

	clientIP := clientIPFromContext(ctx)
	rateKey := clientIP
	if rateKey == "" {
		rateKey = input.Email
	}
	limited, err := e.loginLimiter.Limited(ctx, rateKey)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if limited {
		e.metricInc(MetricRateLimitHit)
		return LoginResult{}, ErrRateLimited
	}

	hash, err := e.hasher.Hash(input.Password)
	if err != nil {
		return LoginResult{}, err
	}

	user, err := e.provider.CreateUser(ctx, CreateUserInput{
		Email:        input.Email,
		Name:         sanitize.Input(input.Name),
		PasswordHash: hash,
	})
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		if errors.Is(err, ErrAccountExists) {
			return LoginResult{}, ErrAccountExists
		}
		return LoginResult{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	e.auditLog.Record(audit.TypeRegister, audit.Options{
		UserID:    user.UserID,
		IP:        clientIP,
		UserAgent: userAgentFromContext(ctx),
	})
	e.metricInc(MetricRegisterSuccess)

	signed, expiresAt, err := e.tokens.Issue(user.UserID, e.config.Token.SessionTTL)
	if err != nil {
		return LoginResult{}, err
	}
	e.metricInc(MetricTokenIssued)

	return LoginResult{
		UserID:    user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate verifies a session token and returns the user ID it was
// issued to. Expired tokens return [ErrTokenExpired]; every other
// failure returns [ErrUnauthorized] and is recorded as an
// unauthorized_access event.
func (e *Engine) Authenticate(ctx context.Context, tokenStr string) (string, error) {
	if err := e.ready(); err != nil {
		return "", err
	}

	claims, err := e.tokens.Parse(tokenStr)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			e.auditLog.Record(audit.TypeTokenExpired, audit.Options{
				IP:        clientIPFromContext(ctx),
				UserAgent: userAgentFromContext(ctx),
			})
			e.metricInc(MetricTokenExpired)
			return "", ErrTokenExpired
		}
		e.auditLog.Record(audit.TypeUnauthorized, audit.Options{
			IP:        clientIPFromContext(ctx),
			UserAgent: userAgentFromContext(ctx),
			Details:   map[string]string{"reason": "invalid token"},
		})
		e.metricInc(MetricTokenRejected)
		return "", ErrUnauthorized
	}
	return claims.UID, nil
}
