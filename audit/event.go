package audit

import "time"

// Type classifies an audit event.
type Type string

const (
	TypeLoginSuccess      Type = "login_success"
	TypeLoginFailure      Type = "login_failure"
	TypeLogout            Type = "logout"
	TypeRegister          Type = "register"
	TypeDataAccess        Type = "data_access"
	TypeDataModify        Type = "data_modify"
	TypeAccountLocked     Type = "account_locked"
	TypeRateLimitExceeded Type = "rate_limit_exceeded"
	TypeUnauthorized      Type = "unauthorized_access"
	TypePasswordChange    Type = "password_change"
	TypeTokenExpired      Type = "token_expired"
	TypeAdminAction       Type = "admin_action"
)

// Severity ranks an event for alerting.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Event is one recorded security event. Details hold event-specific
// context; in production mode sensitive keys are redacted before the
// event is stored or forwarded.
type Event struct {
	ID        string            `json:"id"`
	Type      Type              `json:"type"`
	UserID    string            `json:"userId,omitempty"`
	IP        string            `json:"ip,omitempty"`
	UserAgent string            `json:"userAgent,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Severity  Severity          `json:"severity"`
}

// defaultSeverity maps each type to the severity used when the caller
// does not set one. Unlisted types default to INFO.
var defaultSeverity = map[Type]Severity{
	TypeLoginFailure:      SeverityWarning,
	TypeAccountLocked:     SeverityError,
	TypeUnauthorized:      SeverityError,
	TypeRateLimitExceeded: SeverityWarning,
}

// sensitiveKeys are detail keys whose values never appear in production
// audit output.
var sensitiveKeys = []string{"password", "token", "secret", "key", "ssn", "credit_card", "email"}
