// Package internaldefs holds the shared metric definitions consumed by
// the exporter packages. It exists so the otel and prometheus exporters
// agree on names without depending on each other.
package internaldefs

import (
	authcore "github.com/nutrifit/authcore"
)

// CounterDef names one engine counter for export.
type CounterDef struct {
	ID   authcore.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: authcore.MetricLoginSuccess, Name: "authcore_login_success_total", Help: "Successful login attempts."},
	{ID: authcore.MetricLoginFailure, Name: "authcore_login_failure_total", Help: "Failed login attempts."},
	{ID: authcore.MetricLoginRateLimited, Name: "authcore_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: authcore.MetricLoginLocked, Name: "authcore_login_locked_total", Help: "Logins refused due to an active lockout."},
	{ID: authcore.MetricRegisterSuccess, Name: "authcore_register_success_total", Help: "Successful registrations."},
	{ID: authcore.MetricRegisterFailure, Name: "authcore_register_failure_total", Help: "Rejected registrations."},
	{ID: authcore.MetricTokenIssued, Name: "authcore_token_issued_total", Help: "Issued session tokens."},
	{ID: authcore.MetricTokenRejected, Name: "authcore_token_rejected_total", Help: "Tokens that failed verification."},
	{ID: authcore.MetricTokenExpired, Name: "authcore_token_expired_total", Help: "Tokens rejected as expired."},
	{ID: authcore.MetricPasswordChange, Name: "authcore_password_change_total", Help: "Successful password changes."},
	{ID: authcore.MetricPasswordUpgrade, Name: "authcore_password_upgrade_total", Help: "Legacy hashes upgraded on login."},
	{ID: authcore.MetricAccountLocked, Name: "authcore_account_locked_total", Help: "Account lock operations."},
	{ID: authcore.MetricAccountUnlocked, Name: "authcore_account_unlocked_total", Help: "Administrative account unlocks."},
	{ID: authcore.MetricRateLimitHit, Name: "authcore_rate_limit_hit_total", Help: "Rate-limit checks that denied requests."},
	{ID: authcore.MetricUnauthorizedAccess, Name: "authcore_unauthorized_access_total", Help: "Resource ownership violations."},
}

// AuditDroppedName is the exported counter for audit events lost to
// dispatcher backpressure.
const AuditDroppedName = "authcore_audit_dropped_total"

// AuditDroppedHelp documents AuditDroppedName.
const AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
