// Package authcore is the authentication and access-security core of the
// nutrifit platform: password hashing with legacy-format migration, signed
// session tokens, sliding-window rate limiting, audit-driven account
// lockout, and security audit logging.
//
// The package is the composition root for these concerns. It exposes
// [Engine], [Builder], [Config], and value types; the individual mechanisms
// live in sub-packages (password, token, ratelimit, lockout, audit,
// cryptobox) and can be used standalone, but the Engine wires them together
// with the sequence the platform's HTTP layer relies on: sanitize, check
// lockout, check rate limit, verify credentials, log, issue token.
//
// # Architecture boundaries
//
// authcore owns no user records. Callers implement [UserProvider] against
// their own persistence layer; the Engine only consumes hash strings and
// emits verdicts, tokens, and audit events. All stateful stores (rate-limit
// windows, lockout records, the audit buffer) are process-local by default
// and swappable for Redis-backed implementations via [Builder.WithRedis].
//
// # Failure semantics
//
// Malformed hashes and tokens are adversarial inputs, not bugs: they
// resolve to negative verdicts, never panics. Missing or weak secrets fail
// fast in [Config.Validate]. Policy violations (rate limited, locked,
// expired) surface as sentinel errors so the HTTP layer can map them to
// status codes without inspecting internals.
package authcore
