// Package lockout tracks failed-login streaks and locks identifiers
// that exceed the configured threshold. Locks expire lazily: an expired
// record is treated as absent and removed on the next check, so no
// background sweeper is needed.
package lockout
