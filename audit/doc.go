// Package audit records security events in a bounded in-memory log and
// optionally mirrors them to external sinks. The log is the source of
// truth for lockout decisions; sinks are best effort and must never
// stall the request path.
package audit
