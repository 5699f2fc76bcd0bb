// Package ratelimit provides sliding-window request limiting keyed by an
// arbitrary identifier. Denied attempts never consume quota, so a client
// that keeps retrying while blocked becomes eligible again as soon as the
// window slides, rather than extending its own penalty.
package ratelimit
