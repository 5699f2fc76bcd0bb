// Package token issues and verifies HS256 session tokens. Tokens carry
// the user ID, issue time and expiry; everything else about the session
// is looked up server side, so a token is only a proof of identity.
package token
