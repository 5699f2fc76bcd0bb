// Package password derives and verifies PBKDF2-HMAC-SHA512 credential
// hashes using the hex encoded "salt:iterations:hash" format, with
// transparent verification of the legacy two-field "salt:hash" format so
// existing credentials keep working while they are upgraded.
package password
