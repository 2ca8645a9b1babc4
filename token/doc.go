// Package token encodes and decodes the signed reauthentication token stored
// in the host cookie.
//
// # Token format
//
// Tokens are compact JWTs signed with an HMAC method (HS256 by default) under
// a shared secret. The payload carries exactly two claims whose names are
// configurable: the subject claim (the username) and the expiry claim (unix
// seconds). The effective expiry is the earlier of "now + ExpiryDays" and the
// account's own expiration, so a long-lived cookie can never outlive a
// deliberately short account validity window.
//
// # Architecture boundaries
//
// Decode verifies signature and structure ONLY. Comparing the decoded expiry
// against the wall clock is the caller's responsibility; expiry policy lives
// in one place, the authenticator state machine.
//
// # What this package must NOT do
//
//   - Consult the credential directory or any session state.
//   - Perform I/O.
//   - Import any other cookieauth package.
package token
