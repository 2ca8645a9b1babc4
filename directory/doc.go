// Package directory holds the in-memory credential directory and the
// credential verifier built on top of it.
//
// # Verification order
//
// Verify applies its checks in a fixed order: the user must exist, the
// current time must fall inside the account's validity window, and only then
// is the password compared against the stored hash. Every failure collapses
// to the single sentinel ErrCredentialsIncorrect so a caller cannot
// distinguish an unknown username from a wrong password.
//
// # Architecture boundaries
//
// The directory is immutable after construction. Mutating user records at
// runtime means building a new directory and a new authenticator.
package directory
