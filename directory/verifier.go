package directory

import (
	"errors"
	"fmt"
	"time"

	"github.com/kvasirlabs/cookieauth/password"
)

// ErrCredentialsIncorrect is the single sentinel returned for every
// verification failure. Callers matching with errors.Is cannot distinguish an
// unknown username from an out-of-window account or a wrong password.
var ErrCredentialsIncorrect = errors.New("directory: credentials are incorrect")

// Failure reasons recorded alongside ErrCredentialsIncorrect for audit
// metadata. Never surfaced to end users.
const (
	ReasonUserNotFound     = "user_not_found"
	ReasonAccountNotActive = "account_not_yet_valid"
	ReasonAccountExpired   = "account_expired"
	ReasonPasswordMismatch = "password_mismatch"
	ReasonHashError        = "hash_error"
)

// Verifier checks submitted credentials against a Directory. A Verifier is
// safe for concurrent use by multiple goroutines.
type Verifier struct {
	dir    *Directory
	hasher *password.Hasher
}

// NewVerifier returns a Verifier over dir using hasher for password checks.
func NewVerifier(dir *Directory, hasher *password.Hasher) (*Verifier, error) {
	if dir == nil {
		return nil, fmt.Errorf("directory: directory must not be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("directory: hasher must not be nil")
	}
	return &Verifier{dir: dir, hasher: hasher}, nil
}

// Verify checks username and plaintext password at the given instant. On
// success it returns the matched record. On any failure it returns an error
// wrapping ErrCredentialsIncorrect together with an internal reason string
// for audit metadata. Hash comparison errors fail closed.
func (v *Verifier) Verify(username, plaintext string, now time.Time) (User, string, error) {
	user, ok := v.dir.Lookup(username)
	if !ok {
		return User{}, ReasonUserNotFound, ErrCredentialsIncorrect
	}
	if now.Before(user.ValidFrom) {
		return User{}, ReasonAccountNotActive, ErrCredentialsIncorrect
	}
	if !user.ValidUntil.IsZero() && !now.Before(user.ValidUntil) {
		return User{}, ReasonAccountExpired, ErrCredentialsIncorrect
	}

	match, err := v.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		return User{}, ReasonHashError, ErrCredentialsIncorrect
	}
	if !match {
		return User{}, ReasonPasswordMismatch, ErrCredentialsIncorrect
	}
	return user, "", nil
}

// Contains reports whether username exists in the directory. Used by the
// passive cookie path to reject tokens for users removed since issuance.
func (v *Verifier) Contains(username string) bool {
	_, ok := v.dir.Lookup(username)
	return ok
}

// Account returns the record for username without any credential check.
func (v *Verifier) Account(username string) (User, bool) {
	return v.dir.Lookup(username)
}
