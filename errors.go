package cookieauth

import (
	"errors"

	"github.com/kvasirlabs/cookieauth/directory"
	"github.com/kvasirlabs/cookieauth/token"
)

var (
	// ErrNotReady is an exported constant or variable used by the authenticator.
	ErrNotReady = errors.New("authenticator not initialized")
	// ErrNilState is an exported constant or variable used by the authenticator.
	ErrNilState = errors.New("session state must not be nil")
	// ErrInvalidLocation is an exported constant or variable used by the authenticator.
	ErrInvalidLocation = errors.New("location must be 'main' or 'sidebar'")
	// ErrLoginRateLimited is an exported constant or variable used by the authenticator.
	ErrLoginRateLimited = errors.New("login rate limited")

	// ErrInvalidCredentials is the sentinel behind every credential
	// verification failure, re-exported from the directory package.
	ErrInvalidCredentials = directory.ErrCredentialsIncorrect
	// ErrInvalidToken is the sentinel behind every token decode failure,
	// re-exported from the token package.
	ErrInvalidToken = token.ErrInvalidToken
)
