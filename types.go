package cookieauth

import "time"

// Status defines a public type used by cookieauth APIs.
//
// Status instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Status uint8

const (
	// StatusUnauthenticated is an exported constant or variable used by the authenticator.
	StatusUnauthenticated Status = iota
	// StatusFailed is an exported constant or variable used by the authenticator.
	StatusFailed
	// StatusAuthenticated is an exported constant or variable used by the authenticator.
	StatusAuthenticated
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusFailed:
		return "failed"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Location defines a public type used by cookieauth APIs. It names the host
// surface a login or logout control is rendered on.
type Location string

const (
	// LocationMain is an exported constant or variable used by the authenticator.
	LocationMain Location = "main"
	// LocationSidebar is an exported constant or variable used by the authenticator.
	LocationSidebar Location = "sidebar"
)

func (l Location) validate() error {
	switch l {
	case LocationMain, LocationSidebar:
		return nil
	default:
		return ErrInvalidLocation
	}
}

// Submission defines a public type carrying one explicit credential
// submission attached to a Login call.
type Submission struct {
	// Username as entered. Trimmed and lowercased before verification.
	Username string

	// Password in plaintext. Never stored or logged.
	Password string

	// ConsentGiven reports whether every configured consent checkbox was
	// ticked. Ignored when no checkboxes are configured.
	ConsentGiven bool
}

// LoginRequest defines a public type used by cookieauth APIs.
//
// LoginRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginRequest struct {
	// FormLabel is the label of the rendered login form, recorded in audit
	// metadata on submission outcomes.
	FormLabel string

	// Location is the surface the login form renders on.
	Location Location

	// MarkdownTexts is render data the host echoes around the form. Carried
	// through untouched; the authenticator never interprets it.
	MarkdownTexts []string

	// Submission is nil on passive render passes and non-nil exactly when
	// the user pressed the login button this pass.
	Submission *Submission
}

// LogoutRequest defines a public type used by cookieauth APIs.
//
// LogoutRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LogoutRequest struct {
	// ButtonLabel is the label of the pressed logout control, recorded in
	// audit metadata.
	ButtonLabel string

	// Location is the surface the logout control renders on.
	Location Location
}

// Result defines a public type returned by Login. It is a snapshot of the
// session outcome for the current pass.
type Result struct {
	// Status is the session status after this pass.
	Status Status

	// Username is the canonical lowercase username. On StatusFailed it is
	// the attempted username, so the host can re-render the form with it.
	Username string

	// Expiration is the account's validity end, nil when the session is not
	// authenticated or the account never expires.
	Expiration *time.Time

	// Message is a user-facing failure message, empty unless Status is
	// StatusFailed.
	Message string
}

// failureMessage is deliberately identical for every credential failure so
// responses cannot be used to enumerate accounts.
const failureMessage = "Credentials are incorrect"

const (
	auditEventLoginSuccess      = "login_success"
	auditEventLoginFailure      = "login_failure"
	auditEventLoginRateLimited  = "login_rate_limited"
	auditEventCookieAccepted    = "cookie_auth_accepted"
	auditEventCookieRejected    = "cookie_auth_rejected"
	auditEventLogout            = "logout"
)
