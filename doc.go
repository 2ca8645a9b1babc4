// Package cookieauth implements cookie-backed session authentication for
// interactive hosts: a username/password login gate whose successful logins
// persist across restarts through a signed reauthentication cookie.
//
// # Flow
//
// The host owns one [State] per user session and calls [Authenticator.Login]
// on every render pass. Login is a state machine, not a one-shot check: while
// the session is already authenticated it returns immediately, otherwise it
// first attempts passive reauthentication from the cookie, and only then
// processes an explicit credential submission if one is attached to the call.
// [Authenticator.Logout] deletes the cookie and pins the session logged out
// so the still-valid token cannot silently re-authenticate it.
//
// # Construction
//
// Build an [Authenticator] through the [Builder]:
//
//	auth, err := cookieauth.New().
//		WithConfig(cfg).
//		WithUsers(users).
//		Build()
//
// All configuration is validated at Build time; a misconfigured authenticator
// is never handed out.
//
// # Concurrency
//
// The Authenticator is safe for concurrent use. Each State serializes its own
// transitions, so two simultaneous submissions for the same session resolve
// to one winner and one no-op.
package cookieauth
