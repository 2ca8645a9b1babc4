package cookieauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kvasirlabs/cookieauth/cookie"
	"github.com/kvasirlabs/cookieauth/internal/rate"
)

// Login advances the session state machine by one pass and returns the
// resulting snapshot. Call it on every render pass for the session.
//
// The pass runs three stages in order and stops at the first that settles
// the session:
//
//  1. Already authenticated: returns immediately without touching the
//     cookie or the submission.
//  2. Passive reauthentication: exactly once per session, the cookie is
//     read and its token verified. Skipped entirely after a logout.
//  3. Explicit submission: when req.Submission is non-nil and the consent
//     gate passes, the credentials are verified and on success a fresh
//     cookie is written.
//
// Credential failures are not errors: they come back as a StatusFailed
// result with a uniform message. The error return is reserved for misuse
// and infrastructure faults.
func (a *Authenticator) Login(ctx context.Context, state *State, req LoginRequest) (Result, error) {
	if a == nil || !a.ready {
		return Result{}, ErrNotReady
	}
	return a.LoginWithStore(ctx, state, a.cookies, req)
}

// LoginWithStore is Login against an explicit cookie store. HTTP hosts pass a
// per-request [cookie.HTTPStore] here; Login itself uses the store configured
// at build time.
func (a *Authenticator) LoginWithStore(ctx context.Context, state *State, store cookie.Store, req LoginRequest) (Result, error) {
	if a == nil || !a.ready {
		return Result{}, ErrNotReady
	}
	if state == nil {
		return Result{}, ErrNilState
	}
	if store == nil {
		store = a.cookies
	}
	if err := req.Location.validate(); err != nil {
		return Result{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.status == StatusAuthenticated {
		return a.resultLocked(state), nil
	}

	a.resolveCookieLocked(ctx, state, store)
	if state.status == StatusAuthenticated {
		return a.resultLocked(state), nil
	}

	if sub := req.Submission; sub != nil && a.consentGiven(sub) {
		return a.submitLocked(ctx, state, store, sub, req.FormLabel)
	}

	return a.resultLocked(state), nil
}

// ResolveCookie runs the passive cookie check for state ahead of the first
// Login call. Hosts that render a loading view while the verdict is pending
// call this first, then branch on IsCookieAuthResolved.
func (a *Authenticator) ResolveCookie(ctx context.Context, state *State) error {
	if a == nil || !a.ready {
		return ErrNotReady
	}
	if state == nil {
		return ErrNilState
	}
	if ctx == nil {
		ctx = context.Background()
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	a.resolveCookieLocked(ctx, state, a.cookies)
	return nil
}

// consentGiven applies the consent gate: with checkboxes configured, a
// submission without consent is treated as if the button was never pressed.
func (a *Authenticator) consentGiven(sub *Submission) bool {
	if len(a.config.Login.CheckboxLabels) == 0 {
		return true
	}
	return sub.ConsentGiven
}

func (a *Authenticator) resolveCookieLocked(ctx context.Context, state *State, store cookie.Store) {
	if state.cookieResolved {
		return
	}
	state.cookieResolved = true

	if state.loggedOut {
		return
	}

	value, ok := store.Get(a.config.Cookie.Name)
	if !ok {
		return
	}

	payload, err := a.codec.Decode(value)
	if err != nil {
		// Malformed or forged: remove it so the next pass starts clean.
		store.Delete(a.config.Cookie.Name)
		a.metrics.Inc(MetricCookieAuthRejected)
		a.emitAudit(ctx, auditEventCookieRejected, false, "", state.sessionKey, err, func() map[string]string {
			return map[string]string{"reason": "decode_failed"}
		})
		return
	}

	if !a.now().Before(payload.ExpiresAt) {
		// Expired but authentic: left in place, the store evicts it.
		a.metrics.Inc(MetricCookieAuthRejected)
		a.emitAudit(ctx, auditEventCookieRejected, false, payload.Subject, state.sessionKey, nil, func() map[string]string {
			return map[string]string{"reason": "token_expired"}
		})
		return
	}

	if !a.verifier.Contains(payload.Subject) {
		store.Delete(a.config.Cookie.Name)
		a.metrics.Inc(MetricCookieAuthRejected)
		a.emitAudit(ctx, auditEventCookieRejected, false, payload.Subject, state.sessionKey, nil, func() map[string]string {
			return map[string]string{"reason": "unknown_user"}
		})
		return
	}

	state.status = StatusAuthenticated
	state.username = payload.Subject
	state.message = ""

	a.metrics.Inc(MetricCookieAuthSuccess)
	a.emitAudit(ctx, auditEventCookieAccepted, true, payload.Subject, state.sessionKey, nil, nil)
}

func (a *Authenticator) submitLocked(ctx context.Context, state *State, store cookie.Store, sub *Submission, formLabel string) (Result, error) {
	username := strings.ToLower(strings.TrimSpace(sub.Username))
	ip := clientIPFromContext(ctx)
	start := a.now()

	if a.limiter != nil {
		if err := a.limiter.CheckLogin(ctx, username, ip); err != nil {
			if errors.Is(err, rate.ErrRateLimited) {
				a.metrics.Inc(MetricLoginRateLimited)
				a.emitAudit(ctx, auditEventLoginRateLimited, false, username, state.sessionKey, ErrLoginRateLimited, nil)
				return Result{}, ErrLoginRateLimited
			}
			return Result{}, fmt.Errorf("login throttle check: %w", err)
		}
	}

	user, reason, err := a.verifier.Verify(username, sub.Password, a.now())
	if err != nil {
		if a.limiter != nil {
			// Best effort: a throttle bookkeeping failure must not change
			// the credential verdict.
			_ = a.limiter.IncrementLogin(ctx, username, ip)
		}

		state.status = StatusFailed
		state.username = username
		state.message = failureMessage

		a.metrics.Inc(MetricLoginFailure)
		a.metrics.Observe(MetricLoginLatency, a.now().Sub(start))
		a.emitAudit(ctx, auditEventLoginFailure, false, username, state.sessionKey, ErrInvalidCredentials, func() map[string]string {
			md := map[string]string{"reason": reason}
			if formLabel != "" {
				md["form"] = formLabel
			}
			return md
		})

		return a.resultLocked(state), nil
	}

	signed, expiresAt, err := a.codec.Encode(user.Username, user.ValidUntil)
	if err != nil {
		return Result{}, fmt.Errorf("issue session token: %w", err)
	}
	store.Set(a.config.Cookie.Name, signed, expiresAt)

	if a.limiter != nil {
		_ = a.limiter.ResetLogin(ctx, username, ip)
	}

	state.status = StatusAuthenticated
	state.username = user.Username
	state.message = ""
	state.loggedOut = false

	a.metrics.Inc(MetricLoginSuccess)
	a.metrics.Observe(MetricLoginLatency, a.now().Sub(start))
	a.emitAudit(ctx, auditEventLoginSuccess, true, user.Username, state.sessionKey, nil, func() map[string]string {
		if formLabel == "" {
			return nil
		}
		return map[string]string{"form": formLabel}
	})

	return a.resultLocked(state), nil
}

func (a *Authenticator) resultLocked(state *State) Result {
	r := Result{
		Status:   state.status,
		Username: state.username,
		Message:  state.message,
	}
	if state.status == StatusAuthenticated {
		if user, ok := a.verifier.Account(state.username); ok && !user.ValidUntil.IsZero() {
			expiry := user.ValidUntil
			r.Expiration = &expiry
		}
	}
	return r
}
