package cookieauth

import (
	"context"

	"github.com/kvasirlabs/cookieauth/cookie"
)

// Logout ends the session: the reauthentication cookie is deleted and the
// state is pinned logged out, so the passive cookie path cannot silently
// re-authenticate it even while the token remains valid. Logout is
// idempotent; logging out an unauthenticated session is a no-op that still
// succeeds.
func (a *Authenticator) Logout(ctx context.Context, state *State, req LogoutRequest) error {
	if a == nil || !a.ready {
		return ErrNotReady
	}
	return a.LogoutWithStore(ctx, state, a.cookies, req)
}

// LogoutWithStore is Logout against an explicit cookie store, the counterpart
// of [Authenticator.LoginWithStore] for HTTP hosts.
func (a *Authenticator) LogoutWithStore(ctx context.Context, state *State, store cookie.Store, req LogoutRequest) error {
	if a == nil || !a.ready {
		return ErrNotReady
	}
	if state == nil {
		return ErrNilState
	}
	if store == nil {
		store = a.cookies
	}
	if err := req.Location.validate(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	wasAuthenticated := state.status == StatusAuthenticated
	username := state.username

	store.Delete(a.config.Cookie.Name)

	state.status = StatusUnauthenticated
	state.username = ""
	state.message = ""
	state.loggedOut = true

	if wasAuthenticated {
		a.metrics.Inc(MetricLogout)
		a.emitAudit(ctx, auditEventLogout, true, username, state.sessionKey, nil, func() map[string]string {
			if req.ButtonLabel == "" {
				return nil
			}
			return map[string]string{"button": req.ButtonLabel}
		})
	}

	return nil
}
