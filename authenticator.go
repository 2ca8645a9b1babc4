package cookieauth

import (
	"context"
	"time"

	"github.com/kvasirlabs/cookieauth/cookie"
	"github.com/kvasirlabs/cookieauth/directory"
	"github.com/kvasirlabs/cookieauth/internal/rate"
	"github.com/kvasirlabs/cookieauth/token"
)

// Authenticator defines a public type used by cookieauth APIs. It is the
// session authentication engine: construct one through the [Builder] and
// share it across every session.
//
// Authenticator instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Authenticator struct {
	config   Config
	verifier *directory.Verifier
	codec    *token.Codec
	cookies  cookie.Store
	limiter  *rate.Limiter
	metrics  *Metrics
	audit    *auditDispatcher
	now      func() time.Time
	ready    bool
}

// Close flushes and stops the audit dispatcher. Safe to call more than once.
func (a *Authenticator) Close() {
	if a == nil {
		return
	}
	if a.audit != nil {
		a.audit.Close()
	}
}

// AuditDropped returns the number of audit events discarded because the
// buffer was full.
func (a *Authenticator) AuditDropped() uint64 {
	if a == nil || a.audit == nil {
		return 0
	}
	return a.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the metrics registry.
func (a *Authenticator) MetricsSnapshot() MetricsSnapshot {
	if a == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return a.metrics.Snapshot()
}

// CookieOptions returns the HTTP cookie attributes implied by the configured
// security policy. Hosts building a per-request [cookie.HTTPStore] pass this
// so Secure and SameSite follow SecurityConfig instead of being wired by hand.
func (a *Authenticator) CookieOptions() cookie.Options {
	return cookie.Options{
		Secure:   a.config.Security.RequireSecureCookies,
		SameSite: a.config.Security.SameSitePolicy,
	}
}

// IsCookieAuthResolved reports whether the one-time passive cookie check has
// run for state. Hosts use it to hold back the login form until the cookie
// verdict is in, avoiding a flash of the form for returning users.
func (a *Authenticator) IsCookieAuthResolved(state *State) bool {
	if a == nil || state == nil {
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.cookieResolved
}

func (a *Authenticator) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	username string,
	sessionKey string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if a == nil || a.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp:  time.Now().UTC(),
		EventType:  eventType,
		Username:   username,
		SessionKey: sessionKey,
		IP:         clientIPFromContext(ctx),
		Success:    success,
		Metadata:   metadata,
	}
	if err != nil {
		event.Error = err.Error()
	}

	a.audit.Emit(ctx, event)
}
