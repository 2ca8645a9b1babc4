package internaldefs

import (
	cookieauth "github.com/kvasirlabs/cookieauth"
)

// CounterDef defines a public type used by cookieauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   cookieauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by cookieauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   cookieauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authenticator.
var CounterDefs = []CounterDef{
	{ID: cookieauth.MetricLoginSuccess, Name: "cookieauth_login_success_total", Help: "Successful login attempts."},
	{ID: cookieauth.MetricLoginFailure, Name: "cookieauth_login_failure_total", Help: "Failed login attempts."},
	{ID: cookieauth.MetricLoginRateLimited, Name: "cookieauth_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: cookieauth.MetricCookieAuthSuccess, Name: "cookieauth_cookie_auth_success_total", Help: "Sessions reauthenticated from a cookie."},
	{ID: cookieauth.MetricCookieAuthRejected, Name: "cookieauth_cookie_auth_rejected_total", Help: "Cookie tokens rejected during passive reauthentication."},
	{ID: cookieauth.MetricLogout, Name: "cookieauth_logout_total", Help: "Logout operations."},
}

// HistogramDefs is an exported constant or variable used by the authenticator.
var HistogramDefs = []HistogramDef{
	{ID: cookieauth.MetricLoginLatency, Name: "cookieauth_login_latency_seconds", Help: "Login latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authenticator.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authenticator.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets copies a raw bucket slice into the fixed 8-bucket layout.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into cumulative counts.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
