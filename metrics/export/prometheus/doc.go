// Package prometheus provides Prometheus collectors for cookieauth metrics.
//
// [NewPrometheusExporter] accepts a [cookieauth.Authenticator] and exposes an
// [http.Handler] that renders all cookieauth counters and histograms in
// Prometheus text exposition format. Counter names are prefixed
// cookieauth_*_total; the single histogram is cookieauth_login_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the Handler.
//   - Mutate authenticator state.
package prometheus
