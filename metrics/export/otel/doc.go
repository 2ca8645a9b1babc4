// Package otel provides OpenTelemetry metric exporter bindings for cookieauth
// counters and histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each
// cookieauth metric and Int64ObservableGauge per histogram bucket. A single
// callback reads [cookieauth.Authenticator.MetricsSnapshot] on each collection
// cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider; callers supply the Meter.
//   - Mutate authenticator state.
package otel
