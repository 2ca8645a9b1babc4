// Package rate provides internal primitives for Redis-backed login attempt
// throttling.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Key prefixes:
//   - ca:rl:login:user:  login per-user
//   - ca:rl:login:ip:    login per-IP
//
// # What this package must NOT do
//
//   - Decide when to throttle (the authenticator owns that policy).
//   - Be imported outside the cookieauth module.
package rate
