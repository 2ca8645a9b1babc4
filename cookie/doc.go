// Package cookie abstracts where the signed reauthentication token lives.
//
// The authenticator talks to a Store and never to a browser directly. Two
// implementations ship in the box: MemoryStore for tests and non-HTTP hosts,
// and HTTPStore which maps the interface onto Set-Cookie headers with
// configurable Secure, HttpOnly and SameSite attributes.
package cookie
