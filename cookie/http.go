package cookie

import (
	"net/http"
	"time"
)

// Options defines a public type controlling the attributes HTTPStore writes
// on outgoing cookies.
type Options struct {
	// Path defaults to "/".
	Path string

	// Domain is left empty unless set.
	Domain string

	// Secure marks the cookie HTTPS-only.
	Secure bool

	// SameSite defaults to http.SameSiteLaxMode when unset.
	SameSite http.SameSite
}

// HTTPStore adapts one request/response pair to the Store interface. It reads
// from the request's Cookie header and writes Set-Cookie headers on the
// response. An HTTPStore is scoped to a single request and must not be shared
// across requests.
type HTTPStore struct {
	w    http.ResponseWriter
	r    *http.Request
	opts Options

	// pending overrides request cookies so a Set followed by a Get within
	// the same request observes the new value.
	pending map[string]*string
}

// NewHTTPStore returns an HTTPStore over w and r. Path defaults to "/" and
// SameSite to Lax. Cookies are always written HttpOnly; a session token
// readable from client-side scripts defeats the point.
func NewHTTPStore(w http.ResponseWriter, r *http.Request, opts Options) *HTTPStore {
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.SameSite == 0 {
		opts.SameSite = http.SameSiteLaxMode
	}
	return &HTTPStore{w: w, r: r, opts: opts, pending: make(map[string]*string)}
}

// Get returns the cookie value, preferring values written earlier in the same
// request over the inbound Cookie header.
func (s *HTTPStore) Get(name string) (string, bool) {
	if v, ok := s.pending[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := s.r.Cookie(name)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

// Set writes a Set-Cookie header for name with the configured attributes.
func (s *HTTPStore) Set(name, value string, expiresAt time.Time) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     s.opts.Path,
		Domain:   s.opts.Domain,
		Expires:  expiresAt,
		Secure:   s.opts.Secure,
		HttpOnly: true,
		SameSite: s.opts.SameSite,
	})
	v := value
	s.pending[name] = &v
}

// Delete writes an expired Set-Cookie header for name.
func (s *HTTPStore) Delete(name string) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     s.opts.Path,
		Domain:   s.opts.Domain,
		MaxAge:   -1,
		Secure:   s.opts.Secure,
		HttpOnly: true,
		SameSite: s.opts.SameSite,
	})
	s.pending[name] = nil
}
