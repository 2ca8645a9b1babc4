package cookieauth

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Config defines a public type used by cookieauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Cookie   CookieConfig
	Token    TokenConfig
	Password PasswordConfig
	Login    LoginConfig
	Security SecurityConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
COOKIE CONFIG
====================================
*/

// CookieConfig defines a public type used by cookieauth APIs.
//
// CookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CookieConfig struct {
	// Name is the reauthentication cookie name.
	Name string

	// ExpiryDays caps the token lifetime in days. The effective expiry is
	// the earlier of this window and the account's own expiration.
	ExpiryDays int
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by cookieauth APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	Secret        []byte
	SigningMethod string // "hs256" (default), "hs384", "hs512"
	SubjectClaim  string
	ExpiryClaim   string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by cookieauth APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// LoginConfig defines a public type used by cookieauth APIs.
//
// LoginConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginConfig struct {
	// CheckboxLabels lists consent checkboxes rendered with the login form.
	// When non-empty, a submission without ConsentGiven is ignored entirely.
	CheckboxLabels []string
}

// AuditConfig defines a public type used by cookieauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by cookieauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
SECURITY CONFIG
====================================
*/

// SecurityConfig defines a public type used by cookieauth APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	EnableIPThrottle      bool
	MaxLoginAttempts      int
	LoginCooldownDuration time.Duration
	RequireSecureCookies  bool
	SameSitePolicy        http.SameSite
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration. Callers set the token
// secret and adjust what they need before passing it to WithConfig.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Cookie: CookieConfig{
			Name:       "auth_session",
			ExpiryDays: 30,
		},
		Token: TokenConfig{
			SigningMethod: "hs256",
			SubjectClaim:  "role",
			ExpiryClaim:   "exp",
		},
		Password: PasswordConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		Security: SecurityConfig{
			EnableIPThrottle:      false,
			MaxLoginAttempts:      5,
			LoginCooldownDuration: 15 * time.Minute,
			RequireSecureCookies:  true,
			SameSitePolicy:        http.SameSiteStrictMode,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.Secret = cloneBytes(cfg.Token.Secret)
	if len(cfg.Login.CheckboxLabels) > 0 {
		out.Login.CheckboxLabels = append([]string(nil), cfg.Login.CheckboxLabels...)
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Cookie
	if strings.TrimSpace(c.Cookie.Name) == "" {
		return errors.New("cookie name must not be empty")
	}
	if strings.ContainsAny(c.Cookie.Name, " ;,=") {
		return errors.New("cookie name contains invalid characters")
	}
	if c.Cookie.ExpiryDays <= 0 {
		return errors.New("cookie expiry days must be positive")
	}

	// Token
	if len(c.Token.Secret) < 32 {
		return errors.New("token secret must be at least 32 bytes")
	}
	switch strings.ToLower(c.Token.SigningMethod) {
	case "", "hs256", "hs384", "hs512":
	default:
		return errors.New("token signing method must be hs256, hs384 or hs512")
	}
	if c.Token.SubjectClaim != "" && c.Token.SubjectClaim == c.Token.ExpiryClaim {
		return errors.New("subject and expiry claims must differ")
	}

	// Password
	if c.Password.Memory < 8*1024 {
		return errors.New("password memory must be at least 8192 KB")
	}
	if c.Password.Time < 1 {
		return errors.New("password time cost must be at least 1")
	}
	if c.Password.Parallelism < 1 {
		return errors.New("password parallelism must be at least 1")
	}
	if c.Password.SaltLength < 16 {
		return errors.New("password salt length must be at least 16")
	}
	if c.Password.KeyLength < 16 {
		return errors.New("password key length must be at least 16")
	}

	// Login
	for _, label := range c.Login.CheckboxLabels {
		if strings.TrimSpace(label) == "" {
			return errors.New("consent checkbox labels must not be empty")
		}
	}

	// Security
	if c.Security.MaxLoginAttempts < 1 {
		return errors.New("max login attempts must be at least 1")
	}
	if c.Security.LoginCooldownDuration <= 0 {
		return errors.New("login cooldown duration must be positive")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize < 1 {
		return errors.New("audit buffer size must be at least 1")
	}

	return nil
}
