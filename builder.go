package cookieauth

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kvasirlabs/cookieauth/cookie"
	"github.com/kvasirlabs/cookieauth/directory"
	"github.com/kvasirlabs/cookieauth/internal/rate"
	"github.com/kvasirlabs/cookieauth/password"
	"github.com/kvasirlabs/cookieauth/token"
)

// Builder defines a public type used by cookieauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	users     []directory.User
	cookies   cookie.Store
	auditSink AuditSink
	now       func() time.Time

	built bool
}

// New returns a Builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration with a clone of cfg.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithUsers sets the credential directory records. Required.
func (b *Builder) WithUsers(users []directory.User) *Builder {
	b.users = users
	return b
}

// WithCookieStore sets the cookie backend. Defaults to an in-process
// MemoryStore when unset.
func (b *Builder) WithCookieStore(store cookie.Store) *Builder {
	b.cookies = store
	return b
}

// WithClock overrides the time source. Tests inject a fixed clock here.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// WithRedis sets the Redis client backing the login rate limiter. Without a
// client, rate limiting is disabled.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAuditSink sets the audit destination. Only consulted when audit is
// enabled in the configuration.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the metrics registry.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles login latency histograms.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, assembles every component and returns a
// ready Authenticator. A Builder is one-shot; a second Build fails.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Authenticator, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(b.users) == 0 {
		return nil, errors.New("users must be provided")
	}

	now := b.now
	if now == nil {
		now = time.Now
	}

	hasher, err := password.New(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	dir, err := directory.New(b.users)
	if err != nil {
		return nil, err
	}

	verifier, err := directory.NewVerifier(dir, hasher)
	if err != nil {
		return nil, err
	}

	codec, err := token.New(token.Config{
		Secret:        cfg.Token.Secret,
		SigningMethod: cfg.Token.SigningMethod,
		ExpiryDays:    cfg.Cookie.ExpiryDays,
		SubjectClaim:  cfg.Token.SubjectClaim,
		ExpiryClaim:   cfg.Token.ExpiryClaim,
		Now:           now,
	})
	if err != nil {
		return nil, err
	}

	cookies := b.cookies
	if cookies == nil {
		cookies = cookie.NewMemoryStore(now)
	}

	var limiter *rate.Limiter
	if b.redis != nil {
		limiter = rate.New(b.redis, rate.Config{
			EnableIPThrottle:      cfg.Security.EnableIPThrottle,
			MaxLoginAttempts:      cfg.Security.MaxLoginAttempts,
			LoginCooldownDuration: cfg.Security.LoginCooldownDuration,
		})
	}

	b.built = true

	return &Authenticator{
		config:   cfg,
		verifier: verifier,
		codec:    codec,
		cookies:  cookies,
		limiter:  limiter,
		metrics:  NewMetrics(cfg.Metrics),
		audit:    newAuditDispatcher(cfg.Audit, b.auditSink),
		now:      now,
		ready:    true,
	}, nil
}
