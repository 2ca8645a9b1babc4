package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Decode when the token cannot be parsed, the
// signature does not verify, or required claims are missing or malformed.
var ErrInvalidToken = errors.New("token: invalid token")

const (
	// DefaultSubjectClaim is the claim name carrying the username when the
	// configuration does not override it.
	DefaultSubjectClaim = "role"

	// DefaultExpiryClaim is the claim name carrying the expiration timestamp
	// when the configuration does not override it.
	DefaultExpiryClaim = "exp"

	// DefaultExpiryDays is the token lifetime applied when the configuration
	// leaves ExpiryDays unset.
	DefaultExpiryDays = 30
)

// Config defines a public type used by cookieauth APIs to construct a Codec.
// Instances are treated as immutable after being passed to New.
type Config struct {
	// Secret is the HMAC signing key. Required, minimum 32 bytes.
	Secret []byte

	// SigningMethod selects the HMAC algorithm: "hs256", "hs384" or "hs512".
	// Empty defaults to "hs256".
	SigningMethod string

	// ExpiryDays is the maximum token lifetime in days. Zero defaults to
	// DefaultExpiryDays. Negative values are rejected.
	ExpiryDays int

	// SubjectClaim overrides the claim name holding the username.
	SubjectClaim string

	// ExpiryClaim overrides the claim name holding the expiry timestamp.
	ExpiryClaim string

	// Now supplies the current time. Nil defaults to time.Now. Tests inject a
	// fixed clock here.
	Now func() time.Time
}

// Payload defines a public type returned by Decode. ExpiresAt is reported as
// decoded; callers decide whether it has passed.
type Payload struct {
	Subject   string
	ExpiresAt time.Time
}

// Codec signs and verifies reauthentication tokens. A Codec is safe for
// concurrent use by multiple goroutines.
type Codec struct {
	secret       []byte
	method       jwt.SigningMethod
	expiryDays   int
	subjectClaim string
	expiryClaim  string
	now          func() time.Time
	parser       *jwt.Parser
}

// New validates cfg and returns a ready Codec. New may return an error when
// input validation fails.
func New(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < 32 {
		return nil, fmt.Errorf("token: secret must be at least 32 bytes, got %d", len(cfg.Secret))
	}
	if cfg.ExpiryDays < 0 {
		return nil, fmt.Errorf("token: expiry days must not be negative, got %d", cfg.ExpiryDays)
	}

	var method jwt.SigningMethod
	switch strings.ToLower(cfg.SigningMethod) {
	case "", "hs256":
		method = jwt.SigningMethodHS256
	case "hs384":
		method = jwt.SigningMethodHS384
	case "hs512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("token: unsupported signing method %q", cfg.SigningMethod)
	}

	c := &Codec{
		secret:       append([]byte(nil), cfg.Secret...),
		method:       method,
		expiryDays:   cfg.ExpiryDays,
		subjectClaim: cfg.SubjectClaim,
		expiryClaim:  cfg.ExpiryClaim,
		now:          cfg.Now,
	}
	if c.expiryDays == 0 {
		c.expiryDays = DefaultExpiryDays
	}
	if c.subjectClaim == "" {
		c.subjectClaim = DefaultSubjectClaim
	}
	if c.expiryClaim == "" {
		c.expiryClaim = DefaultExpiryClaim
	}
	if c.now == nil {
		c.now = time.Now
	}

	// Expiry comparison is policy owned by the caller, so claim validation
	// stays off and verification covers signature and structure only.
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	return c, nil
}

// Encode signs a token for username. The token expiry is the earlier of
// now + ExpiryDays and accountExpiry; a zero accountExpiry means the account
// never expires. Encode returns the signed token and its effective expiry.
func (c *Codec) Encode(username string, accountExpiry time.Time) (string, time.Time, error) {
	if username == "" {
		return "", time.Time{}, fmt.Errorf("token: username must not be empty")
	}

	expiresAt := c.now().Add(time.Duration(c.expiryDays) * 24 * time.Hour)
	if !accountExpiry.IsZero() && accountExpiry.Before(expiresAt) {
		expiresAt = accountExpiry
	}

	claims := jwt.MapClaims{
		c.subjectClaim: username,
		c.expiryClaim:  expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: signing failed: %w", err)
	}
	return signed, time.Unix(expiresAt.Unix(), 0), nil
}

// Decode verifies the token signature and extracts the payload. Decode does
// NOT reject expired tokens; it only reports the decoded expiry. Decode may
// return an error wrapping ErrInvalidToken when security checks fail.
func (c *Codec) Decode(tokenString string) (*Payload, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	parsed, err := c.parser.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}

	subject, ok := claims[c.subjectClaim].(string)
	if !ok || subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim %q", ErrInvalidToken, c.subjectClaim)
	}

	rawExpiry, ok := claims[c.expiryClaim]
	if !ok {
		return nil, fmt.Errorf("%w: missing expiry claim %q", ErrInvalidToken, c.expiryClaim)
	}
	expiryUnix, ok := rawExpiry.(float64)
	if !ok {
		return nil, fmt.Errorf("%w: expiry claim %q is not numeric", ErrInvalidToken, c.expiryClaim)
	}

	return &Payload{
		Subject:   subject,
		ExpiresAt: time.Unix(int64(expiryUnix), 0),
	}, nil
}
