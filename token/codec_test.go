package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testCodec(t *testing.T, mutate func(*Config)) *Codec {
	t.Helper()
	cfg := Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		ExpiryDays: 30,
		Now: func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := testCodec(t, nil)

	signed, expiresAt, err := c.Encode("alice", time.Time{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	if !expiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, expiresAt)
	}

	payload, err := c.Decode(signed)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if payload.Subject != "alice" {
		t.Fatalf("expected subject alice, got %q", payload.Subject)
	}
	if !payload.ExpiresAt.Equal(want) {
		t.Fatalf("expected payload expiry %v, got %v", want, payload.ExpiresAt)
	}
}

func TestEncodeCapsAtAccountExpiry(t *testing.T) {
	c := testCodec(t, nil)

	accountExpiry := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	_, expiresAt, err := c.Encode("alice", accountExpiry)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !expiresAt.Equal(accountExpiry) {
		t.Fatalf("expected expiry capped at %v, got %v", accountExpiry, expiresAt)
	}
}

func TestEncodeAccountExpiryBeyondWindow(t *testing.T) {
	c := testCodec(t, nil)

	accountExpiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, expiresAt, err := c.Encode("alice", accountExpiry)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	if !expiresAt.Equal(want) {
		t.Fatalf("expected window expiry %v, got %v", want, expiresAt)
	}
}

func TestDecodeExpiredTokenStillDecodes(t *testing.T) {
	past := testCodec(t, func(cfg *Config) {
		cfg.Now = func() time.Time {
			return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		}
	})
	signed, _, err := past.Encode("alice", time.Time{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	c := testCodec(t, nil)
	payload, err := c.Decode(signed)
	if err != nil {
		t.Fatalf("expected expired token to decode, got %v", err)
	}
	if !payload.ExpiresAt.Before(c.now()) {
		t.Fatalf("expected decoded expiry in the past, got %v", payload.ExpiresAt)
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	c := testCodec(t, nil)
	signed, _, err := c.Encode("alice", time.Time{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	other := testCodec(t, func(cfg *Config) {
		cfg.Secret = []byte("ffffffffffffffffffffffffffffffff")
	})
	if _, err := other.Decode(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecodeTampered(t *testing.T) {
	c := testCodec(t, nil)
	signed, _, err := c.Encode("alice", time.Time{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	tampered := parts[0] + ".eyJyb2xlIjoibWFsbG9yeSJ9." + parts[2]
	if _, err := c.Decode(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	c := testCodec(t, nil)
	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := c.Decode(input); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("input %q: expected ErrInvalidToken, got %v", input, err)
		}
	}
}

func TestDecodeMethodSwapRejected(t *testing.T) {
	hs512 := testCodec(t, func(cfg *Config) { cfg.SigningMethod = "hs512" })
	signed, _, err := hs512.Encode("alice", time.Time{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	hs256 := testCodec(t, nil)
	if _, err := hs256.Decode(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for mismatched method, got %v", err)
	}
}

func TestCustomClaimNames(t *testing.T) {
	c := testCodec(t, func(cfg *Config) {
		cfg.SubjectClaim = "sub"
		cfg.ExpiryClaim = "expires"
	})
	signed, _, err := c.Encode("bob", time.Time{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	payload, err := c.Decode(signed)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if payload.Subject != "bob" {
		t.Fatalf("expected subject bob, got %q", payload.Subject)
	}

	// A default codec expects a different subject claim and must reject it.
	plain := testCodec(t, nil)
	if _, err := plain.Decode(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing subject claim, got %v", err)
	}
}

func TestNewRejectsShortSecret(t *testing.T) {
	_, err := New(Config{Secret: []byte("short")})
	if err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestNewRejectsUnknownMethod(t *testing.T) {
	_, err := New(Config{
		Secret:        []byte("0123456789abcdef0123456789abcdef"),
		SigningMethod: "rs256",
	})
	if err == nil {
		t.Fatal("expected error for unsupported signing method")
	}
}

func TestEncodeEmptyUsername(t *testing.T) {
	c := testCodec(t, nil)
	if _, _, err := c.Encode("", time.Time{}); err == nil {
		t.Fatal("expected error for empty username")
	}
}
