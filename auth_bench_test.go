package cookieauth

import (
	"context"
	"testing"

	"github.com/kvasirlabs/cookieauth/cookie"
	"github.com/kvasirlabs/cookieauth/directory"
	"github.com/kvasirlabs/cookieauth/password"
)

func BenchmarkLoginSubmit(b *testing.B) {
	auth := newBenchmarkAuth(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Fresh state and store per iteration so every pass exercises the
		// full credential path instead of passive reauthentication.
		state := NewState()
		store := cookie.NewMemoryStore(nil)
		res, err := auth.LoginWithStore(context.Background(), state, store, submit("alice", "correct-password-123"))
		if err != nil {
			b.Fatalf("login failed: %v", err)
		}
		if res.Status != StatusAuthenticated {
			b.Fatalf("unexpected status %v", res.Status)
		}
	}
}

func BenchmarkLoginFailure(b *testing.B) {
	auth := newBenchmarkAuth(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		state := NewState()
		res, err := auth.Login(context.Background(), state, submit("alice", "wrong-password"))
		if err != nil {
			b.Fatalf("login failed: %v", err)
		}
		if res.Status != StatusFailed {
			b.Fatalf("unexpected status %v", res.Status)
		}
	}
}

func BenchmarkPassiveCookieResolve(b *testing.B) {
	auth := newBenchmarkAuth(b)

	seed := NewState()
	if _, err := auth.Login(context.Background(), seed, submit("alice", "correct-password-123")); err != nil {
		b.Fatalf("seed login failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		state := NewState()
		res, err := auth.Login(context.Background(), state, passive())
		if err != nil {
			b.Fatalf("login failed: %v", err)
		}
		if res.Status != StatusAuthenticated {
			b.Fatalf("unexpected status %v", res.Status)
		}
	}
}

func newBenchmarkAuth(tb testing.TB) *Authenticator {
	tb.Helper()

	cfg := DefaultConfig()
	cfg.Token.Secret = testSecret
	cfg.Password = PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
	cfg.Metrics.Enabled = false
	cfg.Audit.Enabled = false

	hasher, err := password.New(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		tb.Fatalf("password.New failed: %v", err)
	}
	hash, err := hasher.Hash("correct-password-123")
	if err != nil {
		tb.Fatalf("hash failed: %v", err)
	}

	store := cookie.NewMemoryStore(nil)
	auth, err := New().
		WithConfig(cfg).
		WithUsers([]directory.User{{Username: "alice", PasswordHash: hash}}).
		WithCookieStore(store).
		Build()
	if err != nil {
		tb.Fatalf("Build failed: %v", err)
	}
	tb.Cleanup(auth.Close)

	return auth
}
