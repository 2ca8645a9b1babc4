//go:build integration
// +build integration

package test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	cookieauth "github.com/kvasirlabs/cookieauth"
	"github.com/kvasirlabs/cookieauth/cookie"
	"github.com/kvasirlabs/cookieauth/directory"
	"github.com/kvasirlabs/cookieauth/password"
	"github.com/redis/go-redis/v9"
)

func newIntegrationRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func integrationHash(t *testing.T, plaintext string) string {
	t.Helper()
	hasher, err := password.New(password.Config{
		Memory:      16 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		t.Fatalf("password.New failed: %v", err)
	}
	h, err := hasher.Hash(plaintext)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	return h
}

func newIntegrationAuth(t *testing.T, rdb *redis.Client, mutate func(*cookieauth.Config)) (*cookieauth.Authenticator, *cookie.MemoryStore) {
	t.Helper()

	cfg := cookieauth.DefaultConfig()
	cfg.Token.Secret = []byte("0123456789abcdef0123456789abcdef")
	cfg.Password = cookieauth.PasswordConfig{
		Memory:      16 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
	cfg.Security.MaxLoginAttempts = 3
	cfg.Security.LoginCooldownDuration = time.Minute
	if mutate != nil {
		mutate(&cfg)
	}

	store := cookie.NewMemoryStore(nil)
	auth, err := cookieauth.New().
		WithConfig(cfg).
		WithUsers([]directory.User{
			{Username: "alice", PasswordHash: integrationHash(t, "open sesame")},
		}).
		WithCookieStore(store).
		WithRedis(rdb).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(auth.Close)

	return auth, store
}
