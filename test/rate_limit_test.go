//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"testing"
	"time"

	cookieauth "github.com/kvasirlabs/cookieauth"
)

func failedSubmit() cookieauth.LoginRequest {
	return cookieauth.LoginRequest{
		Location: cookieauth.LocationMain,
		Submission: &cookieauth.Submission{
			Username:     "alice",
			Password:     "wrong",
			ConsentGiven: true,
		},
	}
}

func goodSubmit() cookieauth.LoginRequest {
	return cookieauth.LoginRequest{
		Location: cookieauth.LocationMain,
		Submission: &cookieauth.Submission{
			Username:     "alice",
			Password:     "open sesame",
			ConsentGiven: true,
		},
	}
}

func TestLoginRateLimitedAfterBudget(t *testing.T) {
	_, rdb := newIntegrationRedis(t)
	auth, _ := newIntegrationAuth(t, rdb, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := auth.Login(ctx, cookieauth.NewState(), failedSubmit())
		if err != nil {
			t.Fatalf("attempt %d: Login failed: %v", i, err)
		}
		if res.Status != cookieauth.StatusFailed {
			t.Fatalf("attempt %d: expected StatusFailed, got %v", i, res.Status)
		}
	}

	// Budget exhausted: even correct credentials are refused.
	_, err := auth.Login(ctx, cookieauth.NewState(), goodSubmit())
	if !errors.Is(err, cookieauth.ErrLoginRateLimited) {
		t.Fatalf("expected ErrLoginRateLimited, got %v", err)
	}
}

func TestRateLimitWindowExpires(t *testing.T) {
	mr, rdb := newIntegrationRedis(t)
	auth, _ := newIntegrationAuth(t, rdb, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := auth.Login(ctx, cookieauth.NewState(), failedSubmit()); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
	}
	if _, err := auth.Login(ctx, cookieauth.NewState(), goodSubmit()); !errors.Is(err, cookieauth.ErrLoginRateLimited) {
		t.Fatalf("expected ErrLoginRateLimited, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	res, err := auth.Login(ctx, cookieauth.NewState(), goodSubmit())
	if err != nil {
		t.Fatalf("Login after cooldown failed: %v", err)
	}
	if res.Status != cookieauth.StatusAuthenticated {
		t.Fatalf("expected authenticated after cooldown, got %v", res.Status)
	}
}

func TestSuccessfulLoginResetsCounter(t *testing.T) {
	_, rdb := newIntegrationRedis(t)
	auth, _ := newIntegrationAuth(t, rdb, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := auth.Login(ctx, cookieauth.NewState(), failedSubmit()); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
	}

	res, err := auth.Login(ctx, cookieauth.NewState(), goodSubmit())
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Status != cookieauth.StatusAuthenticated {
		t.Fatalf("expected authenticated, got %v", res.Status)
	}

	// Counter was reset; two more failures stay under the budget.
	for i := 0; i < 2; i++ {
		if _, err := auth.Login(ctx, cookieauth.NewState(), failedSubmit()); err != nil {
			t.Fatalf("post-reset attempt %d: Login failed: %v", i, err)
		}
	}
}

func TestPerIPThrottleAcrossUsernames(t *testing.T) {
	_, rdb := newIntegrationRedis(t)
	auth, _ := newIntegrationAuth(t, rdb, func(cfg *cookieauth.Config) {
		cfg.Security.EnableIPThrottle = true
		cfg.Security.MaxLoginAttempts = 2
	})

	ctx := cookieauth.WithClientIP(context.Background(), "203.0.113.9")

	for _, name := range []string{"ghost1", "ghost2"} {
		req := failedSubmit()
		req.Submission.Username = name
		if _, err := auth.Login(ctx, cookieauth.NewState(), req); err != nil {
			t.Fatalf("Login for %s failed: %v", name, err)
		}
	}

	req := failedSubmit()
	req.Submission.Username = "ghost3"
	if _, err := auth.Login(ctx, cookieauth.NewState(), req); !errors.Is(err, cookieauth.ErrLoginRateLimited) {
		t.Fatalf("expected per-IP ErrLoginRateLimited, got %v", err)
	}
}
