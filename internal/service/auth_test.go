package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/1craig1/game-release-tracker/pkg/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *UserService, *models.User) {
	t.Helper()
	db := newTestDB(t)
	users := NewUserService(db)
	auth := NewAuthService(db, time.Hour, 30*24*time.Hour)
	user, err := users.CreateUser(context.Background(), "alice", "alice@example.com", "correct-password")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return auth, users, user
}

func TestLoginIssuesSession(t *testing.T) {
	auth, _, user := newAuthFixture(t)

	result, err := auth.Login(context.Background(), "alice", "correct-password", false)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.SessionToken == "" {
		t.Fatal("expected a session token")
	}
	if result.RememberToken != "" {
		t.Error("remember token issued without remember_me")
	}

	resolved, err := auth.ResolveSession(context.Background(), result.SessionToken)
	if err != nil {
		t.Fatalf("ResolveSession: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("session resolved to user %d, want %d", resolved.ID, user.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	if _, err := auth.Login(context.Background(), "alice", "wrong-password", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(context.Background(), "nobody", "correct-password", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestResolveSessionExpired(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	auth := NewAuthService(db, -time.Minute, time.Hour) // sessions born expired
	if _, err := users.CreateUser(context.Background(), "alice", "alice@example.com", "pw123456"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	result, err := auth.Login(context.Background(), "alice", "pw123456", false)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := auth.ResolveSession(context.Background(), result.SessionToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestRememberMeRotatesToken(t *testing.T) {
	auth, _, user := newAuthFixture(t)

	result, err := auth.Login(context.Background(), "alice", "correct-password", true)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	series, token, ok := strings.Cut(result.RememberToken, ":")
	if !ok {
		t.Fatalf("malformed remember token %q", result.RememberToken)
	}

	redeemed, err := auth.RedeemRememberMe(context.Background(), series, token)
	if err != nil {
		t.Fatalf("RedeemRememberMe: %v", err)
	}
	if redeemed.User.ID != user.ID {
		t.Errorf("redeemed as user %d, want %d", redeemed.User.ID, user.ID)
	}
	if redeemed.SessionToken == "" {
		t.Error("expected a fresh session")
	}
	newSeries, newToken, _ := strings.Cut(redeemed.RememberToken, ":")
	if newSeries != series {
		t.Errorf("series must survive rotation: %q vs %q", newSeries, series)
	}
	if newToken == token {
		t.Error("token must rotate on redemption")
	}

	// The old token is now invalid for this series.
	if _, err := auth.RedeemRememberMe(context.Background(), series, token); err == nil {
		t.Error("expected old token to be rejected after rotation")
	}
}

func TestRememberMeTheftRevokesAllTokens(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	first, err := auth.Login(context.Background(), "alice", "correct-password", true)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	second, err := auth.Login(context.Background(), "alice", "correct-password", true)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	series, _, _ := strings.Cut(first.RememberToken, ":")

	// Correct series, wrong token: stolen cookie. Everything is revoked.
	if _, err := auth.RedeemRememberMe(context.Background(), series, "stolen-token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	otherSeries, otherToken, _ := strings.Cut(second.RememberToken, ":")
	if _, err := auth.RedeemRememberMe(context.Background(), otherSeries, otherToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected the second device's token to be revoked too, got %v", err)
	}
}

func TestLogoutDropsSessionAndSeries(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	result, err := auth.Login(context.Background(), "alice", "correct-password", true)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	series, token, _ := strings.Cut(result.RememberToken, ":")

	if err := auth.Logout(context.Background(), result.SessionToken, series); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := auth.ResolveSession(context.Background(), result.SessionToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected session gone, got %v", err)
	}
	if _, err := auth.RedeemRememberMe(context.Background(), series, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected remember-me gone, got %v", err)
	}
}
