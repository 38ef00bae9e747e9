package passport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scorewise/predictions-api/internal/platform/logging"
	"github.com/scorewise/predictions-api/internal/usecase"
)

func TestClient_VerifyAccessToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/token/introspect" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":true,"user_id":"u-1","email":"fan@example.com","role":"admin"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.Client(), server.URL, logging.NewNop())
	principal, err := client.VerifyAccessToken(context.Background(), "token-1")
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.UserID != "u-1" || principal.Role != "admin" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if !principal.IsAdmin() {
		t.Fatal("expected admin principal")
	}
}

func TestClient_VerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":false}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.Client(), server.URL, logging.NewNop())
	_, err := client.VerifyAccessToken(context.Background(), "stale")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestClient_VerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, "http://passport.internal", logging.NewNop())
	_, err := client.VerifyAccessToken(context.Background(), "  ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestClient_IsVIPActive(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/memberships/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":true}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.Client(), server.URL, logging.NewNop())
	active, err := client.IsVIPActive(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("membership status: %v", err)
	}
	if !active {
		t.Fatal("expected active membership")
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	if got := buildURL("http://passport.internal/", "v1/token/introspect"); got != "http://passport.internal/v1/token/introspect" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := buildURL("http://passport.internal", "https://other.internal/x"); got != "https://other.internal/x" {
		t.Fatalf("absolute path must win: %s", got)
	}
}
