package highlightly

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "test-token",
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})
	return client, server
}

func TestClient_FetchLiveMatches_MapsPayload(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/football/events/live" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-token" {
			t.Errorf("unexpected api key header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{
			"id": 5501,
			"league": {"id": 33973, "name": "Premier League", "season": "2026"},
			"homeTeam": {"id": 11, "name": "Arsenal"},
			"awayTeam": {"id": 12, "name": "Chelsea"},
			"date": "2026-08-29T15:00:00Z",
			"state": {"status": "1H"},
			"score": {"home": 1, "away": 0}
		}]}`))
	}))

	matches, err := client.FetchLiveMatches(context.Background(), "football")
	if err != nil {
		t.Fatalf("fetch live matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one match, got=%d", len(matches))
	}

	m := matches[0]
	if m.MatchRefID != 5501 {
		t.Fatalf("expected match_ref_id=5501, got=%d", m.MatchRefID)
	}
	if m.LeagueRefID != 33973 || m.LeagueName != "Premier League" {
		t.Fatalf("unexpected league mapping: %+v", m)
	}
	if m.HomeTeam != "Arsenal" || m.AwayTeam != "Chelsea" {
		t.Fatalf("unexpected team mapping: %+v", m)
	}
	if m.Status != "1H" {
		t.Fatalf("expected status=1H, got=%s", m.Status)
	}
	if m.HomeScore == nil || *m.HomeScore != 1 || m.AwayScore == nil || *m.AwayScore != 0 {
		t.Fatalf("unexpected score mapping: %+v", m)
	}
	want := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	if !m.KickoffAt.Equal(want) {
		t.Fatalf("expected kickoff=%s, got=%s", want, m.KickoffAt)
	}
}

func TestClient_AuthFailureIsNotRetried(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.FetchLeagues(context.Background(), "football")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if kind := KindOf(err); kind != KindAuth {
		t.Fatalf("expected kind=%s, got=%s", KindAuth, kind)
	}
	if got := requests.Load(); got != 1 {
		t.Fatalf("expected exactly one request, got=%d", got)
	}
}

func TestClient_ForbiddenIsNotRetried(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.FetchLeagues(context.Background(), "basketball")
	if kind := KindOf(err); kind != KindForbidden {
		t.Fatalf("expected kind=%s, got=%s (err=%v)", KindForbidden, kind, err)
	}
	if got := requests.Load(); got != 1 {
		t.Fatalf("expected exactly one request, got=%d", got)
	}
}

func TestClient_RateLimitRetriesUntilExhausted(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.FetchLiveMatches(context.Background(), "football")
	if kind := KindOf(err); kind != KindRetryExhausted {
		t.Fatalf("expected kind=%s, got=%s (err=%v)", KindRetryExhausted, kind, err)
	}
	if got := requests.Load(); got != 3 {
		t.Fatalf("expected 3 attempts for max_retries=2, got=%d", got)
	}
}

func TestClient_ServerErrorRetriedThenSucceeds(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	matches, err := client.FetchLiveMatches(context.Background(), "football")
	if err != nil {
		t.Fatalf("expected retry to recover: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected empty result, got=%d", len(matches))
	}
	if got := requests.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got=%d", got)
	}
}

func TestClient_RejectsUnsupportedSport(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Token: "t"})
	if _, err := client.FetchLiveMatches(context.Background(), "handball"); err == nil {
		t.Fatal("expected error for unsupported sport")
	}
}

func TestParseProviderDateTime(t *testing.T) {
	t.Parallel()

	if parsed := parseProviderDateTime("2026-08-29 15:00:00"); parsed == nil || parsed.Hour() != 15 {
		t.Fatalf("unexpected parse result: %v", parsed)
	}
	if parsed := parseProviderDateTime(""); parsed != nil {
		t.Fatalf("expected nil for empty value, got %v", parsed)
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind ErrorKind
		want bool
	}{
		{KindAuth, false},
		{KindForbidden, false},
		{KindRateLimit, true},
		{KindNetwork, true},
		{KindRetryExhausted, true},
		{KindDecode, false},
	}
	for _, tc := range cases {
		err := &ProviderError{Kind: tc.kind}
		if got := IsTransient(err); got != tc.want {
			t.Fatalf("kind=%s: expected transient=%v, got=%v", tc.kind, tc.want, got)
		}
	}
	if IsTransient(nil) {
		t.Fatal("nil error must not be transient")
	}
}
