package highlightly

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/platform/logging"
	"github.com/scorewise/predictions-api/internal/platform/resilience"
	"github.com/scorewise/predictions-api/internal/usecase"
)

const (
	defaultBaseURL = "https://api.highlightly.net"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`api_key=[^&\s"']+`)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client wraps the Highlightly sports API. All fetches share one circuit
// breaker and collapse duplicate in-flight requests per path via singleflight.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	retryDelay     time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		retryDelay:     retryDelay,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

func (c *Client) FetchLiveMatches(ctx context.Context, sport string) ([]usecase.ExternalMatch, error) {
	sport, err := normalizeSport(sport)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope[matchDTO]
	if err := c.doJSON(ctx, "/"+sport+"/events/live", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch live matches sport=%s: %w", sport, err)
	}
	return mapMatches(envelope.Data), nil
}

func (c *Client) FetchFixturesByDate(ctx context.Context, sport string, day time.Time) ([]usecase.ExternalMatch, error) {
	sport, err := normalizeSport(sport)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		return nil, fmt.Errorf("fixtures date is required")
	}

	query := map[string]string{"date": day.UTC().Format("2006-01-02")}
	var envelope listEnvelope[matchDTO]
	if err := c.doJSON(ctx, "/"+sport+"/events", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch fixtures sport=%s date=%s: %w", sport, query["date"], err)
	}
	return mapMatches(envelope.Data), nil
}

func (c *Client) FetchLeagues(ctx context.Context, sport string) ([]usecase.ExternalLeague, error) {
	sport, err := normalizeSport(sport)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope[leagueDTO]
	if err := c.doJSON(ctx, "/"+sport+"/leagues", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch leagues sport=%s: %w", sport, err)
	}

	out := make([]usecase.ExternalLeague, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		if item.ID <= 0 || strings.TrimSpace(item.Name) == "" {
			continue
		}
		out = append(out, usecase.ExternalLeague{
			LeagueRefID: item.ID,
			Name:        strings.TrimSpace(item.Name),
			Country:     strings.TrimSpace(item.Country),
			Season:      strings.TrimSpace(item.Season),
			LogoURL:     strings.TrimSpace(item.Logo),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LeagueRefID < out[j].LeagueRefID })
	return out, nil
}

func (c *Client) FetchTeamsByLeague(ctx context.Context, sport string, leagueRefID int64) ([]usecase.ExternalTeam, error) {
	sport, err := normalizeSport(sport)
	if err != nil {
		return nil, err
	}
	if leagueRefID <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}

	query := map[string]string{"leagueId": strconv.FormatInt(leagueRefID, 10)}
	var envelope listEnvelope[teamDTO]
	if err := c.doJSON(ctx, "/"+sport+"/teams", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch teams sport=%s league_ref_id=%d: %w", sport, leagueRefID, err)
	}

	out := make([]usecase.ExternalTeam, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		if item.ID <= 0 || strings.TrimSpace(item.Name) == "" {
			continue
		}
		out = append(out, usecase.ExternalTeam{
			TeamRefID:   item.ID,
			LeagueRefID: leagueRefID,
			Name:        strings.TrimSpace(item.Name),
			LogoURL:     strings.TrimSpace(item.Logo),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TeamRefID < out[j].TeamRefID })
	return out, nil
}

func (c *Client) FetchStandings(ctx context.Context, sport string, leagueRefID int64) (usecase.ExternalStandingTable, error) {
	sport, err := normalizeSport(sport)
	if err != nil {
		return usecase.ExternalStandingTable{}, err
	}
	if leagueRefID <= 0 {
		return usecase.ExternalStandingTable{}, fmt.Errorf("league id must be greater than zero")
	}

	query := map[string]string{"leagueId": strconv.FormatInt(leagueRefID, 10)}
	var envelope standingsEnvelope
	if err := c.doJSON(ctx, "/"+sport+"/standings", query, &envelope); err != nil {
		return usecase.ExternalStandingTable{}, fmt.Errorf("fetch standings sport=%s league_ref_id=%d: %w", sport, leagueRefID, err)
	}

	rows := make([]usecase.ExternalStandingRow, 0, len(envelope.Groups))
	for _, item := range envelope.Groups {
		if item.Team.ID <= 0 {
			continue
		}
		rows = append(rows, usecase.ExternalStandingRow{
			Position:     item.Position,
			TeamRefID:    item.Team.ID,
			TeamName:     strings.TrimSpace(item.Team.Name),
			Played:       item.Played,
			Won:          item.Won,
			Draw:         item.Draw,
			Lost:         item.Lost,
			GoalsFor:     item.Goals.For,
			GoalsAgainst: item.Goals.Against,
			Points:       item.Points,
			Form:         strings.TrimSpace(item.Form),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	return usecase.ExternalStandingTable{
		LeagueRefID: firstNonZeroID(envelope.League.ID, leagueRefID),
		LeagueName:  strings.TrimSpace(envelope.League.Name),
		Season:      strings.TrimSpace(envelope.League.Season),
		Rows:        rows,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "highlightly circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return &ProviderError{Kind: KindDecode, Message: "decode provider payload", cause: err}
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr *ProviderError
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-api-key", c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &ProviderError{
				Kind:    KindNetwork,
				Message: "send request: " + sanitizeSensitiveText(err.Error(), c.token),
			}
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = &ProviderError{Kind: KindNetwork, Message: "read response body", cause: readErr}
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				lastErr = &ProviderError{
					Kind:       classifyStatus(resp.StatusCode),
					StatusCode: resp.StatusCode,
					Message:    "provider status=" + strconv.Itoa(resp.StatusCode) + " body=" + abbreviateBody(raw),
				}
				if !lastErr.Retryable() {
					return nil, lastErr
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryDelay
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = &ProviderError{Kind: KindUnknown, Message: "provider request failed"}
	}
	exhausted := &ProviderError{
		Kind:       KindRetryExhausted,
		StatusCode: lastErr.StatusCode,
		Message:    "retries exhausted after " + strconv.Itoa(c.maxRetries+1) + " attempts",
		cause:      lastErr,
	}
	c.logger.WarnContext(ctx, "highlightly request failed", "url", redactAPIURL(fullURL), "error", exhausted)
	return nil, exhausted
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	var pe *ProviderError
	if stderrors.As(err, &pe) {
		return IsTransient(pe)
	}
	return true
}

func mapMatches(items []matchDTO) []usecase.ExternalMatch {
	out := make([]usecase.ExternalMatch, 0, len(items))
	for _, item := range items {
		if item.ID <= 0 {
			continue
		}
		mapped := usecase.ExternalMatch{
			MatchRefID:    item.ID,
			LeagueRefID:   item.League.ID,
			LeagueName:    strings.TrimSpace(item.League.Name),
			Season:        strings.TrimSpace(item.League.Season),
			HomeTeamRefID: item.HomeTeam.ID,
			AwayTeamRefID: item.AwayTeam.ID,
			HomeTeam:      strings.TrimSpace(item.HomeTeam.Name),
			AwayTeam:      strings.TrimSpace(item.AwayTeam.Name),
			Status:        match.NormalizeStatus(item.State.Status),
		}
		if parsed := parseProviderDateTime(item.Date); parsed != nil {
			mapped.KickoffAt = *parsed
		}
		if item.Score != nil {
			mapped.HomeScore = item.Score.Home
			mapped.AwayScore = item.Score.Away
		}
		out = append(out, mapped)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].MatchRefID < out[j].MatchRefID
	})
	return out
}

func parseProviderDateTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}

func normalizeSport(value string) (string, error) {
	sport := strings.ToLower(strings.TrimSpace(value))
	switch sport {
	case match.SportFootball, match.SportBasketball:
		return sport, nil
	default:
		return "", fmt.Errorf("%w: unsupported sport %q", usecase.ErrInvalidInput, value)
	}
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	value = apiKeyParamRegex.ReplaceAllString(value, "api_key=REDACTED")
	return value
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("api_key") {
		query.Set("api_key", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func firstNonZeroID(values ...int64) int64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
