package passport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/scorewise/predictions-api/internal/domain/user"
	"github.com/scorewise/predictions-api/internal/platform/logging"
	"github.com/scorewise/predictions-api/internal/usecase"
)

// Client talks to the passport account service, which owns authentication and
// VIP membership. Predictions only ever ask two questions: who is this token,
// and does this user have an active VIP plan.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	membershipURL string
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, baseURL string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, "/v1/token/introspect"),
		membershipURL: buildURL(baseURL, "/v1/memberships/status"),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var decoded introspectResponse
	if err := c.postJSON(ctx, c.introspectURL, introspectRequest{Token: token}, &decoded); err != nil {
		return user.Principal{}, err
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
		Role:   strings.ToLower(strings.TrimSpace(decoded.Role)),
	}, nil
}

// IsVIPActive reports whether the user holds an active VIP membership.
func (c *Client) IsVIPActive(ctx context.Context, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, fmt.Errorf("%w: user id is required", usecase.ErrInvalidInput)
	}

	var decoded membershipResponse
	if err := c.postJSON(ctx, c.membershipURL, membershipRequest{UserID: userID}, &decoded); err != nil {
		return false, err
	}
	return decoded.Active, nil
}

func (c *Client) postJSON(ctx context.Context, url string, payload, target any) error {
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal passport request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create passport request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request passport: %v", usecase.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: passport denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read passport response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "passport non-200 response", "status_code", resp.StatusCode)
		return fmt.Errorf("passport request failed with status %d", resp.StatusCode)
	}

	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("unmarshal passport response: %w", err)
	}
	return nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type membershipRequest struct {
	UserID string `json:"user_id"`
}

type membershipResponse struct {
	Active bool `json:"active"`
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
