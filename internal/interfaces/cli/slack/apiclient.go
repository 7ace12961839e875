package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pulse-inc/pulse/internal/application/integration/connectflow"
)

const maxResponseBytes = 1 << 20

// APIClient talks to a running Pulse server. It serves as the connect flow's
// Authorizer and Exchanger.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type connectEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		URL         string `json:"url"`
		State       string `json:"state"`
		RedirectURI string `json:"redirect_uri"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Authorize asks the server for a consent URL bound to redirectURI.
func (c *APIClient) Authorize(ctx context.Context, redirectURI string) (string, string, error) {
	q := url.Values{}
	if redirectURI != "" {
		q.Set("redirect_uri", redirectURI)
	}

	var env connectEnvelope
	status, err := c.do(ctx, http.MethodGet, "/api/slack/connect?"+q.Encode(), nil, &env)
	if err != nil {
		return "", "", err
	}
	if status != http.StatusOK || !env.Success {
		msg := http.StatusText(status)
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return "", "", fmt.Errorf("connect rejected (%d): %s", status, msg)
	}
	return env.Data.URL, env.Data.State, nil
}

type exchangeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
	Team    struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`
}

// Exchange posts the code to the server, which redeems it with Slack.
func (c *APIClient) Exchange(ctx context.Context, code, state, redirectURI string) (*connectflow.ExchangeResult, error) {
	body := map[string]string{"code": code, "state": state}
	if redirectURI != "" {
		body["redirect_uri"] = redirectURI
	}

	var resp exchangeResponse
	status, err := c.do(ctx, http.MethodPost, "/api/slack/oauth", body, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !resp.Success {
		if resp.Details != "" {
			return nil, fmt.Errorf("exchange failed (%d): %s: %s", status, resp.Error, resp.Details)
		}
		return nil, fmt.Errorf("exchange failed (%d): %s", status, resp.Error)
	}
	return &connectflow.ExchangeResult{
		TeamID:   resp.Team.ID,
		TeamName: resp.Team.Name,
		UserID:   resp.User.ID,
	}, nil
}

// Status reports whether the server holds a live Slack grant.
func (c *APIClient) Status(ctx context.Context) (bool, error) {
	var resp struct {
		Connected bool   `json:"connected"`
		Error     string `json:"error"`
		Details   string `json:"details"`
	}
	status, err := c.do(ctx, http.MethodGet, "/api/slack/status", nil, &resp)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("status check failed (%d): %s %s", status, resp.Error, resp.Details)
	}
	return resp.Connected, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var reader io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("pulse server unreachable: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return res.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return res.StatusCode, fmt.Errorf("unexpected response (%d): %w", res.StatusCode, err)
		}
	}
	return res.StatusCode, nil
}
