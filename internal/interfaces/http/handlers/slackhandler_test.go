package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	integrationDto "github.com/pulse-inc/pulse/internal/application/integration/dto"
	"github.com/pulse-inc/pulse/internal/application/integration/usecases"
	"github.com/pulse-inc/pulse/internal/interfaces/http/handlers/testutil"
	"github.com/pulse-inc/pulse/internal/shared/constants"
	"github.com/pulse-inc/pulse/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockExchangeUseCase struct {
	fn    func(ctx context.Context, cmd usecases.ExchangeOAuthCodeCommand) (*usecases.ExchangeOAuthCodeResult, error)
	calls int
}

func (m *mockExchangeUseCase) Execute(ctx context.Context, cmd usecases.ExchangeOAuthCodeCommand) (*usecases.ExchangeOAuthCodeResult, error) {
	m.calls++
	if m.fn != nil {
		return m.fn(ctx, cmd)
	}
	return &usecases.ExchangeOAuthCodeResult{}, nil
}

type mockStatusUseCase struct {
	fn func(ctx context.Context, provider string) (*usecases.GetConnectionStatusResult, error)
}

func (m *mockStatusUseCase) Execute(ctx context.Context, provider string) (*usecases.GetConnectionStatusResult, error) {
	if m.fn != nil {
		return m.fn(ctx, provider)
	}
	return &usecases.GetConnectionStatusResult{}, nil
}

type mockConnectUseCase struct {
	fn func(ctx context.Context, cmd usecases.InitiateOAuthConnectCommand) (*usecases.InitiateOAuthConnectResult, error)
}

func (m *mockConnectUseCase) Execute(ctx context.Context, cmd usecases.InitiateOAuthConnectCommand) (*usecases.InitiateOAuthConnectResult, error) {
	if m.fn != nil {
		return m.fn(ctx, cmd)
	}
	return &usecases.InitiateOAuthConnectResult{}, nil
}

type mockListGrantsUseCase struct {
	fn func(ctx context.Context, provider string) ([]*integrationDto.GrantDTO, error)
}

func (m *mockListGrantsUseCase) Execute(ctx context.Context, provider string) ([]*integrationDto.GrantDTO, error) {
	if m.fn != nil {
		return m.fn(ctx, provider)
	}
	return nil, nil
}

type stripSanitizer struct{}

func (stripSanitizer) StripTags(s string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(s)
}

type slackHandlerMocks struct {
	exchange *mockExchangeUseCase
	status   *mockStatusUseCase
	connect  *mockConnectUseCase
	grants   *mockListGrantsUseCase
}

func newTestSlackHandler() (*SlackHandler, *slackHandlerMocks) {
	m := &slackHandlerMocks{
		exchange: &mockExchangeUseCase{},
		status:   &mockStatusUseCase{},
		connect:  &mockConnectUseCase{},
		grants:   &mockListGrantsUseCase{},
	}
	h := NewSlackHandler(m.exchange, m.status, m.connect, m.grants, stripSanitizer{},
		[]string{"http://localhost:5173"}, testutil.NewMockLogger())
	return h, m
}

type oauthBody struct {
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

// =====================================================================
// POST /api/slack/oauth
// =====================================================================

func TestSlackHandler_ExchangeCode_Success(t *testing.T) {
	h, m := newTestSlackHandler()
	var got usecases.ExchangeOAuthCodeCommand
	m.exchange.fn = func(_ context.Context, cmd usecases.ExchangeOAuthCodeCommand) (*usecases.ExchangeOAuthCodeResult, error) {
		got = cmd
		return &usecases.ExchangeOAuthCodeResult{GrantID: "grt_1", TeamID: "T1", TeamName: "Acme", UserID: "U1"}, nil
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/slack/oauth", map[string]string{
		"code":         "1234.5678.abcdef",
		"redirect_uri": "http://localhost:5173/settings",
	})
	h.ExchangeCode(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body oauthBody
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.True(t, body.Success)
	assert.Equal(t, "T1", body.Team.ID)
	assert.Equal(t, "Acme", body.Team.Name)
	assert.Equal(t, "U1", body.User.ID)

	assert.Equal(t, constants.ProviderSlack, got.Provider)
	assert.Equal(t, "1234.5678.abcdef", got.Code)
	assert.Equal(t, "http://localhost:5173/settings", got.RedirectURI)
}

func TestSlackHandler_ExchangeCode_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"malformed json", "{not json"},
		{"missing code", map[string]string{"redirect_uri": "http://localhost:5173/settings"}},
		{"code with spaces", map[string]string{"code": "abc def ghi"}},
		{"relative redirect", map[string]string{"code": "1234.5678", "redirect_uri": "/settings"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestSlackHandler()

			c, w := testutil.NewTestContext(http.MethodPost, "/api/slack/oauth", tt.body)
			h.ExchangeCode(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body oauthBody
			require.NoError(t, testutil.ParseResponse(w, &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
			assert.Zero(t, m.exchange.calls)
		})
	}
}

func TestSlackHandler_ExchangeCode_Failures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantError   string
		wantDetails string
	}{
		{
			name:        "provider rejected",
			err:         errors.NewProviderRejectedError("slack rejected the authorization code", "invalid_code"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   constants.ErrMsgExchangeFailed,
			wantDetails: "invalid_code",
		},
		{
			name:        "malformed",
			err:         errors.NewMalformedResponseError("token response missing team.id"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   constants.ErrMsgExchangeFailed,
			wantDetails: "token response missing team.id",
		},
		{
			name:        "storage unavailable",
			err:         errors.NewStorageUnavailableError("failed to store grant", "database is locked"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   constants.ErrMsgExchangeFailed,
			wantDetails: "database is locked",
		},
		{
			name:       "state mismatch",
			err:        errors.NewStateMismatchError("invalid or expired state"),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_state",
		},
		{
			name:       "plain error",
			err:        stderrors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  constants.ErrMsgExchangeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestSlackHandler()
			m.exchange.fn = func(context.Context, usecases.ExchangeOAuthCodeCommand) (*usecases.ExchangeOAuthCodeResult, error) {
				return nil, tt.err
			}

			c, w := testutil.NewTestContext(http.MethodPost, "/api/slack/oauth", map[string]string{"code": "1234.5678"})
			h.ExchangeCode(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body oauthBody
			require.NoError(t, testutil.ParseResponse(w, &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantError, body.Error)
			if tt.wantDetails != "" {
				assert.Equal(t, tt.wantDetails, body.Details)
			}
		})
	}
}

// =====================================================================
// GET /api/slack/status
// =====================================================================

func TestSlackHandler_Status(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		h, m := newTestSlackHandler()
		m.status.fn = func(_ context.Context, provider string) (*usecases.GetConnectionStatusResult, error) {
			assert.Equal(t, constants.ProviderSlack, provider)
			return &usecases.GetConnectionStatusResult{Connected: true, ActiveCount: 1}, nil
		}

		c, w := testutil.NewTestContext(http.MethodGet, "/api/slack/status", nil)
		h.Status(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"connected":true}`, w.Body.String())
	})

	t.Run("not connected", func(t *testing.T) {
		h, _ := newTestSlackHandler()

		c, w := testutil.NewTestContext(http.MethodGet, "/api/slack/status", nil)
		h.Status(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"connected":false}`, w.Body.String())
	})

	t.Run("storage unavailable", func(t *testing.T) {
		h, m := newTestSlackHandler()
		m.status.fn = func(context.Context, string) (*usecases.GetConnectionStatusResult, error) {
			return nil, errors.NewStorageUnavailableError("failed to count grants", "connection refused")
		}

		c, w := testutil.NewTestContext(http.MethodGet, "/api/slack/status", nil)
		h.Status(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to check status","details":"connection refused"}`, w.Body.String())
	})
}

// =====================================================================
// GET /api/slack/connect
// =====================================================================

func TestSlackHandler_Connect(t *testing.T) {
	h, m := newTestSlackHandler()
	m.connect.fn = func(_ context.Context, cmd usecases.InitiateOAuthConnectCommand) (*usecases.InitiateOAuthConnectResult, error) {
		assert.Equal(t, "http://localhost:5173/settings", cmd.RedirectURI)
		return &usecases.InitiateOAuthConnectResult{
			AuthURL:     "https://slack.com/oauth/v2/authorize?state=s1",
			State:       "s1",
			RedirectURI: cmd.RedirectURI,
		}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/slack/connect", nil)
	testutil.SetQueryParams(c, map[string]string{"redirect_uri": "http://localhost:5173/settings"})
	h.Connect(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), `"state":"s1"`)
}

func TestSlackHandler_Connect_InvalidRedirect(t *testing.T) {
	h, m := newTestSlackHandler()
	m.connect.fn = func(context.Context, usecases.InitiateOAuthConnectCommand) (*usecases.InitiateOAuthConnectResult, error) {
		return nil, errors.NewValidationError("redirect_uri must be an absolute http(s) URL")
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/slack/connect?redirect_uri=ftp://x", nil)
	h.Connect(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}

// =====================================================================
// GET /api/slack/callback
// =====================================================================

func TestSlackHandler_Callback(t *testing.T) {
	t.Run("relays code and state", func(t *testing.T) {
		h, _ := newTestSlackHandler()

		c, w := testutil.NewTestContext(http.MethodGet, "/api/slack/callback?code=abc.def&state=s1", nil)
		h.Callback(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "nonce-")
		body := w.Body.String()
		assert.Contains(t, body, `"slack-oauth"`)
		assert.Contains(t, body, `"abc.def"`)
		assert.Contains(t, body, `"s1"`)
		assert.Contains(t, body, `"http://localhost:5173"`)
	})

	t.Run("provider error", func(t *testing.T) {
		h, _ := newTestSlackHandler()

		c, w := testutil.NewTestContext(http.MethodGet,
			"/api/slack/callback?error=access_denied&error_description=%3Cb%3Eno%3C%2Fb%3E", nil)
		h.Callback(c)

		body := w.Body.String()
		assert.Contains(t, body, "You declined the Slack authorization request.")
		assert.Contains(t, body, `"access_denied"`)
		assert.NotContains(t, body, "<b>no")
	})

	t.Run("missing code", func(t *testing.T) {
		h, _ := newTestSlackHandler()

		c, w := testutil.NewTestContext(http.MethodGet, "/api/slack/callback?state=s1", nil)
		h.Callback(c)

		assert.Contains(t, w.Body.String(), `"missing_code"`)
	})

	t.Run("script injection is escaped", func(t *testing.T) {
		h, _ := newTestSlackHandler()

		c, w := testutil.NewTestContext(http.MethodGet, "/api/slack/callback?code=x&state=%3C%2Fscript%3E%3Cscript%3Ealert(1)", nil)
		h.Callback(c)

		assert.NotContains(t, w.Body.String(), "</script><script>alert(1)")
	})
}

// =====================================================================
// GET /api/tokens/test
// =====================================================================

func TestSlackHandler_ListTokens(t *testing.T) {
	h, m := newTestSlackHandler()
	m.grants.fn = func(context.Context, string) ([]*integrationDto.GrantDTO, error) {
		return []*integrationDto.GrantDTO{{ID: "grt_1", AccessToken: "xoxp-***abcd"}}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/tokens/test", nil)
	h.ListTokens(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool                       `json:"success"`
		Tokens  []*integrationDto.GrantDTO `json:"tokens"`
		Count   int                        `json:"count"`
	}
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "xoxp-***abcd", body.Tokens[0].AccessToken)
}

func TestSlackHandler_ListTokens_Error(t *testing.T) {
	h, m := newTestSlackHandler()
	m.grants.fn = func(context.Context, string) ([]*integrationDto.GrantDTO, error) {
		return nil, stderrors.New("db down")
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/tokens/test", nil)
	h.ListTokens(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"db down"}`, w.Body.String())
}
