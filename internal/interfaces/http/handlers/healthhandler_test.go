package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulse-inc/pulse/internal/application/integration/usecases"
	"github.com/pulse-inc/pulse/internal/interfaces/http/handlers/testutil"
)

func TestHealthHandler_Healthy(t *testing.T) {
	status := &mockStatusUseCase{fn: func(context.Context, string) (*usecases.GetConnectionStatusResult, error) {
		return &usecases.GetConnectionStatusResult{Connected: true, ActiveCount: 2}, nil
	}}
	h := NewHealthHandler(func(context.Context) error { return nil }, status, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	h.HealthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected","activeTokens":2}`, w.Body.String())
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	h := NewHealthHandler(func(context.Context) error { return stderrors.New("dial tcp: refused") },
		&mockStatusUseCase{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	h.HealthCheck(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"unhealthy","error":"dial tcp: refused"}`, w.Body.String())
}

func TestHealthHandler_CountFails(t *testing.T) {
	status := &mockStatusUseCase{fn: func(context.Context, string) (*usecases.GetConnectionStatusResult, error) {
		return nil, stderrors.New("no such table: oauth_grants")
	}}
	h := NewHealthHandler(nil, status, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	h.HealthCheck(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"unhealthy"`)
}

func TestHealthHandler_MemoryStore(t *testing.T) {
	h := NewHealthHandler(nil, &mockStatusUseCase{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	h.HealthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"memory","activeTokens":0}`, w.Body.String())
}
