package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pulse-inc/pulse/internal/domain/integration"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) AuthURL(state, redirectURI string) string {
	args := m.Called(state, redirectURI)
	return args.String(0)
}

func (m *mockProvider) ExchangeCode(ctx context.Context, code, redirectURI string) (*ProviderGrant, error) {
	args := m.Called(ctx, code, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProviderGrant), args.Error(1)
}

type mockStateStore struct {
	mock.Mock
}

func (m *mockStateStore) Issue(ctx context.Context, info integration.StateInfo) (string, error) {
	args := m.Called(ctx, info)
	return args.String(0), args.Error(1)
}

func (m *mockStateStore) Verify(ctx context.Context, state string) (*integration.StateInfo, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.StateInfo), args.Error(1)
}

type mockGrantRepository struct {
	mock.Mock
}

func (m *mockGrantRepository) Upsert(ctx context.Context, grant *integration.OAuthGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *mockGrantRepository) CountActive(ctx context.Context, provider string, now time.Time) (int64, error) {
	args := m.Called(ctx, provider, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGrantRepository) ListByProvider(ctx context.Context, provider string) ([]*integration.OAuthGrant, error) {
	args := m.Called(ctx, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*integration.OAuthGrant), args.Error(1)
}

type recordedExchange struct {
	provider string
	outcome  string
}

type fakeRecorder struct {
	exchanges []recordedExchange
	statuses  []bool
}

func (r *fakeRecorder) RecordExchange(provider, outcome string) {
	r.exchanges = append(r.exchanges, recordedExchange{provider: provider, outcome: outcome})
}

func (r *fakeRecorder) RecordStatus(_ string, activeCount int64) {
	r.statuses = append(r.statuses, activeCount > 0)
}
