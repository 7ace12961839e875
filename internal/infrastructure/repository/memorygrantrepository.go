package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pulse-inc/pulse/internal/domain/integration"
)

// MemoryGrantRepository keeps grants in process memory. Grants are lost on
// restart; it serves the database.driver "memory" setting and tests.
type MemoryGrantRepository struct {
	mu     sync.RWMutex
	nextID uint
	grants map[string]*integration.OAuthGrant
}

func NewMemoryGrantRepository() *MemoryGrantRepository {
	return &MemoryGrantRepository{grants: make(map[string]*integration.OAuthGrant)}
}

func memoryKey(provider, identityKey string) string {
	return provider + "\x00" + identityKey
}

func (r *MemoryGrantRepository) Upsert(_ context.Context, grant *integration.OAuthGrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := memoryKey(grant.Provider(), grant.IdentityKey())
	if existing, ok := r.grants[key]; ok {
		existing.Replace(grant)
		grant.MarkPersisted(existing.ID(), existing.SID(), existing.CreatedAt())
		return nil
	}

	r.nextID++
	stored := integration.ReconstructOAuthGrant(
		r.nextID,
		grant.SID(), grant.Provider(), grant.IdentityKey(),
		grant.AccessToken(), grant.BotToken(), grant.Scope(),
		grant.TeamID(), grant.TeamName(), grant.UserID(),
		grant.Metadata(),
		grant.CreatedAt(), grant.UpdatedAt(), grant.ExpiresAt(),
	)
	r.grants[key] = stored
	grant.MarkPersisted(stored.ID(), stored.SID(), stored.CreatedAt())
	return nil
}

func (r *MemoryGrantRepository) CountActive(_ context.Context, provider string, now time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, g := range r.grants {
		if g.Provider() == provider && g.IsActive(now) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryGrantRepository) ListByProvider(_ context.Context, provider string) ([]*integration.OAuthGrant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*integration.OAuthGrant, 0)
	for _, g := range r.grants {
		if g.Provider() == provider {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt().After(result[j].UpdatedAt())
	})
	return result, nil
}
