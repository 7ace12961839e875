package integration

import (
	"context"
	"time"
)

// GrantRepository stores OAuth grants. Implementations must make Upsert
// atomic per (provider, identity key) so concurrent exchanges for one
// identity leave a single row behind.
type GrantRepository interface {
	// Upsert inserts the grant or replaces the existing one with the same natural key.
	Upsert(ctx context.Context, grant *OAuthGrant) error

	// CountActive counts grants of provider whose expiry lies after now.
	CountActive(ctx context.Context, provider string, now time.Time) (int64, error)

	// ListByProvider returns every grant of provider, expired ones included, newest first.
	ListByProvider(ctx context.Context, provider string) ([]*OAuthGrant, error)
}
