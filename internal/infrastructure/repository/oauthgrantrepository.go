package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/infrastructure/crypto"
	"github.com/pulse-inc/pulse/internal/infrastructure/persistence/mappers"
	"github.com/pulse-inc/pulse/internal/infrastructure/persistence/models"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

// OAuthGrantRepository implements integration.GrantRepository on GORM.
type OAuthGrantRepository struct {
	db     *gorm.DB
	mapper mappers.OAuthGrantMapper
	logger logger.Interface
}

func NewOAuthGrantRepository(db *gorm.DB, cipher crypto.TokenCipher, logger logger.Interface) integration.GrantRepository {
	return &OAuthGrantRepository{
		db:     db,
		mapper: mappers.NewOAuthGrantMapper(cipher),
		logger: logger,
	}
}

// Upsert inserts the grant or, on a (provider, identity_key) conflict,
// overwrites tokens, scope, team, user and expiry of the stored row. The stored id,
// sid and created_at are then copied back onto grant.
func (r *OAuthGrantRepository) Upsert(ctx context.Context, grant *integration.OAuthGrant) error {
	model, err := r.mapper.ToModel(grant)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider"}, {Name: "identity_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token", "bot_token", "scope", "team_id", "team_name", "user_id",
				"metadata", "updated_at", "expires_at",
			}),
		}).Create(model).Error; err != nil {
			return err
		}

		var stored models.OAuthGrantModel
		if err := tx.Select("id", "sid", "created_at").
			Where("provider = ? AND identity_key = ?", model.Provider, model.IdentityKey).
			First(&stored).Error; err != nil {
			return err
		}
		grant.MarkPersisted(stored.ID, stored.SID, stored.CreatedAt)
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to upsert oauth grant", "provider", grant.Provider(), "identity_key", grant.IdentityKey(), "error", err)
		return fmt.Errorf("failed to upsert oauth grant: %w", err)
	}

	return nil
}

func (r *OAuthGrantRepository) CountActive(ctx context.Context, provider string, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OAuthGrantModel{}).
		Where("provider = ? AND expires_at > ?", provider, now.UTC()).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count active grants", "provider", provider, "error", err)
		return 0, fmt.Errorf("failed to count active grants: %w", err)
	}
	return count, nil
}

func (r *OAuthGrantRepository) ListByProvider(ctx context.Context, provider string) ([]*integration.OAuthGrant, error) {
	var list []*models.OAuthGrantModel
	err := r.db.WithContext(ctx).
		Where("provider = ?", provider).
		Order("updated_at DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Errorw("failed to list grants", "provider", provider, "error", err)
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	return r.mapper.ToDomainList(list)
}
