package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/infrastructure/crypto"
	"github.com/pulse-inc/pulse/internal/infrastructure/persistence/models"
)

// OAuthGrantMapper converts grants between domain and persistence, sealing
// tokens on the way in and opening them on the way out.
type OAuthGrantMapper interface {
	ToModel(grant *integration.OAuthGrant) (*models.OAuthGrantModel, error)
	ToDomain(model *models.OAuthGrantModel) (*integration.OAuthGrant, error)
	ToDomainList(models []*models.OAuthGrantModel) ([]*integration.OAuthGrant, error)
}

type OAuthGrantMapperImpl struct {
	cipher crypto.TokenCipher
}

func NewOAuthGrantMapper(cipher crypto.TokenCipher) OAuthGrantMapper {
	if cipher == nil {
		cipher = crypto.PlainCipher{}
	}
	return &OAuthGrantMapperImpl{cipher: cipher}
}

func (m *OAuthGrantMapperImpl) ToModel(grant *integration.OAuthGrant) (*models.OAuthGrantModel, error) {
	if grant == nil {
		return nil, nil
	}

	accessToken, err := m.cipher.Seal(grant.AccessToken())
	if err != nil {
		return nil, fmt.Errorf("failed to seal access token: %w", err)
	}

	var botToken *string
	if grant.BotToken() != "" {
		sealed, err := m.cipher.Seal(grant.BotToken())
		if err != nil {
			return nil, fmt.Errorf("failed to seal bot token: %w", err)
		}
		botToken = &sealed
	}

	metadata, err := json.Marshal(grant.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to encode grant metadata: %w", err)
	}

	return &models.OAuthGrantModel{
		ID:          grant.ID(),
		SID:         grant.SID(),
		Provider:    grant.Provider(),
		IdentityKey: grant.IdentityKey(),
		AccessToken: accessToken,
		BotToken:    botToken,
		Scope:       grant.Scope(),
		TeamID:      grant.TeamID(),
		TeamName:    grant.TeamName(),
		UserID:      grant.UserID(),
		Metadata:    datatypes.JSON(metadata),
		CreatedAt:   grant.CreatedAt(),
		UpdatedAt:   grant.UpdatedAt(),
		ExpiresAt:   grant.ExpiresAt(),
	}, nil
}

func (m *OAuthGrantMapperImpl) ToDomain(model *models.OAuthGrantModel) (*integration.OAuthGrant, error) {
	if model == nil {
		return nil, nil
	}

	accessToken, err := m.cipher.Open(model.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("grant %s: %w", model.SID, err)
	}

	var botToken string
	if model.BotToken != nil {
		if botToken, err = m.cipher.Open(*model.BotToken); err != nil {
			return nil, fmt.Errorf("grant %s: %w", model.SID, err)
		}
	}

	metadata := map[string]string{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("grant %s: failed to decode metadata: %w", model.SID, err)
		}
	}

	return integration.ReconstructOAuthGrant(
		model.ID,
		model.SID, model.Provider, model.IdentityKey,
		accessToken, botToken, model.Scope,
		model.TeamID, model.TeamName, model.UserID,
		metadata,
		model.CreatedAt, model.UpdatedAt, model.ExpiresAt,
	), nil
}

func (m *OAuthGrantMapperImpl) ToDomainList(list []*models.OAuthGrantModel) ([]*integration.OAuthGrant, error) {
	result := make([]*integration.OAuthGrant, 0, len(list))
	for _, model := range list {
		grant, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		result = append(result, grant)
	}
	return result, nil
}
