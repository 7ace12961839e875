package usecases

import (
	"context"
	"time"

	"github.com/pulse-inc/pulse/internal/application/integration/dto"
	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/shared/biztime"
	"github.com/pulse-inc/pulse/internal/shared/errors"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

// ListGrantsUseCase backs the debug token listing. Tokens leave masked.
type ListGrantsUseCase struct {
	grantRepo integration.GrantRepository
	logger    logger.Interface
	now       func() time.Time
}

func NewListGrantsUseCase(grantRepo integration.GrantRepository, logger logger.Interface) *ListGrantsUseCase {
	return &ListGrantsUseCase{
		grantRepo: grantRepo,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *ListGrantsUseCase) Execute(ctx context.Context, provider string) ([]*dto.GrantDTO, error) {
	grants, err := uc.grantRepo.ListByProvider(ctx, provider)
	if err != nil {
		uc.logger.Errorw("failed to list grants", "provider", provider, "error", err)
		return nil, errors.NewStorageUnavailableError("failed to read token store", err.Error())
	}
	return dto.ToGrantDTOList(grants, uc.now()), nil
}
