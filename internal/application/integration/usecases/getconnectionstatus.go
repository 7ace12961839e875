package usecases

import (
	"context"
	"time"

	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/shared/biztime"
	"github.com/pulse-inc/pulse/internal/shared/errors"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

type GetConnectionStatusResult struct {
	Connected   bool
	ActiveCount int64
}

// GetConnectionStatusUseCase answers whether any unexpired grant exists for a provider.
type GetConnectionStatusUseCase struct {
	grantRepo integration.GrantRepository
	recorder  Recorder
	logger    logger.Interface
	now       func() time.Time
}

func NewGetConnectionStatusUseCase(grantRepo integration.GrantRepository, recorder Recorder, logger logger.Interface) *GetConnectionStatusUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &GetConnectionStatusUseCase{
		grantRepo: grantRepo,
		recorder:  recorder,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *GetConnectionStatusUseCase) Execute(ctx context.Context, provider string) (*GetConnectionStatusResult, error) {
	count, err := uc.grantRepo.CountActive(ctx, provider, uc.now())
	if err != nil {
		uc.logger.Errorw("failed to count active grants", "provider", provider, "error", err)
		return nil, errors.NewStorageUnavailableError("failed to read token store", err.Error())
	}

	connected := count > 0
	uc.recorder.RecordStatus(provider, count)

	return &GetConnectionStatusResult{
		Connected:   connected,
		ActiveCount: count,
	}, nil
}
