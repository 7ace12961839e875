package migration

import (
	"github.com/pulse-inc/pulse/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.OAuthGrantModel{},
	}
}
