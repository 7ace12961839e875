package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/pulse-inc/pulse/internal/shared/constants"
)

// OAuthGrantModel is the persistence model for OAuth grants.
// (provider, identity_key) is the natural key targeted by upserts.
type OAuthGrantModel struct {
	ID          uint           `gorm:"primarykey"`
	SID         string         `gorm:"column:sid;not null;size:32;uniqueIndex:idx_oauth_grants_sid"`
	Provider    string         `gorm:"not null;size:32;uniqueIndex:idx_oauth_grants_identity,priority:1;index:idx_oauth_grants_provider_expires,priority:1"`
	IdentityKey string         `gorm:"not null;size:191;uniqueIndex:idx_oauth_grants_identity,priority:2"`
	AccessToken string         `gorm:"not null;type:text"`
	BotToken    *string        `gorm:"type:text"`
	Scope       string         `gorm:"type:text"`
	TeamID      string         `gorm:"not null;size:64;default:''"`
	TeamName    string         `gorm:"size:255"`
	UserID      string         `gorm:"not null;size:64"`
	Metadata    datatypes.JSON `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ExpiresAt   time.Time `gorm:"not null;index:idx_oauth_grants_provider_expires,priority:2"`
}

// TableName specifies the table name for GORM
func (OAuthGrantModel) TableName() string {
	return constants.TableOAuthGrants
}
