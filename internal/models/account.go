package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	GoogleID  string     `json:"google_id" gorm:"uniqueIndex;not null"` // provider subject id
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Name      *string    `json:"name"`
	AvatarURL *string    `json:"avatar_url"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	LastLogin *time.Time `json:"last_login"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
