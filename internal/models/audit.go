package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditFailure AuditStatus = "failure"
)

// AuditLog records a privileged action.
type AuditLog struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	User      *User       `gorm:"foreignKey:UserID"`
	Action    string      `gorm:"not null"`
	Region    string      `gorm:"type:varchar(16);not null;index"`
	Status    AuditStatus `gorm:"type:varchar(16);not null;index"`
	Details   string      `gorm:"not null;default:''"`
	IPAddress string      `gorm:"type:varchar(64)"`
	UserAgent string
	Timestamp time.Time `gorm:"not null;index"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	return nil
}
