package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusApproved KYCStatus = "approved"
	KYCStatusRejected KYCStatus = "rejected"
)

// Documents are opaque references to uploaded files.
type Documents struct {
	IDFront        string `gorm:"column:id_front;not null" json:"id_front"`
	IDBack         string `gorm:"column:id_back;not null" json:"id_back"`
	ProofOfAddress string `gorm:"column:proof_of_address;not null" json:"proof_of_address"`
}

// KYCCase is a verification request owned by one user. Region is a snapshot
// of the owner's region taken when the case is created; later changes to the
// user do not propagate.
type KYCCase struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	User      *User          `gorm:"foreignKey:UserID"`
	Status    KYCStatus      `gorm:"type:varchar(16);not null;default:'pending';index"`
	Region    string         `gorm:"type:varchar(16);not null;index"`
	Documents Documents      `gorm:"embedded;embeddedPrefix:doc_"`
	Reason    string         `gorm:"not null;default:''"`
	Notes     pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KYCCase) TableName() string { return "kyc_cases" }

func (k *KYCCase) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	if k.Notes == nil {
		k.Notes = pq.StringArray{}
	}
	return nil
}
