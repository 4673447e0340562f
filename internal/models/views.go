package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserSummary is the safe projection of a referenced user in list views.
type UserSummary struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// UserDetail widens UserSummary for detail views.
type UserDetail struct {
	UserSummary
	Phone  *string `json:"phone"`
	Region string  `json:"region"`
}

type KYCCaseView struct {
	ID        uuid.UUID    `json:"_id"`
	User      *UserSummary `json:"user"`
	Status    KYCStatus    `json:"status"`
	Region    string       `json:"region"`
	Reason    string       `json:"reason"`
	Notes     []string     `json:"notes"`
	Documents Documents    `json:"documents"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type KYCCaseDetail struct {
	KYCCaseView
	User *UserDetail `json:"user"`
}

type TransactionView struct {
	ID        uuid.UUID         `json:"_id"`
	Sender    *UserSummary      `json:"sender"`
	Receiver  *UserSummary      `json:"receiver"`
	Amount    decimal.Decimal   `json:"amount"`
	Currency  string            `json:"currency"`
	Status    TransactionStatus `json:"status"`
	Region    string            `json:"region"`
	Timestamp time.Time         `json:"timestamp"`
}

type AuditLogView struct {
	ID        uuid.UUID    `json:"_id"`
	User      *UserSummary `json:"user"`
	Action    string       `json:"action"`
	Region    string       `json:"region"`
	Status    AuditStatus  `json:"status"`
	Details   string       `json:"details"`
	IPAddress string       `json:"ipAddress,omitempty"`
	UserAgent string       `json:"userAgent,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Summary projects u; a missing user renders as null.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (u *User) Detail() *UserDetail {
	if u == nil {
		return nil
	}
	return &UserDetail{UserSummary: *u.Summary(), Phone: u.Phone, Region: u.Region}
}

func (k *KYCCase) View() KYCCaseView {
	notes := []string(k.Notes)
	if notes == nil {
		notes = []string{}
	}
	return KYCCaseView{
		ID:        k.ID,
		User:      k.User.Summary(),
		Status:    k.Status,
		Region:    k.Region,
		Reason:    k.Reason,
		Notes:     notes,
		Documents: k.Documents,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

func (k *KYCCase) DetailView() KYCCaseDetail {
	return KYCCaseDetail{KYCCaseView: k.View(), User: k.User.Detail()}
}

func (t *Transaction) View() TransactionView {
	return TransactionView{
		ID:        t.ID,
		Sender:    t.Sender.Summary(),
		Receiver:  t.Receiver.Summary(),
		Amount:    t.Amount,
		Currency:  t.Currency,
		Status:    t.Status,
		Region:    t.Region,
		Timestamp: t.Timestamp,
	}
}

func (a *AuditLog) View() AuditLogView {
	return AuditLogView{
		ID:        a.ID,
		User:      a.User.Summary(),
		Action:    a.Action,
		Region:    a.Region,
		Status:    a.Status,
		Details:   a.Details,
		IPAddress: a.IPAddress,
		UserAgent: a.UserAgent,
		Timestamp: a.Timestamp,
	}
}
