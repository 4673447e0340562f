package repositories

import (
	"context"

	"kycdesk/internal/models"
	"kycdesk/internal/repositories/query"

	"gorm.io/gorm"
)

// AuditLogs is the listing target for audit entries.
var AuditLogs = query.Collection{
	Name:        "audit_logs",
	Refs:        []string{"User"},
	OrderColumn: "timestamp",
}

type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, q query.Query) ([]models.AuditLogView, error)
}

type auditRepository struct {
	db  *gorm.DB
	obs query.Observer
}

func NewAuditRepository(db *gorm.DB, obs query.Observer) AuditRepository {
	if obs == nil {
		obs = query.NopObserver{}
	}
	return &auditRepository{db: db, obs: obs}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *auditRepository) List(ctx context.Context, q query.Query) ([]models.AuditLogView, error) {
	rows, err := list[models.AuditLog](ctx, r.db, AuditLogs, q, r.obs)
	if err != nil {
		return nil, err
	}
	views := make([]models.AuditLogView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].View())
	}
	return views, nil
}
