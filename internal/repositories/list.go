package repositories

import (
	"context"
	"time"

	"kycdesk/internal/repositories/query"

	"gorm.io/gorm"
)

// list runs a scoped listing for model type T.
func list[T any](ctx context.Context, db *gorm.DB, c query.Collection, q query.Query, obs query.Observer) ([]T, error) {
	start := time.Now()

	var rows []T
	tx, strategy := query.Build(db.WithContext(ctx).Model(new(T)), c, q)
	err := tx.Find(&rows).Error

	if obs != nil {
		obs.ObserveQuery(c.Name, strategy, time.Since(start))
	}
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// count counts rows of T matching the equality filters only.
func count[T any](ctx context.Context, db *gorm.DB, q query.Query) (int64, error) {
	var n int64
	err := query.Where(db.WithContext(ctx).Model(new(T)), q.Filters).Count(&n).Error
	return n, translate(err)
}
