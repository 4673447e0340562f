package repositories

import (
	"context"

	"kycdesk/internal/models"
	"kycdesk/internal/repositories/query"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transactions is the listing target for transactions.
var Transactions = query.Collection{
	Name:        "transactions",
	Refs:        []string{"Sender", "Receiver"},
	OrderColumn: "timestamp",
}

// TransactionTotals aggregates the transactions matching a filter.
type TransactionTotals struct {
	Amount    decimal.Decimal
	Count     int64
	Completed int64
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	List(ctx context.Context, q query.Query) ([]models.TransactionView, error)
	// Latest returns the n most recent matching transactions.
	Latest(ctx context.Context, f models.Filters, n int) ([]models.TransactionView, error)
	Totals(ctx context.Context, f models.Filters) (TransactionTotals, error)
}

type transactionRepository struct {
	db  *gorm.DB
	obs query.Observer
}

func NewTransactionRepository(db *gorm.DB, obs query.Observer) TransactionRepository {
	if obs == nil {
		obs = query.NopObserver{}
	}
	return &transactionRepository{db: db, obs: obs}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return translate(r.db.WithContext(ctx).Create(tx).Error)
}

func (r *transactionRepository) List(ctx context.Context, q query.Query) ([]models.TransactionView, error) {
	rows, err := list[models.Transaction](ctx, r.db, Transactions, q, r.obs)
	if err != nil {
		return nil, err
	}
	views := make([]models.TransactionView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].View())
	}
	return views, nil
}

func (r *transactionRepository) Latest(ctx context.Context, f models.Filters, n int) ([]models.TransactionView, error) {
	return r.List(ctx, query.Query{Filters: f, OrderDesc: true, Limit: n})
}

func (r *transactionRepository) Totals(ctx context.Context, f models.Filters) (TransactionTotals, error) {
	var row struct {
		Amount    decimal.Decimal
		Count     int64
		Completed int64
	}
	err := query.Where(r.db.WithContext(ctx).Model(&models.Transaction{}), f).
		Select(
			"COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count, "+
				"COUNT(*) FILTER (WHERE status = ?) AS completed",
			models.TransactionCompleted,
		).
		Scan(&row).Error
	if err != nil {
		return TransactionTotals{}, translate(err)
	}
	return TransactionTotals(row), nil
}
