// Package transaction lists transactions, builds the dashboard statistics
// report and accepts the creation stub.
package transaction

import (
	"context"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/models"
	"kycdesk/internal/repositories"
	"kycdesk/internal/repositories/query"
	"kycdesk/internal/services/scope"
	"kycdesk/internal/validation"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// LatestCount is the size of the latest-transactions section of the report.
const LatestCount = 5

// Stats is the dashboard report for one effective filter.
type Stats struct {
	TotalAmount        decimal.Decimal          `json:"totalAmount"`
	TotalTransactions  int64                    `json:"totalTransactions"`
	SuccessRate        float64                  `json:"successRate"`
	LatestTransactions []models.TransactionView `json:"latestTransactions"`
	KYCCount           int64                    `json:"kycCount"`
	KYCPending         int64                    `json:"kycPending"`
}

// CreateRequest is the body of the creation stub.
type CreateRequest struct {
	Sender   string          `json:"sender" validate:"required,uuid"`
	Receiver string          `json:"receiver" validate:"required,uuid,nefield=Sender"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"required,currency"`
}

type Service interface {
	List(ctx context.Context, p models.Principal, region, status, term string) ([]models.TransactionView, error)
	Stats(ctx context.Context, p models.Principal, region string) (*Stats, error)
	// Create validates req. Nothing is persisted.
	Create(ctx context.Context, p models.Principal, req CreateRequest) error
}

type service struct {
	txRepo  repositories.TransactionRepository
	kycRepo repositories.KYCRepository
}

func NewService(txRepo repositories.TransactionRepository, kycRepo repositories.KYCRepository) Service {
	return &service{txRepo: txRepo, kycRepo: kycRepo}
}

func (s *service) List(ctx context.Context, p models.Principal, region, status, term string) ([]models.TransactionView, error) {
	filters := scope.Effective(p, region, status)
	txs, err := s.txRepo.List(ctx, query.Query{Filters: filters, Term: term})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return txs, nil
}

// Stats recomputes the report from source on every call. The four reads are
// independent and run concurrently.
func (s *service) Stats(ctx context.Context, p models.Principal, region string) (*Stats, error) {
	// region only; status never narrows the report
	filters := scope.Effective(p, region, models.FilterAll)
	pending := filters
	pending.Status = string(models.KYCStatusPending)

	var (
		totals     repositories.TransactionTotals
		latest     []models.TransactionView
		kycCount   int64
		kycPending int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.txRepo.Totals(gctx, filters)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.txRepo.Latest(gctx, filters, LatestCount)
		return err
	})
	g.Go(func() error {
		var err error
		kycCount, err = s.kycRepo.Count(gctx, filters)
		return err
	})
	g.Go(func() error {
		var err error
		kycPending, err = s.kycRepo.Count(gctx, pending)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal(err)
	}

	if latest == nil {
		latest = []models.TransactionView{}
	}
	return &Stats{
		TotalAmount:        totals.Amount,
		TotalTransactions:  totals.Count,
		SuccessRate:        SuccessRate(totals.Completed, totals.Count),
		LatestTransactions: latest,
		KYCCount:           kycCount,
		KYCPending:         kycPending,
	}, nil
}

// SuccessRate is completed/total, or 0 when there is nothing to divide.
func SuccessRate(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

func (s *service) Create(ctx context.Context, p models.Principal, req CreateRequest) error {
	if err := validation.Struct(req, "Invalid transaction"); err != nil {
		return err
	}
	if !req.Amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	return nil
}
