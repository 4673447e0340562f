package repositories

import (
	"context"

	"kycdesk/internal/models"
	"kycdesk/internal/repositories/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KYCCases is the listing target for KYC cases.
var KYCCases = query.Collection{
	Name:        "kyc_cases",
	Refs:        []string{"User"},
	OrderColumn: "created_at",
}

// detailUserColumns are the user columns loaded for the case detail view.
var detailUserColumns = []string{"id", "name", "email", "phone", "region"}

// KYCRepository persists KYC cases.
type KYCRepository interface {
	Create(ctx context.Context, kyc *models.KYCCase) error
	List(ctx context.Context, q query.Query) ([]models.KYCCaseView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.KYCCase, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*models.KYCCaseDetail, error)
	// SetDecision overwrites status and reason.
	SetDecision(ctx context.Context, id uuid.UUID, status models.KYCStatus, reason string) error
	// AppendNote appends one note atomically.
	AppendNote(ctx context.Context, id uuid.UUID, content string) error
	Count(ctx context.Context, f models.Filters) (int64, error)
}

type kycRepository struct {
	db  *gorm.DB
	obs query.Observer
}

func NewKYCRepository(db *gorm.DB, obs query.Observer) KYCRepository {
	if obs == nil {
		obs = query.NopObserver{}
	}
	return &kycRepository{db: db, obs: obs}
}

func (r *kycRepository) Create(ctx context.Context, kyc *models.KYCCase) error {
	return translate(r.db.WithContext(ctx).Create(kyc).Error)
}

func (r *kycRepository) List(ctx context.Context, q query.Query) ([]models.KYCCaseView, error) {
	rows, err := list[models.KYCCase](ctx, r.db, KYCCases, q, r.obs)
	if err != nil {
		return nil, err
	}
	views := make([]models.KYCCaseView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].View())
	}
	return views, nil
}

func (r *kycRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.KYCCase, error) {
	var kyc models.KYCCase
	if err := r.db.WithContext(ctx).First(&kyc, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &kyc, nil
}

func (r *kycRepository) GetDetail(ctx context.Context, id uuid.UUID) (*models.KYCCaseDetail, error) {
	var kyc models.KYCCase
	err := r.db.WithContext(ctx).
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select(detailUserColumns)
		}).
		First(&kyc, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	detail := kyc.DetailView()
	return &detail, nil
}

func (r *kycRepository) SetDecision(ctx context.Context, id uuid.UUID, status models.KYCStatus, reason string) error {
	res := r.db.WithContext(ctx).
		Model(&models.KYCCase{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "reason": reason})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *kycRepository) AppendNote(ctx context.Context, id uuid.UUID, content string) error {
	res := r.db.WithContext(ctx).
		Model(&models.KYCCase{}).
		Where("id = ?", id).
		Update("notes", gorm.Expr("array_append(notes, ?)", content))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *kycRepository) Count(ctx context.Context, f models.Filters) (int64, error) {
	return count[models.KYCCase](ctx, r.db, query.Query{Filters: f})
}
