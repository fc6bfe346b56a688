package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/dealflow/internal/model"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// List returns offers sorted by recency, optionally filtered by status.
// Client and sales representative references come back expanded.
func (r *OfferRepository) List(ctx context.Context, status *model.OfferStatus) ([]model.Offer, error) {
	query := r.db.WithContext(ctx).
		Preload("Client").
		Preload("SalesRep").
		Order("updated_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var offers []model.Offer
	if err := query.Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("SalesRep").
		First(&offer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepository) Create(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *OfferRepository) Update(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

// UpdateStatus mutates only the status column (and updated_at).
func (r *OfferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OfferStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Offer{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *OfferRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Offer{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
