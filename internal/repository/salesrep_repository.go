package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/dealflow/internal/model"
)

type SalesRepRepository struct {
	db *gorm.DB
}

func NewSalesRepRepository(db *gorm.DB) *SalesRepRepository {
	return &SalesRepRepository{db: db}
}

func (r *SalesRepRepository) List(ctx context.Context) ([]model.SalesRepresentative, error) {
	var reps []model.SalesRepresentative
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&reps).Error; err != nil {
		return nil, err
	}
	return reps, nil
}

func (r *SalesRepRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SalesRepresentative, error) {
	var rep model.SalesRepresentative
	if err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *SalesRepRepository) GetByEmail(ctx context.Context, email string) (*model.SalesRepresentative, error) {
	var rep model.SalesRepresentative
	if err := r.db.WithContext(ctx).First(&rep, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *SalesRepRepository) Create(ctx context.Context, rep *model.SalesRepresentative) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *SalesRepRepository) Update(ctx context.Context, rep *model.SalesRepresentative) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *SalesRepRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.SalesRepresentative{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
