package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/dealflow/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) List(ctx context.Context, status *model.ContractStatus) ([]model.Contract, error) {
	query := r.db.WithContext(ctx).
		Preload("Client").
		Preload("ResponsiblePerson").
		Preload("Offer").
		Order("updated_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var contracts []model.Contract
	if err := query.Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("ResponsiblePerson").
		Preload("Offer").
		First(&contract, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// CreateForOffer inserts a contract converted from an offer. The duplicate
// check and the insert run in one transaction; a second conversion attempt
// surfaces as gorm.ErrDuplicatedKey. The unique index on offer_id backs
// this against concurrent callers.
func (r *ContractRepository) CreateForOffer(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Contract{}).
			Where("offer_id = ?", contract.OfferID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(contract).Error
	})
}

func (r *ContractRepository) Update(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *ContractRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ContractStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Contract{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Contract{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
