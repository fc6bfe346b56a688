package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/dealflow/internal/model"
	"github.com/nurpe/dealflow/internal/repository"
)

// RegisterExporter renders offer/contract registers as xlsx.
type RegisterExporter interface {
	GenerateOffers(register model.OfferRegister) ([]byte, error)
	GenerateContracts(register model.ContractRegister) ([]byte, error)
}

type ExportResult struct {
	FileName string
	Content  []byte
}

type OfferService struct {
	repo  *repository.OfferRepository
	excel RegisterExporter
}

func NewOfferService(repo *repository.OfferRepository, excel RegisterExporter) *OfferService {
	return &OfferService{repo: repo, excel: excel}
}

type OfferInput struct {
	Title       string
	Description string
	ClientID    uuid.UUID
	SalesRepID  uuid.UUID
	ValidFrom   time.Time
	ValidUntil  time.Time
	Amount      float64
	Status      model.OfferStatus
	Notes       string
}

func (in OfferInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if in.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientId is required", ErrInvalidInput)
	}
	if in.SalesRepID == uuid.Nil {
		return fmt.Errorf("%w: salesRepresentativeId is required", ErrInvalidInput)
	}
	if in.ValidFrom.IsZero() || in.ValidUntil.IsZero() {
		return fmt.Errorf("%w: validity window is required", ErrInvalidInput)
	}
	if in.ValidFrom.After(in.ValidUntil) {
		return fmt.Errorf("%w: validFrom must be before or equal to validUntil", ErrInvalidInput)
	}
	if in.Amount < 0 {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidInput)
	}
	if in.Status != "" && !model.ValidOfferStatus(in.Status) {
		return fmt.Errorf("%w: unknown offer status %q", ErrInvalidInput, in.Status)
	}
	return nil
}

func (s *OfferService) List(ctx context.Context, statusFilter string) ([]model.Offer, error) {
	status, err := parseOfferStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	offers, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return offers, nil
}

func (s *OfferService) Get(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	offer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return offer, nil
}

func (s *OfferService) Create(ctx context.Context, in OfferInput) (*model.Offer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	offer := &model.Offer{
		Title:       in.Title,
		Description: in.Description,
		ClientID:    in.ClientID,
		SalesRepID:  in.SalesRepID,
		ValidFrom:   in.ValidFrom,
		ValidUntil:  in.ValidUntil,
		Amount:      in.Amount,
		Status:      in.Status,
		Notes:       in.Notes,
	}
	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, translateRepoError(err)
	}
	return s.Get(ctx, offer.ID)
}

func (s *OfferService) Update(ctx context.Context, id uuid.UUID, in OfferInput) (*model.Offer, error) {
	offer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Status != "" && in.Status != offer.Status && !offer.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w: offer %s -> %s", ErrInvalidTransition, offer.Status, in.Status)
	}

	offer.Title = in.Title
	offer.Description = in.Description
	offer.ClientID = in.ClientID
	offer.SalesRepID = in.SalesRepID
	offer.ValidFrom = in.ValidFrom
	offer.ValidUntil = in.ValidUntil
	offer.Amount = in.Amount
	if in.Status != "" {
		offer.Status = in.Status
	}
	offer.Notes = in.Notes
	offer.Client = nil
	offer.SalesRep = nil

	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, translateRepoError(err)
	}
	return s.Get(ctx, id)
}

func (s *OfferService) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (*model.Offer, error) {
	status := model.OfferStatus(raw)
	if !model.ValidOfferStatus(status) {
		return nil, fmt.Errorf("%w: unknown offer status %q", ErrInvalidInput, raw)
	}

	offer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if status == offer.Status {
		return offer, nil
	}
	if !offer.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: offer %s -> %s", ErrInvalidTransition, offer.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, translateRepoError(err)
	}
	return s.Get(ctx, id)
}

func (s *OfferService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return translateRepoError(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *OfferService) ExportRegister(ctx context.Context, statusFilter string) (*ExportResult, error) {
	offers, err := s.List(ctx, statusFilter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	content, err := s.excel.GenerateOffers(model.OfferRegister{
		GeneratedAt: now,
		Status:      statusFilter,
		Offers:      offers,
	})
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("offers_register_%s.xlsx", now.Format("20060102")),
		Content:  content,
	}, nil
}

func parseOfferStatusFilter(raw string) (*model.OfferStatus, error) {
	if raw == "" {
		return nil, nil
	}
	status := model.OfferStatus(raw)
	if !model.ValidOfferStatus(status) {
		return nil, fmt.Errorf("%w: unknown offer status %q", ErrInvalidInput, raw)
	}
	return &status, nil
}

func translateRepoError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: reference does not resolve", ErrInvalidInput)
	default:
		return err
	}
}
