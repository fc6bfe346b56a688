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

// DocumentGenerator renders a single contract as a printable PDF.
type DocumentGenerator interface {
	Generate(doc model.ContractDocument) ([]byte, error)
}

const (
	convertedContractTerm  = 90 * 24 * time.Hour
	convertedContractTerms = "Net 30"
)

type ContractService struct {
	contracts *repository.ContractRepository
	offers    *repository.OfferRepository
	excel     RegisterExporter
	pdf       DocumentGenerator
}

func NewContractService(
	contracts *repository.ContractRepository,
	offers *repository.OfferRepository,
	excel RegisterExporter,
	pdf DocumentGenerator,
) *ContractService {
	return &ContractService{contracts: contracts, offers: offers, excel: excel, pdf: pdf}
}

type ContractInput struct {
	Title               string
	Description         string
	ClientID            uuid.UUID
	ResponsiblePersonID uuid.UUID
	StartDate           time.Time
	EndDate             time.Time
	PaymentTerms        string
	Amount              float64
	Status              model.ContractStatus
	Notes               string
}

func (in ContractInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if in.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientId is required", ErrInvalidInput)
	}
	if in.ResponsiblePersonID == uuid.Nil {
		return fmt.Errorf("%w: responsiblePersonId is required", ErrInvalidInput)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if in.StartDate.After(in.EndDate) {
		return fmt.Errorf("%w: startDate must be before or equal to endDate", ErrInvalidInput)
	}
	if !model.ValidPaymentTerms(in.PaymentTerms) {
		return fmt.Errorf("%w: unknown payment terms %q", ErrInvalidInput, in.PaymentTerms)
	}
	if in.Amount < 0 {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidInput)
	}
	if in.Status != "" && !model.ValidContractStatus(in.Status) {
		return fmt.Errorf("%w: unknown contract status %q", ErrInvalidInput, in.Status)
	}
	return nil
}

func (in ContractInput) toModel() *model.Contract {
	return &model.Contract{
		Title:               in.Title,
		Description:         in.Description,
		ClientID:            in.ClientID,
		ResponsiblePersonID: in.ResponsiblePersonID,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		PaymentTerms:        in.PaymentTerms,
		Amount:              in.Amount,
		Status:              in.Status,
		Notes:               in.Notes,
	}
}

func (s *ContractService) List(ctx context.Context, statusFilter string) ([]model.Contract, error) {
	status, err := parseContractStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts.List(ctx, status)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return contracts, nil
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return contract, nil
}

func (s *ContractService) Create(ctx context.Context, in ContractInput) (*model.Contract, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	contract := in.toModel()
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, translateRepoError(err)
	}
	return s.Get(ctx, contract.ID)
}

// ConvertOffer turns an accepted offer into a new active contract. Field
// synthesis mirrors the manual form defaults: a 90-day term starting now
// and Net 30 payment. The offer row itself stays accepted.
func (s *ContractService) ConvertOffer(ctx context.Context, offerID uuid.UUID) (*model.Contract, *model.Offer, error) {
	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, nil, translateRepoError(err)
	}
	if offer.Status != model.OfferStatusAccepted {
		return nil, nil, fmt.Errorf("%w: only accepted offers can be converted to contracts", ErrInvalidInput)
	}

	now := time.Now()
	contract := &model.Contract{
		Title:               fmt.Sprintf("Contract based on %s", offer.Title),
		Description:         offer.Description,
		ClientID:            offer.ClientID,
		ResponsiblePersonID: offer.SalesRepID,
		StartDate:           now,
		EndDate:             now.Add(convertedContractTerm),
		PaymentTerms:        convertedContractTerms,
		Amount:              offer.Amount,
		Status:              model.ContractStatusActive,
		Notes:               fmt.Sprintf("Created from offer %s", offer.ID),
		OfferID:             &offer.ID,
	}
	if err := s.contracts.CreateForOffer(ctx, contract); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, fmt.Errorf("%w: offer %s is already converted", ErrConflict, offer.ID)
		}
		return nil, nil, translateRepoError(err)
	}

	saved, err := s.Get(ctx, contract.ID)
	if err != nil {
		return nil, nil, err
	}
	return saved, offer, nil
}

// CreateFromOffer creates a contract with caller-supplied fields bound to
// the given offer. The offer must exist, be accepted and not yet converted.
func (s *ContractService) CreateFromOffer(ctx context.Context, offerID uuid.UUID, in ContractInput) (*model.Contract, error) {
	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if offer.Status != model.OfferStatusAccepted {
		return nil, fmt.Errorf("%w: only accepted offers can be converted to contracts", ErrInvalidInput)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	contract := in.toModel()
	contract.OfferID = &offer.ID
	if err := s.contracts.CreateForOffer(ctx, contract); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: offer %s is already converted", ErrConflict, offer.ID)
		}
		return nil, translateRepoError(err)
	}
	return s.Get(ctx, contract.ID)
}

func (s *ContractService) Update(ctx context.Context, id uuid.UUID, in ContractInput) (*model.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Status != "" && in.Status != contract.Status && !contract.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w: contract %s -> %s", ErrInvalidTransition, contract.Status, in.Status)
	}

	contract.Title = in.Title
	contract.Description = in.Description
	contract.ClientID = in.ClientID
	contract.ResponsiblePersonID = in.ResponsiblePersonID
	contract.StartDate = in.StartDate
	contract.EndDate = in.EndDate
	contract.PaymentTerms = in.PaymentTerms
	contract.Amount = in.Amount
	if in.Status != "" {
		contract.Status = in.Status
	}
	contract.Notes = in.Notes
	contract.Client = nil
	contract.ResponsiblePerson = nil
	contract.Offer = nil

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, translateRepoError(err)
	}
	return s.Get(ctx, id)
}

func (s *ContractService) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (*model.Contract, error) {
	status := model.ContractStatus(raw)
	if !model.ValidContractStatus(status) {
		return nil, fmt.Errorf("%w: unknown contract status %q", ErrInvalidInput, raw)
	}

	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if status == contract.Status {
		return contract, nil
	}
	if !contract.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: contract %s -> %s", ErrInvalidTransition, contract.Status, status)
	}

	if err := s.contracts.UpdateStatus(ctx, id, status); err != nil {
		return nil, translateRepoError(err)
	}
	return s.Get(ctx, id)
}

// Close force-sets a contract to completed regardless of its prior status.
func (s *ContractService) Close(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if contract.Status == model.ContractStatusCompleted {
		return contract, nil
	}
	if err := s.contracts.UpdateStatus(ctx, id, model.ContractStatusCompleted); err != nil {
		return nil, translateRepoError(err)
	}
	return s.Get(ctx, id)
}

func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.contracts.Delete(ctx, id)
	if err != nil {
		return translateRepoError(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ContractService) ExportRegister(ctx context.Context, statusFilter string) (*ExportResult, error) {
	contracts, err := s.List(ctx, statusFilter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	content, err := s.excel.GenerateContracts(model.ContractRegister{
		GeneratedAt: now,
		Status:      statusFilter,
		Contracts:   contracts,
	})
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("contracts_register_%s.xlsx", now.Format("20060102")),
		Content:  content,
	}, nil
}

func (s *ContractService) Document(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	contract, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(model.ContractDocument{Contract: *contract})
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("contract_%s.pdf", contract.ID),
		Content:  content,
	}, nil
}

func parseContractStatusFilter(raw string) (*model.ContractStatus, error) {
	if raw == "" {
		return nil, nil
	}
	status := model.ContractStatus(raw)
	if !model.ValidContractStatus(status) {
		return nil, fmt.Errorf("%w: unknown contract status %q", ErrInvalidInput, raw)
	}
	return &status, nil
}
