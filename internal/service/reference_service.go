package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nurpe/dealflow/internal/model"
	"github.com/nurpe/dealflow/internal/repository"
)

// ReferenceService covers the client roster and the sales representative
// directory. Both are plain CRUD with unique emails.
type ReferenceService struct {
	clients *repository.ClientRepository
	reps    *repository.SalesRepRepository
}

func NewReferenceService(clients *repository.ClientRepository, reps *repository.SalesRepRepository) *ReferenceService {
	return &ReferenceService{clients: clients, reps: reps}
}

type ClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Company string
}

func (in ClientInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return nil
}

func (s *ReferenceService) ListClients(ctx context.Context) ([]model.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return clients, nil
}

func (s *ReferenceService) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return client, nil
}

func (s *ReferenceService) CreateClient(ctx context.Context, in ClientInput) (*model.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	client := &model.Client{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		Company: in.Company,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, translateRepoError(err)
	}
	return client, nil
}

func (s *ReferenceService) UpdateClient(ctx context.Context, id uuid.UUID, in ClientInput) (*model.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.Company = in.Company
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, translateRepoError(err)
	}
	return client, nil
}

func (s *ReferenceService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	rows, err := s.clients.Delete(ctx, id)
	if err != nil {
		return translateRepoError(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

type SalesRepInput struct {
	Name  string
	Email string
}

func (in SalesRepInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return nil
}

func (s *ReferenceService) ListSalesReps(ctx context.Context) ([]model.SalesRepresentative, error) {
	reps, err := s.reps.List(ctx)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return reps, nil
}

func (s *ReferenceService) GetSalesRep(ctx context.Context, id uuid.UUID) (*model.SalesRepresentative, error) {
	rep, err := s.reps.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return rep, nil
}

func (s *ReferenceService) CreateSalesRep(ctx context.Context, in SalesRepInput) (*model.SalesRepresentative, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	rep := &model.SalesRepresentative{Name: in.Name, Email: in.Email}
	if err := s.reps.Create(ctx, rep); err != nil {
		return nil, translateRepoError(err)
	}
	return rep, nil
}

func (s *ReferenceService) UpdateSalesRep(ctx context.Context, id uuid.UUID, in SalesRepInput) (*model.SalesRepresentative, error) {
	rep, err := s.reps.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	rep.Name = in.Name
	rep.Email = in.Email
	if err := s.reps.Update(ctx, rep); err != nil {
		return nil, translateRepoError(err)
	}
	return rep, nil
}

func (s *ReferenceService) DeleteSalesRep(ctx context.Context, id uuid.UUID) error {
	rows, err := s.reps.Delete(ctx, id)
	if err != nil {
		return translateRepoError(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
