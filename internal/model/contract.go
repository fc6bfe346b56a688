package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusSuspended  ContractStatus = "suspended"
	ContractStatusTerminated ContractStatus = "terminated"
	ContractStatusCompleted  ContractStatus = "completed"
)

func ValidContractStatus(s ContractStatus) bool {
	switch s {
	case ContractStatusActive, ContractStatusSuspended, ContractStatusTerminated, ContractStatusCompleted:
		return true
	default:
		return false
	}
}

var contractTransitions = map[ContractStatus]map[ContractStatus]bool{
	ContractStatusActive:     {ContractStatusSuspended: true, ContractStatusTerminated: true, ContractStatusCompleted: true},
	ContractStatusSuspended:  {ContractStatusActive: true, ContractStatusTerminated: true},
	ContractStatusTerminated: {},
	ContractStatusCompleted:  {},
}

func (s ContractStatus) CanTransitionTo(next ContractStatus) bool {
	allowed, ok := contractTransitions[s]
	if !ok {
		return false
	}
	return allowed[next]
}

// PaymentTerms ограничены фиксированным набором вариантов из формы.
var PaymentTermsOptions = []string{"Net 15", "Net 30", "Net 45", "Net 60", "Due on receipt"}

func ValidPaymentTerms(terms string) bool {
	for _, option := range PaymentTermsOptions {
		if terms == option {
			return true
		}
	}
	return false
}

type Contract struct {
	ID                  uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	Title               string               `gorm:"not null" json:"title"`
	Description         string               `gorm:"not null" json:"description"`
	ClientID            uuid.UUID            `gorm:"type:uuid;not null;index" json:"clientId"`
	Client              *Client              `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ResponsiblePersonID uuid.UUID            `gorm:"type:uuid;not null" json:"responsiblePersonId"`
	ResponsiblePerson   *SalesRepresentative `gorm:"foreignKey:ResponsiblePersonID" json:"responsiblePerson,omitempty"`
	StartDate           time.Time            `gorm:"not null" json:"startDate"`
	EndDate             time.Time            `gorm:"not null" json:"endDate"`
	PaymentTerms        string               `gorm:"not null" json:"paymentTerms"`
	Amount              float64              `gorm:"not null" json:"amount"`
	Status              ContractStatus       `gorm:"type:contract_status;not null;index" json:"status"`
	Notes               string               `json:"notes"`
	OfferID             *uuid.UUID           `gorm:"type:uuid;uniqueIndex" json:"offerId,omitempty"`
	Offer               *Offer               `gorm:"foreignKey:OfferID" json:"offer,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ContractStatusActive
	}
	return nil
}
