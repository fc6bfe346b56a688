package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferStatus string

const (
	OfferStatusDraft    OfferStatus = "draft"
	OfferStatusSent     OfferStatus = "sent"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
)

func ValidOfferStatus(s OfferStatus) bool {
	switch s {
	case OfferStatusDraft, OfferStatusSent, OfferStatusAccepted, OfferStatusRejected:
		return true
	default:
		return false
	}
}

// Допустимые переходы статусов оффера. accepted и rejected финальные.
var offerTransitions = map[OfferStatus]map[OfferStatus]bool{
	OfferStatusDraft:    {OfferStatusSent: true, OfferStatusAccepted: true, OfferStatusRejected: true},
	OfferStatusSent:     {OfferStatusAccepted: true, OfferStatusRejected: true},
	OfferStatusAccepted: {},
	OfferStatusRejected: {},
}

func (s OfferStatus) CanTransitionTo(next OfferStatus) bool {
	allowed, ok := offerTransitions[s]
	if !ok {
		return false
	}
	return allowed[next]
}

type Offer struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string               `gorm:"not null" json:"title"`
	Description string               `gorm:"not null" json:"description"`
	ClientID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"clientId"`
	Client      *Client              `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	SalesRepID  uuid.UUID            `gorm:"column:sales_representative_id;type:uuid;not null" json:"salesRepresentativeId"`
	SalesRep    *SalesRepresentative `gorm:"foreignKey:SalesRepID" json:"salesRepresentative,omitempty"`
	ValidFrom   time.Time            `gorm:"not null" json:"validFrom"`
	ValidUntil  time.Time            `gorm:"not null" json:"validUntil"`
	Amount      float64              `gorm:"not null" json:"amount"`
	Status      OfferStatus          `gorm:"type:offer_status;not null;index" json:"status"`
	Notes       string               `json:"notes"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OfferStatusDraft
	}
	return nil
}
