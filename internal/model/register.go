package model

import "time"

// Register payloads feed the xlsx export in internal/excel.

type OfferRegister struct {
	GeneratedAt time.Time
	Status      string // empty means all statuses
	Offers      []Offer
}

type ContractRegister struct {
	GeneratedAt time.Time
	Status      string
	Contracts   []Contract
}

// ContractDocument feeds the printable PDF in internal/pdf.
// Client, ResponsiblePerson and Offer are expected to be expanded.
type ContractDocument struct {
	Contract Contract
}
