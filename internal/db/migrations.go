package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'offer_status') THEN
			CREATE TYPE offer_status AS ENUM ('draft', 'sent', 'accepted', 'rejected');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('active', 'suspended', 'terminated', 'completed');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		address TEXT,
		company TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_clients_email ON clients (email);`,
	`CREATE TABLE IF NOT EXISTS sales_representatives (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_sales_representatives_email ON sales_representatives (email);`,
	`CREATE TABLE IF NOT EXISTS offers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		client_id UUID NOT NULL REFERENCES clients(id),
		sales_representative_id UUID NOT NULL REFERENCES sales_representatives(id),
		valid_from TIMESTAMPTZ NOT NULL,
		valid_until TIMESTAMPTZ NOT NULL,
		amount NUMERIC(18,2) NOT NULL CHECK (amount >= 0),
		status offer_status NOT NULL DEFAULT 'draft',
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_offers_client_id ON offers (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_offers_status ON offers (status);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		client_id UUID NOT NULL REFERENCES clients(id),
		responsible_person_id UUID NOT NULL REFERENCES sales_representatives(id),
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		payment_terms TEXT NOT NULL,
		amount NUMERIC(18,2) NOT NULL CHECK (amount >= 0),
		status contract_status NOT NULL DEFAULT 'active',
		notes TEXT,
		offer_id UUID REFERENCES offers(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON contracts (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	// Одна конвертация на оффер.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_offer_id ON contracts (offer_id) WHERE offer_id IS NOT NULL;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
