package shared

import (
	"time"

	"ev-carbon-market/internal/domain/journey"
	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshots are minimal read models for command-side validation done
// outside a write transaction.

type ListingSnapshot struct {
	ID        uuid.UUID
	CreditID  uuid.UUID
	SellerID  uuid.UUID
	Kind      listing.Type
	Price     decimal.Decimal
	Status    listing.Status
	CreatedAt time.Time
}

type TransactionSnapshot struct {
	ID        uuid.UUID
	CreditID  uuid.UUID
	ListingID uuid.UUID
	BuyerID   uuid.UUID
	SellerID  uuid.UUID
	Amount    decimal.Decimal
	Status    trade.TransactionStatus
}

type JourneySnapshot struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	DistanceKm         decimal.Decimal
	EnergyKwh          decimal.Decimal
	VerificationStatus journey.VerificationStatus
}

type StationSnapshot struct {
	ID     uuid.UUID
	Name   string
	Active bool
}
