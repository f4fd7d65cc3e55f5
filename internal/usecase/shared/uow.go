package shared

import (
	"context"

	"ev-carbon-market/internal/domain/credit"
	"ev-carbon-market/internal/domain/journey"
	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitOfWork is the transactional boundary for every multi-entity
// transition. Within runs fn inside one database transaction; any error
// rolls everything back, so a transition is either fully applied or not
// visible at all.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: snapshot access for validation outside a write transaction
	Reads() CommandReads
}

type Tx interface {
	Credits() CreditRepository
	Listings() ListingRepository
	Transactions() TransactionRepository
	Disputes() DisputeRepository
	Journeys() JourneyRepository
	Inspections() InspectionRepository
	Stations() StationRepository
	Wallets() WalletRepository
}

type CommandReads interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*ListingSnapshot, error)
	TransactionByID(ctx context.Context, id uuid.UUID) (*TransactionSnapshot, error)
	JourneyByID(ctx context.Context, id uuid.UUID) (*JourneySnapshot, error)
}

type CreditRepository interface {
	Create(ctx context.Context, c *credit.Credit) error
	FindByID(ctx context.Context, id uuid.UUID) (*credit.Credit, error)
	FindByJourneyID(ctx context.Context, journeyID uuid.UUID) (*credit.Credit, error)
	// Save persists status, amount and verification/listing timestamps.
	Save(ctx context.Context, c *credit.Credit) error
}

type ListingRepository interface {
	Create(ctx context.Context, l *listing.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	// HasOpenForCredit reports an ACTIVE or PENDING_TRANSACTION listing.
	HasOpenForCredit(ctx context.Context, creditID uuid.UUID) (bool, error)
	// TransitionStatus is a compare-and-swap: the update only applies while
	// the row still holds from; otherwise it fails with a conflict and no
	// write happens. This is the sole double-purchase guard.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to listing.Status) error
	UpdatePrice(ctx context.Context, id uuid.UUID, price listing.Price) error
}

type TransactionRepository interface {
	Create(ctx context.Context, t *trade.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*trade.Transaction, error)
	Save(ctx context.Context, t *trade.Transaction) error
}

type DisputeRepository interface {
	Create(ctx context.Context, d *trade.Dispute) error
	FindByID(ctx context.Context, id uuid.UUID) (*trade.Dispute, error)
	HasOpenForTransaction(ctx context.Context, transactionID uuid.UUID) (bool, error)
	Save(ctx context.Context, d *trade.Dispute) error
}

type JourneyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JourneySnapshot, error)
	// TransitionVerificationStatus is status-guarded like listing CAS.
	TransitionVerificationStatus(ctx context.Context, id uuid.UUID, from, to journey.VerificationStatus) error
}

type InspectionRepository interface {
	Create(ctx context.Context, a *journey.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*journey.Appointment, error)
	FindByJourneyID(ctx context.Context, journeyID uuid.UUID) (*journey.Appointment, error)
	Save(ctx context.Context, a *journey.Appointment) error
}

type StationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StationSnapshot, error)
}

// WalletRepository is the credit-balance ledger. It joins the same
// transaction as the state transition that pays out, so a verified credit
// and its wallet payout commit or roll back together.
type WalletRepository interface {
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
}
