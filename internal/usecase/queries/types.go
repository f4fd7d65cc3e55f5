package queries

import (
	"time"

	"ev-carbon-market/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPage       = errs.New("page must be zero or positive")
	ErrInvalidPageSize   = errs.New("page size must be between 1 and 100")
	ErrInvalidSortKey    = errs.New("invalid sort key")
	ErrInvalidPriceRange = errs.New("invalid price range")
)

const MaxPageSize = 100

// Read models (DTO for read side)

type ListingView struct {
	ID           uuid.UUID       `json:"id"`
	CreditID     uuid.UUID       `json:"credit_id"`
	SellerID     uuid.UUID       `json:"seller_id"`
	Type         string          `json:"type"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
	CO2ReducedKg decimal.Decimal `json:"co2_reduced_kg"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type TransactionView struct {
	ID          uuid.UUID       `json:"id"`
	CreditID    uuid.UUID       `json:"credit_id"`
	ListingID   uuid.UUID       `json:"listing_id"`
	BuyerID     uuid.UUID       `json:"buyer_id"`
	SellerID    uuid.UUID       `json:"seller_id"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

type DisputeView struct {
	ID            uuid.UUID  `json:"id"`
	TransactionID uuid.UUID  `json:"transaction_id"`
	RaisedByID    uuid.UUID  `json:"raised_by_id"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	Resolution    *string    `json:"resolution,omitempty"`
	ResolvedByID  *uuid.UUID `json:"resolved_by_id,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SortKey orders marketplace listing queries.
type SortKey string

const (
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortCO2Asc    SortKey = "co2_asc"
	SortCO2Desc   SortKey = "co2_desc"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortPriceAsc, SortPriceDesc, SortCO2Asc, SortCO2Desc, SortNewest, SortOldest:
		return true
	default:
		return false
	}
}

// PageRequest is offset pagination: page is zero-based, size bounded.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return ErrInvalidPage
	}
	if p.Size <= 0 || p.Size > MaxPageSize {
		return ErrInvalidPageSize
	}
	return nil
}

func (p PageRequest) Offset() int32 {
	return int32(p.Page * p.Size)
}

func (p PageRequest) Limit() int32 {
	return int32(p.Size)
}

// PriceRange filters marketplace searches; either bound may be nil.
type PriceRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

func (r PriceRange) Validate() error {
	if r.Min != nil && r.Min.IsNegative() {
		return ErrInvalidPriceRange
	}
	if r.Max != nil && r.Max.IsNegative() {
		return ErrInvalidPriceRange
	}
	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max) {
		return ErrInvalidPriceRange
	}
	return nil
}
