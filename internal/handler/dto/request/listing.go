package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateListingRequest struct {
	CreditID uuid.UUID `json:"credit_id" binding:"required"`
	// Price is a decimal string ("12.50") to avoid float drift in transit.
	Price string `json:"price" binding:"required"`
}

func (r CreateListingRequest) ParsedPrice() (decimal.Decimal, error) {
	return decimal.NewFromString(r.Price)
}

type UpdateListingPriceRequest struct {
	Price string `json:"price" binding:"required"`
}

func (r UpdateListingPriceRequest) ParsedPrice() (decimal.Decimal, error) {
	return decimal.NewFromString(r.Price)
}
