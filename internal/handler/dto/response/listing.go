package response

import (
	"time"

	"github.com/google/uuid"

	"ev-carbon-market/internal/usecase/queries"
)

type ListingResponse struct {
	ID           uuid.UUID `json:"id"`
	CreditID     uuid.UUID `json:"creditId"`
	SellerID     uuid.UUID `json:"sellerId"`
	Type         string    `json:"type"`
	Price        string    `json:"price"`
	Status       string    `json:"status"`
	CO2ReducedKg string    `json:"co2ReducedKg"`
	CreditAmount string    `json:"creditAmount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromListingView(v *queries.ListingView) *ListingResponse {
	return &ListingResponse{
		ID:           v.ID,
		CreditID:     v.CreditID,
		SellerID:     v.SellerID,
		Type:         v.Type,
		Price:        v.Price.StringFixed(2),
		Status:       v.Status,
		CO2ReducedKg: v.CO2ReducedKg.String(),
		CreditAmount: v.CreditAmount.String(),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromListingViews(views []*queries.ListingView) []*ListingResponse {
	out := make([]*ListingResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromListingView(v))
	}
	return out
}
