package response

import (
	"time"

	"github.com/google/uuid"

	"ev-carbon-market/internal/usecase/commands"
	"ev-carbon-market/internal/usecase/queries"
)

type TransactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	CreditID    uuid.UUID  `json:"creditId"`
	ListingID   uuid.UUID  `json:"listingId"`
	BuyerID     uuid.UUID  `json:"buyerId"`
	SellerID    uuid.UUID  `json:"sellerId"`
	Amount      string     `json:"amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type PurchaseResponse struct {
	TransactionID uuid.UUID `json:"transactionId"`
	Completed     bool      `json:"completed"`
}

func FromTransactionView(v *queries.TransactionView) *TransactionResponse {
	return &TransactionResponse{
		ID:          v.ID,
		CreditID:    v.CreditID,
		ListingID:   v.ListingID,
		BuyerID:     v.BuyerID,
		SellerID:    v.SellerID,
		Amount:      v.Amount.StringFixed(2),
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		CompletedAt: v.CompletedAt,
	}
}

func FromTransactionViews(views []*queries.TransactionView) []*TransactionResponse {
	out := make([]*TransactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromTransactionView(v))
	}
	return out
}

func FromPurchaseResult(r *commands.PurchaseResult) *PurchaseResponse {
	return &PurchaseResponse{
		TransactionID: r.TransactionID,
		Completed:     r.Completed,
	}
}
