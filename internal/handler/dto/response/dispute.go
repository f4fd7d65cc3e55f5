package response

import (
	"time"

	"github.com/google/uuid"

	"ev-carbon-market/internal/usecase/queries"
)

type DisputeResponse struct {
	ID            uuid.UUID  `json:"id"`
	TransactionID uuid.UUID  `json:"transactionId"`
	RaisedByID    uuid.UUID  `json:"raisedById"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	Resolution    *string    `json:"resolution,omitempty"`
	ResolvedByID  *uuid.UUID `json:"resolvedById,omitempty"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func FromDisputeView(v *queries.DisputeView) *DisputeResponse {
	return &DisputeResponse{
		ID:            v.ID,
		TransactionID: v.TransactionID,
		RaisedByID:    v.RaisedByID,
		Reason:        v.Reason,
		Status:        v.Status,
		Resolution:    v.Resolution,
		ResolvedByID:  v.ResolvedByID,
		ResolvedAt:    v.ResolvedAt,
		CreatedAt:     v.CreatedAt,
	}
}

func FromDisputeViews(views []*queries.DisputeView) []*DisputeResponse {
	out := make([]*DisputeResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromDisputeView(v))
	}
	return out
}
