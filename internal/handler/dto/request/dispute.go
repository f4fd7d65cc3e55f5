package request

import "github.com/google/uuid"

type CreateDisputeRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" binding:"required"`
	Reason        string    `json:"reason" binding:"required"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}
