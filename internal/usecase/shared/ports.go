package shared

import (
	"context"

	"ev-carbon-market/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrPaymentDeclined marks any charge outcome that is not a success,
// including gateway timeouts. Callers run the compensating cancellation
// before surfacing it.
var ErrPaymentDeclined = errs.New("payment declined")

type ChargeRequest struct {
	Amount  decimal.Decimal
	PayerID uuid.UUID
	PayeeID uuid.UUID
	// Reference correlates the charge with the transaction row.
	Reference uuid.UUID
}

type ChargeResult struct {
	ProviderReference string
}

// PaymentGateway is the only external call that may block. Its outcome is
// outside this system's control; implementations range from the wire-level
// provider client to the reference simulator.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// NotificationSink is fire-and-forget: it is invoked after the state
// transition commits and must never fail the request. Implementations
// swallow and log their own errors.
type NotificationSink interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, relatedEntityID uuid.UUID)
}

// AuditSink records every lifecycle transition after it commits.
type AuditSink interface {
	Record(ctx context.Context, event string, actorID, entityID uuid.UUID, details map[string]any)
}
