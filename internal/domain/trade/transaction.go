package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the audit trail of a purchase attempt. It is created
// PENDING and never deleted; every outcome, including dispute reversals,
// is a status transition on the same row.
type Transaction struct {
	id          uuid.UUID
	creditID    uuid.UUID
	listingID   uuid.UUID
	buyerID     uuid.UUID
	sellerID    uuid.UUID
	amount      decimal.Decimal
	status      TransactionStatus
	createdAt   time.Time
	completedAt *time.Time
}

func NewTransaction(creditID, listingID, buyerID, sellerID uuid.UUID, amount decimal.Decimal, now time.Time) *Transaction {
	return &Transaction{
		id:        uuid.New(),
		creditID:  creditID,
		listingID: listingID,
		buyerID:   buyerID,
		sellerID:  sellerID,
		amount:    amount,
		status:    TransactionPending,
		createdAt: now,
	}
}

func ReconstructTransaction(
	id, creditID, listingID, buyerID, sellerID uuid.UUID,
	amount decimal.Decimal,
	status TransactionStatus,
	createdAt time.Time,
	completedAt *time.Time,
) *Transaction {
	return &Transaction{
		id:          id,
		creditID:    creditID,
		listingID:   listingID,
		buyerID:     buyerID,
		sellerID:    sellerID,
		amount:      amount,
		status:      status,
		createdAt:   createdAt,
		completedAt: completedAt,
	}
}

// Complete settles the purchase: PENDING or DISPUTED -> COMPLETED.
func (t *Transaction) Complete(now time.Time) error {
	if t.status != TransactionPending && t.status != TransactionDisputed {
		return t.transitionErr(TransactionCompleted)
	}
	t.status = TransactionCompleted
	t.completedAt = &now
	return nil
}

// Cancel is the compensating action after a failed or reverted payment:
// PENDING or DISPUTED -> CANCELLED.
func (t *Transaction) Cancel() error {
	if t.status != TransactionPending && t.status != TransactionDisputed {
		return t.transitionErr(TransactionCancelled)
	}
	t.status = TransactionCancelled
	t.completedAt = nil
	return nil
}

// MarkDisputed freezes a COMPLETED or PENDING purchase while a dispute is
// open.
func (t *Transaction) MarkDisputed() error {
	if t.status != TransactionCompleted && t.status != TransactionPending {
		return t.transitionErr(TransactionDisputed)
	}
	t.status = TransactionDisputed
	return nil
}

// Redispute re-freezes a resolved transaction when its dispute is reopened.
func (t *Transaction) Redispute() error {
	if t.status != TransactionCompleted && t.status != TransactionCancelled {
		return t.transitionErr(TransactionDisputed)
	}
	t.status = TransactionDisputed
	return nil
}

func (t *Transaction) transitionErr(target TransactionStatus) error {
	return fmt.Errorf("%w: transaction %s is %s, cannot move to %s",
		ErrInvalidStateTransition, t.id, t.status, target)
}

func (t *Transaction) Involves(userID uuid.UUID) bool {
	return t.buyerID == userID || t.sellerID == userID
}

func (t *Transaction) ID() uuid.UUID            { return t.id }
func (t *Transaction) CreditID() uuid.UUID      { return t.creditID }
func (t *Transaction) ListingID() uuid.UUID     { return t.listingID }
func (t *Transaction) BuyerID() uuid.UUID       { return t.buyerID }
func (t *Transaction) SellerID() uuid.UUID      { return t.sellerID }
func (t *Transaction) Amount() decimal.Decimal  { return t.amount }
func (t *Transaction) Status() TransactionStatus { return t.status }
func (t *Transaction) CreatedAt() time.Time     { return t.createdAt }
func (t *Transaction) CompletedAt() *time.Time  { return t.completedAt }
