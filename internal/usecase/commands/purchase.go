package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/pkg/clock"
	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/usecase/shared"
)

var (
	ErrListingNotFound         = errs.New("listing not found")
	ErrListingNotActive        = errs.New("listing is not active")
	ErrListingNotFixedPrice    = errs.New("listing is not a fixed-price listing")
	ErrListingUnavailable      = errs.New("listing was reserved by another buyer")
	ErrBuyerIsSeller           = errs.New("buyer cannot purchase own listing")
	ErrTransactionNotFound     = errs.New("transaction not found")
	ErrTransactionNotParty     = errs.New("requester is not a party to the transaction")
	ErrUnauthorizedOperation   = errs.New("operation not permitted for role")
	ErrTransactionNotCancelled = errs.New("transaction cannot be cancelled in its current status")
)

type PurchaseResult struct {
	TransactionID uuid.UUID
	Completed     bool
}

type TransactionCommands interface {
	InitiatePurchase(ctx context.Context, listingID uuid.UUID, buyerID uuid.UUID, buyerRole user.Role) (*PurchaseResult, error)
	CancelTransaction(ctx context.Context, transactionID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
}

type transactionCommandsImpl struct {
	uow           shared.UnitOfWork
	gateway       shared.PaymentGateway
	clk           clock.Clock
	audit         shared.AuditSink
	notifier      shared.NotificationSink
	chargeTimeout time.Duration
}

func NewTransactionCommands(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	clk clock.Clock,
	audit shared.AuditSink,
	notifier shared.NotificationSink,
	chargeTimeout time.Duration,
) TransactionCommands {
	return &transactionCommandsImpl{
		uow:           uow,
		gateway:       gateway,
		clk:           clk,
		audit:         audit,
		notifier:      notifier,
		chargeTimeout: chargeTimeout,
	}
}

// InitiatePurchase reserves the listing, charges the buyer outside of any
// database transaction, then finalizes. The reservation (ACTIVE ->
// PENDING_TRANSACTION) is a compare-and-set, so two concurrent buyers race
// on the status column and exactly one wins.
func (uc *transactionCommandsImpl) InitiatePurchase(
	ctx context.Context,
	listingID uuid.UUID,
	buyerID uuid.UUID,
	buyerRole user.Role,
) (*PurchaseResult, error) {
	if !user.CanPerform(buyerRole, user.ActionPurchaseListing) {
		return nil, ErrUnauthorizedOperation
	}

	snap, err := uc.uow.Reads().ListingByID(ctx, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrListingNotFound)
		}
		return nil, errs.Wrap(err, "failed to load listing")
	}
	if snap.Kind != listing.TypeFixed {
		return nil, ErrListingNotFixedPrice
	}
	if snap.Status != listing.StatusActive {
		return nil, ErrListingNotActive
	}
	if snap.SellerID == buyerID {
		return nil, ErrBuyerIsSeller
	}

	txn := trade.NewTransaction(snap.CreditID, listingID, buyerID, snap.SellerID, snap.Price, uc.clk.Now())

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Listings().TransitionStatus(ctx, listingID, listing.StatusActive, listing.StatusPendingTransaction); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrListingUnavailable)
			}
			return errs.Wrap(err, "failed to reserve listing")
		}
		return tx.Transactions().Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	chargeCtx, cancel := context.WithTimeout(ctx, uc.chargeTimeout)
	defer cancel()
	_, chargeErr := uc.gateway.Charge(chargeCtx, shared.ChargeRequest{
		Amount:    snap.Price,
		PayerID:   buyerID,
		PayeeID:   snap.SellerID,
		Reference: txn.ID(),
	})

	if chargeErr != nil {
		if ferr := uc.finalize(ctx, txn.ID(), revertTransaction); ferr != nil {
			return nil, errs.Wrap(ferr, "failed to release listing after declined payment")
		}
		uc.audit.Record(ctx, "transaction.cancelled", buyerID, txn.ID(), map[string]any{
			"reason": "payment_failed",
		})
		uc.notifier.Notify(ctx, buyerID, "Purchase failed", "Payment was declined and the listing was released.", txn.ID())
		return &PurchaseResult{TransactionID: txn.ID(), Completed: false},
			errs.Mark(chargeErr, shared.ErrPaymentDeclined)
	}

	if err := uc.finalize(ctx, txn.ID(), settleTransaction); err != nil {
		return nil, errs.Wrap(err, "failed to finalize purchase")
	}
	uc.audit.Record(ctx, "transaction.completed", buyerID, txn.ID(), map[string]any{
		"listing_id": listingID.String(),
		"amount":     snap.Price.String(),
	})
	uc.notifier.Notify(ctx, buyerID, "Purchase completed", "Your carbon credit purchase is complete.", txn.ID())
	uc.notifier.Notify(ctx, snap.SellerID, "Listing sold", "Your carbon credit listing was sold.", txn.ID())
	return &PurchaseResult{TransactionID: txn.ID(), Completed: true}, nil
}

// CancelTransaction voids a still-pending transaction and puts the listing
// back on the market. Only a party to the transaction or marketplace staff
// may do so.
func (uc *transactionCommandsImpl) CancelTransaction(
	ctx context.Context,
	transactionID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
) error {
	snap, err := uc.uow.Reads().TransactionByID(ctx, transactionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrTransactionNotFound)
		}
		return errs.Wrap(err, "failed to load transaction")
	}
	involved := snap.BuyerID == actorID || snap.SellerID == actorID
	if !involved && !user.CanPerform(actorRole, user.ActionCancelTransaction) {
		return ErrTransactionNotParty
	}
	if snap.Status != trade.TransactionPending {
		return ErrTransactionNotCancelled
	}

	if err := uc.finalize(ctx, transactionID, revertTransaction); err != nil {
		return err
	}
	uc.audit.Record(ctx, "transaction.cancelled", actorID, transactionID, map[string]any{
		"reason": "manual_cancellation",
	})
	uc.notifier.Notify(ctx, snap.BuyerID, "Transaction cancelled", "The transaction was cancelled and the listing is active again.", transactionID)
	return nil
}

func (uc *transactionCommandsImpl) finalize(
	ctx context.Context,
	transactionID uuid.UUID,
	apply func(context.Context, shared.Tx, *trade.Transaction, time.Time) error,
) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		txn, err := tx.Transactions().FindByID(ctx, transactionID)
		if err != nil {
			return errs.Wrap(err, "failed to load transaction for finalization")
		}
		return apply(ctx, tx, txn, uc.clk.Now())
	})
}
