package commands

import (
	"context"
	"time"

	"ev-carbon-market/internal/domain/credit"
	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/usecase/shared"
)

// settleTransaction drives a transaction to COMPLETED and synchronizes the
// listing (CLOSED) and credit (SOLD). Tolerant of already-settled listing
// and credit state so dispute resolution can re-complete a transaction that
// settled before the dispute froze it.
func settleTransaction(ctx context.Context, tx shared.Tx, txn *trade.Transaction, now time.Time) error {
	if err := txn.Complete(now); err != nil {
		return err
	}
	if err := tx.Transactions().Save(ctx, txn); err != nil {
		return err
	}

	l, err := tx.Listings().FindByID(ctx, txn.ListingID())
	if err != nil {
		return err
	}
	switch l.Status() {
	case listing.StatusPendingTransaction:
		if err := tx.Listings().TransitionStatus(ctx, l.ID(), listing.StatusPendingTransaction, listing.StatusClosed); err != nil {
			return err
		}
	case listing.StatusClosed:
		// already settled before the dispute
	default:
		return listing.ErrInvalidStateTransition
	}

	cr, err := tx.Credits().FindByID(ctx, txn.CreditID())
	if err != nil {
		return err
	}
	if cr.Status() != credit.StatusSold {
		if err := cr.MarkSold(now); err != nil {
			return err
		}
		if err := tx.Credits().Save(ctx, cr); err != nil {
			return err
		}
	}
	return nil
}

// revertTransaction is the compensating action: transaction CANCELLED, the
// listing back on the market, the credit back to LISTED if the sale had
// already gone through. Used on payment failure, manual cancellation, and
// dispute refunds, so it accepts both a reserved and a closed listing.
func revertTransaction(ctx context.Context, tx shared.Tx, txn *trade.Transaction, now time.Time) error {
	if err := txn.Cancel(); err != nil {
		return err
	}
	if err := tx.Transactions().Save(ctx, txn); err != nil {
		return err
	}

	l, err := tx.Listings().FindByID(ctx, txn.ListingID())
	if err != nil {
		return err
	}
	switch l.Status() {
	case listing.StatusPendingTransaction:
		if err := tx.Listings().TransitionStatus(ctx, l.ID(), listing.StatusPendingTransaction, listing.StatusActive); err != nil {
			return err
		}
	case listing.StatusClosed:
		if err := tx.Listings().TransitionStatus(ctx, l.ID(), listing.StatusClosed, listing.StatusActive); err != nil {
			return err
		}
	case listing.StatusActive:
		// nothing to release
	default:
		return listing.ErrInvalidStateTransition
	}

	cr, err := tx.Credits().FindByID(ctx, txn.CreditID())
	if err != nil {
		return err
	}
	if cr.Status() == credit.StatusSold {
		if err := cr.RevertToListed(now); err != nil {
			return err
		}
		if err := tx.Credits().Save(ctx, cr); err != nil {
			return err
		}
	}
	return nil
}
