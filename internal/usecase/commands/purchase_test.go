//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-carbon-market/internal/domain/credit"
	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/pkg/clock"
	"ev-carbon-market/internal/usecase/commands"
	"ev-carbon-market/internal/usecase/shared"
)

type purchaseFixture struct {
	st       *memState
	uow      *memUoW
	gateway  *scriptedGateway
	audit    *captureAudit
	notifier *captureNotifier
	clk      *clock.MockClock
	now      time.Time
	cmds     commands.TransactionCommands
}

func newPurchaseFixture() *purchaseFixture {
	now := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	st := newMemState()
	f := &purchaseFixture{
		st:       st,
		uow:      &memUoW{st: st},
		gateway:  &scriptedGateway{},
		audit:    &captureAudit{},
		notifier: &captureNotifier{},
		clk:      clock.NewMockClock(now),
		now:      now,
	}
	f.cmds = commands.NewTransactionCommands(f.uow, f.gateway, f.clk, f.audit, f.notifier, time.Second)
	return f
}

func TestInitiatePurchase(t *testing.T) {
	sellerID := uuid.New()
	buyerID := uuid.New()
	ctx := context.Background()

	t.Run("settles the transaction, listing and credit", func(t *testing.T) {
		f := newPurchaseFixture()
		cr, l := seedListedCredit(f.st, sellerID, "25.00", f.now)

		result, err := f.cmds.InitiatePurchase(ctx, l.ID(), buyerID, user.RoleBuyer)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.Completed)

		txn := f.st.transactions[result.TransactionID]
		require.NotNil(t, txn)
		assert.Equal(t, trade.TransactionCompleted, txn.Status())
		assert.NotNil(t, txn.CompletedAt())
		assert.Equal(t, listing.StatusClosed, f.st.listings[l.ID()].Status())
		assert.Equal(t, credit.StatusSold, f.st.credits[cr.ID()].Status())

		require.Len(t, f.gateway.calls, 1)
		charge := f.gateway.calls[0]
		assert.Equal(t, buyerID, charge.PayerID)
		assert.Equal(t, sellerID, charge.PayeeID)
		assert.True(t, charge.Amount.Equal(l.Price().Decimal()))
		assert.Equal(t, result.TransactionID, charge.Reference)

		assert.Contains(t, f.audit.events, "transaction.completed")
		require.Len(t, f.notifier.notes, 2)
		assert.Equal(t, buyerID, f.notifier.notes[0].userID)
		assert.Equal(t, sellerID, f.notifier.notes[1].userID)
	})

	t.Run("declined payment releases the listing", func(t *testing.T) {
		f := newPurchaseFixture()
		f.gateway.err = errors.New("card declined")
		cr, l := seedListedCredit(f.st, sellerID, "25.00", f.now)

		result, err := f.cmds.InitiatePurchase(ctx, l.ID(), buyerID, user.RoleBuyer)
		require.ErrorIs(t, err, shared.ErrPaymentDeclined)
		require.NotNil(t, result)
		assert.False(t, result.Completed)

		txn := f.st.transactions[result.TransactionID]
		require.NotNil(t, txn)
		assert.Equal(t, trade.TransactionCancelled, txn.Status())
		assert.Equal(t, listing.StatusActive, f.st.listings[l.ID()].Status())
		assert.Equal(t, credit.StatusListed, f.st.credits[cr.ID()].Status())
		assert.Contains(t, f.audit.events, "transaction.cancelled")
	})

	t.Run("concurrent buyer wins the reservation", func(t *testing.T) {
		f := newPurchaseFixture()
		_, l := seedListedCredit(f.st, sellerID, "25.00", f.now)
		f.uow.beforeWithin = func(st *memState) {
			current := st.listings[l.ID()]
			st.listings[l.ID()] = listing.Reconstruct(
				current.ID(), current.CreditID(), current.SellerID(), current.Kind(),
				current.Price(), listing.StatusPendingTransaction,
				current.CreatedAt(), current.UpdatedAt(),
			)
		}

		_, err := f.cmds.InitiatePurchase(ctx, l.ID(), buyerID, user.RoleBuyer)
		require.ErrorIs(t, err, commands.ErrListingUnavailable)
		assert.Empty(t, f.gateway.calls)
	})

	t.Run("rejects invalid purchases", func(t *testing.T) {
		tests := []struct {
			name    string
			role    user.Role
			buyer   func(sellerID uuid.UUID) uuid.UUID
			status  listing.Status
			wantErr error
		}{
			{
				name:    "seller buying own listing",
				role:    user.RoleBuyer,
				buyer:   func(sellerID uuid.UUID) uuid.UUID { return sellerID },
				status:  listing.StatusActive,
				wantErr: commands.ErrBuyerIsSeller,
			},
			{
				name:    "role without purchase capability",
				role:    user.RoleEVOwner,
				buyer:   func(uuid.UUID) uuid.UUID { return buyerID },
				status:  listing.StatusActive,
				wantErr: commands.ErrUnauthorizedOperation,
			},
			{
				name:    "closed listing",
				role:    user.RoleBuyer,
				buyer:   func(uuid.UUID) uuid.UUID { return buyerID },
				status:  listing.StatusClosed,
				wantErr: commands.ErrListingNotActive,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newPurchaseFixture()
				_, l := seedListedCredit(f.st, sellerID, "25.00", f.now)
				if tt.status != listing.StatusActive {
					f.st.listings[l.ID()] = listing.Reconstruct(
						l.ID(), l.CreditID(), l.SellerID(), l.Kind(), l.Price(), tt.status,
						l.CreatedAt(), l.UpdatedAt(),
					)
				}

				_, err := f.cmds.InitiatePurchase(ctx, l.ID(), tt.buyer(sellerID), tt.role)
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.gateway.calls)
			})
		}
	})

	t.Run("unknown listing", func(t *testing.T) {
		f := newPurchaseFixture()
		_, err := f.cmds.InitiatePurchase(ctx, uuid.New(), buyerID, user.RoleBuyer)
		require.ErrorIs(t, err, commands.ErrListingNotFound)
	})
}

// seedPendingTransaction stores the mid-purchase state: a reserved listing
// and a PENDING transaction against it.
func seedPendingTransaction(f *purchaseFixture, sellerID, buyerID uuid.UUID) (*credit.Credit, *listing.Listing, *trade.Transaction) {
	cr, l := seedListedCredit(f.st, sellerID, "25.00", f.now)
	f.st.listings[l.ID()] = listing.Reconstruct(
		l.ID(), l.CreditID(), l.SellerID(), l.Kind(), l.Price(),
		listing.StatusPendingTransaction, l.CreatedAt(), l.UpdatedAt(),
	)
	txn := trade.NewTransaction(cr.ID(), l.ID(), buyerID, sellerID, l.Price().Decimal(), f.now)
	f.st.transactions[txn.ID()] = txn
	return cr, f.st.listings[l.ID()], txn
}

func TestCancelTransaction(t *testing.T) {
	sellerID := uuid.New()
	buyerID := uuid.New()
	ctx := context.Background()

	t.Run("party cancels a pending transaction", func(t *testing.T) {
		f := newPurchaseFixture()
		cr, l, txn := seedPendingTransaction(f, sellerID, buyerID)

		err := f.cmds.CancelTransaction(ctx, txn.ID(), buyerID, user.RoleBuyer)
		require.NoError(t, err)
		assert.Equal(t, trade.TransactionCancelled, txn.Status())
		assert.Equal(t, listing.StatusActive, f.st.listings[l.ID()].Status())
		assert.Equal(t, credit.StatusListed, f.st.credits[cr.ID()].Status())
		assert.Contains(t, f.audit.events, "transaction.cancelled")
	})

	t.Run("staff may cancel without being a party", func(t *testing.T) {
		f := newPurchaseFixture()
		_, _, txn := seedPendingTransaction(f, sellerID, buyerID)

		err := f.cmds.CancelTransaction(ctx, txn.ID(), uuid.New(), user.RoleCVA)
		require.NoError(t, err)
		assert.Equal(t, trade.TransactionCancelled, txn.Status())
	})

	t.Run("uninvolved buyer is rejected", func(t *testing.T) {
		f := newPurchaseFixture()
		_, _, txn := seedPendingTransaction(f, sellerID, buyerID)

		err := f.cmds.CancelTransaction(ctx, txn.ID(), uuid.New(), user.RoleBuyer)
		require.ErrorIs(t, err, commands.ErrTransactionNotParty)
		assert.Equal(t, trade.TransactionPending, txn.Status())
	})

	t.Run("completed transaction cannot be cancelled", func(t *testing.T) {
		f := newPurchaseFixture()
		_, _, txn := seedPendingTransaction(f, sellerID, buyerID)
		require.NoError(t, txn.Complete(f.now))

		err := f.cmds.CancelTransaction(ctx, txn.ID(), buyerID, user.RoleBuyer)
		require.ErrorIs(t, err, commands.ErrTransactionNotCancelled)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		f := newPurchaseFixture()
		err := f.cmds.CancelTransaction(ctx, uuid.New(), buyerID, user.RoleBuyer)
		require.ErrorIs(t, err, commands.ErrTransactionNotFound)
	})
}
