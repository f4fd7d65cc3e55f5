package commands

import (
	"context"

	"github.com/google/uuid"

	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/pkg/clock"
	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/usecase/shared"
)

var (
	ErrDisputeNotFound          = errs.New("dispute not found")
	ErrDisputeAlreadyOpen       = errs.New("transaction already has an open dispute")
	ErrTransactionNotDisputable = errs.New("transaction cannot be disputed in its current status")
)

type DisputeCommands interface {
	// CreateDispute freezes a pending or completed transaction in DISPUTED
	// until staff resolves it.
	CreateDispute(ctx context.Context, transactionID uuid.UUID, actorID uuid.UUID, actorRole user.Role, reason string) (uuid.UUID, error)
	// ResolveDispute records the resolution text and settles or refunds the
	// transaction according to the resolution wording.
	ResolveDispute(ctx context.Context, disputeID uuid.UUID, actorID uuid.UUID, actorRole user.Role, resolution string) error
	CloseDispute(ctx context.Context, disputeID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
	ReopenDispute(ctx context.Context, disputeID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
}

type disputeCommandsImpl struct {
	uow      shared.UnitOfWork
	clk      clock.Clock
	audit    shared.AuditSink
	notifier shared.NotificationSink
}

func NewDisputeCommands(
	uow shared.UnitOfWork,
	clk clock.Clock,
	audit shared.AuditSink,
	notifier shared.NotificationSink,
) DisputeCommands {
	return &disputeCommandsImpl{uow: uow, clk: clk, audit: audit, notifier: notifier}
}

func (uc *disputeCommandsImpl) CreateDispute(
	ctx context.Context,
	transactionID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
	reason string,
) (uuid.UUID, error) {
	if !user.CanPerform(actorRole, user.ActionRaiseDispute) {
		return uuid.Nil, ErrUnauthorizedOperation
	}

	var disputeID uuid.UUID
	var counterparty uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		txn, err := tx.Transactions().FindByID(ctx, transactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrTransactionNotFound)
			}
			return errs.Wrap(err, "failed to load transaction")
		}
		if !txn.Involves(actorID) {
			return ErrTransactionNotParty
		}
		open, err := tx.Disputes().HasOpenForTransaction(ctx, transactionID)
		if err != nil {
			return errs.Wrap(err, "failed to check open disputes")
		}
		if open {
			return ErrDisputeAlreadyOpen
		}

		d, err := trade.NewDispute(transactionID, actorID, reason, uc.clk.Now())
		if err != nil {
			return err
		}
		if err := tx.Disputes().Create(ctx, d); err != nil {
			return errs.Wrap(err, "failed to create dispute")
		}
		if err := txn.MarkDisputed(); err != nil {
			return errs.Mark(err, ErrTransactionNotDisputable)
		}
		if err := tx.Transactions().Save(ctx, txn); err != nil {
			return errs.Wrap(err, "failed to freeze disputed transaction")
		}
		disputeID = d.ID()
		if txn.BuyerID() == actorID {
			counterparty = txn.SellerID()
		} else {
			counterparty = txn.BuyerID()
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.audit.Record(ctx, "dispute.created", actorID, disputeID, map[string]any{
		"transaction_id": transactionID.String(),
	})
	uc.notifier.Notify(ctx, counterparty, "Dispute opened", "A dispute was opened against one of your transactions.", disputeID)
	return disputeID, nil
}

func (uc *disputeCommandsImpl) ResolveDispute(
	ctx context.Context,
	disputeID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
	resolution string,
) error {
	if !user.CanPerform(actorRole, user.ActionResolveDispute) {
		return ErrUnauthorizedOperation
	}

	var buyerID, sellerID uuid.UUID
	var outcome trade.ResolutionOutcome
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := uc.loadDispute(ctx, tx, disputeID)
		if err != nil {
			return err
		}
		if err := d.Resolve(actorID, resolution, uc.clk.Now()); err != nil {
			return err
		}
		if err := tx.Disputes().Save(ctx, d); err != nil {
			return errs.Wrap(err, "failed to save resolved dispute")
		}

		txn, err := tx.Transactions().FindByID(ctx, d.TransactionID())
		if err != nil {
			return errs.Wrap(err, "failed to load disputed transaction")
		}
		buyerID, sellerID = txn.BuyerID(), txn.SellerID()

		outcome = trade.ClassifyResolution(resolution)
		if outcome == trade.OutcomeComplete {
			return settleTransaction(ctx, tx, txn, uc.clk.Now())
		}
		return revertTransaction(ctx, tx, txn, uc.clk.Now())
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "dispute.resolved", actorID, disputeID, map[string]any{
		"outcome": string(outcome),
	})
	message := "The dispute was resolved; the transaction was cancelled and the listing is back on the market."
	if outcome == trade.OutcomeComplete {
		message = "The dispute was resolved; the transaction stands as completed."
	}
	uc.notifier.Notify(ctx, buyerID, "Dispute resolved", message, disputeID)
	uc.notifier.Notify(ctx, sellerID, "Dispute resolved", message, disputeID)
	return nil
}

// CloseDispute is an administrative archive step. It does not touch the
// transaction; use ResolveDispute to settle or refund first.
func (uc *disputeCommandsImpl) CloseDispute(
	ctx context.Context,
	disputeID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
) error {
	if !user.CanPerform(actorRole, user.ActionAdministerDispute) {
		return ErrUnauthorizedOperation
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := uc.loadDispute(ctx, tx, disputeID)
		if err != nil {
			return err
		}
		if err := d.Close(uc.clk.Now()); err != nil {
			return err
		}
		return tx.Disputes().Save(ctx, d)
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "dispute.closed", actorID, disputeID, nil)
	return nil
}

// ReopenDispute reverses a close or resolution and re-freezes the
// transaction in DISPUTED.
func (uc *disputeCommandsImpl) ReopenDispute(
	ctx context.Context,
	disputeID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
) error {
	if !user.CanPerform(actorRole, user.ActionAdministerDispute) {
		return ErrUnauthorizedOperation
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := uc.loadDispute(ctx, tx, disputeID)
		if err != nil {
			return err
		}
		if err := d.Reopen(uc.clk.Now()); err != nil {
			return err
		}
		if err := tx.Disputes().Save(ctx, d); err != nil {
			return errs.Wrap(err, "failed to save reopened dispute")
		}

		txn, err := tx.Transactions().FindByID(ctx, d.TransactionID())
		if err != nil {
			return errs.Wrap(err, "failed to load transaction for reopened dispute")
		}
		if txn.Status() == trade.TransactionDisputed {
			return nil
		}
		if err := txn.Redispute(); err != nil {
			return err
		}
		return tx.Transactions().Save(ctx, txn)
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "dispute.reopened", actorID, disputeID, nil)
	return nil
}

func (uc *disputeCommandsImpl) loadDispute(ctx context.Context, tx shared.Tx, id uuid.UUID) (*trade.Dispute, error) {
	d, err := tx.Disputes().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDisputeNotFound)
		}
		return nil, errs.Wrap(err, "failed to load dispute")
	}
	return d, nil
}
