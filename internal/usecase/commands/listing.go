package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/pkg/clock"
	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/usecase/shared"
)

var (
	ErrNotCreditOwner      = errs.New("credit belongs to another owner")
	ErrCreditAlreadyListed = errs.New("credit already has an open listing")
	ErrNotListingSeller    = errs.New("listing belongs to another seller")
)

type ListingCommands interface {
	// CreateFixedListing puts a VERIFIED credit on the marketplace at a
	// fixed price and moves the credit to LISTED in the same transaction.
	CreateFixedListing(ctx context.Context, creditID uuid.UUID, actorID uuid.UUID, actorRole user.Role, price decimal.Decimal) (uuid.UUID, error)
	UpdateListingPrice(ctx context.Context, listingID uuid.UUID, actorID uuid.UUID, actorRole user.Role, price decimal.Decimal) error
	CancelListing(ctx context.Context, listingID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
}

type listingCommandsImpl struct {
	uow   shared.UnitOfWork
	clk   clock.Clock
	audit shared.AuditSink
}

func NewListingCommands(uow shared.UnitOfWork, clk clock.Clock, audit shared.AuditSink) ListingCommands {
	return &listingCommandsImpl{uow: uow, clk: clk, audit: audit}
}

func (uc *listingCommandsImpl) CreateFixedListing(
	ctx context.Context,
	creditID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
	price decimal.Decimal,
) (uuid.UUID, error) {
	if !user.CanPerform(actorRole, user.ActionCreateListing) {
		return uuid.Nil, ErrUnauthorizedOperation
	}
	p, err := listing.NewPrice(price)
	if err != nil {
		return uuid.Nil, err
	}

	var listingID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cr, err := tx.Credits().FindByID(ctx, creditID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrCreditNotFound)
			}
			return errs.Wrap(err, "failed to load credit")
		}
		if cr.OwnerID() != actorID {
			return ErrNotCreditOwner
		}
		open, err := tx.Listings().HasOpenForCredit(ctx, creditID)
		if err != nil {
			return errs.Wrap(err, "failed to check open listings")
		}
		if open {
			return ErrCreditAlreadyListed
		}

		l := listing.NewFixed(creditID, actorID, p, uc.clk.Now())
		if err := tx.Listings().Create(ctx, l); err != nil {
			// the partial unique index closes the check-then-insert race
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrCreditAlreadyListed)
			}
			return errs.Wrap(err, "failed to create listing")
		}
		if err := cr.MarkListed(uc.clk.Now()); err != nil {
			return err
		}
		if err := tx.Credits().Save(ctx, cr); err != nil {
			return errs.Wrap(err, "failed to save listed credit")
		}
		listingID = l.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.audit.Record(ctx, "listing.created", actorID, listingID, map[string]any{
		"credit_id": creditID.String(),
		"price":     p.Decimal().String(),
	})
	return listingID, nil
}

func (uc *listingCommandsImpl) UpdateListingPrice(
	ctx context.Context,
	listingID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
	price decimal.Decimal,
) error {
	if !user.CanPerform(actorRole, user.ActionManageListing) {
		return ErrUnauthorizedOperation
	}
	p, err := listing.NewPrice(price)
	if err != nil {
		return err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := uc.loadOwnedListing(ctx, tx, listingID, actorID, actorRole)
		if err != nil {
			return err
		}
		if err := tx.Listings().UpdatePrice(ctx, l.ID(), p); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrListingNotActive)
			}
			return errs.Wrap(err, "failed to update listing price")
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "listing.price_updated", actorID, listingID, map[string]any{
		"price": p.Decimal().String(),
	})
	return nil
}

// CancelListing withdraws an ACTIVE listing and returns the credit to
// VERIFIED so the owner can relist it later.
func (uc *listingCommandsImpl) CancelListing(
	ctx context.Context,
	listingID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
) error {
	if !user.CanPerform(actorRole, user.ActionManageListing) {
		return ErrUnauthorizedOperation
	}

	var creditID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := uc.loadOwnedListing(ctx, tx, listingID, actorID, actorRole)
		if err != nil {
			return err
		}
		if err := tx.Listings().TransitionStatus(ctx, l.ID(), listing.StatusActive, listing.StatusCancelled); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrListingNotActive)
			}
			return errs.Wrap(err, "failed to cancel listing")
		}
		cr, err := tx.Credits().FindByID(ctx, l.CreditID())
		if err != nil {
			return errs.Wrap(err, "failed to load credit for cancelled listing")
		}
		if err := cr.RevertToVerified(uc.clk.Now()); err != nil {
			return err
		}
		creditID = cr.ID()
		return tx.Credits().Save(ctx, cr)
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "listing.cancelled", actorID, listingID, map[string]any{
		"credit_id": creditID.String(),
	})
	return nil
}

func (uc *listingCommandsImpl) loadOwnedListing(
	ctx context.Context,
	tx shared.Tx,
	listingID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
) (*listing.Listing, error) {
	l, err := tx.Listings().FindByID(ctx, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrListingNotFound)
		}
		return nil, errs.Wrap(err, "failed to load listing")
	}
	if !l.IsOwnedBy(actorID) && actorRole != user.RoleAdmin {
		return nil, ErrNotListingSeller
	}
	return l, nil
}
