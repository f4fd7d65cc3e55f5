package credit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Credit is the carbon-credit aggregate. Listings and transactions
// reference it by ID only; all status transitions go through the methods
// below so the amount is never left stale against the current status.
type Credit struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	journeyID    uuid.UUID
	co2ReducedKg decimal.Decimal
	amount       decimal.Decimal
	status       Status
	verifierID   *uuid.UUID
	verifiedAt   *time.Time
	listedAt     *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// Issue creates the PENDING credit that accompanies a newly recorded
// journey. The amount is priced at PENDING confidence.
func Issue(ownerID, journeyID uuid.UUID, co2ReducedKg decimal.Decimal, now time.Time) (*Credit, error) {
	if co2ReducedKg.IsNegative() {
		return nil, ErrNegativeCO2
	}
	return &Credit{
		id:           uuid.New(),
		ownerID:      ownerID,
		journeyID:    journeyID,
		co2ReducedKg: co2ReducedKg,
		amount:       CreditAmount(co2ReducedKg, StatusPending),
		status:       StatusPending,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func Reconstruct(
	id, ownerID, journeyID uuid.UUID,
	co2ReducedKg, amount decimal.Decimal,
	status Status,
	verifierID *uuid.UUID,
	verifiedAt, listedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Credit {
	return &Credit{
		id:           id,
		ownerID:      ownerID,
		journeyID:    journeyID,
		co2ReducedKg: co2ReducedKg,
		amount:       amount,
		status:       status,
		verifierID:   verifierID,
		verifiedAt:   verifiedAt,
		listedAt:     listedAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Approve moves PENDING -> VERIFIED and reprices at full confidence.
func (c *Credit) Approve(verifierID uuid.UUID, now time.Time) error {
	if err := c.require(StatusPending, StatusVerified); err != nil {
		return err
	}
	c.status = StatusVerified
	c.verifierID = &verifierID
	c.verifiedAt = &now
	c.reprice(now)
	return nil
}

// Reject moves PENDING -> REJECTED; a rejected credit is worthless.
func (c *Credit) Reject(verifierID uuid.UUID, now time.Time) error {
	if err := c.require(StatusPending, StatusRejected); err != nil {
		return err
	}
	c.status = StatusRejected
	c.verifierID = &verifierID
	c.verifiedAt = &now
	c.reprice(now)
	return nil
}

// MarkListed moves VERIFIED -> LISTED when a listing goes active.
func (c *Credit) MarkListed(now time.Time) error {
	if err := c.require(StatusVerified, StatusListed); err != nil {
		return err
	}
	c.status = StatusListed
	c.listedAt = &now
	c.reprice(now)
	return nil
}

// RevertToVerified undoes a listing (LISTED -> VERIFIED) on cancel.
func (c *Credit) RevertToVerified(now time.Time) error {
	if err := c.require(StatusListed, StatusVerified); err != nil {
		return err
	}
	c.status = StatusVerified
	c.listedAt = nil
	c.reprice(now)
	return nil
}

// MarkSold moves LISTED -> SOLD when a purchase settles.
func (c *Credit) MarkSold(now time.Time) error {
	if err := c.require(StatusListed, StatusSold); err != nil {
		return err
	}
	c.status = StatusSold
	c.reprice(now)
	return nil
}

// RevertToListed is the dispute-resolution override (SOLD -> LISTED) used
// when a completed purchase is cancelled after the fact.
func (c *Credit) RevertToListed(now time.Time) error {
	if err := c.require(StatusSold, StatusListed); err != nil {
		return err
	}
	c.status = StatusListed
	c.reprice(now)
	return nil
}

func (c *Credit) require(expected, target Status) error {
	if c.status != expected {
		return fmt.Errorf("%w: credit %s is %s, cannot move to %s",
			ErrInvalidStateTransition, c.id, c.status, target)
	}
	return nil
}

func (c *Credit) reprice(now time.Time) {
	c.amount = CreditAmount(c.co2ReducedKg, c.status)
	c.updatedAt = now
}

func (c *Credit) ID() uuid.UUID                 { return c.id }
func (c *Credit) OwnerID() uuid.UUID            { return c.ownerID }
func (c *Credit) JourneyID() uuid.UUID          { return c.journeyID }
func (c *Credit) CO2ReducedKg() decimal.Decimal { return c.co2ReducedKg }
func (c *Credit) Amount() decimal.Decimal       { return c.amount }
func (c *Credit) Status() Status                { return c.status }
func (c *Credit) VerifierID() *uuid.UUID        { return c.verifierID }
func (c *Credit) VerifiedAt() *time.Time        { return c.verifiedAt }
func (c *Credit) ListedAt() *time.Time          { return c.listedAt }
func (c *Credit) CreatedAt() time.Time          { return c.createdAt }
func (c *Credit) UpdatedAt() time.Time          { return c.updatedAt }
