package listing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Listing wraps exactly one credit for sale. A credit has at most one
// listing in ACTIVE or PENDING_TRANSACTION at a time; the repository
// enforces that with a partial unique index, this entity enforces the
// status machine.
type Listing struct {
	id        uuid.UUID
	creditID  uuid.UUID
	sellerID  uuid.UUID
	kind      Type
	price     Price
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewFixed(creditID, sellerID uuid.UUID, price Price, now time.Time) *Listing {
	return &Listing{
		id:        uuid.New(),
		creditID:  creditID,
		sellerID:  sellerID,
		kind:      TypeFixed,
		price:     price,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}
}

func Reconstruct(
	id, creditID, sellerID uuid.UUID,
	kind Type,
	price Price,
	status Status,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:        id,
		creditID:  creditID,
		sellerID:  sellerID,
		kind:      kind,
		price:     price,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (l *Listing) UpdatePrice(price Price, now time.Time) error {
	if l.status != StatusActive {
		return fmt.Errorf("%w: listing %s is %s, price can only change while active",
			ErrInvalidStateTransition, l.id, l.status)
	}
	l.price = price
	l.updatedAt = now
	return nil
}

func (l *Listing) IsActive() bool    { return l.status == StatusActive }
func (l *Listing) IsFixed() bool     { return l.kind == TypeFixed }
func (l *Listing) IsOwnedBy(userID uuid.UUID) bool { return l.sellerID == userID }

func (l *Listing) ID() uuid.UUID        { return l.id }
func (l *Listing) CreditID() uuid.UUID  { return l.creditID }
func (l *Listing) SellerID() uuid.UUID  { return l.sellerID }
func (l *Listing) Kind() Type           { return l.kind }
func (l *Listing) Price() Price         { return l.price }
func (l *Listing) Status() Status       { return l.status }
func (l *Listing) CreatedAt() time.Time { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time { return l.updatedAt }
