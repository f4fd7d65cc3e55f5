package converter

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/pkg/pgconv"
)

type ListingRow struct {
	ID        uuid.UUID
	CreditID  uuid.UUID
	SellerID  uuid.UUID
	Kind      string
	Price     pgtype.Numeric
	Status    string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func ListingToRow(l *listing.Listing) ListingRow {
	return ListingRow{
		ID:        l.ID(),
		CreditID:  l.CreditID(),
		SellerID:  l.SellerID(),
		Kind:      l.Kind().String(),
		Price:     pgconv.DecimalToPgtype(l.Price().Decimal()),
		Status:    l.Status().String(),
		CreatedAt: pgconv.TimeToPgtype(l.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(l.UpdatedAt()),
	}
}

func ListingToDomain(row ListingRow) (*listing.Listing, error) {
	kind, err := listing.NewType(row.Kind)
	if err != nil {
		return nil, errs.Wrap(err, "invalid listing kind value")
	}
	status, err := listing.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "invalid listing status value")
	}
	priceValue, err := pgconv.DecimalFromPgtype(row.Price)
	if err != nil {
		return nil, errs.Wrap(err, "invalid listing price value")
	}
	price, err := listing.NewPrice(priceValue)
	if err != nil {
		return nil, errs.Wrap(err, "stored listing price out of range")
	}
	return listing.Reconstruct(
		row.ID, row.CreditID, row.SellerID,
		kind, price, status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
