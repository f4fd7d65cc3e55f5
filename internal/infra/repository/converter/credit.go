package converter

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"ev-carbon-market/internal/domain/credit"
	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/pkg/pgconv"
)

// CreditRow mirrors the carbon_credits table for scanning.
type CreditRow struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	JourneyID    uuid.UUID
	CO2ReducedKg pgtype.Numeric
	Amount       pgtype.Numeric
	Status       string
	VerifierID   pgtype.UUID
	VerifiedAt   pgtype.Timestamptz
	ListedAt     pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

func CreditToRow(c *credit.Credit) CreditRow {
	return CreditRow{
		ID:           c.ID(),
		OwnerID:      c.OwnerID(),
		JourneyID:    c.JourneyID(),
		CO2ReducedKg: pgconv.DecimalToPgtype(c.CO2ReducedKg()),
		Amount:       pgconv.DecimalToPgtype(c.Amount()),
		Status:       c.Status().String(),
		VerifierID:   pgconv.UUIDPtrToPgtype(c.VerifierID()),
		VerifiedAt:   pgconv.TimePtrToPgtype(c.VerifiedAt()),
		ListedAt:     pgconv.TimePtrToPgtype(c.ListedAt()),
		CreatedAt:    pgconv.TimeToPgtype(c.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(c.UpdatedAt()),
	}
}

func CreditToDomain(row CreditRow) (*credit.Credit, error) {
	co2, err := pgconv.DecimalFromPgtype(row.CO2ReducedKg)
	if err != nil {
		return nil, errs.Wrap(err, "invalid co2_reduced_kg value")
	}
	amount, err := pgconv.DecimalFromPgtype(row.Amount)
	if err != nil {
		return nil, errs.Wrap(err, "invalid amount value")
	}
	status, err := credit.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "invalid credit status value")
	}
	return credit.Reconstruct(
		row.ID, row.OwnerID, row.JourneyID,
		co2, amount,
		status,
		pgconv.UUIDPtrFromPgtype(row.VerifierID),
		pgconv.TimePtrFromPgtype(row.VerifiedAt),
		pgconv.TimePtrFromPgtype(row.ListedAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
