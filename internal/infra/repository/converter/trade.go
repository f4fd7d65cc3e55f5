package converter

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/pkg/pgconv"
)

type TransactionRow struct {
	ID          uuid.UUID
	CreditID    uuid.UUID
	ListingID   uuid.UUID
	BuyerID     uuid.UUID
	SellerID    uuid.UUID
	Amount      pgtype.Numeric
	Status      string
	CreatedAt   pgtype.Timestamptz
	CompletedAt pgtype.Timestamptz
}

func TransactionToRow(t *trade.Transaction) TransactionRow {
	return TransactionRow{
		ID:          t.ID(),
		CreditID:    t.CreditID(),
		ListingID:   t.ListingID(),
		BuyerID:     t.BuyerID(),
		SellerID:    t.SellerID(),
		Amount:      pgconv.DecimalToPgtype(t.Amount()),
		Status:      t.Status().String(),
		CreatedAt:   pgconv.TimeToPgtype(t.CreatedAt()),
		CompletedAt: pgconv.TimePtrToPgtype(t.CompletedAt()),
	}
}

func TransactionToDomain(row TransactionRow) (*trade.Transaction, error) {
	amount, err := pgconv.DecimalFromPgtype(row.Amount)
	if err != nil {
		return nil, errs.Wrap(err, "invalid transaction amount value")
	}
	status, err := trade.NewTransactionStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "invalid transaction status value")
	}
	return trade.ReconstructTransaction(
		row.ID, row.CreditID, row.ListingID, row.BuyerID, row.SellerID,
		amount, status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimePtrFromPgtype(row.CompletedAt),
	), nil
}

type DisputeRow struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	RaisedByID    uuid.UUID
	Reason        string
	Status        string
	Resolution    pgtype.Text
	ResolvedByID  pgtype.UUID
	ResolvedAt    pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func DisputeToRow(d *trade.Dispute) DisputeRow {
	return DisputeRow{
		ID:            d.ID(),
		TransactionID: d.TransactionID(),
		RaisedByID:    d.RaisedByID(),
		Reason:        d.Reason(),
		Status:        d.Status().String(),
		Resolution:    pgconv.StringPtrToPgtype(d.Resolution()),
		ResolvedByID:  pgconv.UUIDPtrToPgtype(d.ResolvedByID()),
		ResolvedAt:    pgconv.TimePtrToPgtype(d.ResolvedAt()),
		CreatedAt:     pgconv.TimeToPgtype(d.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(d.UpdatedAt()),
	}
}

func DisputeToDomain(row DisputeRow) (*trade.Dispute, error) {
	status, err := trade.NewDisputeStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "invalid dispute status value")
	}
	return trade.ReconstructDispute(
		row.ID, row.TransactionID, row.RaisedByID,
		row.Reason, status,
		pgconv.StringPtrFromPgtype(row.Resolution),
		pgconv.UUIDPtrFromPgtype(row.ResolvedByID),
		pgconv.TimePtrFromPgtype(row.ResolvedAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
