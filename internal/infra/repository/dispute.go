package repository

import (
	"context"

	"github.com/google/uuid"

	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/infra/repository/converter"
)

type DisputeRepository struct {
	db db.DBTX
}

func NewDisputeRepository(dbtx db.DBTX) *DisputeRepository {
	return &DisputeRepository{db: dbtx}
}

const disputeColumns = `id, transaction_id, raised_by_id, reason, status, resolution,
	resolved_by_id, resolved_at, created_at, updated_at`

func (r *DisputeRepository) Create(ctx context.Context, d *trade.Dispute) error {
	row := converter.DisputeToRow(d)
	_, err := r.db.Exec(ctx, `
		INSERT INTO disputes (`+disputeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		row.ID, row.TransactionID, row.RaisedByID, row.Reason, row.Status,
		row.Resolution, row.ResolvedByID, row.ResolvedAt, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to create dispute", err)
	}
	return nil
}

func (r *DisputeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Dispute, error) {
	var row converter.DisputeRow
	err := r.db.QueryRow(ctx, `
		SELECT `+disputeColumns+` FROM disputes WHERE id = $1 FOR UPDATE`, id,
	).Scan(
		&row.ID, &row.TransactionID, &row.RaisedByID, &row.Reason, &row.Status,
		&row.Resolution, &row.ResolvedByID, &row.ResolvedAt, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to find dispute", err)
	}
	return converter.DisputeToDomain(row)
}

func (r *DisputeRepository) HasOpenForTransaction(ctx context.Context, transactionID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM disputes WHERE transaction_id = $1 AND status = 'open'
		)`, transactionID,
	).Scan(&exists)
	if err != nil {
		return false, wrapQueryErr("failed to check open disputes", err)
	}
	return exists, nil
}

func (r *DisputeRepository) Save(ctx context.Context, d *trade.Dispute) error {
	row := converter.DisputeToRow(d)
	tag, err := r.db.Exec(ctx, `
		UPDATE disputes
		SET status = $2, resolution = $3, resolved_by_id = $4, resolved_at = $5,
			updated_at = $6
		WHERE id = $1`,
		row.ID, row.Status, row.Resolution, row.ResolvedByID, row.ResolvedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to save dispute", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("dispute not found for save", infra.KindNotFound)
	}
	return nil
}
