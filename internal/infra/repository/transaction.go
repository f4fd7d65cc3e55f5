package repository

import (
	"context"

	"github.com/google/uuid"

	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/infra/repository/converter"
)

type TransactionRepository struct {
	db db.DBTX
}

func NewTransactionRepository(dbtx db.DBTX) *TransactionRepository {
	return &TransactionRepository{db: dbtx}
}

const transactionColumns = `id, credit_id, listing_id, buyer_id, seller_id, amount, status,
	created_at, completed_at`

func (r *TransactionRepository) Create(ctx context.Context, t *trade.Transaction) error {
	row := converter.TransactionToRow(t)
	_, err := r.db.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		row.ID, row.CreditID, row.ListingID, row.BuyerID, row.SellerID,
		row.Amount, row.Status, row.CreatedAt, row.CompletedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to create transaction", err)
	}
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Transaction, error) {
	var row converter.TransactionRow
	err := r.db.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id,
	).Scan(
		&row.ID, &row.CreditID, &row.ListingID, &row.BuyerID, &row.SellerID,
		&row.Amount, &row.Status, &row.CreatedAt, &row.CompletedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to find transaction", err)
	}
	return converter.TransactionToDomain(row)
}

func (r *TransactionRepository) Save(ctx context.Context, t *trade.Transaction) error {
	row := converter.TransactionToRow(t)
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions
		SET status = $2, completed_at = $3
		WHERE id = $1`,
		row.ID, row.Status, row.CompletedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to save transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("transaction not found for save", infra.KindNotFound)
	}
	return nil
}
