package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/pkg/pgconv"
)

type WalletRepository struct {
	db db.DBTX
}

func NewWalletRepository(dbtx db.DBTX) *WalletRepository {
	return &WalletRepository{db: dbtx}
}

// Credit upserts so a first payout creates the wallet row.
func (r *WalletRepository) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET balance = wallets.balance + EXCLUDED.balance, updated_at = now()`,
		userID, pgconv.DecimalToPgtype(amount),
	)
	if err != nil {
		return wrapQueryErr("failed to credit wallet", err)
	}
	return nil
}

// Debit is balance-guarded: it fails with a conflict rather than driving a
// wallet negative.
func (r *WalletRepository) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE wallets
		SET balance = balance - $2, updated_at = now()
		WHERE user_id = $1 AND balance >= $2`,
		userID, pgconv.DecimalToPgtype(amount),
	)
	if err != nil {
		return wrapQueryErr("failed to debit wallet", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("insufficient wallet balance", infra.KindConflict)
	}
	return nil
}
