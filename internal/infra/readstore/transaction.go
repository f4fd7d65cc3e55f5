package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/pkg/pgconv"
	"ev-carbon-market/internal/usecase/queries"
)

type TransactionReadStore struct {
	db db.DBTX
}

func NewTransactionReadStore(dbtx db.DBTX) *TransactionReadStore {
	return &TransactionReadStore{db: dbtx}
}

const transactionViewSelect = `
	SELECT id, credit_id, listing_id, buyer_id, seller_id, amount, status,
		created_at, completed_at
	FROM transactions`

func (s *TransactionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TransactionView, error) {
	view, err := scanTransactionView(s.db.QueryRow(ctx, transactionViewSelect+` WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (s *TransactionReadStore) FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.TransactionView, error) {
	rows, err := s.db.Query(ctx,
		transactionViewSelect+` WHERE buyer_id = $1 OR seller_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query transactions", err)
	}
	defer rows.Close()

	var views []*queries.TransactionView
	for rows.Next() {
		view, err := scanTransactionView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read transaction rows", err)
	}
	return views, nil
}

func scanTransactionView(row pgx.Row) (*queries.TransactionView, error) {
	var (
		view        queries.TransactionView
		amount      pgtype.Numeric
		createdAt   pgtype.Timestamptz
		completedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.CreditID, &view.ListingID, &view.BuyerID, &view.SellerID,
		&amount, &view.Status, &createdAt, &completedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan transaction view", err)
	}
	if view.Amount, err = pgconv.DecimalFromPgtype(amount); err != nil {
		return nil, infra.WrapRepoErr("invalid amount value", err)
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	return &view, nil
}
