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

type DisputeReadStore struct {
	db db.DBTX
}

func NewDisputeReadStore(dbtx db.DBTX) *DisputeReadStore {
	return &DisputeReadStore{db: dbtx}
}

const disputeViewSelect = `
	SELECT id, transaction_id, raised_by_id, reason, status, resolution,
		resolved_by_id, resolved_at, created_at
	FROM disputes`

func (s *DisputeReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DisputeView, error) {
	view, err := scanDisputeView(s.db.QueryRow(ctx, disputeViewSelect+` WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("dispute not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (s *DisputeReadStore) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*queries.DisputeView, error) {
	rows, err := s.db.Query(ctx,
		disputeViewSelect+` WHERE transaction_id = $1 ORDER BY created_at DESC`,
		transactionID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query disputes", err)
	}
	defer rows.Close()

	var views []*queries.DisputeView
	for rows.Next() {
		view, err := scanDisputeView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read dispute rows", err)
	}
	return views, nil
}

func scanDisputeView(row pgx.Row) (*queries.DisputeView, error) {
	var (
		view         queries.DisputeView
		resolution   pgtype.Text
		resolvedByID pgtype.UUID
		resolvedAt   pgtype.Timestamptz
		createdAt    pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.TransactionID, &view.RaisedByID, &view.Reason, &view.Status,
		&resolution, &resolvedByID, &resolvedAt, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan dispute view", err)
	}
	view.Resolution = pgconv.StringPtrFromPgtype(resolution)
	view.ResolvedByID = pgconv.UUIDPtrFromPgtype(resolvedByID)
	view.ResolvedAt = pgconv.TimePtrFromPgtype(resolvedAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
