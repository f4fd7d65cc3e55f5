package readstore

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/pkg/pgconv"
	"ev-carbon-market/internal/usecase/queries"
)

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(dbtx db.DBTX) *ListingReadStore {
	return &ListingReadStore{db: dbtx}
}

const listingViewSelect = `
	SELECT l.id, l.credit_id, l.seller_id, l.kind, l.price, l.status,
		c.co2_reduced_kg, c.amount, l.created_at, l.updated_at
	FROM credit_listings l
	JOIN carbon_credits c ON c.id = l.credit_id`

func (s *ListingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	views, err := s.queryViews(ctx, listingViewSelect+` WHERE l.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, infra.NewRepoErr("listing not found", infra.KindNotFound)
	}
	return views[0], nil
}

func (s *ListingReadStore) FindActive(ctx context.Context, search queries.MarketplaceSearch) ([]*queries.ListingView, error) {
	query := listingViewSelect + ` WHERE l.status = 'active'`
	args := []any{}

	if search.Price.Min != nil {
		args = append(args, pgconv.DecimalToPgtype(*search.Price.Min))
		query += ` AND l.price >= $` + argN(len(args))
	}
	if search.Price.Max != nil {
		args = append(args, pgconv.DecimalToPgtype(*search.Price.Max))
		query += ` AND l.price <= $` + argN(len(args))
	}
	query += ` ORDER BY ` + orderClause(search.Sort)
	args = append(args, search.Page.Limit())
	query += ` LIMIT $` + argN(len(args))
	args = append(args, search.Page.Offset())
	query += ` OFFSET $` + argN(len(args))

	return s.queryViews(ctx, query, args...)
}

func (s *ListingReadStore) FindBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int32) ([]*queries.ListingView, error) {
	return s.queryViews(ctx,
		listingViewSelect+` WHERE l.seller_id = $1 ORDER BY l.created_at DESC LIMIT $2 OFFSET $3`,
		sellerID, limit, offset,
	)
}

// orderClause maps a validated sort key onto SQL. Keys never come from raw
// request input without validation, so there is no injection surface here.
func orderClause(key queries.SortKey) string {
	switch key {
	case queries.SortPriceAsc:
		return "l.price ASC, l.created_at DESC"
	case queries.SortPriceDesc:
		return "l.price DESC, l.created_at DESC"
	case queries.SortCO2Asc:
		return "c.co2_reduced_kg ASC, l.created_at DESC"
	case queries.SortCO2Desc:
		return "c.co2_reduced_kg DESC, l.created_at DESC"
	case queries.SortOldest:
		return "l.created_at ASC"
	default:
		return "l.created_at DESC"
	}
}

func argN(n int) string {
	return strconv.Itoa(n)
}

func (s *ListingReadStore) queryViews(ctx context.Context, query string, args ...any) ([]*queries.ListingView, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query listings", err)
	}
	defer rows.Close()

	var views []*queries.ListingView
	for rows.Next() {
		view, err := scanListingView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read listing rows", err)
	}
	return views, nil
}

func scanListingView(row pgx.Row) (*queries.ListingView, error) {
	var (
		view      queries.ListingView
		price     pgtype.Numeric
		co2       pgtype.Numeric
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.CreditID, &view.SellerID, &view.Type, &price, &view.Status,
		&co2, &amount, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan listing view", err)
	}
	if view.Price, err = pgconv.DecimalFromPgtype(price); err != nil {
		return nil, infra.WrapRepoErr("invalid price value", err)
	}
	if view.CO2ReducedKg, err = pgconv.DecimalFromPgtype(co2); err != nil {
		return nil, infra.WrapRepoErr("invalid co2_reduced_kg value", err)
	}
	if view.CreditAmount, err = pgconv.DecimalFromPgtype(amount); err != nil {
		return nil, infra.WrapRepoErr("invalid credit amount value", err)
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
