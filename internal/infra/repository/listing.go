package repository

import (
	"context"

	"github.com/google/uuid"

	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/infra/repository/converter"
	"ev-carbon-market/internal/pkg/pgconv"
)

type ListingRepository struct {
	db db.DBTX
}

func NewListingRepository(dbtx db.DBTX) *ListingRepository {
	return &ListingRepository{db: dbtx}
}

const listingColumns = `id, credit_id, seller_id, kind, price, status, created_at, updated_at`

func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	row := converter.ListingToRow(l)
	_, err := r.db.Exec(ctx, `
		INSERT INTO credit_listings (`+listingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		row.ID, row.CreditID, row.SellerID, row.Kind, row.Price, row.Status,
		row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to create listing", err)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	var row converter.ListingRow
	err := r.db.QueryRow(ctx, `
		SELECT `+listingColumns+` FROM credit_listings WHERE id = $1 FOR UPDATE`, id,
	).Scan(
		&row.ID, &row.CreditID, &row.SellerID, &row.Kind, &row.Price, &row.Status,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to find listing", err)
	}
	return converter.ListingToDomain(row)
}

func (r *ListingRepository) HasOpenForCredit(ctx context.Context, creditID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM credit_listings
			WHERE credit_id = $1 AND status IN ('active', 'pending_transaction')
		)`, creditID,
	).Scan(&exists)
	if err != nil {
		return false, wrapQueryErr("failed to check open listings", err)
	}
	return exists, nil
}

// TransitionStatus only writes while the row still holds from; a zero-row
// update surfaces as KindConflict so callers can tell a lost race from a
// database failure.
func (r *ListingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to listing.Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE credit_listings
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, from.String(), to.String(),
	)
	if err != nil {
		return wrapQueryErr("failed to transition listing status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("listing status moved concurrently", infra.KindConflict)
	}
	return nil
}

func (r *ListingRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price listing.Price) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE credit_listings
		SET price = $2, updated_at = now()
		WHERE id = $1 AND status = 'active'`,
		id, pgconv.DecimalToPgtype(price.Decimal()),
	)
	if err != nil {
		return wrapQueryErr("failed to update listing price", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("listing is not active", infra.KindConflict)
	}
	return nil
}
