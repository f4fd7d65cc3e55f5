package repository

import (
	"context"

	"github.com/google/uuid"

	"ev-carbon-market/internal/domain/credit"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/infra/repository/converter"
)

type CreditRepository struct {
	db db.DBTX
}

func NewCreditRepository(dbtx db.DBTX) *CreditRepository {
	return &CreditRepository{db: dbtx}
}

const creditColumns = `id, owner_id, journey_id, co2_reduced_kg, amount, status,
	verifier_id, verified_at, listed_at, created_at, updated_at`

func (r *CreditRepository) Create(ctx context.Context, c *credit.Credit) error {
	row := converter.CreditToRow(c)
	_, err := r.db.Exec(ctx, `
		INSERT INTO carbon_credits (`+creditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		row.ID, row.OwnerID, row.JourneyID, row.CO2ReducedKg, row.Amount, row.Status,
		row.VerifierID, row.VerifiedAt, row.ListedAt, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to create carbon credit", err)
	}
	return nil
}

func (r *CreditRepository) FindByID(ctx context.Context, id uuid.UUID) (*credit.Credit, error) {
	return r.findOne(ctx, `SELECT `+creditColumns+` FROM carbon_credits WHERE id = $1 FOR UPDATE`, id)
}

func (r *CreditRepository) FindByJourneyID(ctx context.Context, journeyID uuid.UUID) (*credit.Credit, error) {
	return r.findOne(ctx, `SELECT `+creditColumns+` FROM carbon_credits WHERE journey_id = $1 FOR UPDATE`, journeyID)
}

func (r *CreditRepository) Save(ctx context.Context, c *credit.Credit) error {
	row := converter.CreditToRow(c)
	tag, err := r.db.Exec(ctx, `
		UPDATE carbon_credits
		SET amount = $2, status = $3, verifier_id = $4, verified_at = $5,
			listed_at = $6, updated_at = $7
		WHERE id = $1`,
		row.ID, row.Amount, row.Status, row.VerifierID, row.VerifiedAt,
		row.ListedAt, row.UpdatedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to save carbon credit", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("carbon credit not found for save", infra.KindNotFound)
	}
	return nil
}

func (r *CreditRepository) findOne(ctx context.Context, query string, arg any) (*credit.Credit, error) {
	var row converter.CreditRow
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&row.ID, &row.OwnerID, &row.JourneyID, &row.CO2ReducedKg, &row.Amount, &row.Status,
		&row.VerifierID, &row.VerifiedAt, &row.ListedAt, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to find carbon credit", err)
	}
	return converter.CreditToDomain(row)
}
