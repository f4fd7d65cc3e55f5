package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"ev-carbon-market/internal/domain/journey"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/pkg/pgconv"
	"ev-carbon-market/internal/usecase/shared"
)

type JourneyRepository struct {
	db db.DBTX
}

func NewJourneyRepository(dbtx db.DBTX) *JourneyRepository {
	return &JourneyRepository{db: dbtx}
}

func (r *JourneyRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.JourneySnapshot, error) {
	var (
		snap       shared.JourneySnapshot
		distanceKm pgtype.Numeric
		energyKwh  pgtype.Numeric
		status     string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, distance_km, energy_kwh, verification_status
		FROM journeys WHERE id = $1 FOR UPDATE`, id,
	).Scan(&snap.ID, &snap.OwnerID, &distanceKm, &energyKwh, &status)
	if err != nil {
		return nil, wrapQueryErr("failed to find journey", err)
	}
	if snap.DistanceKm, err = pgconv.DecimalFromPgtype(distanceKm); err != nil {
		return nil, wrapQueryErr("invalid distance_km value", err)
	}
	if snap.EnergyKwh, err = pgconv.DecimalFromPgtype(energyKwh); err != nil {
		return nil, wrapQueryErr("invalid energy_kwh value", err)
	}
	if snap.VerificationStatus, err = journey.NewVerificationStatus(status); err != nil {
		return nil, wrapQueryErr("invalid verification_status value", err)
	}
	return &snap, nil
}

func (r *JourneyRepository) TransitionVerificationStatus(ctx context.Context, id uuid.UUID, from, to journey.VerificationStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE journeys
		SET verification_status = $3, updated_at = now()
		WHERE id = $1 AND verification_status = $2`,
		id, from.String(), to.String(),
	)
	if err != nil {
		return wrapQueryErr("failed to transition journey status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("journey status moved concurrently", infra.KindConflict)
	}
	return nil
}
