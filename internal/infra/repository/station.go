package repository

import (
	"context"

	"github.com/google/uuid"

	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/usecase/shared"
)

type StationRepository struct {
	db db.DBTX
}

func NewStationRepository(dbtx db.DBTX) *StationRepository {
	return &StationRepository{db: dbtx}
}

func (r *StationRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.StationSnapshot, error) {
	var snap shared.StationSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, name, active FROM verification_stations WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.Name, &snap.Active)
	if err != nil {
		return nil, wrapQueryErr("failed to find verification station", err)
	}
	return &snap, nil
}
