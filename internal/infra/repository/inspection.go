package repository

import (
	"context"

	"github.com/google/uuid"

	"ev-carbon-market/internal/domain/journey"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/infra/repository/converter"
)

type InspectionRepository struct {
	db db.DBTX
}

func NewInspectionRepository(dbtx db.DBTX) *InspectionRepository {
	return &InspectionRepository{db: dbtx}
}

const appointmentColumns = `id, journey_id, ev_owner_id, cva_id, station_id, status,
	appointment_time, cva_notes, created_at, updated_at`

func (r *InspectionRepository) Create(ctx context.Context, a *journey.Appointment) error {
	row := converter.AppointmentToRow(a)
	_, err := r.db.Exec(ctx, `
		INSERT INTO inspection_appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		row.ID, row.JourneyID, row.EVOwnerID, row.CVAID, row.StationID, row.Status,
		row.AppointmentTime, row.CVANotes, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to create inspection appointment", err)
	}
	return nil
}

func (r *InspectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*journey.Appointment, error) {
	return r.findOne(ctx, `SELECT `+appointmentColumns+` FROM inspection_appointments WHERE id = $1 FOR UPDATE`, id)
}

func (r *InspectionRepository) FindByJourneyID(ctx context.Context, journeyID uuid.UUID) (*journey.Appointment, error) {
	return r.findOne(ctx, `SELECT `+appointmentColumns+` FROM inspection_appointments WHERE journey_id = $1 FOR UPDATE`, journeyID)
}

func (r *InspectionRepository) Save(ctx context.Context, a *journey.Appointment) error {
	row := converter.AppointmentToRow(a)
	tag, err := r.db.Exec(ctx, `
		UPDATE inspection_appointments
		SET station_id = $2, status = $3, appointment_time = $4, cva_notes = $5,
			updated_at = $6
		WHERE id = $1`,
		row.ID, row.StationID, row.Status, row.AppointmentTime, row.CVANotes,
		row.UpdatedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to save inspection appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("inspection appointment not found for save", infra.KindNotFound)
	}
	return nil
}

func (r *InspectionRepository) findOne(ctx context.Context, query string, arg any) (*journey.Appointment, error) {
	var row converter.AppointmentRow
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&row.ID, &row.JourneyID, &row.EVOwnerID, &row.CVAID, &row.StationID, &row.Status,
		&row.AppointmentTime, &row.CVANotes, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to find inspection appointment", err)
	}
	return converter.AppointmentToDomain(row)
}
