package converter

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"ev-carbon-market/internal/domain/journey"
	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/pkg/pgconv"
)

type AppointmentRow struct {
	ID              uuid.UUID
	JourneyID       uuid.UUID
	EVOwnerID       uuid.UUID
	CVAID           uuid.UUID
	StationID       pgtype.UUID
	Status          string
	AppointmentTime pgtype.Timestamptz
	CVANotes        pgtype.Text
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func AppointmentToRow(a *journey.Appointment) AppointmentRow {
	return AppointmentRow{
		ID:              a.ID(),
		JourneyID:       a.JourneyID(),
		EVOwnerID:       a.EVOwnerID(),
		CVAID:           a.CVAID(),
		StationID:       pgconv.UUIDPtrToPgtype(a.StationID()),
		Status:          a.Status().String(),
		AppointmentTime: pgconv.TimePtrToPgtype(a.AppointmentTime()),
		CVANotes:        pgconv.StringPtrToPgtype(a.CVANotes()),
		CreatedAt:       pgconv.TimeToPgtype(a.CreatedAt()),
		UpdatedAt:       pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

func AppointmentToDomain(row AppointmentRow) (*journey.Appointment, error) {
	status, err := journey.NewAppointmentStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "invalid appointment status value")
	}
	return journey.ReconstructAppointment(
		row.ID, row.JourneyID, row.EVOwnerID, row.CVAID,
		pgconv.UUIDPtrFromPgtype(row.StationID),
		status,
		pgconv.TimePtrFromPgtype(row.AppointmentTime),
		pgconv.StringPtrFromPgtype(row.CVANotes),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
