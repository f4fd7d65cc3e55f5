package request

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleAppointmentRequest struct {
	StationID       uuid.UUID `json:"station_id" binding:"required"`
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
}

type CompleteInspectionRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
}
