package journey

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAppointmentStatus = errors.New("invalid inspection appointment status")
	ErrAppointmentInPast        = errors.New("appointment time must be in the future")
	ErrStationRequired          = errors.New("an active verification station is required")
)

type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "requested"
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) String() string {
	return string(s)
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentRequested, AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	default:
		return false
	}
}

func NewAppointmentStatus(s string) (AppointmentStatus, error) {
	st := AppointmentStatus(s)
	if !st.IsValid() {
		return "", ErrInvalidAppointmentStatus
	}
	return st, nil
}

// Appointment is the physical-inspection sub-workflow attached 1:1 to a
// journey in PENDING_INSPECTION.
type Appointment struct {
	id              uuid.UUID
	journeyID       uuid.UUID
	evOwnerID       uuid.UUID
	cvaID           uuid.UUID
	stationID       *uuid.UUID
	status          AppointmentStatus
	appointmentTime *time.Time
	cvaNotes        *string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewAppointment(journeyID, evOwnerID, cvaID uuid.UUID, now time.Time) *Appointment {
	return &Appointment{
		id:        uuid.New(),
		journeyID: journeyID,
		evOwnerID: evOwnerID,
		cvaID:     cvaID,
		status:    AppointmentRequested,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructAppointment(
	id, journeyID, evOwnerID, cvaID uuid.UUID,
	stationID *uuid.UUID,
	status AppointmentStatus,
	appointmentTime *time.Time,
	cvaNotes *string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:              id,
		journeyID:       journeyID,
		evOwnerID:       evOwnerID,
		cvaID:           cvaID,
		stationID:       stationID,
		status:          status,
		appointmentTime: appointmentTime,
		cvaNotes:        cvaNotes,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Schedule books the inspection at an active station: REQUESTED -> SCHEDULED.
func (a *Appointment) Schedule(stationID uuid.UUID, at time.Time, now time.Time) error {
	if a.status != AppointmentRequested {
		return a.transitionErr(AppointmentScheduled)
	}
	if !at.After(now) {
		return ErrAppointmentInPast
	}
	a.stationID = &stationID
	a.appointmentTime = &at
	a.status = AppointmentScheduled
	a.updatedAt = now
	return nil
}

// Complete records the CVA's on-site decision: SCHEDULED -> COMPLETED.
func (a *Appointment) Complete(notes string, now time.Time) error {
	if a.status != AppointmentScheduled {
		return a.transitionErr(AppointmentCompleted)
	}
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		a.cvaNotes = &trimmed
	}
	a.status = AppointmentCompleted
	a.updatedAt = now
	return nil
}

func (a *Appointment) CancelAppointment(now time.Time) error {
	if a.status == AppointmentCompleted || a.status == AppointmentCancelled {
		return a.transitionErr(AppointmentCancelled)
	}
	a.status = AppointmentCancelled
	a.updatedAt = now
	return nil
}

func (a *Appointment) transitionErr(target AppointmentStatus) error {
	return fmt.Errorf("%w: appointment %s is %s, cannot move to %s",
		ErrInvalidStateTransition, a.id, a.status, target)
}

func (a *Appointment) ID() uuid.UUID               { return a.id }
func (a *Appointment) JourneyID() uuid.UUID        { return a.journeyID }
func (a *Appointment) EVOwnerID() uuid.UUID        { return a.evOwnerID }
func (a *Appointment) CVAID() uuid.UUID            { return a.cvaID }
func (a *Appointment) StationID() *uuid.UUID       { return a.stationID }
func (a *Appointment) Status() AppointmentStatus   { return a.status }
func (a *Appointment) AppointmentTime() *time.Time { return a.appointmentTime }
func (a *Appointment) CVANotes() *string           { return a.cvaNotes }
func (a *Appointment) CreatedAt() time.Time        { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time        { return a.updatedAt }
