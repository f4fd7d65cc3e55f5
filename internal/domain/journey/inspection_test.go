//go:build unit

package journey_test

import (
	"testing"
	"time"

	"ev-carbon-market/internal/domain/journey"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment(t *testing.T) {
	now := time.Now()
	station := uuid.New()

	newAppointment := func() *journey.Appointment {
		return journey.NewAppointment(uuid.New(), uuid.New(), uuid.New(), now)
	}

	t.Run("starts requested without a station", func(t *testing.T) {
		a := newAppointment()
		assert.Equal(t, journey.AppointmentRequested, a.Status())
		assert.Nil(t, a.StationID())
		assert.Nil(t, a.AppointmentTime())
	})

	t.Run("schedule books station and time", func(t *testing.T) {
		a := newAppointment()
		at := now.Add(48 * time.Hour)

		require.NoError(t, a.Schedule(station, at, now))

		assert.Equal(t, journey.AppointmentScheduled, a.Status())
		require.NotNil(t, a.StationID())
		assert.Equal(t, station, *a.StationID())
		require.NotNil(t, a.AppointmentTime())
		assert.Equal(t, at, *a.AppointmentTime())
	})

	t.Run("schedule rejects past time", func(t *testing.T) {
		a := newAppointment()
		err := a.Schedule(station, now.Add(-time.Hour), now)
		assert.ErrorIs(t, err, journey.ErrAppointmentInPast)
	})

	t.Run("schedule rejects exact present", func(t *testing.T) {
		a := newAppointment()
		err := a.Schedule(station, now, now)
		assert.ErrorIs(t, err, journey.ErrAppointmentInPast)
	})

	t.Run("complete records trimmed notes", func(t *testing.T) {
		a := newAppointment()
		require.NoError(t, a.Schedule(station, now.Add(time.Hour), now))

		require.NoError(t, a.Complete("  odometer matches the log  ", now))

		assert.Equal(t, journey.AppointmentCompleted, a.Status())
		require.NotNil(t, a.CVANotes())
		assert.Equal(t, "odometer matches the log", *a.CVANotes())
	})

	t.Run("complete with blank notes keeps nil", func(t *testing.T) {
		a := newAppointment()
		require.NoError(t, a.Schedule(station, now.Add(time.Hour), now))
		require.NoError(t, a.Complete("   ", now))
		assert.Nil(t, a.CVANotes())
	})

	t.Run("complete requires scheduled", func(t *testing.T) {
		a := newAppointment()
		assert.ErrorIs(t, a.Complete("notes", now), journey.ErrInvalidStateTransition)
	})

	t.Run("cancel allowed until completed", func(t *testing.T) {
		requested := newAppointment()
		require.NoError(t, requested.CancelAppointment(now))
		assert.Equal(t, journey.AppointmentCancelled, requested.Status())

		scheduled := newAppointment()
		require.NoError(t, scheduled.Schedule(station, now.Add(time.Hour), now))
		require.NoError(t, scheduled.CancelAppointment(now))

		completed := newAppointment()
		require.NoError(t, completed.Schedule(station, now.Add(time.Hour), now))
		require.NoError(t, completed.Complete("done", now))
		assert.ErrorIs(t, completed.CancelAppointment(now), journey.ErrInvalidStateTransition)

		assert.ErrorIs(t, requested.CancelAppointment(now), journey.ErrInvalidStateTransition)
	})

	t.Run("schedule twice rejected", func(t *testing.T) {
		a := newAppointment()
		require.NoError(t, a.Schedule(station, now.Add(time.Hour), now))
		err := a.Schedule(station, now.Add(2*time.Hour), now)
		assert.ErrorIs(t, err, journey.ErrInvalidStateTransition)
	})
}

func TestVerificationStatus(t *testing.T) {
	t.Run("parse known statuses", func(t *testing.T) {
		for _, s := range []string{
			"pending_verification", "pending_inspection", "verified", "rejected",
		} {
			st, err := journey.NewVerificationStatus(s)
			require.NoError(t, err)
			assert.Equal(t, s, st.String())
		}
	})

	t.Run("parse rejects unknown status", func(t *testing.T) {
		_, err := journey.NewVerificationStatus("unknown")
		assert.ErrorIs(t, err, journey.ErrInvalidVerificationStatus)
	})

	t.Run("pending states", func(t *testing.T) {
		assert.True(t, journey.PendingVerification.IsPending())
		assert.True(t, journey.PendingInspection.IsPending())
		assert.False(t, journey.Verified.IsPending())
		assert.False(t, journey.Rejected.IsPending())
	})
}
