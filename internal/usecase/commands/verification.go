package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ev-carbon-market/internal/domain/credit"
	"ev-carbon-market/internal/domain/journey"
	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/pkg/clock"
	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/usecase/shared"
)

var (
	ErrJourneyNotFound        = errs.New("journey not found")
	ErrCreditNotFound         = errs.New("carbon credit not found")
	ErrJourneyNotReviewable   = errs.New("journey is not awaiting verification")
	ErrAppointmentNotFound    = errs.New("inspection appointment not found")
	ErrNotAppointmentOwner    = errs.New("appointment belongs to another owner")
	ErrStationNotFound        = errs.New("verification station not found")
	ErrStationInactive        = errs.New("verification station is not active")
)

type VerificationCommands interface {
	// ApproveJourney verifies a journey without a physical inspection,
	// promotes its credit and pays out the owner's wallet atomically.
	ApproveJourney(ctx context.Context, journeyID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
	RejectJourney(ctx context.Context, journeyID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
	// RequestInspection escalates a pending journey to a physical check.
	RequestInspection(ctx context.Context, journeyID uuid.UUID, actorID uuid.UUID, actorRole user.Role) (uuid.UUID, error)
	ScheduleAppointment(ctx context.Context, appointmentID uuid.UUID, actorID uuid.UUID, actorRole user.Role, stationID uuid.UUID, at time.Time) error
	// CompleteInspection records the CVA's findings and settles the journey
	// in the same transaction.
	CompleteInspection(ctx context.Context, appointmentID uuid.UUID, actorID uuid.UUID, actorRole user.Role, approved bool, notes string) error
}

type verificationCommandsImpl struct {
	uow      shared.UnitOfWork
	clk      clock.Clock
	audit    shared.AuditSink
	notifier shared.NotificationSink
}

func NewVerificationCommands(
	uow shared.UnitOfWork,
	clk clock.Clock,
	audit shared.AuditSink,
	notifier shared.NotificationSink,
) VerificationCommands {
	return &verificationCommandsImpl{uow: uow, clk: clk, audit: audit, notifier: notifier}
}

func (uc *verificationCommandsImpl) ApproveJourney(
	ctx context.Context,
	journeyID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
) error {
	if !user.CanPerform(actorRole, user.ActionApproveJourney) {
		return ErrUnauthorizedOperation
	}

	var ownerID uuid.UUID
	var payout decimal.Decimal
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jr, err := uc.loadJourney(ctx, tx, journeyID)
		if err != nil {
			return err
		}
		if jr.VerificationStatus != journey.PendingVerification {
			return ErrJourneyNotReviewable
		}
		ownerID = jr.OwnerID
		payout, err = uc.approveInTx(ctx, tx, jr, actorID, journey.PendingVerification)
		return err
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "journey.approved", actorID, journeyID, map[string]any{
		"payout": payout.String(),
	})
	uc.notifier.Notify(ctx, ownerID, "Journey verified", "Your journey was verified and the credit is available for listing.", journeyID)
	return nil
}

func (uc *verificationCommandsImpl) RejectJourney(
	ctx context.Context,
	journeyID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
) error {
	if !user.CanPerform(actorRole, user.ActionRejectJourney) {
		return ErrUnauthorizedOperation
	}

	var ownerID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jr, err := uc.loadJourney(ctx, tx, journeyID)
		if err != nil {
			return err
		}
		if jr.VerificationStatus != journey.PendingVerification {
			return ErrJourneyNotReviewable
		}
		ownerID = jr.OwnerID
		return uc.rejectInTx(ctx, tx, jr, actorID, journey.PendingVerification)
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "journey.rejected", actorID, journeyID, nil)
	uc.notifier.Notify(ctx, ownerID, "Journey rejected", "Your journey did not pass verification.", journeyID)
	return nil
}

func (uc *verificationCommandsImpl) RequestInspection(
	ctx context.Context,
	journeyID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
) (uuid.UUID, error) {
	if !user.CanPerform(actorRole, user.ActionRequestInspection) {
		return uuid.Nil, ErrUnauthorizedOperation
	}

	var appointmentID uuid.UUID
	var ownerID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jr, err := uc.loadJourney(ctx, tx, journeyID)
		if err != nil {
			return err
		}
		if jr.VerificationStatus != journey.PendingVerification {
			return ErrJourneyNotReviewable
		}
		if err := tx.Journeys().TransitionVerificationStatus(ctx, journeyID, journey.PendingVerification, journey.PendingInspection); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrJourneyNotReviewable)
			}
			return errs.Wrap(err, "failed to escalate journey to inspection")
		}
		appt := journey.NewAppointment(journeyID, jr.OwnerID, actorID, uc.clk.Now())
		if err := tx.Inspections().Create(ctx, appt); err != nil {
			return errs.Wrap(err, "failed to create inspection appointment")
		}
		appointmentID = appt.ID()
		ownerID = jr.OwnerID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.audit.Record(ctx, "inspection.requested", actorID, appointmentID, map[string]any{
		"journey_id": journeyID.String(),
	})
	uc.notifier.Notify(ctx, ownerID, "Inspection required", "A physical inspection was requested for your journey. Please schedule an appointment.", appointmentID)
	return appointmentID, nil
}

func (uc *verificationCommandsImpl) ScheduleAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
	stationID uuid.UUID,
	at time.Time,
) error {
	if !user.CanPerform(actorRole, user.ActionScheduleInspection) {
		return ErrUnauthorizedOperation
	}

	var cvaID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := uc.loadAppointment(ctx, tx, appointmentID)
		if err != nil {
			return err
		}
		if appt.EVOwnerID() != actorID && actorRole != user.RoleAdmin {
			return ErrNotAppointmentOwner
		}
		station, err := tx.Stations().FindByID(ctx, stationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrStationNotFound)
			}
			return errs.Wrap(err, "failed to load verification station")
		}
		if !station.Active {
			return ErrStationInactive
		}
		if err := appt.Schedule(stationID, at, uc.clk.Now()); err != nil {
			return err
		}
		cvaID = appt.CVAID()
		return tx.Inspections().Save(ctx, appt)
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "inspection.scheduled", actorID, appointmentID, map[string]any{
		"station_id":       stationID.String(),
		"appointment_time": at.Format(time.RFC3339),
	})
	uc.notifier.Notify(ctx, cvaID, "Inspection scheduled", "An inspection appointment was scheduled.", appointmentID)
	return nil
}

func (uc *verificationCommandsImpl) CompleteInspection(
	ctx context.Context,
	appointmentID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
	approved bool,
	notes string,
) error {
	if !user.CanPerform(actorRole, user.ActionCompleteInspection) {
		return ErrUnauthorizedOperation
	}

	var ownerID, journeyID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := uc.loadAppointment(ctx, tx, appointmentID)
		if err != nil {
			return err
		}
		if err := appt.Complete(notes, uc.clk.Now()); err != nil {
			return err
		}
		if err := tx.Inspections().Save(ctx, appt); err != nil {
			return errs.Wrap(err, "failed to save inspection appointment")
		}

		jr, err := uc.loadJourney(ctx, tx, appt.JourneyID())
		if err != nil {
			return err
		}
		ownerID = jr.OwnerID
		journeyID = jr.ID
		if approved {
			_, err = uc.approveInTx(ctx, tx, jr, actorID, journey.PendingInspection)
			return err
		}
		return uc.rejectInTx(ctx, tx, jr, actorID, journey.PendingInspection)
	})
	if err != nil {
		return err
	}

	outcome := "rejected"
	message := "Your journey did not pass the physical inspection."
	if approved {
		outcome = "approved"
		message = "Your journey passed inspection and the credit is available for listing."
	}
	uc.audit.Record(ctx, "inspection.completed", actorID, appointmentID, map[string]any{
		"journey_id": journeyID.String(),
		"outcome":    outcome,
	})
	uc.notifier.Notify(ctx, ownerID, "Inspection completed", message, journeyID)
	return nil
}

// approveInTx moves the journey to VERIFIED, promotes its credit and pays
// the recomputed amount into the owner's wallet. Everything shares tx, so
// a failure anywhere leaves no partial verification behind.
func (uc *verificationCommandsImpl) approveInTx(
	ctx context.Context,
	tx shared.Tx,
	jr *shared.JourneySnapshot,
	verifierID uuid.UUID,
	from journey.VerificationStatus,
) (decimal.Decimal, error) {
	cr, err := uc.loadCredit(ctx, tx, jr.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := cr.Approve(verifierID, uc.clk.Now()); err != nil {
		return decimal.Zero, err
	}
	if err := tx.Credits().Save(ctx, cr); err != nil {
		return decimal.Zero, errs.Wrap(err, "failed to save verified credit")
	}
	if err := tx.Journeys().TransitionVerificationStatus(ctx, jr.ID, from, journey.Verified); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return decimal.Zero, errs.Mark(err, ErrJourneyNotReviewable)
		}
		return decimal.Zero, errs.Wrap(err, "failed to verify journey")
	}
	if err := tx.Wallets().Credit(ctx, jr.OwnerID, cr.Amount()); err != nil {
		return decimal.Zero, errs.Wrap(err, "failed to pay out credit amount")
	}
	return cr.Amount(), nil
}

func (uc *verificationCommandsImpl) rejectInTx(
	ctx context.Context,
	tx shared.Tx,
	jr *shared.JourneySnapshot,
	verifierID uuid.UUID,
	from journey.VerificationStatus,
) error {
	cr, err := uc.loadCredit(ctx, tx, jr.ID)
	if err != nil {
		return err
	}
	if err := cr.Reject(verifierID, uc.clk.Now()); err != nil {
		return err
	}
	if err := tx.Credits().Save(ctx, cr); err != nil {
		return errs.Wrap(err, "failed to save rejected credit")
	}
	if err := tx.Journeys().TransitionVerificationStatus(ctx, jr.ID, from, journey.Rejected); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, ErrJourneyNotReviewable)
		}
		return errs.Wrap(err, "failed to reject journey")
	}
	return nil
}

func (uc *verificationCommandsImpl) loadJourney(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.JourneySnapshot, error) {
	jr, err := tx.Journeys().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrJourneyNotFound)
		}
		return nil, errs.Wrap(err, "failed to load journey")
	}
	return jr, nil
}

func (uc *verificationCommandsImpl) loadCredit(ctx context.Context, tx shared.Tx, journeyID uuid.UUID) (*credit.Credit, error) {
	c, err := tx.Credits().FindByJourneyID(ctx, journeyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCreditNotFound)
		}
		return nil, errs.Wrap(err, "failed to load credit")
	}
	return c, nil
}

func (uc *verificationCommandsImpl) loadAppointment(ctx context.Context, tx shared.Tx, id uuid.UUID) (*journey.Appointment, error) {
	appt, err := tx.Inspections().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrAppointmentNotFound)
		}
		return nil, errs.Wrap(err, "failed to load inspection appointment")
	}
	return appt, nil
}
