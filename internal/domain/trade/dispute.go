package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Dispute contests a transaction. A transaction can accumulate several
// disputes over time but only one may be OPEN at once; that invariant is
// checked by the use case before creation.
type Dispute struct {
	id            uuid.UUID
	transactionID uuid.UUID
	raisedByID    uuid.UUID
	reason        string
	status        DisputeStatus
	resolution    *string
	resolvedByID  *uuid.UUID
	resolvedAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewDispute(transactionID, raisedByID uuid.UUID, reason string, now time.Time) (*Dispute, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyDisputeReason
	}
	return &Dispute{
		id:            uuid.New(),
		transactionID: transactionID,
		raisedByID:    raisedByID,
		reason:        reason,
		status:        DisputeOpen,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructDispute(
	id, transactionID, raisedByID uuid.UUID,
	reason string,
	status DisputeStatus,
	resolution *string,
	resolvedByID *uuid.UUID,
	resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Dispute {
	return &Dispute{
		id:            id,
		transactionID: transactionID,
		raisedByID:    raisedByID,
		reason:        reason,
		status:        status,
		resolution:    resolution,
		resolvedByID:  resolvedByID,
		resolvedAt:    resolvedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (d *Dispute) Resolve(resolvedByID uuid.UUID, resolution string, now time.Time) error {
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return ErrEmptyResolution
	}
	if d.status != DisputeOpen {
		return d.transitionErr(DisputeResolved)
	}
	d.status = DisputeResolved
	d.resolution = &resolution
	d.resolvedByID = &resolvedByID
	d.resolvedAt = &now
	d.updatedAt = now
	return nil
}

func (d *Dispute) Close(now time.Time) error {
	if d.status == DisputeClosed {
		return d.transitionErr(DisputeClosed)
	}
	d.status = DisputeClosed
	d.updatedAt = now
	return nil
}

func (d *Dispute) Reopen(now time.Time) error {
	if d.status == DisputeOpen {
		return d.transitionErr(DisputeOpen)
	}
	d.status = DisputeOpen
	d.resolution = nil
	d.resolvedByID = nil
	d.resolvedAt = nil
	d.updatedAt = now
	return nil
}

func (d *Dispute) transitionErr(target DisputeStatus) error {
	return fmt.Errorf("%w: dispute %s is %s, cannot move to %s",
		ErrInvalidStateTransition, d.id, d.status, target)
}

func (d *Dispute) ID() uuid.UUID            { return d.id }
func (d *Dispute) TransactionID() uuid.UUID { return d.transactionID }
func (d *Dispute) RaisedByID() uuid.UUID    { return d.raisedByID }
func (d *Dispute) Reason() string           { return d.reason }
func (d *Dispute) Status() DisputeStatus    { return d.status }
func (d *Dispute) Resolution() *string      { return d.resolution }
func (d *Dispute) ResolvedByID() *uuid.UUID { return d.resolvedByID }
func (d *Dispute) ResolvedAt() *time.Time   { return d.resolvedAt }
func (d *Dispute) CreatedAt() time.Time     { return d.createdAt }
func (d *Dispute) UpdatedAt() time.Time     { return d.updatedAt }
