package journey

import "errors"

var (
	ErrInvalidVerificationStatus = errors.New("invalid journey verification status")
	ErrInvalidStateTransition    = errors.New("invalid journey state transition")
)

// VerificationStatus drives the credit ledger: a journey's credit can only
// be approved or rejected while the journey sits in one of the two pending
// states.
type VerificationStatus string

const (
	PendingVerification VerificationStatus = "pending_verification"
	PendingInspection   VerificationStatus = "pending_inspection"
	Verified            VerificationStatus = "verified"
	Rejected            VerificationStatus = "rejected"
)

func (s VerificationStatus) String() string {
	return string(s)
}

func (s VerificationStatus) IsValid() bool {
	switch s {
	case PendingVerification, PendingInspection, Verified, Rejected:
		return true
	default:
		return false
	}
}

// IsPending reports whether the journey still awaits a CVA decision.
func (s VerificationStatus) IsPending() bool {
	return s == PendingVerification || s == PendingInspection
}

func NewVerificationStatus(s string) (VerificationStatus, error) {
	st := VerificationStatus(s)
	if !st.IsValid() {
		return "", ErrInvalidVerificationStatus
	}
	return st, nil
}
