package credit

import "errors"

var (
	ErrInvalidStatus          = errors.New("invalid credit status")
	ErrInvalidStateTransition = errors.New("invalid credit state transition")
	ErrNegativeCO2            = errors.New("co2 reduction cannot be negative")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusListed   Status = "listed"
	StatusSold     Status = "sold"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusListed, StatusSold, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further lifecycle transition is possible.
// SOLD can still be reverted by dispute resolution, which is handled as an
// explicit administrative override rather than a lifecycle transition.
func (s Status) IsTerminal() bool {
	return s == StatusSold || s == StatusRejected
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
