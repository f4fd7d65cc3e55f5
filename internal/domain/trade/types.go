package trade

import "errors"

var (
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
	ErrInvalidDisputeStatus     = errors.New("invalid dispute status")
	ErrInvalidStateTransition   = errors.New("invalid transaction state transition")
	ErrEmptyDisputeReason       = errors.New("dispute reason cannot be empty")
	ErrEmptyResolution          = errors.New("dispute resolution cannot be empty")
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
	TransactionDisputed  TransactionStatus = "disputed"
)

func (s TransactionStatus) String() string {
	return string(s)
}

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionCancelled, TransactionDisputed:
		return true
	default:
		return false
	}
}

// IsTerminal: PENDING and DISPUTED still move; COMPLETED and CANCELLED only
// move again through a dispute.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionCompleted || s == TransactionCancelled
}

func NewTransactionStatus(s string) (TransactionStatus, error) {
	st := TransactionStatus(s)
	if !st.IsValid() {
		return "", ErrInvalidTransactionStatus
	}
	return st, nil
}

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeResolved DisputeStatus = "resolved"
	DisputeClosed   DisputeStatus = "closed"
)

func (s DisputeStatus) String() string {
	return string(s)
}

func (s DisputeStatus) IsValid() bool {
	switch s {
	case DisputeOpen, DisputeResolved, DisputeClosed:
		return true
	default:
		return false
	}
}

func NewDisputeStatus(s string) (DisputeStatus, error) {
	st := DisputeStatus(s)
	if !st.IsValid() {
		return "", ErrInvalidDisputeStatus
	}
	return st, nil
}
