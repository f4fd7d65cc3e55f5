package listing

import "errors"

var (
	ErrInvalidStatus          = errors.New("invalid listing status")
	ErrInvalidType            = errors.New("invalid listing type")
	ErrInvalidStateTransition = errors.New("invalid listing state transition")
	ErrInvalidPrice           = errors.New("invalid listing price")
	ErrPriceTooPrecise        = errors.New("listing price must have at most 2 decimal places")
	ErrPriceOutOfRange        = errors.New("listing price must be greater than 0 and at most 10000")
)

type Status string

const (
	StatusActive             Status = "active"
	StatusPendingTransaction Status = "pending_transaction"
	StatusClosed             Status = "closed"
	StatusCancelled          Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPendingTransaction, StatusClosed, StatusCancelled:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type Type string

const (
	TypeFixed   Type = "fixed"
	TypeAuction Type = "auction"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	return t == TypeFixed || t == TypeAuction
}

func NewType(s string) (Type, error) {
	lt := Type(s)
	if !lt.IsValid() {
		return "", ErrInvalidType
	}
	return lt, nil
}
