package projection

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the projection core.
type ErrorKind int

const (
	// KindConfig marks invalid or inconsistent configuration.
	KindConfig ErrorKind = iota + 1
	// KindAllocation marks tables that exceed the configured memory budget.
	KindAllocation
	// KindDomain marks evaluation requests outside the tabulated domain.
	KindDomain
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindAllocation:
		return "allocation"
	case KindDomain:
		return "domain"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the projection core. Op names the
// failing operation, Msg describes the failure, Err holds an optional cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrConfig     = &Error{Kind: KindConfig}
	ErrAllocation = &Error{Kind: KindAllocation}
	ErrDomain     = &Error{Kind: KindDomain}
)

// ErrNoAdmissibleL1 reports a combination whose projection function
// vanishes identically by the selection rules. It is a valid zero result,
// not a failure.
var ErrNoAdmissibleL1 = errors.New("projection: no admissible l1")

func (e *Error) Error() string {
	msg := "projection: " + e.Kind.String() + " error"
	if e.Op != "" {
		msg = "projection: " + e.Op
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches bare kind sentinels such as ErrDomain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Msg != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind ErrorKind, op string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: cause}
}

func configError(op, format string, args ...any) error {
	return newError(KindConfig, op, nil, format, args...)
}

func domainError(op, format string, args ...any) error {
	return newError(KindDomain, op, nil, format, args...)
}

func allocationError(op, format string, args ...any) error {
	return newError(KindAllocation, op, nil, format, args...)
}
