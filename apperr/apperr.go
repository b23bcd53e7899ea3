// Package apperr holds the error taxonomy shared by every component.
//
// Every failure is scoped to the interaction that triggered it; nothing in
// this package is fatal to the process.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	// Validation covers missing or invalid input. The caller re-prompts.
	Validation
	// Unauthenticated means no staff session is active.
	Unauthenticated
	// RemoteOperation is a network or store failure. Never retried.
	RemoteOperation
	// NotFound means the referenced record is absent.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unauthenticated:
		return "unauthenticated"
	case RemoteOperation:
		return "remote_operation"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind and message so sentinels can be compared
// after being wrapped with an operation name.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == e.Msg && t.Op == ""
}

var (
	ErrMissingGuest         = &Error{Kind: Validation, Msg: "please select a guest"}
	ErrEmptyCart            = &Error{Kind: Validation, Msg: "please add items to your cart"}
	ErrUnauthenticated      = &Error{Kind: Unauthenticated, Msg: "please login to continue"}
	ErrConfirmationRequired = &Error{Kind: Validation, Msg: "confirmation required"}
	ErrSubmissionInProgress = &Error{Kind: Validation, Msg: "order submission already in progress"}
)

func Validationf(op, format string, args ...any) error {
	return &Error{Kind: Validation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(op, format string, args ...any) error {
	return &Error{Kind: NotFound, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Remote wraps a store or network error. A nil err stays nil.
func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: RemoteOperation, Op: op, Err: err}
}

// Wrap tags err with op, keeping the original kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return &Error{Kind: ae.Kind, Op: op, Msg: ae.Msg, Err: ae.Err}
	}
	return &Error{Kind: Unknown, Op: op, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unknown
}

func IsNotFound(err error) bool { return KindOf(err) == NotFound }
