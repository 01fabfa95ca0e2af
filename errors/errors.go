package errors

import (
	stderrors "errors"
	"fmt"
)

// Kinds. Every error leaving a service wraps exactly one of them.
var (
	ErrValidation = fmt.Errorf("validation failed")
	ErrNotFound   = fmt.Errorf("not found")
	ErrForbidden  = fmt.Errorf("forbidden")
	ErrDuplicate  = fmt.Errorf("duplicate")
	ErrDelivery   = fmt.Errorf("delivery failed")
	ErrInternal   = fmt.Errorf("internal error")
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrRoomNotFound        = kind(ErrNotFound, "room not found")
	ErrUserNotFound        = kind(ErrNotFound, "user not found")
	ErrMessageNotFound     = kind(ErrNotFound, "message not found")
	ErrParticipantNotFound = kind(ErrNotFound, "participant not found")
	ErrReceiptNotFound     = kind(ErrNotFound, "read receipt not found")
	ErrEntryNotFound       = kind(ErrNotFound, "delivery queue entry not found")

	ErrNotParticipant   = kind(ErrForbidden, "user is not a participant of this room")
	ErrNotInRoom        = kind(ErrForbidden, "please join the room before sending messages")
	ErrCrossRoomReply   = kind(ErrForbidden, "cannot reply to a message from a different room")
	ErrIdentityMismatch = kind(ErrForbidden, "userId does not match the authenticated connection")

	ErrDuplicateIdempotencyKey = kind(ErrDuplicate, "idempotency key already used")
	ErrDuplicateParticipant    = kind(ErrDuplicate, "participant already exists")
	ErrDuplicateReceipt        = kind(ErrDuplicate, "read receipt already exists")
	ErrDuplicateEntry          = kind(ErrDuplicate, "delivery queue entry already exists")
	ErrDuplicateRecord         = kind(ErrDuplicate, "record already exists")

	ErrMissingIdentity   = kind(ErrValidation, "userId is required for connection")
	ErrUnknownConnection = kind(ErrNotFound, "unknown connection")
	ErrUnknownEvent      = kind(ErrValidation, "unknown event")

	ErrBroadcasterClosed = kind(ErrDelivery, "broadcaster closed")
	ErrInvalidToken      = kind(ErrForbidden, "invalid or expired token")
)

const genericMessage = "Internal server error"

// kindError carries its own message while still matching its kind with Is.
type kindError struct {
	msg  string
	kind error
}

func (e kindError) Error() string { return e.msg }

func (e kindError) Unwrap() error { return e.kind }

func kind(k error, msg string) error {
	return kindError{msg: msg, kind: k}
}

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func Join(errs ...error) error { return stderrors.Join(errs...) }

// Validation wraps a validator failure into the validation kind.
func Validation(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// Expected reports whether err is part of the user-facing taxonomy,
// as opposed to an unexpected storage or programming failure.
func Expected(err error) bool {
	return Is(err, ErrValidation) || Is(err, ErrNotFound) ||
		Is(err, ErrForbidden) || Is(err, ErrDuplicate)
}

// PublicMessage is the text sent back to the originating connection.
// Unexpected errors never leak their internals.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	if Expected(err) {
		return err.Error()
	}
	return genericMessage
}
