package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNilDraft                   = errors.New("draft is nil")
	ErrDraftFrozen                = errors.New("draft was submitted and can no longer change")
	ErrAlreadySubmitted           = errors.New("draft was already submitted")
	ErrEmptyPilgrimName           = errors.New("pilgrim name is required")
	ErrNegativeAge                = errors.New("pilgrim age cannot be negative")
	ErrCannotRemoveBookingPilgrim = errors.New("the booking pilgrim cannot be removed")
	ErrPilgrimIndexOutOfRange     = errors.New("pilgrim index out of range")
	ErrUnknownMeetingPoint        = errors.New("meeting point is not offered by this service")
	ErrInvalidTimeSlot            = errors.New("time slot is not offered")
	ErrUnknownCategory            = errors.New("unknown category")
	ErrUnknownCity                = errors.New("unknown city")
	ErrUnknownPriceBracket        = errors.New("unknown price bracket")
)

// Field names a draft input the user still has to fill in
type Field string

const (
	FieldLocation Field = "location"
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldPilgrims Field = "pilgrims"
)

// Prompt is the directed message shown for the missing field
func (f Field) Prompt() string {
	switch f {
	case FieldLocation:
		return "Lieu manquant"
	case FieldDate:
		return "Date manquante"
	case FieldTime:
		return "Heure manquante"
	case FieldPilgrims:
		return "Pèlerin manquant"
	}
	return "Information manquante"
}

// IncompleteDraftError names the first missing field of a draft
type IncompleteDraftError struct {
	Field Field
}

func (e *IncompleteDraftError) Error() string {
	return fmt.Sprintf("incomplete draft: missing %s", e.Field)
}

// MissingField extracts the missing field from an IncompleteDraftError chain
func MissingField(err error) (Field, bool) {
	var incomplete *IncompleteDraftError
	if errors.As(err, &incomplete) {
		return incomplete.Field, true
	}
	return "", false
}
