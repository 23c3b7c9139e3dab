package reservations

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a submission failed
type ErrorKind string

const (
	KindNotAuthenticated   ErrorKind = "not_authenticated"
	KindValidationRejected ErrorKind = "validation_rejected"
	KindUnknown            ErrorKind = "unknown"
)

const (
	msgNotAuthenticated = "Vous devez être connecté pour réserver."
	msgAlreadySubmitted = "Cette réservation a déjà été envoyée."
	msgOutsideWindow    = "Les dates choisies sont hors des disponibilités du service."
	msgUnknown          = "Une erreur est survenue lors de la réservation."
)

// SubmissionError is returned by every failed submission. Message is meant
// for the pilgrim; Err carries the cause for logs.
type SubmissionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func notAuthenticated() *SubmissionError {
	return &SubmissionError{Kind: KindNotAuthenticated, Message: msgNotAuthenticated}
}

func rejected(message string, err error) *SubmissionError {
	return &SubmissionError{Kind: KindValidationRejected, Message: message, Err: err}
}

func unknown(err error) *SubmissionError {
	return &SubmissionError{Kind: KindUnknown, Message: msgUnknown, Err: err}
}

// IsKind reports whether err is a SubmissionError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var se *SubmissionError
	return errors.As(err, &se) && se.Kind == kind
}
