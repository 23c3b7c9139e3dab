package reservations

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStatus = errors.New("unknown reservation status")

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists the closed set of reservation statuses
func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
}

// ParseStatus accepts any casing; anything outside the closed set is an error
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// IsValid checks if the reservation status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Label is the French display text
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "En attente"
	case StatusConfirmed:
		return "Confirmé"
	case StatusCompleted:
		return "Terminé"
	case StatusCancelled:
		return "Annulé"
	}
	return "Inconnu"
}

// IsTerminal reports whether the reservation can no longer change
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled:
		return true
	case StatusPending, StatusConfirmed:
		return false
	}
	return false
}
