package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeReservationCreated EventType = "reservation.created"
)

// ReservationEvent tells downstream consumers (guide notifications, mailers)
// that a reservation was stored
type ReservationEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          EventType `json:"type"`
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	GuideID       uuid.UUID `json:"guide_id"`
	ServiceName   string    `json:"service_name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	VisitTime     string    `json:"visit_time,omitempty"`
	Location      string    `json:"location"`
	Pilgrims      int       `json:"pilgrims"`
	TotalPrice    int       `json:"total_price"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewReservationCreated stamps a fresh event id and creation time
func NewReservationCreated(reservationID, userID, guideID uuid.UUID) *ReservationEvent {
	return &ReservationEvent{
		ID:            uuid.New(),
		Type:          EventTypeReservationCreated,
		ReservationID: reservationID,
		UserID:        userID,
		GuideID:       guideID,
		CreatedAt:     time.Now().UTC(),
	}
}

// PartitionKey keeps every event of a guide on one partition, in order
func (e *ReservationEvent) PartitionKey() string {
	return e.GuideID.String()
}

func (e *ReservationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// SingleDay is true when the visit starts and ends on the same date
func (e *ReservationEvent) SingleDay() bool {
	return e.EndDate.IsZero() || e.EndDate.Equal(e.StartDate)
}
