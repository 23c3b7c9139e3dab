package reservations

import (
	"time"

	"guideomra/internal/booking"

	"github.com/google/uuid"
)

const unknownGuideName = "Guide Inconnu"

// QuoteResponse prices a draft and tells the form what is still missing
type QuoteResponse struct {
	DraftID      uuid.UUID     `json:"draft_id"`
	Quote        booking.Quote `json:"quote"`
	Pilgrims     []string      `json:"pilgrims"`
	Complete     bool          `json:"complete"`
	MissingField booking.Field `json:"missing_field,omitempty"`
	Prompt       string        `json:"prompt,omitempty"`
	TimeSlots    []string      `json:"time_slots"`
}

// ReservationResponse is a reservation as listed to its pilgrim
type ReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	GuideID     uuid.UUID `json:"guide_id"`
	GuideName   string    `json:"guide_name"`
	GuideAvatar string    `json:"guide_avatar,omitempty"`
	ServiceName string    `json:"service_name"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	VisitTime   string    `json:"visit_time,omitempty"`
	Location    string    `json:"location"`
	Pilgrims    []string  `json:"pilgrims"`
	Price       int       `json:"price"`
	Currency    string    `json:"currency"`
	Status      Status    `json:"status"`
	StatusLabel string    `json:"status_label"`
	CreatedAt   time.Time `json:"created_at"`
}

func toReservationResponse(r Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:          r.ID,
		GuideID:     r.GuideID,
		GuideName:   unknownGuideName,
		ServiceName: r.ServiceName,
		StartDate:   r.StartDate.Format(time.DateOnly),
		EndDate:     r.EndDate.Format(time.DateOnly),
		VisitTime:   r.VisitTime,
		Location:    r.Location,
		Pilgrims:    r.PilgrimNames,
		Price:       r.TotalPrice,
		Currency:    r.Currency,
		Status:      r.Status,
		StatusLabel: r.Status.Label(),
		CreatedAt:   r.CreatedAt,
	}
	if r.Guide != nil {
		if r.Guide.FullName != "" {
			resp.GuideName = r.Guide.FullName
		}
		resp.GuideAvatar = r.Guide.AvatarURL
	}
	if resp.Pilgrims == nil {
		resp.Pilgrims = []string{}
	}
	return resp
}

func toReservationResponses(list []Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationResponse(r))
	}
	return out
}
