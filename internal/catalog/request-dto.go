package catalog

import (
	"strings"

	"guideomra/internal/booking"
)

// SearchQuery is bound from the query string of GET /services
type SearchQuery struct {
	Query      string   `form:"q"`
	Category   string   `form:"category"`
	City       string   `form:"city"`
	Languages  []string `form:"languages"`
	PriceRange string   `form:"price_range"`
}

// CreateServiceRequest publishes a new service. The availability window is
// picked on a month grid like a reservation; a missing end day means a
// single-day window.
type CreateServiceRequest struct {
	Title           string                 `json:"title" validate:"required,min=3,max=120"`
	Description     string                 `json:"description" validate:"required"`
	Category        string                 `json:"category" validate:"required"`
	Location        string                 `json:"location" validate:"required"`
	Price           int                    `json:"price" validate:"required,gt=0"`
	MeetingPoints   []booking.MeetingPoint `json:"meeting_points" validate:"omitempty,dive"`
	Calendar        string                 `json:"calendar"`
	StartDay        int                    `json:"start_day" validate:"required,min=1,max=31"`
	EndDay          int                    `json:"end_day" validate:"omitempty,min=1,max=31"`
	MaxParticipants *int                   `json:"max_participants" validate:"omitempty,gt=0"`
	ImageURL        string                 `json:"image_url" validate:"omitempty,url"`
}

// CreateReviewRequest rates a guide from 1 to 5 stars
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// ToFilter parses the query values into a catalog filter. Languages may be
// repeated or comma separated.
func (q SearchQuery) ToFilter() (booking.Filter, error) {
	category, err := booking.ParseCategory(q.Category)
	if err != nil {
		return booking.Filter{}, err
	}
	city, err := booking.ParseCity(q.City)
	if err != nil {
		return booking.Filter{}, err
	}
	bracket, err := booking.ParsePriceBracket(q.PriceRange)
	if err != nil {
		return booking.Filter{}, err
	}

	var languages []string
	for _, raw := range q.Languages {
		for _, l := range strings.Split(raw, ",") {
			if l = strings.TrimSpace(l); l != "" {
				languages = append(languages, l)
			}
		}
	}

	return booking.Filter{
		Query:      strings.TrimSpace(q.Query),
		Category:   category,
		City:       city,
		Languages:  languages,
		PriceRange: bracket,
	}, nil
}
