package catalog

import (
	"fmt"

	"guideomra/internal/booking"
	"guideomra/internal/users"

	"github.com/google/uuid"
)

// GuideCard is the public summary of a guide
type GuideCard struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Rating    float64   `json:"rating"`
	Reviews   int       `json:"reviews"`
	Price     string    `json:"price"`
	PriceUnit string    `json:"price_unit"`
	Languages []string  `json:"languages"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Location  string    `json:"location"`
	Verified  bool      `json:"verified"`
	Bio       string    `json:"bio"`
}

// toGuideCard fills the display fallbacks for guides without details
func toGuideCard(p users.Profile) GuideCard {
	card := GuideCard{
		ID:        p.ID,
		Name:      p.FullName,
		Specialty: "Guide",
		Price:     "Sur devis",
		Languages: []string{},
		AvatarURL: p.AvatarURL,
		Location:  "Lieu non renseigné",
		Bio:       "Aucune biographie disponible.",
	}
	if card.Name == "" {
		card.Name = "Guide"
	}
	d := p.Details
	if d == nil {
		return card
	}
	if d.Specialty != "" {
		card.Specialty = d.Specialty
	}
	if d.PricePerDay > 0 {
		currency := d.Currency
		if currency == "" {
			currency = booking.Currency
		}
		card.Price = fmt.Sprintf("%d %s", d.PricePerDay, currency)
	}
	card.PriceUnit = d.PriceUnit
	if len(d.Languages) > 0 {
		card.Languages = d.Languages
	}
	if d.Location != "" {
		card.Location = d.Location
	}
	if d.Bio != "" {
		card.Bio = d.Bio
	}
	card.Rating = d.Rating
	card.Reviews = d.ReviewsCount
	card.Verified = d.Verified
	return card
}

// SearchResponse lists matching services and echoes the applied filter
type SearchResponse struct {
	Services []booking.Service `json:"services"`
	Count    int               `json:"count"`
	Filter   booking.Filter    `json:"filter"`
}
