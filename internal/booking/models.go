package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category of a guide service as listed in the catalog
type Category string

const (
	CategoryOmraBadal   Category = "Omra Badal"
	CategoryGuidedVisit Category = "Visite Guidée"
	CategoryTransport   Category = "Transport"
	CategoryOmraPMR     Category = "Omra PMR"
	CategoryFamily      Category = "Famille"
)

// Categories lists the catalog categories in display order
func Categories() []Category {
	return []Category{CategoryOmraBadal, CategoryGuidedVisit, CategoryTransport, CategoryOmraPMR, CategoryFamily}
}

// IsValid checks if the category is one of the catalog categories
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches a category name case and accent insensitively.
// "Tout" and "all" select every category and yield the empty Category.
func ParseCategory(raw string) (Category, error) {
	key := fold(raw)
	if key == "" || key == "tout" || key == "all" {
		return "", nil
	}
	for _, c := range Categories() {
		if fold(string(c)) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// MeetingPoint is a pickup location offered by a service
type MeetingPoint struct {
	Name       string `json:"name" validate:"required"`
	Supplement int    `json:"supplement" validate:"gte=0"`
}

// Service is an immutable catalog entry a pilgrim can book
type Service struct {
	ID                uuid.UUID      `json:"id"`
	GuideID           uuid.UUID      `json:"guide_id"`
	GuideName         string         `json:"guide_name"`
	Title             string         `json:"title"`
	Description       string         `json:"description,omitempty"`
	Category          Category       `json:"category"`
	Location          string         `json:"location"`
	Price             *int           `json:"price,omitempty"`
	GuidePrice        int            `json:"guide_price,omitempty"`
	Languages         []string       `json:"languages,omitempty"`
	MeetingPoints     []MeetingPoint `json:"meeting_points"`
	AvailabilityStart *time.Time     `json:"availability_start,omitempty"`
	AvailabilityEnd   *time.Time     `json:"availability_end,omitempty"`
	MaxParticipants   *int           `json:"max_participants,omitempty"`
	ImageURL          string         `json:"image_url,omitempty"`
}

// EffectivePrice is the base price a reservation of this service starts from
func (s Service) EffectivePrice() int {
	return ResolveBasePrice(s.Price, s.GuidePrice)
}

// MeetingPoint finds an offered meeting point by name
func (s Service) MeetingPoint(name string) (MeetingPoint, bool) {
	for _, mp := range s.MeetingPoints {
		if mp.Name == name {
			return mp, true
		}
	}
	return MeetingPoint{}, false
}

// AvailableOn reports whether the date falls inside the availability window.
// Services without a window are always available.
func (s Service) AvailableOn(day time.Time) bool {
	day = truncateDay(day)
	if s.AvailabilityStart != nil && day.Before(truncateDay(*s.AvailabilityStart)) {
		return false
	}
	if s.AvailabilityEnd != nil && day.After(truncateDay(*s.AvailabilityEnd)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultPilgrimName is the booking pilgrim every draft starts with
const DefaultPilgrimName = "Moi-même"

// Pilgrim is a participant of a reservation
type Pilgrim struct {
	Name string `json:"name"`
	Age  *int   `json:"age,omitempty"`
}

// Label is the stored form of a pilgrim: "Name (Age ans)" or "Name"
func (p Pilgrim) Label() string {
	if p.Age == nil {
		return p.Name
	}
	return fmt.Sprintf("%s (%d ans)", p.Name, *p.Age)
}

// FormatPilgrims serializes pilgrims in order
func FormatPilgrims(pilgrims []Pilgrim) []string {
	labels := make([]string, len(pilgrims))
	for i, p := range pilgrims {
		labels[i] = p.Label()
	}
	return labels
}

var foldReplacer = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a", "ä", "a",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
)

// fold lowercases and strips French accents for matching
func fold(s string) string {
	return foldReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}
