package catalog

import (
	"time"

	"guideomra/internal/booking"
	"guideomra/internal/reviews"
	"guideomra/internal/users"

	"github.com/google/uuid"
)

const (
	unknownGuideName    = "Guide Inconnu"
	unspecifiedLocation = "Lieu non spécifié"
)

// ServiceRecord is the stored form of a guide's service
type ServiceRecord struct {
	ID                uuid.UUID              `json:"id" gorm:"primaryKey;type:uuid"`
	GuideID           uuid.UUID              `json:"guide_id" gorm:"type:uuid;index;not null"`
	Title             string                 `json:"title" gorm:"not null"`
	Description       string                 `json:"description"`
	Category          string                 `json:"category" gorm:"type:varchar(40);index"`
	Location          string                 `json:"location"`
	PriceOverride     *int                   `json:"price_override"`
	MeetingPoints     []booking.MeetingPoint `json:"meeting_points" gorm:"serializer:json"`
	AvailabilityStart *time.Time             `json:"availability_start"`
	AvailabilityEnd   *time.Time             `json:"availability_end"`
	MaxParticipants   *int                   `json:"max_participants"`
	ImageURL          string                 `json:"image_url"`
	Active            bool                   `json:"active" gorm:"default:true"`
	Guide             *users.Profile         `json:"guide,omitempty" gorm:"foreignKey:GuideID;constraint:OnDelete:CASCADE;"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// TableName sets the table name for ServiceRecord
func (ServiceRecord) TableName() string {
	return "services"
}

// ToService converts the record to the catalog entry the booking core works on.
// Guide name, rate and languages come from the preloaded guide profile.
func (r ServiceRecord) ToService() booking.Service {
	s := booking.Service{
		ID:                r.ID,
		GuideID:           r.GuideID,
		GuideName:         unknownGuideName,
		Title:             r.Title,
		Description:       r.Description,
		Category:          booking.Category(r.Category),
		Location:          r.Location,
		Price:             r.PriceOverride,
		MeetingPoints:     r.MeetingPoints,
		AvailabilityStart: r.AvailabilityStart,
		AvailabilityEnd:   r.AvailabilityEnd,
		MaxParticipants:   r.MaxParticipants,
		ImageURL:          r.ImageURL,
	}
	if s.Location == "" {
		s.Location = unspecifiedLocation
	}
	if s.MeetingPoints == nil {
		s.MeetingPoints = []booking.MeetingPoint{}
	}
	if r.Guide != nil {
		if r.Guide.FullName != "" {
			s.GuideName = r.Guide.FullName
		}
		if d := r.Guide.Details; d != nil {
			s.GuidePrice = d.PricePerDay
			s.Languages = d.Languages
		}
	}
	return s
}

func toServices(records []ServiceRecord) []booking.Service {
	out := make([]booking.Service, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToService())
	}
	return out
}

// GuideProfile is everything the guide page shows
type GuideProfile struct {
	Guide    GuideCard         `json:"guide"`
	Services []booking.Service `json:"services"`
	Reviews  []reviews.Review  `json:"reviews"`
}
