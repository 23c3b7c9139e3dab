package users

import (
	"time"

	"guideomra/internal/auth"

	"github.com/google/uuid"
)

// Profile mirrors an account of the managed identity provider. Only the
// fields the marketplace displays are stored here.
type Profile struct {
	ID        uuid.UUID     `json:"id" gorm:"primaryKey;type:uuid"`
	FullName  string        `json:"full_name" gorm:"not null"`
	Email     string        `json:"email,omitempty" gorm:"uniqueIndex"`
	AvatarURL string        `json:"avatar_url,omitempty"`
	Role      auth.Role     `json:"role" gorm:"type:varchar(20);not null;default:'PILGRIM'"`
	Details   *GuideDetails `json:"guide_details,omitempty" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// GuideDetails holds what a guide shows on their public card
type GuideDetails struct {
	ProfileID    uuid.UUID `json:"profile_id" gorm:"primaryKey;type:uuid"`
	Specialty    string    `json:"specialty"`
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	PricePerDay  int       `json:"price_per_day" gorm:"not null;default:0"`
	Currency     string    `json:"currency" gorm:"type:varchar(3);default:'SAR'"`
	PriceUnit    string    `json:"price_unit" gorm:"default:'jour'"`
	Languages    []string  `json:"languages" gorm:"serializer:json"`
	Verified     bool      `json:"verified" gorm:"default:false"`
	Rating       float64   `json:"rating" gorm:"default:0"`
	ReviewsCount int       `json:"reviews_count" gorm:"default:0"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// TableName sets the table name for GuideDetails
func (GuideDetails) TableName() string {
	return "guide_details"
}

// IsGuide reports whether the profile offers services
func (p *Profile) IsGuide() bool {
	return p.Role == auth.RoleGuide
}
