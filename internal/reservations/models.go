package reservations

import (
	"time"

	"guideomra/internal/users"

	"github.com/google/uuid"
)

// Reservation is a submitted booking of a guide service
type Reservation struct {
	ID           uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;index;not null"`
	GuideID      uuid.UUID      `json:"guide_id" gorm:"type:uuid;index;not null"`
	ServiceID    *uuid.UUID     `json:"service_id,omitempty" gorm:"type:uuid"`
	DraftID      uuid.UUID      `json:"draft_id" gorm:"type:uuid;uniqueIndex;not null"`
	ServiceName  string         `json:"service_name" gorm:"not null"`
	StartDate    time.Time      `json:"start_date" gorm:"type:date;not null"`
	EndDate      time.Time      `json:"end_date" gorm:"type:date;not null"`
	VisitTime    string         `json:"visit_time,omitempty" gorm:"type:varchar(5)"`
	Location     string         `json:"location" gorm:"not null"`
	TotalPrice   int            `json:"total_price" gorm:"not null"`
	Currency     string         `json:"currency" gorm:"type:varchar(3);default:'SAR'"`
	PilgrimNames []string       `json:"pilgrims_names" gorm:"serializer:json"`
	Status       Status         `json:"status" gorm:"type:varchar(20);check:status IN ('pending', 'confirmed', 'completed', 'cancelled');default:'pending'"`
	Guide        *users.Profile `json:"-" gorm:"foreignKey:GuideID;constraint:OnDelete:RESTRICT;"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName sets the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}
