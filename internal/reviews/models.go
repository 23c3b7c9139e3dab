package reviews

import (
	"time"

	"github.com/google/uuid"
)

// Review is a pilgrim's rating of a guide
type Review struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	GuideID      uuid.UUID `json:"guide_id" gorm:"type:uuid;index;not null"`
	ReviewerID   uuid.UUID `json:"reviewer_id" gorm:"type:uuid;not null"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName sets the table name for Review
func (Review) TableName() string {
	return "reviews"
}
