package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ListForGuide(ctx context.Context, guideID uuid.UUID, limit int) ([]Review, error)
	Create(ctx context.Context, review *Review) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListForGuide returns the newest reviews first
func (r *repository) ListForGuide(ctx context.Context, guideID uuid.UUID, limit int) ([]Review, error) {
	if limit <= 0 {
		limit = 20
	}
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("guide_id = ?", guideID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) Create(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}
