package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrServiceNotFound = errors.New("service not found")

type Repository interface {
	ListServices(ctx context.Context) ([]ServiceRecord, error)
	ListGuideServices(ctx context.Context, guideID uuid.UUID) ([]ServiceRecord, error)
	GetService(ctx context.Context, id uuid.UUID) (*ServiceRecord, error)
	CreateService(ctx context.Context, record *ServiceRecord) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListServices returns active services, newest first
func (r *repository) ListServices(ctx context.Context) ([]ServiceRecord, error) {
	var records []ServiceRecord
	err := r.db.WithContext(ctx).
		Preload("Guide.Details").
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) ListGuideServices(ctx context.Context, guideID uuid.UUID) ([]ServiceRecord, error) {
	var records []ServiceRecord
	err := r.db.WithContext(ctx).
		Preload("Guide.Details").
		Where("guide_id = ? AND active = ?", guideID, true).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) GetService(ctx context.Context, id uuid.UUID) (*ServiceRecord, error) {
	var record ServiceRecord
	err := r.db.WithContext(ctx).
		Preload("Guide.Details").
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateService(ctx context.Context, record *ServiceRecord) error {
	return r.db.WithContext(ctx).Omit("Guide").Create(record).Error
}
