package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type Repository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetGuide(ctx context.Context, id uuid.UUID) (*Profile, error)
	ListGuides(ctx context.Context) ([]Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var profile Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repository) GetGuide(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var profile Profile
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("id = ? AND role = ?", id, "GUIDE").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repository) ListGuides(ctx context.Context) ([]Profile, error) {
	var guides []Profile
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("role = ?", "GUIDE").
		Order("full_name ASC").
		Find(&guides).Error
	return guides, err
}

// Upsert writes the profile and, for guides, their details
func (r *repository) Upsert(ctx context.Context, profile *Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		if profile.Details != nil {
			profile.Details.ProfileID = profile.ID
			return tx.Save(profile.Details).Error
		}
		return nil
	})
}
