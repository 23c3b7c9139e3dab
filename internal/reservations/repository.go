package reservations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateDraft means a reservation already exists for the draft
	ErrDuplicateDraft      = errors.New("reservation already exists for this draft")
	ErrReservationNotFound = errors.New("reservation not found")
)

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*Reservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create stores the reservation. The unique draft id turns a replayed
// submission into ErrDuplicateDraft; the database must be opened with
// TranslateError for gorm to report it.
func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	err := r.db.WithContext(ctx).Omit("Guide").Create(reservation).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateDraft
	}
	return err
}

// ListForUser returns the user's reservations, newest first
func (r *repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Preload("Guide").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// GetForUser loads one reservation owned by userID. Someone else's
// reservation is reported as not found.
func (r *repository) GetForUser(ctx context.Context, id, userID uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Preload("Guide").
		Where("id = ? AND user_id = ?", id, userID).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}
