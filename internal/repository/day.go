package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"healthdiary/internal/database"
	"healthdiary/internal/domain"
	apperrors "healthdiary/internal/errors"
)

// DayRepository handles day persistence
type DayRepository struct {
	db *gorm.DB
}

// NewDayRepository creates a new day repository
func NewDayRepository(db *gorm.DB) *DayRepository {
	return &DayRepository{db: db}
}

// GetByDate returns the day for (user, date) or ErrDayNotFound.
func (r *DayRepository) GetByDate(ctx context.Context, userID uint, date string) (*domain.Day, error) {
	var row database.Day
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrDayNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return dayToDomain(&row), nil
}

// Create inserts a day for (user, date). If a concurrent create already won
// the unique index, the existing row is returned instead.
func (r *DayRepository) Create(ctx context.Context, userID uint, date string) (*domain.Day, error) {
	row := database.Day{UserID: userID, Date: date}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		existing, getErr := r.GetByDate(ctx, userID, date)
		if getErr == nil {
			return existing, nil
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return dayToDomain(&row), nil
}

// Update applies the non-nil fields of upd and returns the full row. The
// merge happens here, server-side, so every client observes the same result.
func (r *DayRepository) Update(ctx context.Context, userID, id uint, upd domain.DayUpdate) (*domain.Day, error) {
	fields := map[string]interface{}{}
	if upd.Tag != nil {
		fields["tag"] = *upd.Tag
	}
	if upd.Feeling != nil {
		fields["feeling"] = *upd.Feeling
	}
	if upd.Weight != nil {
		fields["weight"] = *upd.Weight
	}
	if upd.Summary != nil {
		fields["summary"] = *upd.Summary
	}

	var row database.Day
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrDayNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&row).Updates(fields).Error; err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
	}
	return dayToDomain(&row), nil
}

func dayToDomain(row *database.Day) *domain.Day {
	return &domain.Day{
		ID:        row.ID,
		UserID:    row.UserID,
		Date:      row.Date,
		Tag:       row.Tag,
		Feeling:   row.Feeling,
		Weight:    row.Weight,
		Summary:   row.Summary,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
