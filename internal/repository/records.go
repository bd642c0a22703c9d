package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"healthdiary/internal/database"
	"healthdiary/internal/domain"
	apperrors "healthdiary/internal/errors"
)

// The five remaining child record types share the same CRUD shape: list by
// owning day, create, update by id, delete by id. Each gets its own small
// repository so the service interfaces stay typed.

// ExerciseRepository handles exercise persistence
type ExerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) ListByDay(ctx context.Context, dayID uint) ([]domain.Exercise, error) {
	var rows []database.Exercise
	if err := r.db.WithContext(ctx).Where("day_id = ?", dayID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	out := make([]domain.Exercise, 0, len(rows))
	for i := range rows {
		out = append(out, domain.Exercise{
			ID: rows[i].ID, DayID: rows[i].DayID, Activity: rows[i].Activity,
			DurationMin: rows[i].DurationMin, DistanceKm: rows[i].DistanceKm,
			Calories: rows[i].Calories, CreatedAt: rows[i].CreatedAt,
		})
	}
	return out, nil
}

func (r *ExerciseRepository) Create(ctx context.Context, rec *domain.Exercise) (*domain.Exercise, error) {
	row := database.Exercise{
		DayID: rec.DayID, Activity: rec.Activity,
		DurationMin: rec.DurationMin, DistanceKm: rec.DistanceKm, Calories: rec.Calories,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	created := *rec
	created.ID = row.ID
	created.CreatedAt = row.CreatedAt
	return &created, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, rec *domain.Exercise) (*domain.Exercise, error) {
	var row database.Exercise
	err := r.db.WithContext(ctx).First(&row, rec.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	row.Activity = rec.Activity
	row.DurationMin = rec.DurationMin
	row.DistanceKm = rec.DistanceKm
	row.Calories = rec.Calories
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	updated := *rec
	updated.DayID = row.DayID
	updated.CreatedAt = row.CreatedAt
	return &updated, nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &database.Exercise{}, id)
}

// WaterRepository handles water intake persistence
type WaterRepository struct {
	db *gorm.DB
}

func NewWaterRepository(db *gorm.DB) *WaterRepository {
	return &WaterRepository{db: db}
}

func (r *WaterRepository) ListByDay(ctx context.Context, dayID uint) ([]domain.WaterIntake, error) {
	var rows []database.WaterIntake
	if err := r.db.WithContext(ctx).Where("day_id = ?", dayID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	out := make([]domain.WaterIntake, 0, len(rows))
	for i := range rows {
		out = append(out, domain.WaterIntake{
			ID: rows[i].ID, DayID: rows[i].DayID,
			VolumeMl: rows[i].VolumeMl, TakenAt: rows[i].CreatedAt,
		})
	}
	return out, nil
}

func (r *WaterRepository) Create(ctx context.Context, rec *domain.WaterIntake) (*domain.WaterIntake, error) {
	row := database.WaterIntake{DayID: rec.DayID, VolumeMl: rec.VolumeMl}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	created := *rec
	created.ID = row.ID
	created.TakenAt = row.CreatedAt
	return &created, nil
}

func (r *WaterRepository) Update(ctx context.Context, rec *domain.WaterIntake) (*domain.WaterIntake, error) {
	var row database.WaterIntake
	err := r.db.WithContext(ctx).First(&row, rec.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	row.VolumeMl = rec.VolumeMl
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	updated := *rec
	updated.DayID = row.DayID
	updated.TakenAt = row.CreatedAt
	return &updated, nil
}

func (r *WaterRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &database.WaterIntake{}, id)
}

// SleepRepository handles sleep record persistence
type SleepRepository struct {
	db *gorm.DB
}

func NewSleepRepository(db *gorm.DB) *SleepRepository {
	return &SleepRepository{db: db}
}

func (r *SleepRepository) ListByDay(ctx context.Context, dayID uint) ([]domain.SleepRecord, error) {
	var rows []database.SleepRecord
	if err := r.db.WithContext(ctx).Where("day_id = ?", dayID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	out := make([]domain.SleepRecord, 0, len(rows))
	for i := range rows {
		out = append(out, domain.SleepRecord{
			ID: rows[i].ID, DayID: rows[i].DayID,
			Hours: rows[i].Hours, Quality: rows[i].Quality,
		})
	}
	return out, nil
}

func (r *SleepRepository) Create(ctx context.Context, rec *domain.SleepRecord) (*domain.SleepRecord, error) {
	row := database.SleepRecord{DayID: rec.DayID, Hours: rec.Hours, Quality: rec.Quality}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	created := *rec
	created.ID = row.ID
	return &created, nil
}

func (r *SleepRepository) Update(ctx context.Context, rec *domain.SleepRecord) (*domain.SleepRecord, error) {
	var row database.SleepRecord
	err := r.db.WithContext(ctx).First(&row, rec.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	row.Hours = rec.Hours
	row.Quality = rec.Quality
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	updated := *rec
	updated.DayID = row.DayID
	return &updated, nil
}

func (r *SleepRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &database.SleepRecord{}, id)
}

// MoodRepository handles mood record persistence
type MoodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

func (r *MoodRepository) ListByDay(ctx context.Context, dayID uint) ([]domain.MoodRecord, error) {
	var rows []database.MoodRecord
	if err := r.db.WithContext(ctx).Where("day_id = ?", dayID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	out := make([]domain.MoodRecord, 0, len(rows))
	for i := range rows {
		out = append(out, domain.MoodRecord{
			ID: rows[i].ID, DayID: rows[i].DayID,
			Score: rows[i].Score, Note: rows[i].Note,
		})
	}
	return out, nil
}

func (r *MoodRepository) Create(ctx context.Context, rec *domain.MoodRecord) (*domain.MoodRecord, error) {
	row := database.MoodRecord{DayID: rec.DayID, Score: rec.Score, Note: rec.Note}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	created := *rec
	created.ID = row.ID
	return &created, nil
}

func (r *MoodRepository) Update(ctx context.Context, rec *domain.MoodRecord) (*domain.MoodRecord, error) {
	var row database.MoodRecord
	err := r.db.WithContext(ctx).First(&row, rec.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	row.Score = rec.Score
	row.Note = rec.Note
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	updated := *rec
	updated.DayID = row.DayID
	return &updated, nil
}

func (r *MoodRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &database.MoodRecord{}, id)
}

// NoteRepository handles note persistence
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) ListByDay(ctx context.Context, dayID uint) ([]domain.Note, error) {
	var rows []database.Note
	if err := r.db.WithContext(ctx).Where("day_id = ?", dayID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	out := make([]domain.Note, 0, len(rows))
	for i := range rows {
		out = append(out, domain.Note{
			ID: rows[i].ID, DayID: rows[i].DayID,
			Text: rows[i].Text, CreatedAt: rows[i].CreatedAt,
		})
	}
	return out, nil
}

func (r *NoteRepository) Create(ctx context.Context, rec *domain.Note) (*domain.Note, error) {
	row := database.Note{DayID: rec.DayID, Text: rec.Text}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	created := *rec
	created.ID = row.ID
	created.CreatedAt = row.CreatedAt
	return &created, nil
}

func (r *NoteRepository) Update(ctx context.Context, rec *domain.Note) (*domain.Note, error) {
	var row database.Note
	err := r.db.WithContext(ctx).First(&row, rec.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	row.Text = rec.Text
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	updated := *rec
	updated.DayID = row.DayID
	updated.CreatedAt = row.CreatedAt
	return &updated, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &database.Note{}, id)
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uint) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return apperrors.NewDatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}
