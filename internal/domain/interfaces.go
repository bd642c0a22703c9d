package domain

import (
	"context"
)

// DayService handles day lookup and mutation
type DayService interface {
	GetByDate(ctx context.Context, userID uint, date string) (*Day, error)
	Create(ctx context.Context, userID uint, date string) (*Day, error)
	Update(ctx context.Context, userID, id uint, upd DayUpdate) (*Day, error)
}

// MealService handles meal operations for a day
type MealService interface {
	ListByDay(ctx context.Context, dayID uint) ([]Meal, error)
	Create(ctx context.Context, meal *Meal) (*Meal, error)
	Update(ctx context.Context, meal *Meal) (*Meal, error)
	Delete(ctx context.Context, id uint) error
}

// ExerciseService handles exercise operations for a day
type ExerciseService interface {
	ListByDay(ctx context.Context, dayID uint) ([]Exercise, error)
	Create(ctx context.Context, rec *Exercise) (*Exercise, error)
	Update(ctx context.Context, rec *Exercise) (*Exercise, error)
	Delete(ctx context.Context, id uint) error
}

// WaterService handles water intake operations for a day
type WaterService interface {
	ListByDay(ctx context.Context, dayID uint) ([]WaterIntake, error)
	Create(ctx context.Context, rec *WaterIntake) (*WaterIntake, error)
	Update(ctx context.Context, rec *WaterIntake) (*WaterIntake, error)
	Delete(ctx context.Context, id uint) error
}

// SleepService handles sleep record operations for a day
type SleepService interface {
	ListByDay(ctx context.Context, dayID uint) ([]SleepRecord, error)
	Create(ctx context.Context, rec *SleepRecord) (*SleepRecord, error)
	Update(ctx context.Context, rec *SleepRecord) (*SleepRecord, error)
	Delete(ctx context.Context, id uint) error
}

// MoodService handles mood record operations for a day
type MoodService interface {
	ListByDay(ctx context.Context, dayID uint) ([]MoodRecord, error)
	Create(ctx context.Context, rec *MoodRecord) (*MoodRecord, error)
	Update(ctx context.Context, rec *MoodRecord) (*MoodRecord, error)
	Delete(ctx context.Context, id uint) error
}

// NoteService handles note operations for a day
type NoteService interface {
	ListByDay(ctx context.Context, dayID uint) ([]Note, error)
	Create(ctx context.Context, rec *Note) (*Note, error)
	Update(ctx context.Context, rec *Note) (*Note, error)
	Delete(ctx context.Context, id uint) error
}

// RecognitionService drives a photo through asynchronous food recognition.
// Start creates the meal in its processing state and returns immediately;
// Status reports the job until it reaches a terminal state.
type RecognitionService interface {
	Start(ctx context.Context, dayID uint, category, filename, contentType string, data []byte) (*Meal, error)
	Status(ctx context.Context, mealID uint) (*ProcessingStatus, error)
}
