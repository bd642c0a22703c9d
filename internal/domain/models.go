package domain

import (
	"time"
)

// MealStatus tracks the recognition lineage of a meal. Meals created by hand
// are "manual"; meals created from a photo start at "processing" and are
// moved to a terminal status by the recognition worker.
type MealStatus string

const (
	MealStatusPending    MealStatus = "pending"
	MealStatusProcessing MealStatus = "processing"
	MealStatusCompleted  MealStatus = "completed"
	MealStatusFailed     MealStatus = "failed"
	MealStatusManual     MealStatus = "manual"
)

// Terminal reports whether the status ends the recognition job.
func (s MealStatus) Terminal() bool {
	return s == MealStatusCompleted || s == MealStatusFailed
}

// Confidence is the recognizer's self-assessment for a single item.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Day is one diary page: at most one per user per calendar date, created
// lazily on first access.
type Day struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Date      string    `json:"date"` // "2006-01-02"
	Tag       string    `json:"tag,omitempty"`
	Feeling   *int      `json:"feeling,omitempty"`
	Weight    *float64  `json:"weight,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayUpdate carries a partial day update; nil fields are left untouched.
// The server performs the merge and returns the full representation.
type DayUpdate struct {
	Tag     *string  `json:"tag,omitempty"`
	Feeling *int     `json:"feeling,omitempty"`
	Weight  *float64 `json:"weight,omitempty"`
	Summary *string  `json:"summary,omitempty"`
}

// Meal belongs to exactly one day. Nutrition fields stay nil until the
// recognition worker fills them in, or the user enters them manually.
type Meal struct {
	ID        uint             `json:"id"`
	DayID     uint             `json:"day_id"`
	Category  string           `json:"category"` // breakfast|lunch|dinner|snack
	Name      string           `json:"name,omitempty"`
	Calories  *float64         `json:"calories,omitempty"`
	Protein   *float64         `json:"protein,omitempty"`
	Carbs     *float64         `json:"carbs,omitempty"`
	Fat       *float64         `json:"fat,omitempty"`
	Status    MealStatus       `json:"status"`
	Items     []RecognizedItem `json:"items,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Exercise is a single workout entry for a day.
type Exercise struct {
	ID          uint      `json:"id"`
	DayID       uint      `json:"day_id"`
	Activity    string    `json:"activity"`
	DurationMin *float64  `json:"duration_min,omitempty"`
	DistanceKm  *float64  `json:"distance_km,omitempty"`
	Calories    *float64  `json:"calories,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WaterIntake is a single glass/bottle logged against a day.
type WaterIntake struct {
	ID       uint      `json:"id"`
	DayID    uint      `json:"day_id"`
	VolumeMl float64   `json:"volume_ml"`
	TakenAt  time.Time `json:"taken_at"`
}

// SleepRecord is one sleep entry for a day.
type SleepRecord struct {
	ID      uint     `json:"id"`
	DayID   uint     `json:"day_id"`
	Hours   *float64 `json:"hours,omitempty"`
	Quality *int     `json:"quality,omitempty"` // 1-5
}

// MoodRecord is one mood entry for a day.
type MoodRecord struct {
	ID    uint   `json:"id"`
	DayID uint   `json:"day_id"`
	Score int    `json:"score"` // 1-5
	Note  string `json:"note,omitempty"`
}

// Note is a free-text note attached to a day.
type Note struct {
	ID        uint      `json:"id"`
	DayID     uint      `json:"day_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// RecognizedItem is one food item identified on a meal photo.
type RecognizedItem struct {
	Name       string     `json:"name"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit"`
	Confidence Confidence `json:"confidence"`
}

// MealNutrition is the recognizer's nutrition estimate for the whole meal.
type MealNutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// UploadResult is the photo upload response: the meal created server-side in
// its pre-recognition state.
type UploadResult struct {
	MealID  uint       `json:"meal_id"`
	Status  MealStatus `json:"status"`
	Message string     `json:"message,omitempty"`
}

// ProcessingStatus is one poll of a recognition job. RecognizedItems and
// MealData are only present once Status is "completed"; Error only when it
// is "failed".
type ProcessingStatus struct {
	MealID          uint             `json:"meal_id"`
	Status          MealStatus       `json:"status"`
	RecognizedItems []RecognizedItem `json:"recognized_items,omitempty"`
	MealData        *MealNutrition   `json:"meal_data,omitempty"`
	Error           string           `json:"error,omitempty"`
	Message         string           `json:"message,omitempty"`
}
