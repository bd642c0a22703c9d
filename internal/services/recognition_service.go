package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"healthdiary/internal/domain"
	apperrors "healthdiary/internal/errors"
	"healthdiary/internal/jobs"
)

// MaxPhotoSize is the upload ceiling for meal photos.
const MaxPhotoSize = 10 << 20 // 10 MiB

// AIRecognizer is the vision step of the pipeline.
type AIRecognizer interface {
	RecognizeFood(ctx context.Context, imageData []byte, mimeType string) (*FoodRecognitionResult, error)
}

// MealStore is the slice of meal persistence the recognition worker needs.
type MealStore interface {
	Create(ctx context.Context, meal *domain.Meal) (*domain.Meal, error)
	GetByID(ctx context.Context, id uint) (*domain.Meal, error)
	ApplyRecognition(ctx context.Context, id uint, name string, n domain.MealNutrition, items []domain.RecognizedItem) error
	MarkFailed(ctx context.Context, id uint, reason string) error
	FailureReason(ctx context.Context, id uint) (string, error)
}

// RecognitionService runs photo-to-meal recognition: it creates the meal in
// its processing state, hands the image to a background worker, and serves
// status polls until the job is terminal.
type RecognitionService struct {
	ai            AIRecognizer
	meals         MealStore
	tracker       jobs.Tracker
	logger        *slog.Logger
	workerTimeout time.Duration
	uploadsDir    string
}

// NewRecognitionService creates a new recognition service
func NewRecognitionService(ai AIRecognizer, meals MealStore, tracker jobs.Tracker, logger *slog.Logger, workerTimeout time.Duration, uploadsDir string) *RecognitionService {
	if workerTimeout <= 0 {
		workerTimeout = 2 * time.Minute
	}
	return &RecognitionService{
		ai:            ai,
		meals:         meals,
		tracker:       tracker,
		logger:        logger,
		workerTimeout: workerTimeout,
		uploadsDir:    uploadsDir,
	}
}

// Start validates the photo, creates the meal row in its processing state
// and spawns the recognition worker. It returns before the AI step runs.
func (s *RecognitionService) Start(ctx context.Context, dayID uint, category, filename, contentType string, data []byte) (*domain.Meal, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported file type %q, expected an image", contentType))
	}
	if len(data) > MaxPhotoSize {
		return nil, apperrors.NewValidationError(fmt.Sprintf("file too large: %d bytes, limit is %d", len(data), MaxPhotoSize))
	}
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("empty file")
	}

	meal, err := s.meals.Create(ctx, &domain.Meal{
		DayID:    dayID,
		Category: category,
		Status:   domain.MealStatusProcessing,
	})
	if err != nil {
		return nil, err
	}

	if s.uploadsDir != "" {
		if err := s.saveImage(meal.ID, filename, data); err != nil {
			s.logger.Warn("failed to save uploaded photo", "meal_id", meal.ID, "error", err)
		}
	}

	s.tracker.Put(jobs.Job{MealID: meal.ID, Status: domain.MealStatusPending})

	// The worker is detached from the request context: the upload response
	// returns immediately while recognition continues.
	go s.process(meal.ID, data, contentType)

	return meal, nil
}

func (s *RecognitionService) process(mealID uint, data []byte, contentType string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.workerTimeout)
	defer cancel()

	s.tracker.Put(jobs.Job{MealID: mealID, Status: domain.MealStatusProcessing})

	result, err := s.ai.RecognizeFood(ctx, data, contentType)
	if err != nil {
		reason := fmt.Sprintf("food recognition failed: %v", err)
		s.logger.Warn("recognition job failed", "meal_id", mealID, "error", err)
		if dbErr := s.meals.MarkFailed(ctx, mealID, reason); dbErr != nil {
			s.logger.Error("failed to mark meal as failed", "meal_id", mealID, "error", dbErr)
		}
		s.tracker.Put(jobs.Job{MealID: mealID, Status: domain.MealStatusFailed, Error: reason})
		return
	}

	nutrition := result.Nutrition()
	if err := s.meals.ApplyRecognition(ctx, mealID, result.DishName, nutrition, result.Items); err != nil {
		reason := "failed to store recognition result"
		s.logger.Error(reason, "meal_id", mealID, "error", err)
		s.tracker.Put(jobs.Job{MealID: mealID, Status: domain.MealStatusFailed, Error: reason})
		return
	}

	s.tracker.Put(jobs.Job{
		MealID:    mealID,
		Status:    domain.MealStatusCompleted,
		Items:     result.Items,
		Nutrition: &nutrition,
	})
	s.logger.Info("recognition job completed", "meal_id", mealID, "items", len(result.Items))
}

// Status reports the recognition job for a meal. When the tracker has no
// entry (restart, TTL expiry) the meal row is the fallback source of truth.
func (s *RecognitionService) Status(ctx context.Context, mealID uint) (*domain.ProcessingStatus, error) {
	if job, ok := s.tracker.Get(mealID); ok {
		return &domain.ProcessingStatus{
			MealID:          mealID,
			Status:          job.Status,
			RecognizedItems: job.Items,
			MealData:        job.Nutrition,
			Error:           job.Error,
		}, nil
	}

	meal, err := s.meals.GetByID(ctx, mealID)
	if err != nil {
		return nil, err
	}

	status := &domain.ProcessingStatus{MealID: mealID, Status: meal.Status}
	switch meal.Status {
	case domain.MealStatusCompleted:
		status.RecognizedItems = meal.Items
		status.MealData = &domain.MealNutrition{
			Calories: valueOrZero(meal.Calories),
			Protein:  valueOrZero(meal.Protein),
			Carbs:    valueOrZero(meal.Carbs),
			Fat:      valueOrZero(meal.Fat),
		}
	case domain.MealStatusFailed:
		reason, err := s.meals.FailureReason(ctx, mealID)
		if err == nil && reason != "" {
			status.Error = reason
		} else {
			status.Error = "food recognition failed"
		}
	case domain.MealStatusManual:
		// Not a photo meal; report it as completed without a payload so a
		// stray poll terminates.
		status.Status = domain.MealStatusCompleted
		status.Message = "meal was created manually"
	}
	return status, nil
}

func (s *RecognitionService) saveImage(mealID uint, filename string, data []byte) error {
	if err := os.MkdirAll(s.uploadsDir, 0755); err != nil {
		return err
	}
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	path := filepath.Join(s.uploadsDir, fmt.Sprintf("meal_%d%s", mealID, ext))
	return os.WriteFile(path, data, 0644)
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
