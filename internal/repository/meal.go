package repository

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"healthdiary/internal/database"
	"healthdiary/internal/domain"
	apperrors "healthdiary/internal/errors"
)

// MealRepository handles meal persistence, including the recognition
// lineage: meals created from a photo are mutated here by the worker once
// the AI step finishes.
type MealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new meal repository
func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) ListByDay(ctx context.Context, dayID uint) ([]domain.Meal, error) {
	var rows []database.Meal
	if err := r.db.WithContext(ctx).Where("day_id = ?", dayID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	meals := make([]domain.Meal, 0, len(rows))
	for i := range rows {
		meals = append(meals, *mealToDomain(&rows[i]))
	}
	return meals, nil
}

func (r *MealRepository) GetByID(ctx context.Context, id uint) (*domain.Meal, error) {
	var row database.Meal
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrMealNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return mealToDomain(&row), nil
}

func (r *MealRepository) Create(ctx context.Context, meal *domain.Meal) (*domain.Meal, error) {
	row := mealToRow(meal)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return mealToDomain(row), nil
}

func (r *MealRepository) Update(ctx context.Context, meal *domain.Meal) (*domain.Meal, error) {
	var row database.Meal
	err := r.db.WithContext(ctx).First(&row, meal.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrMealNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	row.Category = meal.Category
	row.Name = meal.Name
	row.Calories = meal.Calories
	row.Protein = meal.Protein
	row.Carbs = meal.Carbs
	row.Fat = meal.Fat
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return mealToDomain(&row), nil
}

func (r *MealRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&database.Meal{}, id)
	if res.Error != nil {
		return apperrors.NewDatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMealNotFound
	}
	return nil
}

// ApplyRecognition records a completed recognition job on the meal row.
func (r *MealRepository) ApplyRecognition(ctx context.Context, id uint, name string, n domain.MealNutrition, items []domain.RecognizedItem) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	res := r.db.WithContext(ctx).Model(&database.Meal{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":       name,
		"calories":   n.Calories,
		"protein":    n.Protein,
		"carbs":      n.Carbs,
		"fat":        n.Fat,
		"status":     string(domain.MealStatusCompleted),
		"items_json": string(itemsJSON),
		"failure":    "",
	})
	if res.Error != nil {
		return apperrors.NewDatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMealNotFound
	}
	return nil
}

// MarkFailed records a terminal recognition failure on the meal row.
func (r *MealRepository) MarkFailed(ctx context.Context, id uint, reason string) error {
	res := r.db.WithContext(ctx).Model(&database.Meal{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  string(domain.MealStatusFailed),
		"failure": reason,
	})
	if res.Error != nil {
		return apperrors.NewDatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMealNotFound
	}
	return nil
}

// FailureReason returns the stored recognition failure for a meal.
func (r *MealRepository) FailureReason(ctx context.Context, id uint) (string, error) {
	var row database.Meal
	err := r.db.WithContext(ctx).Select("failure").First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.ErrMealNotFound
	}
	if err != nil {
		return "", apperrors.NewDatabaseError(err)
	}
	return row.Failure, nil
}

func mealToRow(m *domain.Meal) *database.Meal {
	status := m.Status
	if status == "" {
		status = domain.MealStatusManual
	}
	return &database.Meal{
		Model:    gorm.Model{ID: m.ID},
		DayID:    m.DayID,
		Category: m.Category,
		Name:     m.Name,
		Calories: m.Calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fat:      m.Fat,
		Status:   string(status),
	}
}

func mealToDomain(row *database.Meal) *domain.Meal {
	meal := &domain.Meal{
		ID:        row.ID,
		DayID:     row.DayID,
		Category:  row.Category,
		Name:      row.Name,
		Calories:  row.Calories,
		Protein:   row.Protein,
		Carbs:     row.Carbs,
		Fat:       row.Fat,
		Status:    domain.MealStatus(row.Status),
		CreatedAt: row.CreatedAt,
	}
	if row.ItemsJSON != "" {
		// Best effort: a malformed column should not break listing.
		var items []domain.RecognizedItem
		if err := json.Unmarshal([]byte(row.ItemsJSON), &items); err == nil {
			meal.Items = items
		}
	}
	return meal
}
