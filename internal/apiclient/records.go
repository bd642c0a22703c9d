package apiclient

import (
	"context"
	"fmt"

	"healthdiary/internal/domain"
)

// Meals

func (c *Client) ListMeals(ctx context.Context, dayID uint) ([]domain.Meal, error) {
	var records []domain.Meal
	if err := c.get(ctx, fmt.Sprintf("/api/v1/days/%d/meals", dayID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateMeal(ctx context.Context, dayID uint, rec domain.Meal) (*domain.Meal, error) {
	var created domain.Meal
	if err := c.post(ctx, fmt.Sprintf("/api/v1/days/%d/meals", dayID), rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateMeal(ctx context.Context, rec domain.Meal) (*domain.Meal, error) {
	var updated domain.Meal
	if err := c.put(ctx, fmt.Sprintf("/api/v1/meals/%d", rec.ID), rec, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMeal(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/meals/%d", id))
}

// Exercises

func (c *Client) ListExercises(ctx context.Context, dayID uint) ([]domain.Exercise, error) {
	var records []domain.Exercise
	if err := c.get(ctx, fmt.Sprintf("/api/v1/days/%d/exercises", dayID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateExercise(ctx context.Context, dayID uint, rec domain.Exercise) (*domain.Exercise, error) {
	var created domain.Exercise
	if err := c.post(ctx, fmt.Sprintf("/api/v1/days/%d/exercises", dayID), rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateExercise(ctx context.Context, rec domain.Exercise) (*domain.Exercise, error) {
	var updated domain.Exercise
	if err := c.put(ctx, fmt.Sprintf("/api/v1/exercises/%d", rec.ID), rec, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteExercise(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/exercises/%d", id))
}

// Water intakes

func (c *Client) ListWaters(ctx context.Context, dayID uint) ([]domain.WaterIntake, error) {
	var records []domain.WaterIntake
	if err := c.get(ctx, fmt.Sprintf("/api/v1/days/%d/waters", dayID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateWater(ctx context.Context, dayID uint, rec domain.WaterIntake) (*domain.WaterIntake, error) {
	var created domain.WaterIntake
	if err := c.post(ctx, fmt.Sprintf("/api/v1/days/%d/waters", dayID), rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateWater(ctx context.Context, rec domain.WaterIntake) (*domain.WaterIntake, error) {
	var updated domain.WaterIntake
	if err := c.put(ctx, fmt.Sprintf("/api/v1/waters/%d", rec.ID), rec, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteWater(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/waters/%d", id))
}

// Sleep records

func (c *Client) ListSleeps(ctx context.Context, dayID uint) ([]domain.SleepRecord, error) {
	var records []domain.SleepRecord
	if err := c.get(ctx, fmt.Sprintf("/api/v1/days/%d/sleeps", dayID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateSleep(ctx context.Context, dayID uint, rec domain.SleepRecord) (*domain.SleepRecord, error) {
	var created domain.SleepRecord
	if err := c.post(ctx, fmt.Sprintf("/api/v1/days/%d/sleeps", dayID), rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateSleep(ctx context.Context, rec domain.SleepRecord) (*domain.SleepRecord, error) {
	var updated domain.SleepRecord
	if err := c.put(ctx, fmt.Sprintf("/api/v1/sleeps/%d", rec.ID), rec, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteSleep(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/sleeps/%d", id))
}

// Mood records

func (c *Client) ListMoods(ctx context.Context, dayID uint) ([]domain.MoodRecord, error) {
	var records []domain.MoodRecord
	if err := c.get(ctx, fmt.Sprintf("/api/v1/days/%d/moods", dayID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateMood(ctx context.Context, dayID uint, rec domain.MoodRecord) (*domain.MoodRecord, error) {
	var created domain.MoodRecord
	if err := c.post(ctx, fmt.Sprintf("/api/v1/days/%d/moods", dayID), rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateMood(ctx context.Context, rec domain.MoodRecord) (*domain.MoodRecord, error) {
	var updated domain.MoodRecord
	if err := c.put(ctx, fmt.Sprintf("/api/v1/moods/%d", rec.ID), rec, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMood(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/moods/%d", id))
}

// Notes

func (c *Client) ListNotes(ctx context.Context, dayID uint) ([]domain.Note, error) {
	var records []domain.Note
	if err := c.get(ctx, fmt.Sprintf("/api/v1/days/%d/notes", dayID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateNote(ctx context.Context, dayID uint, rec domain.Note) (*domain.Note, error) {
	var created domain.Note
	if err := c.post(ctx, fmt.Sprintf("/api/v1/days/%d/notes", dayID), rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateNote(ctx context.Context, rec domain.Note) (*domain.Note, error) {
	var updated domain.Note
	if err := c.put(ctx, fmt.Sprintf("/api/v1/notes/%d", rec.ID), rec, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteNote(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/notes/%d", id))
}
