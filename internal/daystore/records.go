package daystore

import (
	"context"

	"healthdiary/internal/domain"
)

// Record mutations follow confirm-then-mutate: the server call happens
// first, and the local collection changes only after the server returns the
// stored record. A failed call leaves the collection exactly as it was.

// AddMeal creates a meal on the current day and appends the server's copy.
func (s *Store) AddMeal(ctx context.Context, rec domain.Meal) (*domain.Meal, error) {
	dayID, err := s.currentDayID()
	if err != nil {
		return nil, err
	}
	created, err := s.api.CreateMeal(ctx, dayID, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == created.DayID {
		s.meals = append(s.meals, *created)
	}
	s.mu.Unlock()
	return created, nil
}

// UpdateMeal updates a meal and replaces the local copy with the server's.
func (s *Store) UpdateMeal(ctx context.Context, rec domain.Meal) (*domain.Meal, error) {
	updated, err := s.api.UpdateMeal(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.meals {
		if s.meals[i].ID == updated.ID {
			s.meals[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteMeal deletes a meal and removes it from the local collection.
func (s *Store) DeleteMeal(ctx context.Context, id uint) error {
	if err := s.api.DeleteMeal(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.meals = removeMeal(s.meals, id)
	s.mu.Unlock()
	return nil
}

// AddExercise creates an exercise on the current day and appends the
// server's copy.
func (s *Store) AddExercise(ctx context.Context, rec domain.Exercise) (*domain.Exercise, error) {
	dayID, err := s.currentDayID()
	if err != nil {
		return nil, err
	}
	created, err := s.api.CreateExercise(ctx, dayID, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == created.DayID {
		s.exercises = append(s.exercises, *created)
	}
	s.mu.Unlock()
	return created, nil
}

// UpdateExercise updates an exercise and replaces the local copy.
func (s *Store) UpdateExercise(ctx context.Context, rec domain.Exercise) (*domain.Exercise, error) {
	updated, err := s.api.UpdateExercise(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.exercises {
		if s.exercises[i].ID == updated.ID {
			s.exercises[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteExercise deletes an exercise and removes it locally.
func (s *Store) DeleteExercise(ctx context.Context, id uint) error {
	if err := s.api.DeleteExercise(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.exercises = removeExercise(s.exercises, id)
	s.mu.Unlock()
	return nil
}

// AddWater creates a water intake on the current day and appends the
// server's copy.
func (s *Store) AddWater(ctx context.Context, rec domain.WaterIntake) (*domain.WaterIntake, error) {
	dayID, err := s.currentDayID()
	if err != nil {
		return nil, err
	}
	created, err := s.api.CreateWater(ctx, dayID, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == created.DayID {
		s.waters = append(s.waters, *created)
	}
	s.mu.Unlock()
	return created, nil
}

// UpdateWater updates a water intake and replaces the local copy.
func (s *Store) UpdateWater(ctx context.Context, rec domain.WaterIntake) (*domain.WaterIntake, error) {
	updated, err := s.api.UpdateWater(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.waters {
		if s.waters[i].ID == updated.ID {
			s.waters[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteWater deletes a water intake and removes it locally.
func (s *Store) DeleteWater(ctx context.Context, id uint) error {
	if err := s.api.DeleteWater(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.waters = removeWater(s.waters, id)
	s.mu.Unlock()
	return nil
}

// AddSleep creates a sleep record on the current day and appends the
// server's copy.
func (s *Store) AddSleep(ctx context.Context, rec domain.SleepRecord) (*domain.SleepRecord, error) {
	dayID, err := s.currentDayID()
	if err != nil {
		return nil, err
	}
	created, err := s.api.CreateSleep(ctx, dayID, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == created.DayID {
		s.sleeps = append(s.sleeps, *created)
	}
	s.mu.Unlock()
	return created, nil
}

// UpdateSleep updates a sleep record and replaces the local copy.
func (s *Store) UpdateSleep(ctx context.Context, rec domain.SleepRecord) (*domain.SleepRecord, error) {
	updated, err := s.api.UpdateSleep(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.sleeps {
		if s.sleeps[i].ID == updated.ID {
			s.sleeps[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteSleep deletes a sleep record and removes it locally.
func (s *Store) DeleteSleep(ctx context.Context, id uint) error {
	if err := s.api.DeleteSleep(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.sleeps = removeSleep(s.sleeps, id)
	s.mu.Unlock()
	return nil
}

// AddMood creates a mood record on the current day and appends the server's
// copy.
func (s *Store) AddMood(ctx context.Context, rec domain.MoodRecord) (*domain.MoodRecord, error) {
	dayID, err := s.currentDayID()
	if err != nil {
		return nil, err
	}
	created, err := s.api.CreateMood(ctx, dayID, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == created.DayID {
		s.moods = append(s.moods, *created)
	}
	s.mu.Unlock()
	return created, nil
}

// UpdateMood updates a mood record and replaces the local copy.
func (s *Store) UpdateMood(ctx context.Context, rec domain.MoodRecord) (*domain.MoodRecord, error) {
	updated, err := s.api.UpdateMood(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.moods {
		if s.moods[i].ID == updated.ID {
			s.moods[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteMood deletes a mood record and removes it locally.
func (s *Store) DeleteMood(ctx context.Context, id uint) error {
	if err := s.api.DeleteMood(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.moods = removeMood(s.moods, id)
	s.mu.Unlock()
	return nil
}

// AddNote creates a note on the current day and appends the server's copy.
func (s *Store) AddNote(ctx context.Context, rec domain.Note) (*domain.Note, error) {
	dayID, err := s.currentDayID()
	if err != nil {
		return nil, err
	}
	created, err := s.api.CreateNote(ctx, dayID, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == created.DayID {
		s.notes = append(s.notes, *created)
	}
	s.mu.Unlock()
	return created, nil
}

// UpdateNote updates a note and replaces the local copy.
func (s *Store) UpdateNote(ctx context.Context, rec domain.Note) (*domain.Note, error) {
	updated, err := s.api.UpdateNote(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].ID == updated.ID {
			s.notes[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteNote deletes a note and removes it locally.
func (s *Store) DeleteNote(ctx context.Context, id uint) error {
	if err := s.api.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.notes = removeNote(s.notes, id)
	s.mu.Unlock()
	return nil
}

func removeMeal(list []domain.Meal, id uint) []domain.Meal {
	out := list[:0]
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func removeExercise(list []domain.Exercise, id uint) []domain.Exercise {
	out := list[:0]
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func removeWater(list []domain.WaterIntake, id uint) []domain.WaterIntake {
	out := list[:0]
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func removeSleep(list []domain.SleepRecord, id uint) []domain.SleepRecord {
	out := list[:0]
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func removeMood(list []domain.MoodRecord, id uint) []domain.MoodRecord {
	out := list[:0]
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func removeNote(list []domain.Note, id uint) []domain.Note {
	out := list[:0]
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
