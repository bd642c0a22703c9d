// Package daystore holds the day currently being viewed together with its
// six child collections. It is the single authoritative in-memory copy:
// every mutation goes through the remote API first and is applied locally
// only after the server confirms it.
package daystore

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"healthdiary/internal/domain"
	apperrors "healthdiary/internal/errors"
)

// API is the remote surface the store drives. *apiclient.Client implements
// it; tests substitute a fake.
type API interface {
	GetDayByDate(ctx context.Context, date string) (*domain.Day, error)
	CreateDay(ctx context.Context, date string) (*domain.Day, error)
	UpdateDay(ctx context.Context, id uint, upd domain.DayUpdate) (*domain.Day, error)

	ListMeals(ctx context.Context, dayID uint) ([]domain.Meal, error)
	CreateMeal(ctx context.Context, dayID uint, rec domain.Meal) (*domain.Meal, error)
	UpdateMeal(ctx context.Context, rec domain.Meal) (*domain.Meal, error)
	DeleteMeal(ctx context.Context, id uint) error

	ListExercises(ctx context.Context, dayID uint) ([]domain.Exercise, error)
	CreateExercise(ctx context.Context, dayID uint, rec domain.Exercise) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, rec domain.Exercise) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, id uint) error

	ListWaters(ctx context.Context, dayID uint) ([]domain.WaterIntake, error)
	CreateWater(ctx context.Context, dayID uint, rec domain.WaterIntake) (*domain.WaterIntake, error)
	UpdateWater(ctx context.Context, rec domain.WaterIntake) (*domain.WaterIntake, error)
	DeleteWater(ctx context.Context, id uint) error

	ListSleeps(ctx context.Context, dayID uint) ([]domain.SleepRecord, error)
	CreateSleep(ctx context.Context, dayID uint, rec domain.SleepRecord) (*domain.SleepRecord, error)
	UpdateSleep(ctx context.Context, rec domain.SleepRecord) (*domain.SleepRecord, error)
	DeleteSleep(ctx context.Context, id uint) error

	ListMoods(ctx context.Context, dayID uint) ([]domain.MoodRecord, error)
	CreateMood(ctx context.Context, dayID uint, rec domain.MoodRecord) (*domain.MoodRecord, error)
	UpdateMood(ctx context.Context, rec domain.MoodRecord) (*domain.MoodRecord, error)
	DeleteMood(ctx context.Context, id uint) error

	ListNotes(ctx context.Context, dayID uint) ([]domain.Note, error)
	CreateNote(ctx context.Context, dayID uint, rec domain.Note) (*domain.Note, error)
	UpdateNote(ctx context.Context, rec domain.Note) (*domain.Note, error)
	DeleteNote(ctx context.Context, id uint) error
}

// LoadingFlags reports which child collections are still being fetched.
type LoadingFlags struct {
	Meals     bool
	Exercises bool
	Waters    bool
	Sleeps    bool
	Moods     bool
	Notes     bool
}

// Any reports whether any collection is still loading.
func (f LoadingFlags) Any() bool {
	return f.Meals || f.Exercises || f.Waters || f.Sleeps || f.Moods || f.Notes
}

// Store is the day aggregate. Construct one per consumer scope with New;
// there is deliberately no package-level instance.
type Store struct {
	api    API
	logger *slog.Logger

	mu        sync.Mutex
	gen       uint64 // bumped on every LoadDay/ClearDay; stale loads check it
	current   *domain.Day
	meals     []domain.Meal
	exercises []domain.Exercise
	waters    []domain.WaterIntake
	sleeps    []domain.SleepRecord
	moods     []domain.MoodRecord
	notes     []domain.Note
	loading   LoadingFlags
	err       error
}

// New creates a day store backed by the given API.
func New(api API, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{api: api, logger: logger}
}

// LoadDay makes the given date the current day. A missing day is created
// first (get-or-create), then all six child collections are fetched with
// independent concurrent requests. Failure of the lookup/create step leaves
// the previous day in place and sets the error slot; failure of a single
// collection load only leaves that collection empty.
func (s *Store) LoadDay(ctx context.Context, date string) error {
	day, err := s.api.GetDayByDate(ctx, date)
	if err != nil && apperrors.IsNotFound(err) {
		day, err = s.api.CreateDay(ctx, date)
	}
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.current = day
	s.err = nil
	s.meals = nil
	s.exercises = nil
	s.waters = nil
	s.sleeps = nil
	s.moods = nil
	s.notes = nil
	s.loading = LoadingFlags{Meals: true, Exercises: true, Waters: true, Sleeps: true, Moods: true, Notes: true}
	s.mu.Unlock()

	dayID := day.ID
	var g errgroup.Group
	g.Go(func() error {
		items, err := s.api.ListMeals(ctx, dayID)
		s.finishLoad(gen, "meals", err, func() { s.meals = items }, func(f *LoadingFlags) { f.Meals = false })
		return nil
	})
	g.Go(func() error {
		items, err := s.api.ListExercises(ctx, dayID)
		s.finishLoad(gen, "exercises", err, func() { s.exercises = items }, func(f *LoadingFlags) { f.Exercises = false })
		return nil
	})
	g.Go(func() error {
		items, err := s.api.ListWaters(ctx, dayID)
		s.finishLoad(gen, "waters", err, func() { s.waters = items }, func(f *LoadingFlags) { f.Waters = false })
		return nil
	})
	g.Go(func() error {
		items, err := s.api.ListSleeps(ctx, dayID)
		s.finishLoad(gen, "sleeps", err, func() { s.sleeps = items }, func(f *LoadingFlags) { f.Sleeps = false })
		return nil
	})
	g.Go(func() error {
		items, err := s.api.ListMoods(ctx, dayID)
		s.finishLoad(gen, "moods", err, func() { s.moods = items }, func(f *LoadingFlags) { f.Moods = false })
		return nil
	})
	g.Go(func() error {
		items, err := s.api.ListNotes(ctx, dayID)
		s.finishLoad(gen, "notes", err, func() { s.notes = items }, func(f *LoadingFlags) { f.Notes = false })
		return nil
	})
	_ = g.Wait()
	return nil
}

// finishLoad applies one finished collection load under the lock. A load
// from a superseded generation is discarded: the day it belongs to is no
// longer current.
func (s *Store) finishLoad(gen uint64, collection string, err error, apply func(), clearFlag func(*LoadingFlags)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	clearFlag(&s.loading)
	if err != nil {
		s.logger.Warn("failed to load collection", "collection", collection, "error", err)
		return
	}
	apply()
}

// UpdateDay sends a partial update and replaces the current day with the
// server's merged representation. Child collections are untouched.
func (s *Store) UpdateDay(ctx context.Context, upd domain.DayUpdate) (*domain.Day, error) {
	dayID, err := s.currentDayID()
	if err != nil {
		return nil, err
	}
	day, err := s.api.UpdateDay(ctx, dayID, upd)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == day.ID {
		s.current = day
	}
	s.mu.Unlock()
	return day, nil
}

// ClearDay resets the store to its initial state.
func (s *Store) ClearDay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.current = nil
	s.meals = nil
	s.exercises = nil
	s.waters = nil
	s.sleeps = nil
	s.moods = nil
	s.notes = nil
	s.loading = LoadingFlags{}
	s.err = nil
}

// ReloadMeals refreshes the meal collection, keeping the previous items if
// the refresh fails. Used after a recognition job completes.
func (s *Store) ReloadMeals(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return apperrors.NewValidationError("no day loaded")
	}
	dayID := s.current.ID
	gen := s.gen
	s.loading.Meals = true
	s.mu.Unlock()

	items, err := s.api.ListMeals(ctx, dayID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.loading.Meals = false
	if err != nil {
		s.logger.Warn("failed to reload meals", "day_id", dayID, "error", err)
		return err
	}
	s.meals = items
	return nil
}

func (s *Store) currentDayID() (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0, apperrors.NewValidationError("no day loaded")
	}
	return s.current.ID, nil
}

// CurrentDay returns a copy of the current day, or nil if none is loaded.
func (s *Store) CurrentDay() *domain.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	day := *s.current
	return &day
}

// Loading returns the per-collection loading flags.
func (s *Store) Loading() LoadingFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error slot set by a failed day lookup/create.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Meals returns a copy of the meal collection.
func (s *Store) Meals() []domain.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Meal(nil), s.meals...)
}

// Exercises returns a copy of the exercise collection.
func (s *Store) Exercises() []domain.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Exercise(nil), s.exercises...)
}

// Waters returns a copy of the water intake collection.
func (s *Store) Waters() []domain.WaterIntake {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WaterIntake(nil), s.waters...)
}

// Sleeps returns a copy of the sleep record collection.
func (s *Store) Sleeps() []domain.SleepRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SleepRecord(nil), s.sleeps...)
}

// Moods returns a copy of the mood record collection.
func (s *Store) Moods() []domain.MoodRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.MoodRecord(nil), s.moods...)
}

// Notes returns a copy of the note collection.
func (s *Store) Notes() []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Note(nil), s.notes...)
}
