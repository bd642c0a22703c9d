package daystore

import "healthdiary/internal/domain"

// NutritionTotals is the summed nutrition of a meal collection.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// ExerciseTotals is the summed load of an exercise collection.
type ExerciseTotals struct {
	DurationMin float64 `json:"duration_min"`
	DistanceKm  float64 `json:"distance_km"`
	Calories    float64 `json:"calories"`
}

// SumMealNutrition totals nutrition across meals. Unset values count as
// zero; the records themselves are never modified.
func SumMealNutrition(meals []domain.Meal) NutritionTotals {
	var t NutritionTotals
	for _, m := range meals {
		t.Calories += valueOrZero(m.Calories)
		t.Protein += valueOrZero(m.Protein)
		t.Carbs += valueOrZero(m.Carbs)
		t.Fat += valueOrZero(m.Fat)
	}
	return t
}

// SumWaterVolume totals water volume in milliliters.
func SumWaterVolume(waters []domain.WaterIntake) float64 {
	var total float64
	for _, w := range waters {
		total += w.VolumeMl
	}
	return total
}

// SumExercise totals duration, distance and calories across exercises.
// Unset values count as zero.
func SumExercise(exercises []domain.Exercise) ExerciseTotals {
	var t ExerciseTotals
	for _, e := range exercises {
		t.DurationMin += valueOrZero(e.DurationMin)
		t.DistanceKm += valueOrZero(e.DistanceKm)
		t.Calories += valueOrZero(e.Calories)
	}
	return t
}

// NutritionTotals sums nutrition over the currently loaded meals.
func (s *Store) NutritionTotals() NutritionTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SumMealNutrition(s.meals)
}

// WaterTotal sums water volume over the currently loaded intakes.
func (s *Store) WaterTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SumWaterVolume(s.waters)
}

// ExerciseTotals sums exercise load over the currently loaded records.
func (s *Store) ExerciseTotals() ExerciseTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SumExercise(s.exercises)
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
