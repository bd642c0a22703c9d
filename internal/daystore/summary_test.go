package daystore

import (
	"testing"

	"healthdiary/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func TestSumMealNutritionDefaultsMissingToZero(t *testing.T) {
	meals := []domain.Meal{
		{Name: "oatmeal", Calories: fptr(320), Protein: fptr(12), Carbs: fptr(54), Fat: fptr(6)},
		{Name: "unknown snack"}, // nothing recognized yet
		{Name: "steak", Calories: fptr(480), Protein: fptr(45)},
	}

	got := SumMealNutrition(meals)
	want := NutritionTotals{Calories: 800, Protein: 57, Carbs: 54, Fat: 6}
	if got != want {
		t.Errorf("totals = %+v, want %+v", got, want)
	}

	// Summation must not fill in defaults on the records themselves.
	if meals[1].Calories != nil {
		t.Error("record mutated during summation")
	}
}

func TestSumMealNutritionEmpty(t *testing.T) {
	if got := SumMealNutrition(nil); got != (NutritionTotals{}) {
		t.Errorf("totals of empty input = %+v", got)
	}
}

func TestSumWaterVolume(t *testing.T) {
	waters := []domain.WaterIntake{
		{VolumeMl: 250},
		{VolumeMl: 500},
		{VolumeMl: 330},
	}
	if got := SumWaterVolume(waters); got != 1080 {
		t.Errorf("total = %v, want 1080", got)
	}
}

func TestSumExerciseDefaultsMissingToZero(t *testing.T) {
	exercises := []domain.Exercise{
		{Activity: "run", DurationMin: fptr(30), DistanceKm: fptr(5.2), Calories: fptr(310)},
		{Activity: "stretching", DurationMin: fptr(15)},
	}

	got := SumExercise(exercises)
	want := ExerciseTotals{DurationMin: 45, DistanceKm: 5.2, Calories: 310}
	if got != want {
		t.Errorf("totals = %+v, want %+v", got, want)
	}
}

func TestStoreTotalsUseLoadedCollections(t *testing.T) {
	s := New(&fakeAPI{}, nil)
	s.mu.Lock()
	s.meals = []domain.Meal{{Calories: fptr(100)}, {Calories: fptr(200)}}
	s.waters = []domain.WaterIntake{{VolumeMl: 700}}
	s.exercises = []domain.Exercise{{DurationMin: fptr(20)}}
	s.mu.Unlock()

	if got := s.NutritionTotals(); got.Calories != 300 {
		t.Errorf("nutrition totals = %+v", got)
	}
	if got := s.WaterTotal(); got != 700 {
		t.Errorf("water total = %v", got)
	}
	if got := s.ExerciseTotals(); got.DurationMin != 20 {
		t.Errorf("exercise totals = %+v", got)
	}
}
