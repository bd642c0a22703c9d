package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthdiary/internal/domain"
)

// RecordHandler serves CRUD for the six child collections of a day. Each
// collection is listed and created under its owning day and updated or
// deleted by its own id.
type RecordHandler struct {
	meals     domain.MealService
	exercises domain.ExerciseService
	waters    domain.WaterService
	sleeps    domain.SleepService
	moods     domain.MoodService
	notes     domain.NoteService
}

func NewRecordHandler(
	meals domain.MealService,
	exercises domain.ExerciseService,
	waters domain.WaterService,
	sleeps domain.SleepService,
	moods domain.MoodService,
	notes domain.NoteService,
) *RecordHandler {
	return &RecordHandler{
		meals:     meals,
		exercises: exercises,
		waters:    waters,
		sleeps:    sleeps,
		moods:     moods,
		notes:     notes,
	}
}

// Meals

func (h *RecordHandler) ListMeals(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	records, err := h.meals.ListByDay(c.Request.Context(), dayID)
	if err != nil {
		respondError(c, err)
		return
	}
	if records == nil {
		records = []domain.Meal{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *RecordHandler) CreateMeal(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	var rec domain.Meal
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.DayID = dayID
	if rec.Status == "" {
		rec.Status = domain.MealStatusManual
	}
	created, err := h.meals.Create(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecordHandler) UpdateMeal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var rec domain.Meal
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.ID = id
	updated, err := h.meals.Update(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler) DeleteMeal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.meals.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Exercises

func (h *RecordHandler) ListExercises(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	records, err := h.exercises.ListByDay(c.Request.Context(), dayID)
	if err != nil {
		respondError(c, err)
		return
	}
	if records == nil {
		records = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *RecordHandler) CreateExercise(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	var rec domain.Exercise
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.DayID = dayID
	created, err := h.exercises.Create(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecordHandler) UpdateExercise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var rec domain.Exercise
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.ID = id
	updated, err := h.exercises.Update(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler) DeleteExercise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.exercises.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Water intakes

func (h *RecordHandler) ListWaters(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	records, err := h.waters.ListByDay(c.Request.Context(), dayID)
	if err != nil {
		respondError(c, err)
		return
	}
	if records == nil {
		records = []domain.WaterIntake{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *RecordHandler) CreateWater(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	var rec domain.WaterIntake
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if rec.VolumeMl <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "volume_ml must be positive"})
		return
	}
	rec.DayID = dayID
	created, err := h.waters.Create(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecordHandler) UpdateWater(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var rec domain.WaterIntake
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.ID = id
	updated, err := h.waters.Update(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler) DeleteWater(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.waters.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Sleep records

func (h *RecordHandler) ListSleeps(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	records, err := h.sleeps.ListByDay(c.Request.Context(), dayID)
	if err != nil {
		respondError(c, err)
		return
	}
	if records == nil {
		records = []domain.SleepRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *RecordHandler) CreateSleep(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	var rec domain.SleepRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.DayID = dayID
	created, err := h.sleeps.Create(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecordHandler) UpdateSleep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var rec domain.SleepRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.ID = id
	updated, err := h.sleeps.Update(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler) DeleteSleep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.sleeps.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Mood records

func (h *RecordHandler) ListMoods(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	records, err := h.moods.ListByDay(c.Request.Context(), dayID)
	if err != nil {
		respondError(c, err)
		return
	}
	if records == nil {
		records = []domain.MoodRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *RecordHandler) CreateMood(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	var rec domain.MoodRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.DayID = dayID
	created, err := h.moods.Create(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecordHandler) UpdateMood(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var rec domain.MoodRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.ID = id
	updated, err := h.moods.Update(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler) DeleteMood(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.moods.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Notes

func (h *RecordHandler) ListNotes(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	records, err := h.notes.ListByDay(c.Request.Context(), dayID)
	if err != nil {
		respondError(c, err)
		return
	}
	if records == nil {
		records = []domain.Note{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *RecordHandler) CreateNote(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	var rec domain.Note
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.DayID = dayID
	created, err := h.notes.Create(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecordHandler) UpdateNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var rec domain.Note
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec.ID = id
	updated, err := h.notes.Update(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler) DeleteNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.notes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
