package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"healthdiary/internal/domain"
	apperrors "healthdiary/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDayService struct {
	days map[string]*domain.Day
}

func (f *fakeDayService) GetByDate(_ context.Context, userID uint, date string) (*domain.Day, error) {
	if day, ok := f.days[date]; ok && day.UserID == userID {
		return day, nil
	}
	return nil, apperrors.ErrDayNotFound
}

func (f *fakeDayService) Create(_ context.Context, userID uint, date string) (*domain.Day, error) {
	day := &domain.Day{ID: uint(len(f.days) + 1), UserID: userID, Date: date}
	f.days[date] = day
	return day, nil
}

func (f *fakeDayService) Update(_ context.Context, userID, id uint, upd domain.DayUpdate) (*domain.Day, error) {
	for _, day := range f.days {
		if day.ID == id && day.UserID == userID {
			if upd.Tag != nil {
				day.Tag = *upd.Tag
			}
			return day, nil
		}
	}
	return nil, apperrors.ErrDayNotFound
}

type fakeMealService struct{ meals []domain.Meal }

func (f *fakeMealService) ListByDay(_ context.Context, dayID uint) ([]domain.Meal, error) {
	var out []domain.Meal
	for _, m := range f.meals {
		if m.DayID == dayID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMealService) Create(_ context.Context, meal *domain.Meal) (*domain.Meal, error) {
	meal.ID = uint(len(f.meals) + 1)
	f.meals = append(f.meals, *meal)
	return meal, nil
}

func (f *fakeMealService) Update(_ context.Context, meal *domain.Meal) (*domain.Meal, error) {
	return meal, nil
}

func (f *fakeMealService) Delete(_ context.Context, id uint) error { return nil }

type fakeExerciseService struct{}

func (fakeExerciseService) ListByDay(context.Context, uint) ([]domain.Exercise, error) {
	return nil, nil
}
func (fakeExerciseService) Create(_ context.Context, rec *domain.Exercise) (*domain.Exercise, error) {
	return rec, nil
}
func (fakeExerciseService) Update(_ context.Context, rec *domain.Exercise) (*domain.Exercise, error) {
	return rec, nil
}
func (fakeExerciseService) Delete(context.Context, uint) error { return nil }

type fakeWaterService struct{}

func (fakeWaterService) ListByDay(context.Context, uint) ([]domain.WaterIntake, error) {
	return nil, nil
}
func (fakeWaterService) Create(_ context.Context, rec *domain.WaterIntake) (*domain.WaterIntake, error) {
	return rec, nil
}
func (fakeWaterService) Update(_ context.Context, rec *domain.WaterIntake) (*domain.WaterIntake, error) {
	return rec, nil
}
func (fakeWaterService) Delete(context.Context, uint) error { return nil }

type fakeSleepService struct{}

func (fakeSleepService) ListByDay(context.Context, uint) ([]domain.SleepRecord, error) {
	return nil, nil
}
func (fakeSleepService) Create(_ context.Context, rec *domain.SleepRecord) (*domain.SleepRecord, error) {
	return rec, nil
}
func (fakeSleepService) Update(_ context.Context, rec *domain.SleepRecord) (*domain.SleepRecord, error) {
	return rec, nil
}
func (fakeSleepService) Delete(context.Context, uint) error { return nil }

type fakeMoodService struct{}

func (fakeMoodService) ListByDay(context.Context, uint) ([]domain.MoodRecord, error) {
	return nil, nil
}
func (fakeMoodService) Create(_ context.Context, rec *domain.MoodRecord) (*domain.MoodRecord, error) {
	return rec, nil
}
func (fakeMoodService) Update(_ context.Context, rec *domain.MoodRecord) (*domain.MoodRecord, error) {
	return rec, nil
}
func (fakeMoodService) Delete(context.Context, uint) error { return nil }

type fakeNoteService struct{}

func (fakeNoteService) ListByDay(context.Context, uint) ([]domain.Note, error) { return nil, nil }
func (fakeNoteService) Create(_ context.Context, rec *domain.Note) (*domain.Note, error) {
	return rec, nil
}
func (fakeNoteService) Update(_ context.Context, rec *domain.Note) (*domain.Note, error) {
	return rec, nil
}
func (fakeNoteService) Delete(context.Context, uint) error { return nil }

type fakeRecognition struct {
	started bool
	err     error
}

func (f *fakeRecognition) Start(_ context.Context, dayID uint, category, filename, contentType string, data []byte) (*domain.Meal, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.started = true
	return &domain.Meal{ID: 42, DayID: dayID, Category: category, Status: domain.MealStatusProcessing}, nil
}

func (f *fakeRecognition) Status(_ context.Context, mealID uint) (*domain.ProcessingStatus, error) {
	return &domain.ProcessingStatus{MealID: mealID, Status: domain.MealStatusProcessing}, nil
}

func newTestRouter(days *fakeDayService, meals *fakeMealService, rec *fakeRecognition) *gin.Engine {
	return NewRouter(
		NewDayHandler(days),
		NewRecordHandler(meals, fakeExerciseService{}, fakeWaterService{}, fakeSleepService{}, fakeMoodService{}, fakeNoteService{}),
		NewPhotoHandler(rec),
		nil,
	)
}

func doRequest(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-User-ID", "1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetDayRequiresValidDate(t *testing.T) {
	router := newTestRouter(&fakeDayService{days: map[string]*domain.Day{}}, &fakeMealService{}, &fakeRecognition{})

	w := doRequest(router, http.MethodGet, "/api/v1/days?date=23-08-2026", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	w = doRequest(router, http.MethodGet, "/api/v1/days", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing date status = %d", w.Code)
	}
}

func TestGetDayNotFoundIs404(t *testing.T) {
	router := newTestRouter(&fakeDayService{days: map[string]*domain.Day{}}, &fakeMealService{}, &fakeRecognition{})

	w := doRequest(router, http.MethodGet, "/api/v1/days?date=2026-08-23", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
		t.Errorf("error body = %s", w.Body.String())
	}
}

func TestCreateThenGetDay(t *testing.T) {
	router := newTestRouter(&fakeDayService{days: map[string]*domain.Day{}}, &fakeMealService{}, &fakeRecognition{})

	w := doRequest(router, http.MethodPost, "/api/v1/days",
		bytes.NewBufferString(`{"date":"2026-08-23"}`), "application/json")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/api/v1/days?date=2026-08-23", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var day domain.Day
	if err := json.Unmarshal(w.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if day.Date != "2026-08-23" || day.UserID != 1 {
		t.Errorf("day = %+v", day)
	}
}

func TestListMealsReturnsEmptyArrayNotNull(t *testing.T) {
	router := newTestRouter(&fakeDayService{days: map[string]*domain.Day{}}, &fakeMealService{}, &fakeRecognition{})

	w := doRequest(router, http.MethodGet, "/api/v1/days/1/meals", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func multipartPhoto(t *testing.T, category, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("category", category); err != nil {
		t.Fatal(err)
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadPhotoAccepted(t *testing.T) {
	rec := &fakeRecognition{}
	router := newTestRouter(&fakeDayService{days: map[string]*domain.Day{}}, &fakeMealService{}, rec)

	body, contentType := multipartPhoto(t, "lunch", "lunch.jpg", "image/jpeg", []byte("fake-jpeg"))
	w := doRequest(router, http.MethodPost, "/api/v1/days/3/photo", body, contentType)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !rec.started {
		t.Error("recognition not started")
	}

	var result domain.UploadResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.MealID != 42 || result.Status != domain.MealStatusProcessing {
		t.Errorf("result = %+v", result)
	}
}

func TestUploadPhotoRejectsBadCategory(t *testing.T) {
	rec := &fakeRecognition{}
	router := newTestRouter(&fakeDayService{days: map[string]*domain.Day{}}, &fakeMealService{}, rec)

	body, contentType := multipartPhoto(t, "brunch", "lunch.jpg", "image/jpeg", []byte("fake-jpeg"))
	w := doRequest(router, http.MethodPost, "/api/v1/days/3/photo", body, contentType)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	if rec.started {
		t.Error("recognition started for invalid category")
	}
}

func TestUploadPhotoRejectsNonImage(t *testing.T) {
	rec := &fakeRecognition{}
	router := newTestRouter(&fakeDayService{days: map[string]*domain.Day{}}, &fakeMealService{}, rec)

	body, contentType := multipartPhoto(t, "lunch", "notes.txt", "text/plain", []byte("hello"))
	w := doRequest(router, http.MethodPost, "/api/v1/days/3/photo", body, contentType)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	if rec.started {
		t.Error("recognition started for non-image upload")
	}
}

func TestProcessingStatusRoute(t *testing.T) {
	router := newTestRouter(&fakeDayService{days: map[string]*domain.Day{}}, &fakeMealService{}, &fakeRecognition{})

	w := doRequest(router, http.MethodGet, "/api/v1/meals/42/processing-status", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var status domain.ProcessingStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.MealID != 42 || status.Status != domain.MealStatusProcessing {
		t.Errorf("status = %+v", status)
	}
}
