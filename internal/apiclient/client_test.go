package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthdiary/internal/domain"
	apperrors "healthdiary/internal/errors"
)

func newTestClient(srv *httptest.Server, userID uint) *Client {
	return New(Config{BaseURL: srv.URL, UserID: userID})
}

func TestGetDayByDateSendsUserAndDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-User-ID"); got != "7" {
			t.Errorf("X-User-ID = %q", got)
		}
		if got := r.URL.Query().Get("date"); got != "2026-08-23" {
			t.Errorf("date = %q", got)
		}
		json.NewEncoder(w).Encode(domain.Day{ID: 3, UserID: 7, Date: "2026-08-23"})
	}))
	defer srv.Close()

	day, err := newTestClient(srv, 7).GetDayByDate(context.Background(), "2026-08-23")
	if err != nil {
		t.Fatalf("GetDayByDate: %v", err)
	}
	if day.ID != 3 || day.Date != "2026-08-23" {
		t.Errorf("day = %+v", day)
	}
}

func TestGetDayByDateNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"day not found"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 1).GetDayByDate(context.Background(), "2026-08-23")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if !strings.Contains(err.Error(), "day not found") {
		t.Errorf("server message lost: %v", err)
	}
}

func TestServerErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"database unavailable"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 1).GetDayByDate(context.Background(), "2026-08-23")
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Type != apperrors.ErrorTypeExternal {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(appErr.Message, "database unavailable") {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestCreateMealRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/days/3/meals" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var meal domain.Meal
		if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
			t.Errorf("decode body: %v", err)
		}
		meal.ID = 42
		meal.DayID = 3
		meal.Status = domain.MealStatusManual
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(meal)
	}))
	defer srv.Close()

	created, err := newTestClient(srv, 1).CreateMeal(context.Background(), 3, domain.Meal{Name: "burger"})
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}
	if created.ID != 42 || created.Name != "burger" || created.Status != domain.MealStatusManual {
		t.Errorf("created = %+v", created)
	}
}

func TestDeleteMeal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/meals/42" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := newTestClient(srv, 1).DeleteMeal(context.Background(), 42); err != nil {
		t.Fatalf("DeleteMeal: %v", err)
	}
}

func TestUploadPhotoMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/days/3/photo" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("category"); got != "lunch" {
			t.Errorf("category = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "lunch.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		if got := header.Header.Get("Content-Type"); got != "image/jpeg" {
			t.Errorf("part content type = %q", got)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake-jpeg-bytes" {
			t.Errorf("file bytes = %q", data)
		}

		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(domain.UploadResult{MealID: 42, Status: domain.MealStatusProcessing})
	}))
	defer srv.Close()

	result, err := newTestClient(srv, 1).UploadPhoto(
		context.Background(), 3, "lunch", "lunch.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))
	if err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}
	if result.MealID != 42 || result.Status != domain.MealStatusProcessing {
		t.Errorf("result = %+v", result)
	}
}

func TestProcessingStatusDecodesTerminalResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/meals/42/processing-status" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(domain.ProcessingStatus{
			MealID: 42,
			Status: domain.MealStatusCompleted,
			RecognizedItems: []domain.RecognizedItem{
				{Name: "Chicken breast", Quantity: 200, Unit: "g", Confidence: domain.ConfidenceHigh},
			},
			MealData: &domain.MealNutrition{Calories: 330, Protein: 62, Fat: 7},
		})
	}))
	defer srv.Close()

	status, err := newTestClient(srv, 1).ProcessingStatus(context.Background(), 42)
	if err != nil {
		t.Fatalf("ProcessingStatus: %v", err)
	}
	if status.Status != domain.MealStatusCompleted || len(status.RecognizedItems) != 1 {
		t.Errorf("status = %+v", status)
	}
	if status.MealData == nil || status.MealData.Calories != 330 {
		t.Errorf("meal data = %+v", status.MealData)
	}
}
