package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/piringsehat/piring-cli/internal/identity"
)

func TestAddFoodLogParsesEnvelopeAndSendsBearer(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.Method + " " + r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"id": 42, "food_name_custom": "Nasi Goreng", "calories": "350.5", "logged_at": "2024-03-15T12:30:00Z"}}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client(), Identity: identity.Static{User: "u1", BearerToken: "tok-123"}}
	entry, err := c.AddFoodLog(context.Background(), AddFoodLogInput{
		UserID:   "u1",
		Date:     "2024-03-15",
		FoodName: "Nasi Goreng",
		Calories: 350.5,
	})
	if err != nil {
		t.Fatalf("add food log: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotPath != "POST /api/food-logs" {
		t.Fatalf("unexpected request %q", gotPath)
	}
	if entry.ID != "42" || entry.Name != "Nasi Goreng" || entry.Calories != 350.5 {
		t.Fatalf("unexpected parsed entry: %+v", entry)
	}
	if entry.Time == "" {
		t.Fatal("expected a derived HH:MM display time")
	}
}

func TestBackendErrorMessageIsPropagated(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "calories is required"}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.FoodLogsByDate(context.Background(), "u1", "2024-03-15")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "calories is required" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestDailyTargetNullMeansUnset(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"target": null}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	target, err := c.DailyTarget(context.Background(), "u1")
	if err != nil {
		t.Fatalf("daily target: %v", err)
	}
	if target != nil {
		t.Fatalf("expected nil target, got %v", *target)
	}
}

func TestFirstFoodByNameEmptyQuerySkipsNetwork(t *testing.T) {
	t.Parallel()

	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	food, err := c.FirstFoodByName(context.Background(), "   ")
	if err != nil {
		t.Fatalf("first food: %v", err)
	}
	if food != nil || calls != 0 {
		t.Fatalf("expected nil result with no network call, got %v after %d calls", food, calls)
	}
}

func TestMonthlyTotalAcceptsNumericString(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startDate") != "2024-03-01" || r.URL.Query().Get("endDate") != "2024-03-31" {
			t.Errorf("unexpected range query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": "1234.5"}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	total, err := c.TotalCaloriesInRange(context.Background(), "u1", "2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("monthly total: %v", err)
	}
	if total != 1234.5 {
		t.Fatalf("expected 1234.5, got %v", total)
	}
}
