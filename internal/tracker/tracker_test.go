package tracker_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/piringsehat/piring-cli/internal/api"
	"github.com/piringsehat/piring-cli/internal/foodlog"
	"github.com/piringsehat/piring-cli/internal/identity"
	"github.com/piringsehat/piring-cli/internal/model"
	"github.com/piringsehat/piring-cli/internal/tracker"
)

// fakeBackend is an in-memory stand-in for the whole REST surface.
type fakeBackend struct {
	nextID    int
	byDate    map[string][]model.FoodLogEntry
	nutrition map[string]model.NutritionSummary
	target    *float64
	foods     []model.Food
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID:    1,
		byDate:    map[string][]model.FoodLogEntry{},
		nutrition: map[string]model.NutritionSummary{},
	}
}

func (b *fakeBackend) AddFoodLog(ctx context.Context, in api.AddFoodLogInput) (model.FoodLogEntry, error) {
	entry := model.FoodLogEntry{
		ID:       fmt.Sprint(b.nextID),
		Name:     in.FoodName,
		Calories: in.Calories,
		Time:     "12:30",
		FoodID:   in.FoodID,
	}
	b.nextID++
	b.byDate[in.Date] = append(b.byDate[in.Date], entry)
	return entry, nil
}

func (b *fakeBackend) FoodLogsByDate(ctx context.Context, userID, date string) ([]model.FoodLogEntry, error) {
	return b.byDate[date], nil
}

func (b *fakeBackend) TotalCaloriesInRange(ctx context.Context, userID, startDate, endDate string) (float64, error) {
	var total float64
	for date, entries := range b.byDate {
		if date < startDate || date > endDate {
			continue
		}
		for _, e := range entries {
			total += e.Calories
		}
	}
	return total, nil
}

func (b *fakeBackend) DeleteFoodLog(ctx context.Context, id string) error {
	for date, entries := range b.byDate {
		kept := entries[:0]
		for _, e := range entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		b.byDate[date] = kept
	}
	return nil
}

func (b *fakeBackend) DailyNutritionSummary(ctx context.Context, userID, date string) (model.NutritionSummary, error) {
	return b.nutrition[date], nil
}

func (b *fakeBackend) DailyTarget(ctx context.Context, userID string) (*float64, error) {
	return b.target, nil
}

func (b *fakeBackend) SetDailyTarget(ctx context.Context, userID string, target *float64) (*float64, error) {
	b.target = target
	return b.target, nil
}

func (b *fakeBackend) SearchFoods(ctx context.Context, query string, limit int) ([]model.Food, error) {
	return b.foods, nil
}

func (b *fakeBackend) FirstFoodByName(ctx context.Context, query string) (*model.Food, error) {
	for i := range b.foods {
		if b.foods[i].Name == query {
			return &b.foods[i], nil
		}
	}
	return nil, nil
}

func TestSubmitScenarioAccumulatesAndClearsForm(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend()
	ctx := context.Background()
	tr, err := tracker.New(ctx, backend, identity.Static{User: "u1"}, time.Date(2024, time.March, 1, 9, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	defer tr.Close()

	if err := tr.SelectDate(ctx, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)); err != nil {
		t.Fatalf("select date: %v", err)
	}

	tr.Form.SetQuery("Nasi Goreng")
	tr.Form.SetCalories("350")
	if _, err := tr.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := tr.Logs.DailyTotal(); got != 350 {
		t.Fatalf("expected daily total 350, got %v", got)
	}
	if tr.Form.Name() != "" || tr.Form.Calories() != "" {
		t.Fatal("expected form cleared after successful submit")
	}

	tr.Form.SetQuery("Telur")
	tr.Form.SetCalories("90")
	if _, err := tr.Submit(ctx); err != nil {
		t.Fatalf("submit second: %v", err)
	}
	if got := tr.Logs.DailyTotal(); got != 440 {
		t.Fatalf("expected daily total 440, got %v", got)
	}
}

func TestIncompleteSubmitKeepsForm(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend()
	ctx := context.Background()
	tr, err := tracker.New(ctx, backend, identity.Static{User: "u1"}, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	defer tr.Close()

	tr.Form.SetQuery("Nasi Goreng")
	if _, err := tr.Submit(ctx); !errors.Is(err, foodlog.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if tr.Form.Name() != "Nasi Goreng" {
		t.Fatal("expected form kept after no-op submit")
	}
}

func TestDateChangePropagatesToAllFetches(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend()
	backend.byDate["2024-04-02"] = []model.FoodLogEntry{{ID: "1", Name: "Soto", Calories: 280}}
	backend.nutrition["2024-04-02"] = model.NutritionSummary{ProteinG: 18, CarbsG: 20, FatG: 12}

	ctx := context.Background()
	tr, err := tracker.New(ctx, backend, identity.Static{User: "u1"}, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	defer tr.Close()

	if err := tr.SelectDate(ctx, time.Date(2024, time.April, 2, 9, 0, 0, 0, time.Local)); err != nil {
		t.Fatalf("select date: %v", err)
	}
	if got := tr.Logs.DailyTotal(); got != 280 {
		t.Fatalf("expected daily total 280, got %v", got)
	}
	if got := tr.Logs.MonthlyTotal(); got != 280 {
		t.Fatalf("expected monthly total 280, got %v", got)
	}
	if s := tr.Nutrition.Summary(); s.ProteinG != 18 {
		t.Fatalf("expected nutrition summary for new date, got %+v", s)
	}
	// Month navigation alone leaves the selection and fetches alone.
	tr.Calendar.NextMonth()
	if !tr.Calendar.SelectedDate.Equal(time.Date(2024, time.April, 2, 9, 0, 0, 0, time.Local)) {
		t.Fatal("expected selection unchanged by month navigation")
	}
}

func TestSelectDateIsIdempotent(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend()
	ctx := context.Background()
	tr, err := tracker.New(ctx, backend, identity.Static{User: "u1"}, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	defer tr.Close()

	d := time.Date(2024, time.March, 20, 9, 0, 0, 0, time.Local)
	if err := tr.SelectDate(ctx, d); err != nil {
		t.Fatalf("first select: %v", err)
	}
	before := tr.Logs.DailyTotal()
	if err := tr.SelectDate(ctx, d); err != nil {
		t.Fatalf("second select: %v", err)
	}
	if tr.Logs.DailyTotal() != before || !tr.Calendar.SelectedDate.Equal(d) {
		t.Fatal("expected repeated selection to change nothing")
	}
}
