// Package foodlog keeps the per-day food log for one user: a cache of
// backend entries keyed by logical date, the client-side daily total, and
// the server-computed monthly total.
package foodlog

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/piringsehat/piring-cli/internal/api"
	"github.com/piringsehat/piring-cli/internal/calendar"
	"github.com/piringsehat/piring-cli/internal/model"
)

// ErrIncomplete is returned when an add is attempted without both a name
// and a usable calorie value. No backend call is made in that case.
var ErrIncomplete = errors.New("food name and calories are required")

// ErrNoUser is returned when no user identity is resolved.
var ErrNoUser = errors.New("no user is signed in")

// Backend is the food-log slice of the REST API.
type Backend interface {
	AddFoodLog(ctx context.Context, in api.AddFoodLogInput) (model.FoodLogEntry, error)
	FoodLogsByDate(ctx context.Context, userID, date string) ([]model.FoodLogEntry, error)
	TotalCaloriesInRange(ctx context.Context, userID, startDate, endDate string) (float64, error)
	DeleteFoodLog(ctx context.Context, id string) error
}

// Store is the day ledger for one user. Entries for a date key mirror the
// backend as of the last fetch for that key, overlaid with local adds and
// deletes. The monthly total is never derived from the day cache: the
// backend may hold entries for days never fetched locally.
type Store struct {
	backend Backend
	userID  string

	entriesByDate map[string][]model.FoodLogEntry
	selectedKey   string
	monthlyTotal  float64
}

// NewStore returns an empty ledger for the given user.
func NewStore(backend Backend, userID string) *Store {
	return &Store{
		backend:       backend,
		userID:        userID,
		entriesByDate: make(map[string][]model.FoodLogEntry),
	}
}

// LoadDate fetches the entries for date and replaces (not merges) the
// cached sequence under its key. On fetch failure the store logs and keeps
// whatever it had; the date still becomes the selected key.
func (s *Store) LoadDate(ctx context.Context, date time.Time) error {
	key := calendar.DateKey(date)
	s.selectedKey = key
	if s.userID == "" {
		return ErrNoUser
	}
	entries, err := s.backend.FoodLogsByDate(ctx, s.userID, key)
	if err != nil {
		log.Printf("load food logs for %s: %v", key, err)
		return err
	}
	s.entriesByDate[key] = entries
	return nil
}

// RefreshMonthlyTotal refetches the server-side calorie total for the month
// containing date. On failure the previous cached total is kept.
func (s *Store) RefreshMonthlyTotal(ctx context.Context, date time.Time) error {
	if s.userID == "" {
		return ErrNoUser
	}
	start, end := calendar.MonthRange(date)
	total, err := s.backend.TotalCaloriesInRange(ctx, s.userID, start, end)
	if err != nil {
		log.Printf("load monthly calorie total %s..%s: %v", start, end, err)
		return err
	}
	s.monthlyTotal = total
	return nil
}

// Add validates the pending form values and creates an entry for date.
// Missing name or a zero/unparseable calorie value is a client-side no-op
// (ErrIncomplete, no network call). On success the backend's canonical
// entry is appended under the date's key. On backend failure nothing
// changes locally and the error is returned for the caller to surface
// or ignore.
func (s *Store) Add(ctx context.Context, date time.Time, name, calories string, food *model.Food) (model.FoodLogEntry, error) {
	if s.userID == "" {
		return model.FoodLogEntry{}, ErrNoUser
	}
	name = strings.TrimSpace(name)
	kcal, err := strconv.ParseFloat(strings.TrimSpace(calories), 64)
	if name == "" || err != nil || kcal == 0 {
		return model.FoodLogEntry{}, ErrIncomplete
	}

	key := calendar.DateKey(date)
	in := api.AddFoodLogInput{
		UserID:   s.userID,
		Date:     key,
		Calories: kcal,
		Portion:  1,
		FoodName: name,
	}
	if food != nil {
		in.FoodID = food.ID
	}
	entry, err := s.backend.AddFoodLog(ctx, in)
	if err != nil {
		log.Printf("add food log: %v", err)
		return model.FoodLogEntry{}, err
	}
	s.entriesByDate[key] = append(s.entriesByDate[key], entry)
	return entry, nil
}

// Delete removes an entry by id, backend first. The cached sequence for
// the selected date is only touched after the backend confirms.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteFoodLog(ctx, id); err != nil {
		log.Printf("delete food log %s: %v", id, err)
		return err
	}
	current := s.entriesByDate[s.selectedKey]
	kept := current[:0]
	for _, e := range current {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entriesByDate[s.selectedKey] = kept
	return nil
}

// Entries returns the cached sequence for the selected date.
func (s *Store) Entries() []model.FoodLogEntry {
	return s.entriesByDate[s.selectedKey]
}

// DailyTotal sums the calories cached for the selected date; 0 when the
// date was never fetched or has no entries.
func (s *Store) DailyTotal() float64 {
	var total float64
	for _, e := range s.entriesByDate[s.selectedKey] {
		total += e.Calories
	}
	return total
}

// MonthlyTotal returns the last-fetched server total for the selected
// date's month.
func (s *Store) MonthlyTotal() float64 {
	return s.monthlyTotal
}
