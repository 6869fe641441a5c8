// Package tracker composes the calendar cursor, the autocomplete form, the
// food log store, and the nutrition aggregator into the single interface
// the presentation layer drives. It threads parameters between them and
// holds no state of its own.
package tracker

import (
	"context"
	"time"

	"github.com/piringsehat/piring-cli/internal/autocomplete"
	"github.com/piringsehat/piring-cli/internal/calendar"
	"github.com/piringsehat/piring-cli/internal/foodlog"
	"github.com/piringsehat/piring-cli/internal/identity"
	"github.com/piringsehat/piring-cli/internal/model"
	"github.com/piringsehat/piring-cli/internal/nutrition"
)

// Backend is the union of the collaborator slices the components need.
// *api.Client satisfies it.
type Backend interface {
	foodlog.Backend
	nutrition.Backend
	autocomplete.Catalog
}

// Tracker is the composed tracking view model.
type Tracker struct {
	Calendar  *calendar.Cursor
	Form      *autocomplete.Form
	Logs      *foodlog.Store
	Nutrition *nutrition.Aggregator
}

// New builds the composite for one user session anchored at now and loads
// the initial state for the selected (current) day. Load failures degrade
// to empty state inside each component; the first error is returned so a
// caller that wants to surface it can.
func New(ctx context.Context, backend Backend, id identity.Provider, now time.Time) (*Tracker, error) {
	t := &Tracker{
		Calendar:  calendar.New(now),
		Form:      autocomplete.New(backend, id),
		Logs:      foodlog.NewStore(backend, id.UserID()),
		Nutrition: nutrition.NewAggregator(backend, id.UserID()),
	}

	var firstErr error
	if err := t.Nutrition.LoadTarget(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := t.refresh(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return t, firstErr
}

// SelectDate moves the selection and re-fetches everything keyed by it:
// the day's entries, the containing month's total, and the macro summary.
// The three fetches write to disjoint state, so order does not matter.
func (t *Tracker) SelectDate(ctx context.Context, date time.Time) error {
	t.Calendar.Select(date)
	return t.refresh(ctx)
}

func (t *Tracker) refresh(ctx context.Context) error {
	date := t.Calendar.SelectedDate
	var firstErr error
	if err := t.Logs.LoadDate(ctx, date); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := t.Logs.RefreshMonthlyTotal(ctx, date); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := t.Nutrition.LoadSummary(ctx, date); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Submit feeds the form's pending fields into the food log for the
// selected date. On success the form resets; on failure (including the
// incomplete-form no-op) it stays as typed.
func (t *Tracker) Submit(ctx context.Context) (model.FoodLogEntry, error) {
	entry, err := t.Logs.Add(ctx, t.Calendar.SelectedDate, t.Form.Name(), t.Form.Calories(), t.Form.AutoFood())
	if err != nil {
		return model.FoodLogEntry{}, err
	}
	t.Form.Reset()
	return entry, nil
}

// Close releases the form's pending debounce work.
func (t *Tracker) Close() {
	t.Form.Close()
}
