// Package nutrition fetches the backend-derived daily macro summary and
// manages the user's daily calorie target, including the raw edit buffer
// that stays uncommitted until a save succeeds.
package nutrition

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/piringsehat/piring-cli/internal/calendar"
	"github.com/piringsehat/piring-cli/internal/foodlog"
	"github.com/piringsehat/piring-cli/internal/model"
)

// Backend is the summary/target slice of the REST API.
type Backend interface {
	DailyNutritionSummary(ctx context.Context, userID, date string) (model.NutritionSummary, error)
	DailyTarget(ctx context.Context, userID string) (*float64, error)
	SetDailyTarget(ctx context.Context, userID string, target *float64) (*float64, error)
}

// Aggregator holds the per-date macro summary and the per-user target.
type Aggregator struct {
	backend Backend
	userID  string

	summary     model.NutritionSummary
	target      *float64
	targetInput string
}

// NewAggregator returns an aggregator with zeroed summary and unset target.
func NewAggregator(backend Backend, userID string) *Aggregator {
	return &Aggregator{backend: backend, userID: userID}
}

// LoadSummary fetches the macro summary for date. On failure the summary
// resets to zeros; an obviously empty display beats a silently stale one.
func (a *Aggregator) LoadSummary(ctx context.Context, date time.Time) error {
	if a.userID == "" {
		return foodlog.ErrNoUser
	}
	key := calendar.DateKey(date)
	summary, err := a.backend.DailyNutritionSummary(ctx, a.userID, key)
	if err != nil {
		log.Printf("load nutrition summary for %s: %v", key, err)
		a.summary = model.NutritionSummary{}
		return err
	}
	a.summary = summary
	return nil
}

// LoadTarget fetches the committed target and seeds the edit buffer from
// it: the stored number as text, or "" when unset. Called once per
// resolved user at mount.
func (a *Aggregator) LoadTarget(ctx context.Context) error {
	if a.userID == "" {
		return foodlog.ErrNoUser
	}
	target, err := a.backend.DailyTarget(ctx, a.userID)
	if err != nil {
		log.Printf("load daily calorie target: %v", err)
		return err
	}
	a.target = target
	if target != nil {
		a.targetInput = strconv.FormatFloat(*target, 'f', -1, 64)
	} else {
		a.targetInput = ""
	}
	return nil
}

// SetTargetInput updates the edit buffer without committing anything.
func (a *Aggregator) SetTargetInput(text string) {
	a.targetInput = text
}

// SaveTarget persists the edit buffer: "" clears the target, anything else
// must parse as a number. On success the backend's returned value becomes
// the committed target, guarding against server-side rounding or
// validation differences. On failure nothing is committed and the buffer
// is kept for retry.
func (a *Aggregator) SaveTarget(ctx context.Context) error {
	if a.userID == "" {
		return foodlog.ErrNoUser
	}
	var value *float64
	trimmed := strings.TrimSpace(a.targetInput)
	if trimmed != "" {
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return fmt.Errorf("invalid target %q: %w", a.targetInput, err)
		}
		value = &parsed
	}
	saved, err := a.backend.SetDailyTarget(ctx, a.userID, value)
	if err != nil {
		log.Printf("save daily calorie target: %v", err)
		return err
	}
	a.target = saved
	return nil
}

// Summary returns the current macro summary.
func (a *Aggregator) Summary() model.NutritionSummary {
	return a.summary
}

// Target returns the committed target, nil when unset.
func (a *Aggregator) Target() *float64 {
	return a.target
}

// TargetInput returns the raw edit buffer.
func (a *Aggregator) TargetInput() string {
	return a.targetInput
}

// Progress converts a daily calorie total into a capped percentage of the
// target. ok is false when no positive target is set, in which case the
// caller hides the progress display.
func (a *Aggregator) Progress(dailyTotal float64) (percent int, ok bool) {
	if a.target == nil || *a.target <= 0 {
		return 0, false
	}
	p := int(math.Round(dailyTotal / *a.target * 100))
	if p > 100 {
		p = 100
	}
	return p, true
}
