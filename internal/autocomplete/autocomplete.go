// Package autocomplete manages the food entry form fields: the name and
// calorie edit buffers, a debounced suggestion list from the food catalog,
// and one-shot calorie autofill by exact name.
package autocomplete

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/piringsehat/piring-cli/internal/identity"
	"github.com/piringsehat/piring-cli/internal/model"
)

// DefaultDebounce is the quiet period before a suggestion fetch fires.
const DefaultDebounce = 300 * time.Millisecond

const suggestionLimit = 5

// User-facing messages, in the product's language.
const (
	msgNameRequired  = "Silakan masukkan nama makanan terlebih dahulu."
	msgFoodNotFound  = "Makanan tidak ditemukan di database."
	msgLookupFailure = "Terjadi kesalahan saat mengambil data makanan."
)

// Catalog is the food search collaborator.
type Catalog interface {
	SearchFoods(ctx context.Context, query string, limit int) ([]model.Food, error)
	FirstFoodByName(ctx context.Context, query string) (*model.Food, error)
}

// Form holds the pending food entry fields and their suggestion state.
// All methods are safe for concurrent use; completed fetches commit their
// results only while their generation is still current, so a stale slow
// response can never overwrite the state of a newer query.
type Form struct {
	catalog  Catalog
	identity identity.Provider
	debounce time.Duration

	mu         sync.Mutex
	generation int
	timer      *time.Timer
	closed     bool

	name               string
	calories           string
	autoFood           *model.Food
	suggestions        []model.Food
	suggestionsLoading bool
	autoFillLoading    bool
	autoFillError      string
}

// New returns a form with the default debounce interval.
func New(catalog Catalog, id identity.Provider) *Form {
	return NewWithDebounce(catalog, id, DefaultDebounce)
}

// NewWithDebounce allows tests to shorten the debounce window.
func NewWithDebounce(catalog Catalog, id identity.Provider, debounce time.Duration) *Form {
	return &Form{catalog: catalog, identity: id, debounce: debounce}
}

// SetQuery updates the name edit buffer and schedules a debounced
// suggestion fetch. An empty (trimmed) query clears the suggestion list
// without touching the network. Each call supersedes any pending or
// in-flight fetch from an earlier call.
func (f *Form) SetQuery(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.name = text
	f.generation++
	gen := f.generation
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}

	query := strings.TrimSpace(text)
	if query == "" {
		f.suggestions = nil
		f.suggestionsLoading = false
		return
	}
	if f.closed {
		return
	}
	f.timer = time.AfterFunc(f.debounce, func() {
		f.loadSuggestions(gen, query)
	})
}

func (f *Form) loadSuggestions(gen int, query string) {
	f.mu.Lock()
	if gen != f.generation || f.closed {
		f.mu.Unlock()
		return
	}
	f.suggestionsLoading = true
	f.mu.Unlock()

	results, err := f.catalog.SearchFoods(context.Background(), query, suggestionLimit)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation || f.closed {
		// A newer query took over while this fetch was in flight.
		return
	}
	f.suggestionsLoading = false
	if err != nil {
		log.Printf("load food suggestions: %v", err)
		f.suggestions = nil
		return
	}
	f.suggestions = results
}

// SelectSuggestion adopts a suggested food into the pending fields and
// clears the suggestion list and any earlier autofill error.
func (f *Form) SelectSuggestion(food model.Food) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.name = food.Name
	f.calories = formatCalories(food.Calories)
	foodCopy := food
	f.autoFood = &foodCopy
	f.autoFillError = ""
	f.suggestions = nil
	f.generation++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

// AutoFill looks up the current name text exactly, once, and adopts the
// first match's calories. Errors are captured into state, never returned:
// a miss sets a user-facing message and drops any previously adopted
// catalog reference, leaving the calorie field as typed.
func (f *Form) AutoFill(ctx context.Context) {
	f.mu.Lock()
	trimmed := strings.TrimSpace(f.name)
	if trimmed == "" {
		f.autoFillError = msgNameRequired
		f.mu.Unlock()
		return
	}
	if f.identity == nil || f.identity.UserID() == "" {
		f.mu.Unlock()
		return
	}
	f.autoFillError = ""
	f.autoFillLoading = true
	f.mu.Unlock()

	food, err := f.catalog.FirstFoodByName(ctx, trimmed)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.autoFillLoading = false
	if f.closed {
		return
	}
	if err != nil {
		log.Printf("autofill food lookup: %v", err)
		f.autoFillError = msgLookupFailure
		return
	}
	if food == nil {
		f.autoFillError = msgFoodNotFound
		f.autoFood = nil
		return
	}
	f.autoFood = food
	f.calories = formatCalories(food.Calories)
}

// SetCalories updates the calorie edit buffer. The buffer stays raw text
// until the entry is submitted.
func (f *Form) SetCalories(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calories = text
}

// Reset clears the pending fields after a successful submit.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = ""
	f.calories = ""
	f.autoFood = nil
}

// Close tears the form down: the pending debounce timer is stopped and any
// in-flight fetch's result will be discarded.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.generation++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

// Name returns the name edit buffer.
func (f *Form) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name
}

// Calories returns the calorie edit buffer.
func (f *Form) Calories() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calories
}

// AutoFood returns the adopted catalog food, or nil.
func (f *Form) AutoFood() *model.Food {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.autoFood
}

// Suggestions returns a snapshot of the current suggestion list.
func (f *Form) Suggestions() []model.Food {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Food, len(f.suggestions))
	copy(out, f.suggestions)
	return out
}

// AutoFillError returns the current autofill message, "" when none.
func (f *Form) AutoFillError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.autoFillError
}

// Loading reports whether a suggestion fetch or autofill is in flight.
func (f *Form) Loading() (suggestions, autofill bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suggestionsLoading, f.autoFillLoading
}

func formatCalories(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
