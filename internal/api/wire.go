package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/piringsehat/piring-cli/internal/model"
)

// logEntryData is the backend's wire form of a food log entry. The backend
// stores calories as a decimal column, so numbers may arrive as JSON
// strings; ids may be numeric or uuid strings depending on the table.
type logEntryData struct {
	ID             flexString `json:"id"`
	FoodNameCustom string     `json:"food_name_custom"`
	Calories       flexFloat  `json:"calories"`
	LoggedAt       string     `json:"logged_at"`
	FoodID         flexString `json:"food_id"`
}

// toEntry converts the wire form into the client model. fallbackName fills
// in when the backend echoes no custom name (entry linked purely by food id).
func (d logEntryData) toEntry(fallbackName string) model.FoodLogEntry {
	name := strings.TrimSpace(d.FoodNameCustom)
	if name == "" {
		name = fallbackName
	}
	logged := time.Now()
	if d.LoggedAt != "" {
		if t, err := time.Parse(time.RFC3339, d.LoggedAt); err == nil {
			logged = t
		}
	}
	return model.FoodLogEntry{
		ID:       string(d.ID),
		Name:     name,
		Calories: float64(d.Calories),
		Time:     logged.Local().Format("15:04"),
		FoodID:   string(d.FoodID),
	}
}

// flexString accepts JSON strings, numbers, and null.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	*s = flexString(trimmed)
	return nil
}

// flexFloat accepts JSON numbers, numeric strings, and null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
