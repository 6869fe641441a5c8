// Package api is the HTTP client for the PiringSehat backend REST API.
// The backend owns persistence and authorization; this client only shapes
// requests, attaches the bearer identity token, and decodes the JSON
// envelope each endpoint returns.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/piringsehat/piring-cli/internal/identity"
	"github.com/piringsehat/piring-cli/internal/model"
)

const defaultBaseURL = "http://localhost:3000"

// Client talks to the backend. The zero value of BaseURL and HTTPClient is
// resolved per call, so a partially filled Client still works.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Identity   identity.Provider
}

// APIError is a non-2xx response. Message carries the backend's JSON
// {"error": ...} text when present, the HTTP status text otherwise.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// AddFoodLogInput is the request body for creating one food log entry.
type AddFoodLogInput struct {
	UserID   string  `json:"userId"`
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Portion  float64 `json:"portion"`
	FoodName string  `json:"foodName"`
	FoodID   string  `json:"foodId,omitempty"`
}

// AddFoodLog creates an entry and returns the backend's canonical form,
// including the server-assigned id and the local HH:MM display time.
func (c *Client) AddFoodLog(ctx context.Context, in AddFoodLogInput) (model.FoodLogEntry, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return model.FoodLogEntry{}, fmt.Errorf("userId is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		return model.FoodLogEntry{}, fmt.Errorf("date is required")
	}
	if in.Portion <= 0 {
		in.Portion = 1
	}
	var resp struct {
		Data logEntryData `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/food-logs", in, &resp); err != nil {
		return model.FoodLogEntry{}, fmt.Errorf("add food log: %w", err)
	}
	return resp.Data.toEntry(in.FoodName), nil
}

// FoodLogsByDate lists one user's entries for one logical date key.
func (c *Client) FoodLogsByDate(ctx context.Context, userID, date string) ([]model.FoodLogEntry, error) {
	q := url.Values{"userId": {userID}, "date": {date}}
	var resp struct {
		Data []logEntryData `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/food-logs?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list food logs: %w", err)
	}
	entries := make([]model.FoodLogEntry, 0, len(resp.Data))
	for _, d := range resp.Data {
		entries = append(entries, d.toEntry(""))
	}
	return entries, nil
}

// TotalCaloriesInRange returns the backend-computed calorie total for one
// user across an inclusive date range, typically one calendar month.
func (c *Client) TotalCaloriesInRange(ctx context.Context, userID, startDate, endDate string) (float64, error) {
	q := url.Values{"userId": {userID}, "startDate": {startDate}, "endDate": {endDate}}
	var resp struct {
		Total flexFloat `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/food-logs/summary/month?"+q.Encode(), nil, &resp); err != nil {
		return 0, fmt.Errorf("monthly calorie total: %w", err)
	}
	return float64(resp.Total), nil
}

// DeleteFoodLog removes one entry by its server-assigned id.
func (c *Client) DeleteFoodLog(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required")
	}
	if err := c.do(ctx, http.MethodDelete, "/api/food-logs/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete food log: %w", err)
	}
	return nil
}

// DailyNutritionSummary returns the backend-derived macro totals for one
// user and date. The backend computes these from linked catalog foods.
func (c *Client) DailyNutritionSummary(ctx context.Context, userID, date string) (model.NutritionSummary, error) {
	q := url.Values{"userId": {userID}, "date": {date}}
	var resp struct {
		Data model.NutritionSummary `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/food-logs/summary/nutrition?"+q.Encode(), nil, &resp); err != nil {
		return model.NutritionSummary{}, fmt.Errorf("nutrition summary: %w", err)
	}
	return resp.Data, nil
}

// DailyTarget fetches the user's daily calorie target. nil means unset.
func (c *Client) DailyTarget(ctx context.Context, userID string) (*float64, error) {
	var resp struct {
		Target *float64 `json:"target"`
	}
	path := "/api/users/" + url.PathEscape(userID) + "/daily-target"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("daily target: %w", err)
	}
	return resp.Target, nil
}

// SetDailyTarget persists a target (nil clears it) and returns the value
// the backend actually stored.
func (c *Client) SetDailyTarget(ctx context.Context, userID string, target *float64) (*float64, error) {
	body := struct {
		Target *float64 `json:"target"`
	}{Target: target}
	var resp struct {
		Target *float64 `json:"target"`
	}
	path := "/api/users/" + url.PathEscape(userID) + "/daily-target"
	if err := c.do(ctx, http.MethodPut, path, body, &resp); err != nil {
		return nil, fmt.Errorf("save daily target: %w", err)
	}
	return resp.Target, nil
}

// SearchFoods searches the catalog by name. An empty query lists foods up
// to limit, matching the backend's behaviour.
func (c *Client) SearchFoods(ctx context.Context, query string, limit int) ([]model.Food, error) {
	if limit <= 0 {
		limit = 300
	}
	q := url.Values{"limit": {fmt.Sprint(limit)}}
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		q.Set("query", trimmed)
	}
	var resp struct {
		Data []model.Food `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/foods/search?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	return resp.Data, nil
}

// FirstFoodByName returns the first catalog food matching the query, or
// nil when nothing matches. An empty query short-circuits to nil.
func (c *Client) FirstFoodByName(ctx context.Context, query string) (*model.Food, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}
	q := url.Values{"query": {trimmed}}
	var resp struct {
		Data *model.Food `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/foods/first?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("first food by name: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Identity != nil {
		token, err := c.Identity.Token(ctx)
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var parsed struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &parsed) == nil && strings.TrimSpace(parsed.Error) != "" {
			apiErr.Message = parsed.Error
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
