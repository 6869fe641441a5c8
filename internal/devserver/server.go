// Package devserver is a local SQLite-backed implementation of the backend
// REST contract, for development and for integration-testing the client
// against a real HTTP surface. It mirrors the production API's paths,
// envelopes, and error bodies, but performs no token verification: any
// Authorization header is accepted.
package devserver

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/piringsehat/piring-cli/internal/model"
)

// Server serves the PiringSehat REST API from a local database.
type Server struct {
	db   *sql.DB
	addr string
}

// New creates a server bound to addr.
func New(db *sql.DB, addr string) *Server {
	return &Server{db: db, addr: addr}
}

// Run starts listening. Blocks until the listener fails.
func (s *Server) Run() error {
	fmt.Printf("piring dev server listening on %s\n", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler returns the route table, usable directly in tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/food-logs", s.addFoodLog)
	mux.HandleFunc("GET /api/food-logs", s.listFoodLogs)
	mux.HandleFunc("GET /api/food-logs/summary/month", s.monthlyTotal)
	mux.HandleFunc("GET /api/food-logs/summary/nutrition", s.nutritionSummary)
	mux.HandleFunc("DELETE /api/food-logs/{id}", s.deleteFoodLog)

	mux.HandleFunc("GET /api/users/{userId}/daily-target", s.getDailyTarget)
	mux.HandleFunc("PUT /api/users/{userId}/daily-target", s.setDailyTarget)

	mux.HandleFunc("GET /api/foods/search", s.searchFoods)
	mux.HandleFunc("GET /api/foods/first", s.firstFood)

	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// withCORS allows the web frontend to call the dev server directly.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type addFoodLogRequest struct {
	UserID   string   `json:"userId"`
	Date     string   `json:"date"`
	Calories float64  `json:"calories"`
	Portion  *float64 `json:"portion"`
	FoodName string   `json:"foodName"`
	FoodID   string   `json:"foodId"`
}

// foodLogRow is the wire form of one food_logs row.
type foodLogRow struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	FoodID         *string `json:"food_id"`
	FoodNameCustom string  `json:"food_name_custom"`
	Calories       float64 `json:"calories"`
	Portion        float64 `json:"portion"`
	Date           string  `json:"date"`
	LoggedAt       string  `json:"logged_at"`
}

func (s *Server) addFoodLog(w http.ResponseWriter, r *http.Request) {
	var req addFoodLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if !validDate(req.Date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if strings.TrimSpace(req.FoodName) == "" && strings.TrimSpace(req.FoodID) == "" {
		writeError(w, http.StatusBadRequest, "foodName or foodId is required")
		return
	}
	if req.Calories <= 0 {
		writeError(w, http.StatusBadRequest, "calories is required")
		return
	}
	portion := 1.0
	if req.Portion != nil && *req.Portion > 0 {
		portion = *req.Portion
	}

	name := strings.TrimSpace(req.FoodName)
	var foodID *string
	if trimmed := strings.TrimSpace(req.FoodID); trimmed != "" {
		var foodName string
		err := s.db.QueryRow(`SELECT name FROM foods WHERE id = ?`, trimmed).Scan(&foodName)
		if err == sql.ErrNoRows {
			writeError(w, http.StatusBadRequest, "unknown foodId")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup food")
			return
		}
		foodID = &trimmed
		if name == "" {
			name = foodName
		}
	}

	row := foodLogRow{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		FoodID:         foodID,
		FoodNameCustom: name,
		Calories:       req.Calories,
		Portion:        portion,
		Date:           req.Date,
		LoggedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	_, err := s.db.Exec(`
INSERT INTO food_logs(id, user_id, food_id, food_name_custom, calories, portion, date, logged_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, row.ID, row.UserID, row.FoodID, row.FoodNameCustom, row.Calories, row.Portion, row.Date, row.LoggedAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "insert food log")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": row})
}

func (s *Server) listFoodLogs(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	date := r.URL.Query().Get("date")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	rows, err := s.db.Query(`
SELECT id, user_id, food_id, food_name_custom, calories, portion, date, logged_at
FROM food_logs
WHERE user_id = ? AND date = ?
ORDER BY logged_at ASC
`, userID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query food logs")
		return
	}
	defer rows.Close()

	logs := make([]foodLogRow, 0)
	for rows.Next() {
		var row foodLogRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.FoodID, &row.FoodNameCustom, &row.Calories, &row.Portion, &row.Date, &row.LoggedAt); err != nil {
			writeError(w, http.StatusInternalServerError, "scan food log")
			return
		}
		logs = append(logs, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": logs})
}

func (s *Server) monthlyTotal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("userId")
	start, end := q.Get("startDate"), q.Get("endDate")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if !validDate(start) || !validDate(end) {
		writeError(w, http.StatusBadRequest, "startDate and endDate must be YYYY-MM-DD")
		return
	}

	var total sql.NullFloat64
	err := s.db.QueryRow(`
SELECT SUM(calories) FROM food_logs
WHERE user_id = ? AND date >= ? AND date <= ?
`, userID, start, end).Scan(&total)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sum calories")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": total.Float64})
}

func (s *Server) nutritionSummary(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	date := r.URL.Query().Get("date")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	// Macros come from the linked catalog foods; free-text entries without
	// a food_id contribute calories but no macro data.
	var protein, carbs, fat sql.NullFloat64
	err := s.db.QueryRow(`
SELECT SUM(f.protein_g * l.portion), SUM(f.carbs_g * l.portion), SUM(f.fat_g * l.portion)
FROM food_logs l
JOIN foods f ON f.id = l.food_id
WHERE l.user_id = ? AND l.date = ?
`, userID, date).Scan(&protein, &carbs, &fat)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sum nutrition")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": model.NutritionSummary{
		ProteinG: protein.Float64,
		CarbsG:   carbs.Float64,
		FatG:     fat.Float64,
	}})
}

func (s *Server) deleteFoodLog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	res, err := s.db.Exec(`DELETE FROM food_logs WHERE id = ?`, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete food log")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "food log not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getDailyTarget(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	var target sql.NullFloat64
	err := s.db.QueryRow(`SELECT daily_calorie_target FROM users WHERE id = ?`, userID).Scan(&target)
	if err != nil && err != sql.ErrNoRows {
		writeError(w, http.StatusInternalServerError, "query daily target")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"target": nullableFloat(target)})
}

func (s *Server) setDailyTarget(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	var req struct {
		Target *float64 `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Target != nil && *req.Target < 0 {
		writeError(w, http.StatusBadRequest, "target must be >= 0")
		return
	}

	_, err := s.db.Exec(`
INSERT INTO users(id, daily_calorie_target) VALUES(?, ?)
ON CONFLICT(id) DO UPDATE SET daily_calorie_target = excluded.daily_calorie_target
`, userID, req.Target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "save daily target")
		return
	}

	var target sql.NullFloat64
	if err := s.db.QueryRow(`SELECT daily_calorie_target FROM users WHERE id = ?`, userID).Scan(&target); err != nil {
		writeError(w, http.StatusInternalServerError, "reread daily target")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"target": nullableFloat(target)})
}

func (s *Server) searchFoods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 300
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	query := strings.TrimSpace(q.Get("query"))
	var (
		rows *sql.Rows
		err  error
	)
	if query == "" {
		rows, err = s.db.Query(`
SELECT id, name, calories, protein_g, carbs_g, fat_g FROM foods ORDER BY name LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(`
SELECT id, name, calories, protein_g, carbs_g, fat_g FROM foods
WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
ORDER BY name LIMIT ?`, query, limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query foods")
		return
	}
	defer rows.Close()

	foods := make([]model.Food, 0)
	for rows.Next() {
		var f model.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Calories, &f.ProteinG, &f.CarbsG, &f.FatG); err != nil {
			writeError(w, http.StatusInternalServerError, "scan food")
			return
		}
		foods = append(foods, f)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": foods})
}

func (s *Server) firstFood(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	var f model.Food
	err := s.db.QueryRow(`
SELECT id, name, calories, protein_g, carbs_g, fat_g FROM foods
WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
ORDER BY name LIMIT 1`, query).Scan(&f.ID, &f.Name, &f.Calories, &f.ProteinG, &f.CarbsG, &f.FatG)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusOK, map[string]any{"data": nil})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query food")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": f})
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
