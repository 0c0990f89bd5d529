package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly. NULL values zero the time and return nil so that
// *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// macroTargets holds a user's configured daily goals. Values are always
// positive once they leave the profile adapter; missing or non-positive
// stored values are replaced per-field with the hard-coded defaults.
type macroTargets struct {
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// defaultTargets is the fallback goal set used when a user has no profile
// row or a target column is null/non-positive.
var defaultTargets = macroTargets{Calories: 2000, ProteinG: 150, CarbsG: 250, FatG: 65}

// macroConsumption is the summed nutrition logged for one calendar date.
// All-zero when no logs exist or a store read degraded.
type macroConsumption struct {
	Calories    float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
	MealsLogged int
}

// engagementStats are the auxiliary per-user counters shown on the
// dashboard. The bot maintains them; this service only reads.
type engagementStats struct {
	CurrentStreak        int `json:"current_streak"`
	DaysSinceLastMealLog int `json:"days_since_last_meal_log"`
	Coins                int `json:"coins"`
}

/* ─── Row scan structs (RowToStructByName) ───────────────────────────── */

// userProfileRow maps the target columns of the users table. All pointers:
// a freshly created user can have every target null.
type userProfileRow struct {
	CalorieTarget  *float64 `db:"calorie_target"`
	ProteinTargetG *float64 `db:"protein_target_g"`
	CarbsTargetG   *float64 `db:"carbs_target_g"`
	FatTargetG     *float64 `db:"fat_target_g"`
}

// dailySummaryRow maps one row of daily_nutrition_summary.
type dailySummaryRow struct {
	Date             DateOnly `db:"date"`
	TotalCalories    *float64 `db:"total_calories"`
	TotalProteinG    *float64 `db:"total_protein_g"`
	TotalCarbsG      *float64 `db:"total_carbs_g"`
	TotalFatG        *float64 `db:"total_fat_g"`
	MealsLoggedCount *int     `db:"meals_logged_count"`
}

// consumption flattens a summary row, treating null columns as zero.
func (r dailySummaryRow) consumption() macroConsumption {
	c := macroConsumption{}
	if r.TotalCalories != nil {
		c.Calories = *r.TotalCalories
	}
	if r.TotalProteinG != nil {
		c.ProteinG = *r.TotalProteinG
	}
	if r.TotalCarbsG != nil {
		c.CarbsG = *r.TotalCarbsG
	}
	if r.TotalFatG != nil {
		c.FatG = *r.TotalFatG
	}
	if r.MealsLoggedCount != nil {
		c.MealsLogged = *r.MealsLoggedCount
	}
	return c
}

// nutritionLogRow maps the numeric columns of one raw meal log entry.
type nutritionLogRow struct {
	TotalCalories *float64 `db:"total_calories"`
	ProteinG      *float64 `db:"protein_g"`
	CarbsG        *float64 `db:"carbs_g"`
	FatG          *float64 `db:"fat_g"`
}

// engagementRow maps the counter columns of the users table.
type engagementRow struct {
	CurrentStreak        *int `db:"current_streak"`
	DaysSinceLastMealLog *int `db:"days_since_last_meal_log"`
	Coins                *int `db:"coins"`
}

/* ─── API response shapes ────────────────────────────────────────────── */

// macroAmounts is the per-macro quartet used throughout the JSON API.
// Key names (fats_g, not fat_g) match what the dashboard scripts expect.
type macroAmounts struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// nutritionView is the full computed state for one user and date:
// targets, consumed, remaining (floored at 0) and progress (clamped to [0,1]).
type nutritionView struct {
	Targets   macroAmounts `json:"targets"`
	Consumed  macroAmounts `json:"consumed_today"`
	Remaining macroAmounts `json:"remaining"`
	Progress  macroAmounts `json:"progress"`
	MealCount int          `json:"meal_count"`
}

// nutritionDataResponse is the GET /api/nutrition-data payload.
type nutritionDataResponse struct {
	UserID string `json:"user_id"`
	nutritionView
}

// historyTargets is the daily_targets block of the historical payload.
// Shorter key names than macroAmounts — the chart code reads these.
type historyTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// dayRecord is one calendar day in a historical window. Always present for
// every day of the window; zero-filled with HasData=false when nothing was
// logged. CaloriesSpent is carried for the chart but always 0 here.
type dayRecord struct {
	Date          DateOnly `json:"date"`
	Calories      float64  `json:"calories"`
	Protein       float64  `json:"protein"`
	Carbs         float64  `json:"carbs"`
	Fats          float64  `json:"fats"`
	CaloriesSpent float64  `json:"caloriesSpent"`
	HasData       bool     `json:"has_data"`
}

// historicalDataResponse is the GET /api/historical-data payload. The series
// key stays "last_7_days" regardless of the requested length — the embedded
// web view's chart code binds to that name.
type historicalDataResponse struct {
	UserID       string         `json:"user_id"`
	Days         int            `json:"days"`
	DailyTargets historyTargets `json:"daily_targets"`
	Series       []dayRecord    `json:"last_7_days"`
}

// streakDataResponse is the GET /api/streak-data payload.
type streakDataResponse struct {
	UserID string `json:"user_id"`
	engagementStats
}

// botUpdateRequest is the body the meal-logging bot pushes after a log.
// Targets and consumed are optional; whatever is present is persisted.
type botUpdateRequest struct {
	UserID        string        `json:"user_id"`
	Targets       *macroAmounts `json:"targets"`
	ConsumedToday *macroAmounts `json:"consumed_today"`
	MealCount     int           `json:"meal_count"`
}
