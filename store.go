package main

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// The store layer fails soft by design: every read degrades to a typed
// default rather than surfacing an error, so the dashboard always renders.
// "Not found" (expected for new users/days) logs at Info; anything else is
// an operational store failure and logs at Error. The distinction exists
// purely for diagnosability — the returned defaults are the same.

// fetchTargets returns the user's daily macro targets, or the hard-coded
// defaults when the profile row is missing or the lookup fails. Single
// attempt, no retries.
func (h *Handler) fetchTargets(ctx context.Context, userID int64) macroTargets {
	row, err := queryOne[userProfileRow](h.db, ctx,
		`SELECT calorie_target, protein_target_g, carbs_target_g, fat_target_g
		 FROM users WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info("no profile row, using default targets", zap.Int64("user_id", userID))
		} else {
			logger.Error("profile lookup failed, using default targets",
				zap.Int64("user_id", userID), zap.Error(err))
		}
		return defaultTargets
	}
	return normalizeTargets(row)
}

// consumptionForDate returns the user's summed nutrition for one calendar
// date (UTC). Prefers the precomputed daily_nutrition_summary row; falls
// back to summing raw nutrition_logs when the rollup hasn't been populated
// (e.g. a brand-new day). Any failure returns all zeros.
func (h *Handler) consumptionForDate(ctx context.Context, userID int64, date time.Time) macroConsumption {
	day := date.UTC().Format("2006-01-02")

	row, err := queryOne[dailySummaryRow](h.db, ctx,
		`SELECT date, total_calories, total_protein_g, total_carbs_g, total_fat_g, meals_logged_count
		 FROM daily_nutrition_summary
		 WHERE user_id = @userID AND date = @date`,
		pgx.NamedArgs{"userID": userID, "date": day})
	if err == nil {
		return row.consumption()
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error("daily summary lookup failed, returning zero consumption",
			zap.Int64("user_id", userID), zap.String("date", day), zap.Error(err))
		return macroConsumption{}
	}

	// No rollup for this day yet — sum the raw log entries instead.
	start := time.Date(date.UTC().Year(), date.UTC().Month(), date.UTC().Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	logs, err := queryMany[nutritionLogRow](h.db, ctx,
		`SELECT total_calories, protein_g, carbs_g, fat_g
		 FROM nutrition_logs
		 WHERE user_id = @userID AND logged_at >= @start AND logged_at < @end`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		logger.Error("nutrition log fallback failed, returning zero consumption",
			zap.Int64("user_id", userID), zap.String("date", day), zap.Error(err))
		return macroConsumption{}
	}

	var c macroConsumption
	for _, l := range logs {
		if l.TotalCalories != nil {
			c.Calories += *l.TotalCalories
		}
		if l.ProteinG != nil {
			c.ProteinG += *l.ProteinG
		}
		if l.CarbsG != nil {
			c.CarbsG += *l.CarbsG
		}
		if l.FatG != nil {
			c.FatG += *l.FatG
		}
	}
	c.MealsLogged = len(logs)
	return c
}

// dailySummariesRange fetches all precomputed summaries in [start, end]
// (inclusive calendar dates) in one query, keyed by "YYYY-MM-DD". Days with
// no summary are simply absent from the map.
func (h *Handler) dailySummariesRange(ctx context.Context, userID int64, start, end time.Time) (map[string]macroConsumption, error) {
	rows, err := queryMany[dailySummaryRow](h.db, ctx,
		`SELECT date, total_calories, total_protein_g, total_carbs_g, total_fat_g, meals_logged_count
		 FROM daily_nutrition_summary
		 WHERE user_id = @userID AND date >= @start AND date <= @end`,
		pgx.NamedArgs{
			"userID": userID,
			"start":  start.Format("2006-01-02"),
			"end":    end.Format("2006-01-02"),
		})
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]macroConsumption, len(rows))
	for _, r := range rows {
		byDate[r.Date.Time.Format("2006-01-02")] = r.consumption()
	}
	return byDate, nil
}

// fetchEngagement returns the user's streak and reward counters, defaulting
// every counter to 0 independently when the row or a column is missing.
func (h *Handler) fetchEngagement(ctx context.Context, userID int64) engagementStats {
	row, err := queryOne[engagementRow](h.db, ctx,
		`SELECT current_streak, days_since_last_meal_log, coins
		 FROM users WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info("no engagement row, using zero counters", zap.Int64("user_id", userID))
		} else {
			logger.Error("engagement lookup failed, using zero counters",
				zap.Int64("user_id", userID), zap.Error(err))
		}
		return engagementStats{}
	}

	var s engagementStats
	if row.CurrentStreak != nil {
		s.CurrentStreak = *row.CurrentStreak
	}
	if row.DaysSinceLastMealLog != nil {
		s.DaysSinceLastMealLog = *row.DaysSinceLastMealLog
	}
	if row.Coins != nil {
		s.Coins = *row.Coins
	}
	return s
}

// applyBotUpdate persists a bot push: upserts the user's target columns and
// today's daily summary row. Unlike the read paths this returns errors — the
// bot retries on failure and needs to know.
func (h *Handler) applyBotUpdate(ctx context.Context, userID int64, req botUpdateRequest) error {
	if req.Targets != nil {
		_, err := h.db.Exec(ctx,
			`INSERT INTO users (user_id, calorie_target, protein_target_g, carbs_target_g, fat_target_g)
			 VALUES (@userID, @calories, @protein, @carbs, @fat)
			 ON CONFLICT (user_id) DO UPDATE SET
				calorie_target = EXCLUDED.calorie_target,
				protein_target_g = EXCLUDED.protein_target_g,
				carbs_target_g = EXCLUDED.carbs_target_g,
				fat_target_g = EXCLUDED.fat_target_g`,
			pgx.NamedArgs{
				"userID":   userID,
				"calories": req.Targets.Calories,
				"protein":  req.Targets.ProteinG,
				"carbs":    req.Targets.CarbsG,
				"fat":      req.Targets.FatsG,
			})
		if err != nil {
			return err
		}
	}

	if req.ConsumedToday != nil {
		today := time.Now().UTC().Format("2006-01-02")
		_, err := h.db.Exec(ctx,
			`INSERT INTO daily_nutrition_summary
				(user_id, date, total_calories, total_protein_g, total_carbs_g, total_fat_g, meals_logged_count)
			 VALUES (@userID, @date, @calories, @protein, @carbs, @fat, @meals)
			 ON CONFLICT (user_id, date) DO UPDATE SET
				total_calories = EXCLUDED.total_calories,
				total_protein_g = EXCLUDED.total_protein_g,
				total_carbs_g = EXCLUDED.total_carbs_g,
				total_fat_g = EXCLUDED.total_fat_g,
				meals_logged_count = EXCLUDED.meals_logged_count,
				updated_at = now()`,
			pgx.NamedArgs{
				"userID":   userID,
				"date":     today,
				"calories": req.ConsumedToday.Calories,
				"protein":  req.ConsumedToday.ProteinG,
				"carbs":    req.ConsumedToday.CarbsG,
				"fat":      req.ConsumedToday.FatsG,
				"meals":    req.MealCount,
			})
		if err != nil {
			return err
		}
	}

	return nil
}
