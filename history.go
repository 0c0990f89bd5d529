package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// utcToday returns the current calendar date at midnight UTC. Window math is
// done in UTC so the day boundary doesn't drift with server timezone.
func utcToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// buildSeries produces exactly days records covering [today-(days-1), today]
// in chronological order. Days present in byDate use the stored consumption;
// everything else is zero-filled — absence of data is explicit, never
// replaced with sample values.
func buildSeries(today time.Time, days int, byDate map[string]macroConsumption) []dayRecord {
	series := make([]dayRecord, days)
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, -(days - 1 - i))
		rec := dayRecord{Date: DateOnly{d}}
		if c, ok := byDate[d.Format("2006-01-02")]; ok {
			rec.Calories = c.Calories
			rec.Protein = c.ProteinG
			rec.Carbs = c.CarbsG
			rec.Fats = c.FatG
			rec.HasData = true
		}
		series[i] = rec
	}
	return series
}

// historyForUser assembles the gap-filled daily series for the last `days`
// calendar days ending today (UTC), plus the user's targets. A store failure
// on the batch query degrades to an all-zero series; targets degrade
// independently inside fetchTargets. The caller never sees an error.
func (h *Handler) historyForUser(ctx context.Context, userID int64, days int) (macroTargets, []dayRecord) {
	targets := h.fetchTargets(ctx, userID)

	today := utcToday()
	start := today.AddDate(0, 0, -(days - 1))

	byDate, err := h.dailySummariesRange(ctx, userID, start, today)
	if err != nil {
		logger.Error("history range fetch failed, returning zero-filled series",
			zap.Int64("user_id", userID), zap.Int("days", days), zap.Error(err))
		byDate = nil
	}

	return targets, buildSeries(today, days, byDate)
}
