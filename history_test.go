package main

import (
	"testing"
	"time"
)

// testToday is a fixed reference date so series assertions don't depend on
// the wall clock.
var testToday = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

/* ─── buildSeries shape tests ────────────────────────────────────────── */

// TestBuildSeries_ExactLength verifies a window of N days always yields
// exactly N records, for several window sizes including the minimum.
func TestBuildSeries_ExactLength(t *testing.T) {
	for _, days := range []int{1, 7, 30, 90} {
		series := buildSeries(testToday, days, nil)
		if len(series) != days {
			t.Errorf("buildSeries(days=%d) returned %d records, want %d", days, len(series), days)
		}
	}
}

// TestBuildSeries_ChronologicalEndingToday verifies dates strictly increase
// by one calendar day with no gaps or duplicates, and the last record is the
// reference date itself.
func TestBuildSeries_ChronologicalEndingToday(t *testing.T) {
	series := buildSeries(testToday, 7, nil)

	if got := series[len(series)-1].Date.Time; !got.Equal(testToday) {
		t.Errorf("last record date = %v, want %v", got, testToday)
	}
	if got := series[0].Date.Time; !got.Equal(testToday.AddDate(0, 0, -6)) {
		t.Errorf("first record date = %v, want %v", got, testToday.AddDate(0, 0, -6))
	}
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1].Date.Time, series[i].Date.Time
		if !cur.Equal(prev.AddDate(0, 0, 1)) {
			t.Errorf("record %d date %v does not follow %v by one day", i, cur, prev)
		}
	}
}

// TestBuildSeries_AllZeroWhenNoData verifies the empty-store case: 7 days
// with no summary rows at all yields 7 zero-filled records, never sample or
// placeholder nonzero data.
func TestBuildSeries_AllZeroWhenNoData(t *testing.T) {
	series := buildSeries(testToday, 7, map[string]macroConsumption{})

	for i, rec := range series {
		if rec.Calories != 0 || rec.Protein != 0 || rec.Carbs != 0 || rec.Fats != 0 {
			t.Errorf("record %d (%s) has nonzero consumption %+v, want all zeros", i, rec.Date.Format("2006-01-02"), rec)
		}
		if rec.HasData {
			t.Errorf("record %d (%s) has HasData=true with no store data", i, rec.Date.Format("2006-01-02"))
		}
	}
}

// TestBuildSeries_MergesStoreDays verifies days present in the lookup carry
// their stored totals and HasData=true while the gaps around them stay
// zero-filled.
func TestBuildSeries_MergesStoreDays(t *testing.T) {
	yesterday := testToday.AddDate(0, 0, -1).Format("2006-01-02")
	today := testToday.Format("2006-01-02")
	byDate := map[string]macroConsumption{
		yesterday: {Calories: 1850, ProteinG: 125, CarbsG: 210, FatG: 65, MealsLogged: 3},
		today:     {Calories: 301, ProteinG: 39, CarbsG: 49, FatG: 19, MealsLogged: 1},
	}

	series := buildSeries(testToday, 3, byDate)

	if series[0].HasData {
		t.Errorf("day -2 should be zero-filled, got %+v", series[0])
	}
	if !series[1].HasData || series[1].Calories != 1850 || series[1].Protein != 125 {
		t.Errorf("day -1 = %+v, want stored totals {1850, 125, 210, 65}", series[1])
	}
	if !series[2].HasData || series[2].Calories != 301 || series[2].Fats != 19 {
		t.Errorf("today = %+v, want stored totals {301, 39, 49, 19}", series[2])
	}
}

// TestBuildSeries_CaloriesSpentAlwaysZero verifies the carried chart field
// stays 0 for both stored and gap-filled days.
func TestBuildSeries_CaloriesSpentAlwaysZero(t *testing.T) {
	today := testToday.Format("2006-01-02")
	byDate := map[string]macroConsumption{today: {Calories: 900}}
	for _, rec := range buildSeries(testToday, 2, byDate) {
		if rec.CaloriesSpent != 0 {
			t.Errorf("CaloriesSpent = %v for %s, want 0", rec.CaloriesSpent, rec.Date.Format("2006-01-02"))
		}
	}
}

/* ─── utcToday tests ─────────────────────────────────────────────────── */

// TestUTCToday_MidnightUTC verifies the window anchor has no time-of-day
// component and is in UTC, so the day boundary can't drift with server zone.
func TestUTCToday_MidnightUTC(t *testing.T) {
	today := utcToday()
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 || today.Nanosecond() != 0 {
		t.Errorf("utcToday() returned non-midnight time: %v", today)
	}
	if today.Location() != time.UTC {
		t.Errorf("utcToday() returned non-UTC location: %v", today.Location())
	}
}
