package main

import (
	"math"
	"testing"
)

// floatPtr is a small helper for building userProfileRow literals in tests.
func floatPtr(v float64) *float64 { return &v }

/* ─── remainingAmount tests ──────────────────────────────────────────── */

// TestRemainingAmount_NeverNegative verifies the floor-at-zero invariant:
// remaining is max(0, target − consumed) even when consumption exceeds the
// target, and over-target is never represented as a negative value.
func TestRemainingAmount_NeverNegative(t *testing.T) {
	cases := []struct {
		name             string
		target, consumed float64
		want             float64
	}{
		{"under target", 2000, 450, 1550},
		{"exactly on target", 2000, 2000, 0},
		{"over target", 2000, 2350, 0},
		{"nothing consumed", 150, 0, 150},
		{"zero target", 0, 120, 0},
		{"fractional remainder", 65, 19.5, 45.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := remainingAmount(tc.target, tc.consumed)
			if got != tc.want {
				t.Errorf("remainingAmount(%v, %v) = %v, want %v", tc.target, tc.consumed, got, tc.want)
			}
			if got < 0 {
				t.Errorf("remainingAmount(%v, %v) = %v, must never be negative", tc.target, tc.consumed, got)
			}
		})
	}
}

/* ─── progressRatio tests ────────────────────────────────────────────── */

// TestProgressRatio_Clamped verifies 0 ≤ progress ≤ 1 for all inputs,
// including over-consumption (clamped to 1) and a zero target, which must
// resolve to 0 rather than dividing.
func TestProgressRatio_Clamped(t *testing.T) {
	cases := []struct {
		name             string
		target, consumed float64
		want             float64
	}{
		{"partial progress", 200, 50, 0.25},
		{"complete", 200, 200, 1},
		{"over target clamps to 1", 200, 450, 1},
		{"nothing consumed", 200, 0, 0},
		{"zero target resolves to 0", 0, 300, 0},
		{"negative target resolves to 0", -10, 300, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := progressRatio(tc.target, tc.consumed)
			if got != tc.want {
				t.Errorf("progressRatio(%v, %v) = %v, want %v", tc.target, tc.consumed, got, tc.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("progressRatio(%v, %v) = %v, must be within [0, 1]", tc.target, tc.consumed, got)
			}
		})
	}
}

/* ─── computeView tests ──────────────────────────────────────────────── */

// TestComputeView_KnownScenario checks the full worked example: targets
// {2500, 200, 300, 80} with consumption {301, 39, 49, 19} must yield
// remaining {2199, 161, 251, 61} and progress ≈ {0.1204, 0.195, 0.1633, 0.2375}.
func TestComputeView_KnownScenario(t *testing.T) {
	view := computeView(
		macroTargets{Calories: 2500, ProteinG: 200, CarbsG: 300, FatG: 80},
		macroConsumption{Calories: 301, ProteinG: 39, CarbsG: 49, FatG: 19, MealsLogged: 1},
	)

	wantRemaining := macroAmounts{Calories: 2199, ProteinG: 161, CarbsG: 251, FatsG: 61}
	if view.Remaining != wantRemaining {
		t.Errorf("Remaining = %+v, want %+v", view.Remaining, wantRemaining)
	}

	wantProgress := map[string][2]float64{
		"calories": {view.Progress.Calories, 0.1204},
		"protein":  {view.Progress.ProteinG, 0.195},
		"carbs":    {view.Progress.CarbsG, 0.1633},
		"fats":     {view.Progress.FatsG, 0.2375},
	}
	for macro, pair := range wantProgress {
		if math.Abs(pair[0]-pair[1]) >= 0.0001 {
			t.Errorf("Progress.%s = %v, want ~%v (tolerance 0.0001)", macro, pair[0], pair[1])
		}
	}

	if view.MealCount != 1 {
		t.Errorf("MealCount = %d, want 1", view.MealCount)
	}
}

// TestComputeView_ZeroCalorieTarget verifies a misconfigured zero target
// yields progress 0 for that macro with no divide-by-zero fault, while the
// other macros compute normally.
func TestComputeView_ZeroCalorieTarget(t *testing.T) {
	view := computeView(
		macroTargets{Calories: 0, ProteinG: 150, CarbsG: 250, FatG: 65},
		macroConsumption{Calories: 500, ProteinG: 75, CarbsG: 125, FatG: 65},
	)

	if view.Progress.Calories != 0 {
		t.Errorf("Progress.Calories = %v, want 0 for zero target", view.Progress.Calories)
	}
	if view.Remaining.Calories != 0 {
		t.Errorf("Remaining.Calories = %v, want 0 for zero target", view.Remaining.Calories)
	}
	if view.Progress.ProteinG != 0.5 {
		t.Errorf("Progress.ProteinG = %v, want 0.5", view.Progress.ProteinG)
	}
	if view.Progress.FatsG != 1 {
		t.Errorf("Progress.FatsG = %v, want 1", view.Progress.FatsG)
	}
}

/* ─── normalizeTargets tests ─────────────────────────────────────────── */

// TestNormalizeTargets verifies per-field defaulting: null and non-positive
// stored targets fall back to the defaults {2000, 150, 250, 65} while valid
// fields pass through unchanged.
func TestNormalizeTargets(t *testing.T) {
	cases := []struct {
		name string
		row  userProfileRow
		want macroTargets
	}{
		{
			"all null",
			userProfileRow{},
			defaultTargets,
		},
		{
			"all set",
			userProfileRow{
				CalorieTarget:  floatPtr(2500),
				ProteinTargetG: floatPtr(200),
				CarbsTargetG:   floatPtr(300),
				FatTargetG:     floatPtr(80),
			},
			macroTargets{Calories: 2500, ProteinG: 200, CarbsG: 300, FatG: 80},
		},
		{
			"zero calorie target defaults",
			userProfileRow{
				CalorieTarget:  floatPtr(0),
				ProteinTargetG: floatPtr(200),
			},
			macroTargets{Calories: 2000, ProteinG: 200, CarbsG: 250, FatG: 65},
		},
		{
			"negative fat target defaults",
			userProfileRow{FatTargetG: floatPtr(-5)},
			defaultTargets,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeTargets(tc.row)
			if got != tc.want {
				t.Errorf("normalizeTargets() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
