package main

// remainingAmount returns the budget left for one macro, floored at 0.
// Going over target is not represented as a negative remainder.
func remainingAmount(target, consumed float64) float64 {
	if r := target - consumed; r > 0 {
		return r
	}
	return 0
}

// progressRatio returns consumed/target clamped to [0, 1]. A non-positive
// target (misconfigured profile) resolves to 0 rather than dividing.
func progressRatio(target, consumed float64) float64 {
	if target <= 0 {
		return 0
	}
	p := consumed / target
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// normalizeTargets converts a profile row into usable targets, substituting
// the default per field when the stored value is null or non-positive.
func normalizeTargets(row userProfileRow) macroTargets {
	t := defaultTargets
	if row.CalorieTarget != nil && *row.CalorieTarget > 0 {
		t.Calories = *row.CalorieTarget
	}
	if row.ProteinTargetG != nil && *row.ProteinTargetG > 0 {
		t.ProteinG = *row.ProteinTargetG
	}
	if row.CarbsTargetG != nil && *row.CarbsTargetG > 0 {
		t.CarbsG = *row.CarbsTargetG
	}
	if row.FatTargetG != nil && *row.FatTargetG > 0 {
		t.FatG = *row.FatTargetG
	}
	return t
}

// computeView derives the full dashboard state from targets and one day's
// consumption. Pure function of its inputs; no error conditions.
func computeView(t macroTargets, c macroConsumption) nutritionView {
	return nutritionView{
		Targets: macroAmounts{
			Calories: t.Calories,
			ProteinG: t.ProteinG,
			CarbsG:   t.CarbsG,
			FatsG:    t.FatG,
		},
		Consumed: macroAmounts{
			Calories: c.Calories,
			ProteinG: c.ProteinG,
			CarbsG:   c.CarbsG,
			FatsG:    c.FatG,
		},
		Remaining: macroAmounts{
			Calories: remainingAmount(t.Calories, c.Calories),
			ProteinG: remainingAmount(t.ProteinG, c.ProteinG),
			CarbsG:   remainingAmount(t.CarbsG, c.CarbsG),
			FatsG:    remainingAmount(t.FatG, c.FatG),
		},
		Progress: macroAmounts{
			Calories: progressRatio(t.Calories, c.Calories),
			ProteinG: progressRatio(t.ProteinG, c.ProteinG),
			CarbsG:   progressRatio(t.CarbsG, c.CarbsG),
			FatsG:    progressRatio(t.FatG, c.FatG),
		},
		MealCount: c.MealsLogged,
	}
}
