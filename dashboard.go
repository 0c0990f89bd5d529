package main

import (
	"crypto/subtle"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// demoUserAlias is the one reserved non-numeric user id, kept for the demo
// deep link shared in the bot's onboarding message.
const demoUserAlias = "user_123"

// demoUserID is the fixed numeric id the demo alias maps to.
const demoUserID int64 = 123456789

// parseUserID converts the user id string from the query into the numeric id
// the store is keyed by. Only positive integers (or the demo alias) are valid.
func parseUserID(s string) (int64, error) {
	if s == demoUserAlias {
		return demoUserID, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

// templateData maps a computed view onto the fields dashboard.html binds.
// Remaining values render as whole numbers; progress as integer percents.
func templateData(userID string, view nutritionView) gin.H {
	return gin.H{
		"UserID":            userID,
		"CaloriesRemaining": fmt.Sprintf("%.0f", view.Remaining.Calories),
		"ProteinRemaining":  fmt.Sprintf("%.0f", view.Remaining.ProteinG),
		"CarbsRemaining":    fmt.Sprintf("%.0f", view.Remaining.CarbsG),
		"FatsRemaining":     fmt.Sprintf("%.0f", view.Remaining.FatsG),
		"CaloriesPercent":   int(math.Round(view.Progress.Calories * 100)),
		"ProteinPercent":    int(math.Round(view.Progress.ProteinG * 100)),
		"CarbsPercent":      int(math.Round(view.Progress.CarbsG * 100)),
		"FatsPercent":       int(math.Round(view.Progress.FatsG * 100)),
		"CaloriesTarget":    view.Targets.Calories,
		"ProteinTarget":     view.Targets.ProteinG,
		"CarbsTarget":       view.Targets.CarbsG,
		"FatsTarget":        view.Targets.FatsG,
		"CaloriesConsumed":  view.Consumed.Calories,
		"ProteinConsumed":   view.Consumed.ProteinG,
		"CarbsConsumed":     view.Consumed.CarbsG,
		"FatsConsumed":      view.Consumed.FatsG,
		"MealCount":         view.MealCount,
	}
}

// getDashboard serves the server-templated dashboard for one user.
// GET / and GET /nutrition-dashboard, ?user_id= required.
func (h *Handler) getDashboard(c *gin.Context) {
	raw := c.Query("user_id")
	if raw == "" {
		apiError(c, http.StatusBadRequest, "user_id query param is required")
		return
	}
	userID, err := parseUserID(raw)
	if err != nil {
		apiError(c, http.StatusBadRequest, "user_id must be a positive integer")
		return
	}

	targets := h.fetchTargets(c, userID)
	consumed := h.consumptionForDate(c, userID, utcToday())
	view := computeView(targets, consumed)

	c.HTML(http.StatusOK, "dashboard.html", templateData(raw, view))
}

// getTestDashboard serves the dashboard with fixed demo numbers and no store
// access — used to check the template and web-view wiring in isolation.
// GET /test.
func (h *Handler) getTestDashboard(c *gin.Context) {
	demo := computeView(
		macroTargets{Calories: 2500, ProteinG: 200, CarbsG: 300, FatG: 80},
		macroConsumption{Calories: 301, ProteinG: 39, CarbsG: 49, FatG: 19, MealsLogged: 1},
	)
	c.HTML(http.StatusOK, "dashboard.html", templateData(demoUserAlias, demo))
}

// getNutritionData returns today's computed state as JSON.
// GET /api/nutrition-data?user_id= (defaults to the demo alias).
func (h *Handler) getNutritionData(c *gin.Context) {
	raw := c.DefaultQuery("user_id", demoUserAlias)
	userID, err := parseUserID(raw)
	if err != nil {
		apiError(c, http.StatusBadRequest, "user_id must be a positive integer")
		return
	}

	targets := h.fetchTargets(c, userID)
	consumed := h.consumptionForDate(c, userID, utcToday())

	c.JSON(http.StatusOK, nutritionDataResponse{
		UserID:        raw,
		nutritionView: computeView(targets, consumed),
	})
}

// getHistoricalData returns the gap-filled daily series for the last N days.
// GET /api/historical-data?user_id=&days= (days defaults to 7, capped at 90).
func (h *Handler) getHistoricalData(c *gin.Context) {
	raw := c.DefaultQuery("user_id", demoUserAlias)
	userID, err := parseUserID(raw)
	if err != nil {
		apiError(c, http.StatusBadRequest, "user_id must be a positive integer")
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		apiError(c, http.StatusBadRequest, "days must be a positive integer")
		return
	}
	if days > 90 {
		apiError(c, http.StatusBadRequest, "days must be 90 or fewer")
		return
	}

	targets, series := h.historyForUser(c, userID, days)

	c.JSON(http.StatusOK, historicalDataResponse{
		UserID: raw,
		Days:   days,
		DailyTargets: historyTargets{
			Calories: targets.Calories,
			Protein:  targets.ProteinG,
			Carbs:    targets.CarbsG,
			Fats:     targets.FatG,
		},
		Series: series,
	})
}

// getStreakData returns the engagement counters.
// GET /api/streak-data?user_id= (defaults to the demo alias).
func (h *Handler) getStreakData(c *gin.Context) {
	raw := c.DefaultQuery("user_id", demoUserAlias)
	userID, err := parseUserID(raw)
	if err != nil {
		apiError(c, http.StatusBadRequest, "user_id must be a positive integer")
		return
	}

	c.JSON(http.StatusOK, streakDataResponse{
		UserID:          raw,
		engagementStats: h.fetchEngagement(c, userID),
	})
}

// botAuth guards the bot's write endpoint with a constant-time check of the
// deployment's service token.
func (h *Handler) botAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.botToken == "" {
			logger.Warn("bot update rejected: BOT_SERVICE_TOKEN not configured")
			apiError(c, http.StatusServiceUnavailable, "bot updates are not enabled")
			c.Abort()
			return
		}
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.botToken)) != 1 {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		c.Next()
	}
}

// updateUserData accepts the bot's push after a meal log and persists it, so
// the next dashboard read reflects the new totals.
// POST /api/update-user-data.
func (h *Handler) updateUserData(c *gin.Context) {
	var body botUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body"})
		return
	}

	userID, err := parseUserID(body.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "user_id must be a positive integer"})
		return
	}

	if err := h.applyBotUpdate(c, userID, body); err != nil {
		logger.Error("bot update failed", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to update user data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Updated data for user %s", body.UserID),
	})
}
