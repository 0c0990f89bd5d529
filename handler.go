package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Handler holds shared dependencies (db pool, config) for all route handlers.
type Handler struct {
	db       *pgxpool.Pool
	botToken string // service token for the bot's update endpoint
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Returns pgx.ErrNoRows when the result set is empty.
func queryOne[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn)
// because hosted Postgres closes idle connections after a few minutes.
func getDBPool() *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(os.Getenv("DB_URL"))
	if err != nil {
		logger.Fatal("unable to parse DB URL", zap.Error(err))
	}
	// Use simple query protocol to avoid "cached plan must not change result
	// type" errors from the pooler's prepared statement cache after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		logger.Fatal("unable to connect to database", zap.Error(err))
	}
	logger.Info("db pool ready")
	return pool
}

// requestLogger tags each request with a generated id and logs its outcome.
// The id is echoed in X-Request-ID so dashboard reports can be correlated.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// registerRoutes registers all routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Dashboard pages
	router.GET("/", h.getDashboard)
	router.GET("/nutrition-dashboard", h.getDashboard)
	router.GET("/test", h.getTestDashboard)
	router.GET("/health", h.getHealth)

	// JSON APIs consumed by the dashboard's scripts
	router.GET("/api/nutrition-data", h.getNutritionData)
	router.GET("/api/historical-data", h.getHistoricalData)
	router.GET("/api/streak-data", h.getStreakData)

	// Bot-facing write endpoint
	router.POST("/api/update-user-data", h.botAuth(), h.updateUserData)

	// Static assets referenced by the template
	router.Static("/images", "./images")
}

// getHealth is the deploy platform's liveness probe.
// GET /health.
func (h *Handler) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "nutrition-mini-app",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
