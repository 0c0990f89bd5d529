package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	initLogger()
	defer syncLogger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system env vars")
	}

	h := &Handler{
		db:       getDBPool(),
		botToken: os.Getenv("BOT_SERVICE_TOKEN"),
	}
	defer h.db.Close()

	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())
	router.SetTrustedProxies(nil)
	router.LoadHTMLGlob("templates/*.html")

	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server starting", zap.String("port", port))
	return router.Run(":" + port)
}
