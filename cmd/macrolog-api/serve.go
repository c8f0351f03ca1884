package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/macrolog/backend/internal/config"
	"github.com/macrolog/backend/internal/handlers"
	"github.com/macrolog/backend/internal/logger"
	"github.com/macrolog/backend/internal/middleware"
	"github.com/macrolog/backend/internal/repository"
	"github.com/macrolog/backend/internal/service"
	"github.com/macrolog/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	logger.SetDefault(log)

	log.Info("starting macrolog API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	// Supabase client
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Repositories
	logRepo := repository.NewDailyLogRepository(supabaseClient)
	prefRepo := repository.NewPreferenceRepository(supabaseClient)

	// Services
	insightsService := service.NewInsightsService(logRepo, prefRepo)
	logService := service.NewDailyLogService(logRepo)
	prefService := service.NewPreferenceService(prefRepo)

	// Handlers
	insightsHandler := handlers.NewInsightsHandler(insightsService)
	logsHandler := handlers.NewLogsHandler(logService)
	prefsHandler := handlers.NewPreferencesHandler(prefService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(supabaseClient))
	{
		v1.GET("/insights", insightsHandler.GetInsights)

		v1.GET("/logs", logsHandler.GetLogs)
		v1.PUT("/logs/:date", logsHandler.UpsertLog)

		v1.GET("/preferences", prefsHandler.GetPreferences)
		v1.PUT("/preferences", prefsHandler.UpdatePreferences)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
