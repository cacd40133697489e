package main

import (
	// standard library
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// third-party
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	// internal
	"github.com/rmitchellscott/ditherlab/internal/config"
	"github.com/rmitchellscott/ditherlab/internal/dither"
	"github.com/rmitchellscott/ditherlab/internal/handlers"
	"github.com/rmitchellscott/ditherlab/internal/logging"
	"github.com/rmitchellscott/ditherlab/internal/middleware"
	"github.com/rmitchellscott/ditherlab/internal/version"
)

const defaultMaxUploadBytes = 32 << 20 // 32 MiB

func main() {
	_ = godotenv.Load()
	logging.Initialize()

	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version.String())
		os.Exit(0)
	}

	logging.InfoWithComponent(logging.ComponentStartup, "Starting ditherlab", "version", version.String())

	// Merge user palettes before any request can observe the registry.
	if path := config.Get("PALETTES_FILE", ""); path != "" {
		n, err := dither.LoadPresetsFile(path)
		if err != nil {
			logging.ErrorWithComponent(logging.ComponentStartup, "Failed to load palettes file",
				"path", path, "error", err)
			os.Exit(1)
		}
		logging.InfoWithComponent(logging.ComponentPalettes, "Loaded user palettes",
			"path", path, "count", n)
	}

	if mode := config.Get("GIN_MODE", ""); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	maxUpload := config.GetInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	rateLimiter := middleware.NewDitherRateLimiter(
		config.GetFloat("RATE_LIMIT_RPS", 5),
		config.GetInt("RATE_LIMIT_BURST", 10),
	)

	ditherService := handlers.NewDitherService(maxUpload)

	// Main dithering endpoint plus a versioned alias for external callers.
	processing := []gin.HandlerFunc{
		middleware.RequestSizeLimit(maxUpload),
		rateLimiter.RateLimit(),
	}
	router.POST("/dither", append(processing, ditherService.DitherHandler)...)
	router.POST("/api/dither", append(processing, ditherService.DitherHandler)...)
	router.POST("/api/dither/batch", append(processing, ditherService.BatchDitherHandler)...)

	router.GET("/api/palettes", handlers.PalettesHandler)
	router.GET("/api/algorithms", handlers.AlgorithmsHandler)
	router.GET("/api/health", handlers.HealthHandler)
	router.GET("/api/version", handlers.VersionHandler)

	port := config.Get("PORT", "8000")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logging.InfoWithComponent(logging.ComponentStartup, "Listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithComponent(logging.ComponentStartup, "Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.InfoWithComponent(logging.ComponentShutdown, "Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.ErrorWithComponent(logging.ComponentShutdown, "Forced shutdown", "error", err)
	}
}
