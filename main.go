package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"

	"listingdash/internal/config"
	"listingdash/internal/container"
	"listingdash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := appContainer.Logger

	server, err := ui.NewServer(appContainer.Dashboard, appContainer.Exporter, logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// A missing dataset is not fatal; every page shows the instructional message instead
	if _, err := appContainer.Loader.Load(context.Background()); err != nil {
		logger.Warn("dataset not loaded yet: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			logger.Info("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				logger.Error("pprof server failed: %v", err)
			}
		}()
	}

	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
