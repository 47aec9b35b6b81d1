package main

import (
	"log"

	"listingdash/internal/config"
	"listingdash/internal/container"
	"listingdash/ui"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize container:", err)
	}

	app, err := ui.NewApp(ui.Config{Port: appConfig.Server.Port}, appContainer.Dashboard, appContainer.Exporter, appContainer.Logger)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting dashboard UI on http://localhost:%s", appConfig.Server.Port)
	log.Fatal(app.Start())
}
