package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/schemamark/schemamark/internal/config"
	"github.com/schemamark/schemamark/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env overrides for the secrets that don't belong in the config file.
	if key := os.Getenv("LOOKUP_API_KEY"); key != "" {
		cfg.Finder.APIKey = key
	}
	if provider := os.Getenv("LOOKUP_PROVIDER"); provider != "" {
		cfg.Finder.Provider = provider
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	r := srv.SetupRouter()

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
