package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBDSN           string
	MediaDir        string
	LogFile         string
	AssistantAPIURL string
	AssistantAPIKey string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "cocobloom.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./cocobloom.log"
	}

	cfg := Config{
		Port:            port,
		DBDSN:           dsn,
		MediaDir:        media,
		LogFile:         logFile,
		AssistantAPIURL: os.Getenv("ASSISTANT_API_URL"),
		AssistantAPIKey: os.Getenv("ASSISTANT_API_KEY"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}
