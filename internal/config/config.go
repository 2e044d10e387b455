package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBDSN           string
	LogFile         string
	WhatsAppBaseURL string
	LocationTag     string
}

func Load() Config {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "feirarinos.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./feirarinos.log"
	}
	wa := os.Getenv("WHATSAPP_BASE_URL")
	if wa == "" {
		wa = "https://wa.me"
	}
	loc := os.Getenv("LOCATION_TAG")
	if loc == "" {
		loc = "ARINOS-MG"
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, WhatsAppBaseURL: wa, LocationTag: loc}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s WHATSAPP_BASE_URL=%s LOCATION_TAG=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.WhatsAppBaseURL, cfg.LocationTag)
	return cfg
}
