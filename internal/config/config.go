package config

import (
	"log"
	"os"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	BaseURL  string
	LogFile  string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "tokokita.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./media"
	}
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:" + port
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./tokokita.log"
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, BaseURL: base, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s BASE_URL=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.BaseURL, cfg.LogFile)
	return cfg
}
