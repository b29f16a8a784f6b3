package config

import (
	"log"
	"os"
)

type Config struct {
	Port      string
	DataFile  string
	UploadDir string
	JWTSecret string
	LogFile   string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "./data/data.json" // snapshot file in project root
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Dev fallback only; main refuses to start in production without a real secret.
		secret = "dev-secret-change-me"
		log.Printf("[config] JWT_SECRET not set, using insecure dev default")
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./twostreet.log"
	}

	cfg := Config{Port: port, DataFile: dataFile, UploadDir: uploadDir, JWTSecret: secret, LogFile: logFile}
	log.Printf("[config] PORT=%s DATA_FILE=%s UPLOAD_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DataFile, cfg.UploadDir, cfg.LogFile)
	return cfg
}
