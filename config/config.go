package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort  string
	DatabaseURL string
	UploadDir   string
	LogLevel    string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:  getEnv("PORT", getEnv("SERVER_PORT", "5000")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// ConfigureLogging applies the configured level to the process-wide logger.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
