package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort          string `envconfig:"HTTP_PORT"           default:":8080"`
	DatabasePath      string `envconfig:"DATABASE_PATH"       default:"data/orderapp.db"`
	LogLevel          string `envconfig:"LOG_LEVEL"           default:"info"`
	SeedDefaultData   bool   `envconfig:"SEED_DEFAULT_DATA"   default:"true"`
	LowStockThreshold int    `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, DatabasePath=%s, LogLevel=%s", config.HTTPPort, config.DatabasePath, config.LogLevel)
	})
	return &config
}

func GetConfig() *Config {
	if config.HTTPPort == "" {
		log.Fatal("Configuration not loaded. Call LoadConfig first.")
	}
	return &config
}
