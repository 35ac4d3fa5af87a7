package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries every runtime setting, sourced from the environment.
type Config struct {
	DatabaseURL string
	Port        int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	// DeductStockOnOrder enables ingredient stock deduction inside the order
	// placement transaction. Off by default.
	DeductStockOnOrder bool
}

// Load reads the configuration from the environment. DATABASE_URL is the only
// required value; everything else has a development default.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           8080,
		RedisAddr:      "localhost:6379",
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		MinioEndpoint:  "localhost:9000",
		MinioAccessKey: "minioadmin",
		MinioSecretKey: "minioadmin",
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}

	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		cfg.MinioEndpoint = endpoint
	}
	if accessKey := os.Getenv("MINIO_ACCESS_KEY"); accessKey != "" {
		cfg.MinioAccessKey = accessKey
	}
	if secretKey := os.Getenv("MINIO_SECRET_KEY"); secretKey != "" {
		cfg.MinioSecretKey = secretKey
	}
	cfg.MinioUseSSL = os.Getenv("MINIO_USE_SSL") == "true"

	cfg.DeductStockOnOrder = os.Getenv("DEDUCT_STOCK_ON_ORDER") == "true"

	return cfg, nil
}
