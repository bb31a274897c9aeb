package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverBolt   = "bolt"
	DriverMongo  = "mongo"
)

type Config struct {
	Port        string `toml:"port"`
	AppEnv      string `toml:"app_env"`
	FrontendURL string `toml:"frontend_url"`

	LogLevel    string `toml:"log_level"`
	LogEncoding string `toml:"log_encoding"`

	StorageDriver string `toml:"storage_driver"`
	DataFile      string `toml:"data_file"`
	BoltPath      string `toml:"bolt_path"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDB       string `toml:"mongo_db"`

	MaxImageMB       int `toml:"max_image_mb"`
	SubmitRatePerMin int `toml:"submit_rate_per_min"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Port:             "8080",
		AppEnv:           "development",
		FrontendURL:      "http://localhost:3000",
		LogLevel:         "info",
		LogEncoding:      "json",
		StorageDriver:    DriverFile,
		DataFile:         "data/todos.json",
		BoltPath:         "data/todos.db",
		MongoURI:         "mongodb://localhost:27017",
		MongoDB:          "imagetodo",
		MaxImageMB:       10,
		SubmitRatePerMin: 30,
	}
}

// Load reads .env, then the optional TOML file named by CONFIG_FILE, then the
// environment. Later sources win.
func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			log.Printf("Ignoring config file: %v", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.FrontendURL = getEnv("FRONTEND_URL", cfg.FrontendURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogEncoding = getEnv("LOG_ENCODING", cfg.LogEncoding)
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", cfg.StorageDriver)
	cfg.DataFile = getEnv("DATA_FILE", cfg.DataFile)
	cfg.BoltPath = getEnv("BOLT_PATH", cfg.BoltPath)
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.MongoDB = getEnv("MONGO_DB", cfg.MongoDB)
	cfg.MaxImageMB = getEnvInt("MAX_IMAGE_MB", cfg.MaxImageMB)
	cfg.SubmitRatePerMin = getEnvInt("SUBMIT_RATE_PER_MIN", cfg.SubmitRatePerMin)

	return cfg
}

// LoadFile decodes a TOML file over cfg.
func LoadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverFile, DriverBolt, DriverMongo:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.MaxImageMB <= 0 {
		return fmt.Errorf("max image size must be positive, got %d MB", c.MaxImageMB)
	}
	if c.SubmitRatePerMin < 0 {
		return fmt.Errorf("submit rate must not be negative, got %d", c.SubmitRatePerMin)
	}
	return nil
}

// MaxImageBytes returns the image upload limit in bytes.
func (c *Config) MaxImageBytes() int64 {
	return int64(c.MaxImageMB) * 1024 * 1024
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
