package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port                string        `envconfig:"STOREFRONT_PORT"        default:":8080"`
	MarketplaceAPIURL   string        `envconfig:"MARKETPLACE_API_URL"    default:"http://localhost:3000"`
	APITimeout          time.Duration `envconfig:"API_TIMEOUT"            default:"10s"`
	LogLevel            string        `envconfig:"LOG_LEVEL"              default:"info"`
	RedirectDelay       time.Duration `envconfig:"REDIRECT_DELAY"         default:"3s"`
	ListingRedirectPath string        `envconfig:"LISTING_REDIRECT_PATH"  default:"/all-items"`
	SessionTTL          time.Duration `envconfig:"SESSION_TTL"            default:"30m"`
	SessionSweep        time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
	KafkaBrokers        []string      `envconfig:"KAFKA_BROKERS"`
	KafkaTopic          string        `envconfig:"KAFKA_TOPIC"            default:"storefront-activity"`
	GrpcHealthPort      string        `envconfig:"GRPC_HEALTH_PORT"`
	ShutdownTimeout     time.Duration `envconfig:"SHUTDOWN_TIMEOUT"       default:"10s"`
}

var (
	config    Config
	configErr error
	once      sync.Once
)

// LoadConfig reads .env when present and then the environment. It runs once
// per process; later calls return the first result.
func LoadConfig(logger *logrus.Logger) (*Config, error) {
	once.Do(func() {
		if loadErr := godotenv.Load(); loadErr != nil {
			if os.IsNotExist(loadErr) {
				logger.Warn("Warning: .env file not found, using environment variables or defaults.")
			} else {
				logger.Warnf("Error loading .env file (but continuing): %v", loadErr)
			}
		} else {
			logger.Info("Loaded configuration from .env file")
		}

		config, configErr = Process()
		if configErr != nil {
			return
		}
		logger.Infof("Configuration loaded: Port=%s, MarketplaceAPI=%s, LogLevel=%s", config.Port, config.MarketplaceAPIURL, config.LogLevel)
	})
	if configErr != nil {
		return nil, configErr
	}
	return &config, nil
}

// Process reads the configuration from the environment only.
func Process() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if cfg.MarketplaceAPIURL == "" {
		return Config{}, fmt.Errorf("configuration error: MARKETPLACE_API_URL is not set")
	}
	if cfg.APITimeout <= 0 {
		return Config{}, fmt.Errorf("configuration error: API_TIMEOUT must be positive, got %s", cfg.APITimeout)
	}
	if cfg.RedirectDelay < 0 {
		return Config{}, fmt.Errorf("configuration error: REDIRECT_DELAY must not be negative, got %s", cfg.RedirectDelay)
	}
	if cfg.SessionSweep <= 0 {
		return Config{}, fmt.Errorf("configuration error: SESSION_SWEEP_INTERVAL must be positive, got %s", cfg.SessionSweep)
	}
	return cfg, nil
}
