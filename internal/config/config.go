package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `validate:"required"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	LogFormat       string        `validate:"oneof=json text"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// NWS alerts API configuration.
	NWSBaseURL     string        `validate:"required,url"`
	RequestTimeout time.Duration `validate:"gte=0"` // 0 disables the caller-side deadline

	// Outcome publishing configuration.
	KafkaBrokers []string `validate:"required_if=KafkaEnabled true,dive,hostname_port"`
	KafkaTopic   string   `validate:"required_if=KafkaEnabled true"`
	KafkaEnabled bool
}

// envNames maps Config fields to the variables that set them, for error messages.
var envNames = map[string]string{
	"HTTPAddr":        "HTTP_ADDR",
	"LogLevel":        "LOG_LEVEL",
	"LogFormat":       "LOG_FORMAT",
	"ShutdownTimeout": "SHUTDOWN_TIMEOUT",
	"NWSBaseURL":      "NWS_BASE_URL",
	"RequestTimeout":  "REQUEST_TIMEOUT",
	"KafkaBrokers":    "KAFKA_BROKERS",
	"KafkaTopic":      "KAFKA_TOPIC",
}

var validate = validator.New()

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory seeds variables that are not
// already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	requestTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	brokers := sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		brokers = nil // required_if counts an empty non-nil slice as set
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "json")),
		ShutdownTimeout: shutdownTimeout,

		NWSBaseURL:     strings.TrimRight(sharedcfg.EnvOrDefault("NWS_BASE_URL", "https://api.weather.gov"), "/"),
		RequestTimeout: requestTimeout,

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "weather-alert-lookups"),
		KafkaEnabled: kafkaEnabled,
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return cfg, nil
}

// describe turns validator output into an error naming the first offending variable.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate config: %w", err)
	}
	fe := verrs[0]
	field, _, _ := strings.Cut(fe.StructField(), "[") // dive errors carry an index suffix
	name := envNames[field]
	if name == "" {
		name = field
	}
	if fe.Tag() == "required_if" {
		return fmt.Errorf("KAFKA_ENABLED is true but %s is not set", name)
	}
	return fmt.Errorf("invalid %s: failed %q check", name, fe.Tag())
}
