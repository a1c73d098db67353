package cmd

import (
	"errors"
	"fmt"
	"strings"

	"grameego/internal/adapters/out/postgres"
	"grameego/internal/core/domain/services"

	"github.com/kelseyhightower/envconfig"
)

// DriverMemory keeps every record in process memory.
const DriverMemory = "memory"

// devJWTSecret is only accepted together with the memory driver.
const devJWTSecret = "grameego-dev-secret"

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"pgx"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"grameego"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret          string   `envconfig:"JWT_SECRET"`
	RateLimit          float64  `envconfig:"RATE_LIMIT" default:"10"`
	RateBurst          int      `envconfig:"RATE_BURST" default:"20"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	KafkaBrokers             string `envconfig:"KAFKA_BROKERS"`
	KafkaDeliveryEventsTopic string `envconfig:"KAFKA_DELIVERY_EVENTS_TOPIC" default:"delivery-events"`
	BacklogReportSchedule    string `envconfig:"BACKLOG_REPORT_SCHEDULE" default:"0 */5 * * * *"`

	PriceBaseFare float64 `envconfig:"PRICE_BASE_FARE" default:"2"`
	PricePerKm    float64 `envconfig:"PRICE_PER_KM" default:"0.6"`
	PriceMinimum  float64 `envconfig:"PRICE_MINIMUM" default:"3"`
	PriceDefault  float64 `envconfig:"PRICE_DEFAULT" default:"4"`
}

// LoadConfig reads the environment. Call godotenv first to pick up a .env
// file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error

	switch c.DBDriver {
	case DriverMemory, postgres.DriverPgx, postgres.DriverLibPQ:
	default:
		errList = append(errList, fmt.Errorf("DB_DRIVER: unsupported value %q", c.DBDriver))
	}

	if strings.TrimSpace(c.JWTSecret) == "" && c.DBDriver != DriverMemory {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}
	if c.RateLimit <= 0 {
		errList = append(errList, errors.New("RATE_LIMIT must be positive"))
	}
	if c.RateBurst <= 0 {
		errList = append(errList, errors.New("RATE_BURST must be positive"))
	}

	return errors.Join(errList...)
}

// Tariff is the pricing rule configured by the PRICE_* variables.
func (c Config) Tariff() services.Tariff {
	return services.Tariff{
		BaseFare: c.PriceBaseFare,
		PerKm:    c.PricePerKm,
		Minimum:  c.PriceMinimum,
		Default:  c.PriceDefault,
	}
}

// Conn is the database connection part of the configuration.
func (c Config) Conn() postgres.ConnConfig {
	return postgres.ConnConfig{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}
