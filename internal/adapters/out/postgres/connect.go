package postgres

import (
	"fmt"
	"time"

	"grameego/internal/adapters/out/postgres/deliveryrepo"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// DriverPgx opens the database through pgx, gorm's default.
	DriverPgx = "pgx"
	// DriverLibPQ opens the database through lib/pq.
	DriverLibPQ = "postgres"
)

// ConnConfig describes how to reach the database.
type ConnConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the keyword/value connection string understood by both drivers.
func (c ConnConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects gorm with the configured driver.
func Open(c ConnConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(c.Driver, c.DSN())
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates or updates the delivery tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&deliveryrepo.DeliveryRequestDTO{}, &deliveryrepo.DeliveryItemDTO{})
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", DriverPgx:
		return gormpostgres.Open(dsn), nil
	case DriverLibPQ:
		return gormpostgres.New(gormpostgres.Config{DriverName: "postgres", DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
