// config/settings.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Settings is everything the loader reads from the environment.
type Settings struct {
	Database DatabaseSettings
	Log      LogSettings
	Seed     SeedSettings
	Report   ReportSettings
	HTTP     HTTPSettings
}

type DatabaseSettings struct {
	Driver   string // mysql or postgres
	URL      string // full DSN, wins over the discrete fields
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Retries  int
}

type LogSettings struct {
	Level  string
	Format string // console or json
}

// SeedSettings is the whole configuration surface of the generation pipeline.
type SeedSettings struct {
	ActorID                int64
	Customers              int
	Addresses              int
	MaxEmailsPerCustomer   int
	MaxContactsPerCustomer int
	ProductsPerCategory    int
	Orders                 int
	MaxItemsPerOrder       int
	MaxDiscountFraction    decimal.Decimal
	MaxUniqueAttempts      int
	BatchSize              int
	RandomSeed             int64
	CSVBasePath            string
}

type ReportSettings struct {
	Schedule     string
	RedisAddr    string
	CacheTTL     time.Duration
	KafkaBrokers []string
	KafkaTopic   string
}

type HTTPSettings struct {
	Port           string
	JWTSecret      string
	JWTExpiryHours int
	AllowedOrigins []string
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DefaultSeedSettings returns the row counts of a full load.
func DefaultSeedSettings() SeedSettings {
	return SeedSettings{
		ActorID:                1,
		Customers:              10000,
		Addresses:              10000,
		MaxEmailsPerCustomer:   3,
		MaxContactsPerCustomer: 3,
		ProductsPerCategory:    50,
		Orders:                 5000,
		MaxItemsPerOrder:       20,
		MaxDiscountFraction:    decimal.RequireFromString("0.30"),
		MaxUniqueAttempts:      10000,
		BatchSize:              1000,
	}
}

// Validate rejects counts and ratios the generators cannot work with.
func (s SeedSettings) Validate() error {
	var errs []error
	positive := map[string]int{
		"customers":                 s.Customers,
		"addresses":                 s.Addresses,
		"max emails per customer":   s.MaxEmailsPerCustomer,
		"max contacts per customer": s.MaxContactsPerCustomer,
		"products per category":     s.ProductsPerCategory,
		"orders":                    s.Orders,
		"max items per order":       s.MaxItemsPerOrder,
		"max unique attempts":       s.MaxUniqueAttempts,
		"batch size":                s.BatchSize,
	}
	for name, v := range positive {
		if v < 1 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	if s.MaxDiscountFraction.IsNegative() || s.MaxDiscountFraction.GreaterThan(decimal.NewFromInt(1)) {
		errs = append(errs, fmt.Errorf("max discount fraction must be within [0, 1], got %s", s.MaxDiscountFraction))
	}
	return errors.Join(errs...)
}

// LoadSettings reads .env (if present) and the process environment.
// The returned bool reports whether a .env file was found.
func LoadSettings() (Settings, bool, error) {
	foundEnv := godotenv.Load() == nil

	seed := DefaultSeedSettings()
	var errs []error
	intVar := func(key string, dst *int) {
		if err := getenvInt(key, dst); err != nil {
			errs = append(errs, err)
		}
	}

	intVar("SEED_CUSTOMERS", &seed.Customers)
	intVar("SEED_ADDRESSES", &seed.Addresses)
	intVar("SEED_MAX_EMAILS", &seed.MaxEmailsPerCustomer)
	intVar("SEED_MAX_CONTACTS", &seed.MaxContactsPerCustomer)
	intVar("SEED_PRODUCTS_PER_CATEGORY", &seed.ProductsPerCategory)
	intVar("SEED_ORDERS", &seed.Orders)
	intVar("SEED_MAX_ITEMS", &seed.MaxItemsPerOrder)
	intVar("SEED_MAX_ATTEMPTS", &seed.MaxUniqueAttempts)
	intVar("SEED_BATCH_SIZE", &seed.BatchSize)
	if err := getenvInt64("ACTOR_ID", &seed.ActorID); err != nil {
		errs = append(errs, err)
	}
	if err := getenvInt64("SEED_RANDOM_SEED", &seed.RandomSeed); err != nil {
		errs = append(errs, err)
	}
	if v := os.Getenv("SEED_MAX_DISCOUNT"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SEED_MAX_DISCOUNT: %w", err))
		} else {
			seed.MaxDiscountFraction = d
		}
	}
	seed.CSVBasePath = os.Getenv("CSV_BASE_PATH")

	db := DatabaseSettings{
		Driver:   strings.ToLower(getenvDefault("DB_DRIVER", DriverMySQL)),
		URL:      os.Getenv("DB_URL"),
		Host:     getenvDefault("DB_HOST", "localhost"),
		Port:     getenvDefault("DB_PORT", "3306"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Retries:  10,
	}
	intVar("DB_CONNECT_RETRIES", &db.Retries)
	if db.Driver != DriverMySQL && db.Driver != DriverPostgres {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMySQL, DriverPostgres, db.Driver))
	}

	report := ReportSettings{
		Schedule:   os.Getenv("REPORT_SCHEDULE"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		CacheTTL:   10 * time.Minute,
		KafkaTopic: getenvDefault("KAFKA_TOPIC", "boacompra-seed-runs"),
	}
	if v := os.Getenv("REPORT_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("REPORT_CACHE_TTL: %w", err))
		} else {
			report.CacheTTL = ttl
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		report.KafkaBrokers = strings.Split(v, ",")
	}

	httpSettings := HTTPSettings{
		Port:           getenvDefault("PORT", "8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiryHours: 24,
	}
	intVar("JWT_EXPIRY_HOURS", &httpSettings.JWTExpiryHours)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		httpSettings.AllowedOrigins = strings.Split(v, ",")
	}

	settings := Settings{
		Database: db,
		Log: LogSettings{
			Level:  getenvDefault("LOG_LEVEL", "info"),
			Format: getenvDefault("LOG_FORMAT", "console"),
		},
		Seed:   seed,
		Report: report,
		HTTP:   httpSettings,
	}
	if err := errors.Join(errs...); err != nil {
		return settings, foundEnv, err
	}
	return settings, foundEnv, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func getenvInt64(key string, dst *int64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
