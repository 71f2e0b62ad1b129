package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeedSettingsAreValid(t *testing.T) {
	s := DefaultSeedSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, 10000, s.Customers)
	assert.Equal(t, 5000, s.Orders)
	assert.True(t, s.MaxDiscountFraction.Equal(decimal.RequireFromString("0.3")))
}

func TestSeedSettingsValidate(t *testing.T) {
	s := DefaultSeedSettings()
	s.Customers = 0
	s.BatchSize = -1
	s.MaxDiscountFraction = decimal.RequireFromString("1.01")

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customers must be positive")
	assert.Contains(t, err.Error(), "batch size must be positive")
	assert.Contains(t, err.Error(), "max discount fraction")
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("SEED_CUSTOMERS", "25")
	t.Setenv("SEED_MAX_DISCOUNT", "0.15")
	t.Setenv("SEED_RANDOM_SEED", "7")
	t.Setenv("REPORT_CACHE_TTL", "30s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	s, _, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, s.Database.Driver)
	assert.Equal(t, 25, s.Seed.Customers)
	assert.Equal(t, int64(7), s.Seed.RandomSeed)
	assert.True(t, s.Seed.MaxDiscountFraction.Equal(decimal.RequireFromString("0.15")))
	assert.Equal(t, 30*time.Second, s.Report.CacheTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, s.Report.KafkaBrokers)
	assert.Equal(t, []string{"http://localhost:3000"}, s.HTTP.AllowedOrigins)
	assert.Equal(t, "8080", s.HTTP.Port)
}

func TestLoadSettings_Errors(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SEED_ORDERS", "many")

	_, _, err := LoadSettings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "SEED_ORDERS")
}

func TestDSN(t *testing.T) {
	mysqlDSN := DatabaseSettings{Driver: DriverMySQL, Host: "localhost", Port: "3306", User: "boa", Password: "pw", Name: "boacompra"}.DSN()
	assert.True(t, strings.HasPrefix(mysqlDSN, "boa:pw@tcp(localhost:3306)/boacompra?"), mysqlDSN)
	assert.Contains(t, mysqlDSN, "parseTime=true")
	assert.Contains(t, mysqlDSN, "charset=utf8mb4")

	pg := DatabaseSettings{Driver: DriverPostgres, Host: "db", Port: "5432", User: "boa", Password: "pw", Name: "boacompra"}.DSN()
	assert.Equal(t, "host=db port=5432 user=boa password=pw dbname=boacompra sslmode=disable", pg)

	url := DatabaseSettings{Driver: DriverMySQL, URL: "custom-dsn", Host: "ignored"}.DSN()
	assert.Equal(t, "custom-dsn", url)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, LogSettings{Level: "warn", Format: "json"})
	log.Info().Msg("hidden")
	log.Warn().Str("table", "tb_cliente").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"table":"tb_cliente"`)

	buf.Reset()
	log = newLogger(&buf, LogSettings{Level: "nonsense", Format: "json"})
	log.Info().Msg("default level is info")
	assert.Contains(t, buf.String(), "default level is info")
}
