package config

import (
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN builds the driver specific connection string. DB_URL wins when set.
func (d DatabaseSettings) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.Port, d.User, d.Password, d.Name)
	default:
		cfg := mysql.NewConfig()
		cfg.User = d.User
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(d.Host, d.Port)
		cfg.DBName = d.Name
		cfg.ParseTime = true
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return cfg.FormatDSN()
	}
}

func (d DatabaseSettings) dialector() gorm.Dialector {
	if d.Driver == DriverPostgres {
		return postgres.Open(d.DSN())
	}
	return gormmysql.Open(d.DSN())
}

// ConnectDB opens the store and pings it, retrying while the server comes up.
func ConnectDB(settings DatabaseSettings, log zerolog.Logger) (*gorm.DB, error) {
	sqlLog := log.With().Str("component", "gorm").Logger()
	gormCfg := &gorm.Config{
		Logger: gormlogger.New(&sqlLog, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		CreateBatchSize: 1000,
	}

	retries := settings.Retries
	if retries < 1 {
		retries = 1
	}

	var err error
	for i := 0; i < retries; i++ {
		var db *gorm.DB
		db, err = gorm.Open(settings.dialector(), gormCfg)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				dbErr = sqlDB.Ping()
			}
			if dbErr == nil {
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetMaxOpenConns(10)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				log.Info().Str("driver", settings.Driver).Str("database", settings.Name).Msg("connected to database")
				return db, nil
			}
			err = dbErr
		}
		log.Warn().Err(err).Int("attempt", i+1).Str("host", settings.Host).Msg("failed to connect to database")
		if i+1 < retries {
			time.Sleep(3 * time.Second)
		}
	}
	return nil, fmt.Errorf("connect to %s database %s after %d attempts: %w", settings.Driver, settings.Name, retries, err)
}
