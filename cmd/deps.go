package cmd

import (
	"context"

	"boacompra-loader/config"
	"boacompra-loader/services"
	"boacompra-loader/store"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func openStore() (*gorm.DB, *store.GormStore, error) {
	db, err := config.ConnectDB(settings.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	return db, store.NewGormStore(db, settings.Seed.BatchSize), nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// newReportService wires the Redis cache when REDIS_ADDR is set. The returned
// func releases the client.
func newReportService(st store.Store) (*services.ReportService, func()) {
	if settings.Report.RedisAddr == "" {
		return services.NewReportService(st, logger), func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: settings.Report.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", settings.Report.RedisAddr).Msg("Redis unreachable, report cache disabled")
		rdb.Close()
		return services.NewReportService(st, logger), func() {}
	}
	cache := services.NewRedisReportCache(rdb, settings.Report.CacheTTL)
	return services.NewReportService(st, logger, services.WithReportCache(cache)), func() { rdb.Close() }
}

// newNotifier publishes run summaries to Kafka when KAFKA_BROKERS is set.
func newNotifier() (services.RunNotifier, func()) {
	if len(settings.Report.KafkaBrokers) == 0 {
		return nil, func() {}
	}
	k := services.NewKafkaNotifier(settings.Report.KafkaBrokers, settings.Report.KafkaTopic)
	return k, func() {
		if err := k.Close(); err != nil {
			logger.Warn().Err(err).Msg("Error closing kafka writer")
		}
	}
}

func newSeeder(st store.Store, seed config.SeedSettings) (*services.Seeder, func(), error) {
	var opts []services.Option
	notifier, closeNotifier := newNotifier()
	if notifier != nil {
		opts = append(opts, services.WithNotifier(notifier))
	}
	seeder, err := services.NewSeeder(st, seed, logger, opts...)
	if err != nil {
		closeNotifier()
		return nil, nil, err
	}
	return seeder, closeNotifier, nil
}
