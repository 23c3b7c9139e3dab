package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"guideomra/internal/shared/config"
	"guideomra/pkg/cache"
	applog "guideomra/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds database connections. Redis is nil when the cache is unreachable.
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client
}

// InitDB connects PostgreSQL, runs migrations and tries Redis
func InitDB(ctx context.Context, cfg *config.Config) (*DB, error) {
	pg, err := initPostgreSQL(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := MigrateConstraints(pg); err != nil {
		return nil, fmt.Errorf("failed to add constraints: %w", err)
	}

	db := &DB{PostgreSQL: pg}

	rdb, err := cache.NewClient(ctx, cache.Config{
		Address:      cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	if err != nil {
		applog.GetDefault().LogDegraded(ctx, "redis", err)
		return db, nil
	}
	db.Redis = rdb
	applog.GetDefault().Info("Redis connected", slog.String("addr", cfg.Redis.Addr))

	return db, nil
}

// GormConfig is shared by the server and the seeder. TranslateError turns
// unique violations into gorm.ErrDuplicatedKey.
func GormConfig(debug bool) *gorm.Config {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	return &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt:                              true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

func initPostgreSQL(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), GormConfig(cfg.IsDevelopment()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	applog.GetDefault().Info("PostgreSQL connected", slog.String("host", cfg.Database.Host))
	return db, nil
}

// Close closes all database connections
func (db *DB) Close() error {
	var errs []error

	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close PostgreSQL: %w", err))
			}
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing databases: %v", errs)
	}
	return nil
}

// HealthCheck reports per-dependency status. Only PostgreSQL failing is fatal
// for the returned error; Redis is reported as "unavailable".
func (db *DB) HealthCheck(ctx context.Context) (map[string]string, error) {
	status := map[string]string{"postgres": "ok", "redis": "disabled"}

	sqlDB, err := db.PostgreSQL.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["postgres"] = "unavailable"
		return status, fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	if db.Redis != nil {
		status["redis"] = "ok"
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "unavailable"
		}
	}

	return status, nil
}
