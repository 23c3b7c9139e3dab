package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.GetAPIBasePath() != "/api/v1" {
		t.Fatalf("base path = %q", cfg.GetAPIBasePath())
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("redis addr = %q", cfg.Redis.Addr)
	}
	if cfg.Calendar.HijriLabel != "Rajab 1447" || cfg.Calendar.HijriLength != 30 {
		t.Fatalf("hijri anchor = %+v", cfg.Calendar)
	}
	if cfg.Calendar.GregorianMonth != time.January {
		t.Fatalf("gregorian month = %v", cfg.Calendar.GregorianMonth)
	}
	if cfg.Kafka.Enabled {
		t.Fatalf("kafka must be opt-in")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "omra_test")
	t.Setenv("JWT_EXPIRES_IN", "60")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("CALENDAR_HIJRI_FIRST_DAY", "2026-01-20")
	t.Setenv("REDIS_SUBMISSION_GUARD_TTL", "2h")
	t.Setenv("RATE_LIMIT_ENABLED", "not-a-bool")

	cfg := Load()

	if cfg.GetServerAddress() != ":9090" {
		t.Fatalf("address = %q", cfg.GetServerAddress())
	}
	if cfg.JWT.JWTExpiresIn != time.Minute {
		t.Fatalf("jwt ttl = %v", cfg.JWT.JWTExpiresIn)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("brokers = %v", cfg.Kafka.Brokers)
	}
	if !cfg.Calendar.HijriFirstDay.Equal(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("hijri first day = %v", cfg.Calendar.HijriFirstDay)
	}
	if cfg.Redis.SubmissionGuardTTL != 2*time.Hour {
		t.Fatalf("guard ttl = %v", cfg.Redis.SubmissionGuardTTL)
	}
	if !cfg.RateLimit.Enabled {
		t.Fatalf("unparsable bool should fall back to default")
	}
	want := "host=localhost port=5432 user=guideomra_user password=guideomra_password dbname=omra_test sslmode=disable"
	if cfg.Database.DSN != want {
		t.Fatalf("dsn = %q", cfg.Database.DSN)
	}
}
