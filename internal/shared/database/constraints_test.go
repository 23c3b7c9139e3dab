package database

import (
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func TestMigrateConstraints(t *testing.T) {
	db, mock := newMockDB(t)
	for range indexes {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := MigrateConstraints(db); err != nil {
		t.Fatalf("MigrateConstraints: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMigrateConstraintsStopsOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnError(errors.New("permission denied"))

	err := MigrateConstraints(db)
	if err == nil || !strings.Contains(err.Error(), "idx_services_guide_active") {
		t.Fatalf("err = %v", err)
	}
}

func TestGormConfigTranslatesErrors(t *testing.T) {
	if !GormConfig(false).TranslateError {
		t.Fatal("TranslateError must be on for duplicate draft detection")
	}
}
