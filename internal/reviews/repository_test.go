package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return gdb, mock
}

func TestListForGuide(t *testing.T) {
	gdb, mock := newMockDB(t)

	guideID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "guide_id", "reviewer_id", "reviewer_name", "rating", "comment", "created_at"}).
		AddRow(uuid.New().String(), guideID.String(), uuid.New().String(), "Fatima", 5, "Très bon guide", now).
		AddRow(uuid.New().String(), guideID.String(), uuid.New().String(), "Omar", 4, "Ponctuel", now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE guide_id = .+ ORDER BY created_at DESC`).WillReturnRows(rows)

	got, err := NewRepository(gdb).ListForGuide(context.Background(), guideID, 0)
	if err != nil {
		t.Fatalf("ListForGuide: %v", err)
	}
	if len(got) != 2 || got[0].ReviewerName != "Fatima" || got[1].Rating != 4 {
		t.Fatalf("reviews = %+v", got)
	}
	if got[0].GuideID != guideID {
		t.Fatalf("guide id = %s, want %s", got[0].GuideID, guideID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate(t *testing.T) {
	gdb, mock := newMockDB(t)
	review := &Review{ID: uuid.New(), GuideID: uuid.New(), ReviewerID: uuid.New(), ReviewerName: "Anonyme", Rating: 4, Comment: "Ponctuel"}

	mock.ExpectExec(`INSERT INTO "reviews" \("id","guide_id","reviewer_id","reviewer_name","rating","comment","created_at"\)`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := NewRepository(gdb).Create(context.Background(), review); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if review.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateError(t *testing.T) {
	gdb, mock := newMockDB(t)
	dbErr := errors.New("check constraint violated")
	mock.ExpectExec(`INSERT INTO "reviews"`).WillReturnError(dbErr)

	err := NewRepository(gdb).Create(context.Background(), &Review{ID: uuid.New(), Rating: 9})
	if !errors.Is(err, dbErr) {
		t.Fatalf("err = %v, want %v", err, dbErr)
	}
}
