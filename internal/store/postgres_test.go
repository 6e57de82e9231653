package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/dkazarin/mpdbmigrate/internal/models"
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return &PostgresStore{db: db}, mock, db
}

func TestWipe(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^TRUNCATE\s+TABLE\s+users\s+CASCADE$`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Wipe(context.Background()); err != nil {
		t.Fatalf("Wipe error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestWipe_DBError(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^TRUNCATE\s+TABLE\s+users\s+CASCADE$`).
		WillReturnError(errors.New("db down"))

	err := s.Wipe(context.Background())
	if err == nil || !regexp.MustCompile(`wiping profile store: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped wipe error, got %v", err)
	}
}

func TestEnsureUser(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(uuid,\s*username\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(uuid\)\s*DO\s+UPDATE\s+SET\s+username\s*=\s*EXCLUDED\.username\s*$`

	user := models.User{ID: uuid.New(), Name: "alice"}
	mock.ExpectExec(q).
		WithArgs(user.ID.String(), "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.EnsureUser(context.Background(), user); err != nil {
		t.Fatalf("EnsureUser error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestWriteProfile(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+user_data\s*\(user_uuid,\s*profile,\s*format_version,\s*save_cause\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`

	user := models.User{ID: uuid.New(), Name: "alice"}
	profile := models.DefaultProfile()

	mock.ExpectExec(q).
		WithArgs(user.ID.String(), sqlmock.AnyArg(), models.FormatVersion, string(models.SaveCauseMigration)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := s.WriteProfile(context.Background(), user, &profile, models.SaveCauseMigration); err != nil {
		t.Fatalf("WriteProfile error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestWriteProfile_DBError(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	user := models.User{ID: uuid.New(), Name: "alice"}
	profile := models.DefaultProfile()

	mock.ExpectExec(`INSERT\s+INTO\s+user_data`).
		WillReturnError(errors.New("constraint violation"))

	err := s.WriteProfile(context.Background(), user, &profile, models.SaveCauseMigration)
	if err == nil || !regexp.MustCompile(`db error: .*constraint violation`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestRunMigrations_UsesSeam(t *testing.T) {
	s, _, db := newStoreWithMock(t)
	defer db.Close()

	called := false
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		return nil
	}
	defer func() { gooseUpContext = orig }()

	if err := s.runMigrations(context.Background()); err != nil {
		t.Fatalf("runMigrations error: %v", err)
	}
	if !called {
		t.Fatal("expected goose.UpContext to be invoked")
	}
}
