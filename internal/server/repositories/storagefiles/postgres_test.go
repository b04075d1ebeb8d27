package storagefiles

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestSelectPaths_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"file_path"}).AddRow("a.png").AddRow("b.png")
	mock.ExpectQuery(`SELECT file_path FROM storage WHERE storage=\$1 ORDER BY file_path`).
		WithArgs("phpbb_pwakit").
		WillReturnRows(rows)

	got, err := repo.SelectPaths(context.Background(), "phpbb_pwakit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "a.png" || got[1] != "b.png" {
		t.Fatalf("bad rows: %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSelectPaths_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT file_path FROM storage`).
		WithArgs("ns").
		WillReturnRows(sqlmock.NewRows([]string{"file_path"}))

	got, err := repo.SelectPaths(context.Background(), "ns")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestSelectPaths_QueryErr(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT file_path FROM storage`).
		WithArgs("ns").
		WillReturnError(errors.New("db err"))

	_, err := repo.SelectPaths(context.Background(), "ns")
	if err == nil || !regexp.MustCompile(`failed to select files: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped select error, got %v", err)
	}
}

func TestSelectPaths_RowsErr(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"file_path"}).
		AddRow("a.png").
		RowError(0, errors.New("row err"))
	mock.ExpectQuery(`SELECT file_path FROM storage`).WithArgs("ns").WillReturnRows(rows)

	if _, err := repo.SelectPaths(context.Background(), "ns"); err == nil {
		t.Fatal("expected rows error")
	}
}

func TestUpsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+storage\b.*ON\s+CONFLICT\s*\(file_path, storage\)\s*DO\s+UPDATE\s+SET\s+filesize\s*=\s*EXCLUDED\.filesize$`
	mock.ExpectExec(q).
		WithArgs("a.png", "ns", int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), &models.StorageFile{Path: "a.png", Storage: "ns", Size: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO storage`).
		WithArgs("a.png", "ns", int64(1)).
		WillReturnError(errors.New("db down"))

	err := repo.Upsert(context.Background(), &models.StorageFile{Path: "a.png", Storage: "ns", Size: 1})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM storage WHERE file_path=\$1 AND storage=\$2`).
		WithArgs("a.png", "ns").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM storage WHERE file_path=\$1 AND storage=\$2`).
		WithArgs("b.png", "ns").
		WillReturnError(errors.New("locked"))

	if err := repo.Delete(context.Background(), "ns", "a.png"); err != nil {
		t.Fatalf("deleting an untracked path must not fail: %v", err)
	}
	err := repo.Delete(context.Background(), "ns", "b.png")
	if err == nil || !regexp.MustCompile(`failed to delete file: .*locked`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped delete error, got %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM storage WHERE storage=\$1`).
		WithArgs("ns").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteAll(context.Background(), "ns"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
