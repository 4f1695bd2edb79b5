package leave

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepoUpdateStatus(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE leave_requests SET status = $2 WHERE id = $1`)).
		WithArgs(int64(1), string(StatusAccepted)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), 1, StatusAccepted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRepoUpdateStatusUnknownID(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE leave_requests SET status = $2 WHERE id = $1`)).
		WithArgs(int64(42), string(StatusRejected)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(context.Background(), 42, StatusRejected); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRepoInsert(t *testing.T) {
	repo, mock := newMockDB(t)
	created := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO leave_requests`).
		WithArgs(int64(7), "dentist").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), created))

	req, err := repo.Insert(context.Background(), 7, "dentist")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if req.ID != 11 || req.Status != StatusPending {
		t.Fatalf("unexpected request %+v", req)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
