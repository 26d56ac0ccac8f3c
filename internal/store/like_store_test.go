package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestToggleLikeInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}
	defer db.Close()

	userID, videoID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	// The insert must be conflict-safe so concurrent toggles for the
	// same pair never surface a key violation.
	mock.ExpectExec(`INSERT INTO likes .+ ON CONFLICT .+ DO NOTHING`).
		WithArgs(userID, videoID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM likes`).
		WithArgs(videoID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectCommit()

	liked, count, err := NewPostgresLikeStore(db).ToggleLike(userID, videoID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !liked || count != 5 {
		t.Fatalf("expected liked=true count=5, got %v %d", liked, count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestToggleLikeRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}
	defer db.Close()

	userID, videoID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	// A no-op insert means the like already exists: flip it off.
	mock.ExpectExec(`INSERT INTO likes .+ ON CONFLICT .+ DO NOTHING`).
		WithArgs(userID, videoID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM likes`).
		WithArgs(userID, videoID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM likes`).
		WithArgs(videoID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectCommit()

	liked, count, err := NewPostgresLikeStore(db).ToggleLike(userID, videoID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if liked || count != 4 {
		t.Fatalf("expected liked=false count=4, got %v %d", liked, count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
