package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestToggleFollowInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}
	defer db.Close()

	followerID, followedID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO follows .+ ON CONFLICT .+ DO NOTHING`).
		WithArgs(followerID, followedID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM follows`).
		WithArgs(followedID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	following, count, err := NewPostgresFollowStore(db).ToggleFollow(followerID, followedID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !following || count != 2 {
		t.Fatalf("expected following=true count=2, got %v %d", following, count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestToggleFollowRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}
	defer db.Close()

	followerID, followedID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO follows .+ ON CONFLICT .+ DO NOTHING`).
		WithArgs(followerID, followedID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM follows`).
		WithArgs(followerID, followedID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM follows`).
		WithArgs(followedID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	following, count, err := NewPostgresFollowStore(db).ToggleFollow(followerID, followedID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if following || count != 1 {
		t.Fatalf("expected following=false count=1, got %v %d", following, count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
