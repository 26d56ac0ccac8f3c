package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type PostgresFollowStore struct {
	db *sql.DB
}

func NewPostgresFollowStore(db *sql.DB) *PostgresFollowStore {
	return &PostgresFollowStore{db: db}
}

type FollowStore interface {
	ToggleFollow(followerID uuid.UUID, followedID uuid.UUID) (following bool, followerCount int, err error)
	GetFollowedIDs(followerID uuid.UUID) ([]uuid.UUID, error)
}

func (pg *PostgresFollowStore) ToggleFollow(followerID uuid.UUID, followedID uuid.UUID) (bool, int, error) {
	tx, err := pg.db.Begin()
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin follow tx: %w", err)
	}
	defer tx.Rollback()

	// Insert-first, same as ToggleLike: the loser of a concurrent toggle
	// race sees a no-op insert and flips the other way instead of hitting
	// the primary key.
	res, err := tx.Exec(
		`INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2) ON CONFLICT (follower_id, followed_id) DO NOTHING`,
		followerID, followedID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("failed to insert follow: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check follow insert: %w", err)
	}

	following := inserted == 1
	if !following {
		_, err = tx.Exec(`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`, followerID, followedID)
		if err != nil {
			return false, 0, fmt.Errorf("failed to delete follow: %w", err)
		}
	}

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM follows WHERE followed_id = $1`, followedID).Scan(&count)
	if err != nil {
		return false, 0, fmt.Errorf("failed to count followers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit follow tx: %w", err)
	}

	return following, count, nil
}

// GetFollowedIDs returns the viewer's follow-set, supplied to the feed
// assembler for following mode.
func (pg *PostgresFollowStore) GetFollowedIDs(followerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := pg.db.Query(`SELECT followed_id FROM follows WHERE follower_id = $1`, followerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followed ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan followed id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate followed ids: %w", err)
	}

	return ids, nil
}
