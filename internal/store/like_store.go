package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type PostgresLikeStore struct {
	db *sql.DB
}

func NewPostgresLikeStore(db *sql.DB) *PostgresLikeStore {
	return &PostgresLikeStore{db: db}
}

type LikeStore interface {
	ToggleLike(userID uuid.UUID, videoID uuid.UUID) (liked bool, count int, err error)
	CountLikes(videoID uuid.UUID) (int, error)
}

// ToggleLike flips the like state for a (user, video) pair and returns the
// new state plus the updated like count. Existence is binary, never
// counted twice.
func (pg *PostgresLikeStore) ToggleLike(userID uuid.UUID, videoID uuid.UUID) (bool, int, error) {
	tx, err := pg.db.Begin()
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin like tx: %w", err)
	}
	defer tx.Rollback()

	// Insert-first: two concurrent toggles for the same pair would both
	// pass a check-then-insert, and the loser would hit the primary key.
	// With ON CONFLICT the loser sees a no-op insert and flips the other
	// way instead of failing.
	res, err := tx.Exec(
		`INSERT INTO likes (user_id, video_id) VALUES ($1, $2) ON CONFLICT (user_id, video_id) DO NOTHING`,
		userID, videoID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("failed to insert like: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check like insert: %w", err)
	}

	liked := inserted == 1
	if !liked {
		_, err = tx.Exec(`DELETE FROM likes WHERE user_id = $1 AND video_id = $2`, userID, videoID)
		if err != nil {
			return false, 0, fmt.Errorf("failed to delete like: %w", err)
		}
	}

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM likes WHERE video_id = $1`, videoID).Scan(&count)
	if err != nil {
		return false, 0, fmt.Errorf("failed to count likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit like tx: %w", err)
	}

	return liked, count, nil
}

func (pg *PostgresLikeStore) CountLikes(videoID uuid.UUID) (int, error) {
	var count int
	err := pg.db.QueryRow(`SELECT COUNT(*) FROM likes WHERE video_id = $1`, videoID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
