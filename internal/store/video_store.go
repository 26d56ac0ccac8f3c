package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/models"
)

// VideoWithCounts carries a video plus the engagement counters the scoring
// engine consumes. Counts are computed here; ranking never is (the scoring
// engine is a pure function over these counters).
type VideoWithCounts struct {
	models.Video
	LikeCount  int `json:"like_count"`
	RemixCount int `json:"remix_count"`
}

type PostgresVideoStore struct {
	db *sql.DB
}

func NewPostgresVideoStore(db *sql.DB) *PostgresVideoStore {
	if db == nil {
		panic("db cannot be nil for PostgresVideoStore")
	}
	return &PostgresVideoStore{db: db}
}

type VideoStore interface {
	CreateVideo(video *models.Video) error
	CreateRemix(child *models.Video, edge *models.RemixEdge) error
	GetVideoByID(videoID uuid.UUID) (*VideoWithCounts, error)
	GetFeedCandidates() ([]VideoWithCounts, error)
	GetAllVideoIDs() ([]uuid.UUID, error)
	IncrementViewCount(videoID uuid.UUID) error
}

func (pg *PostgresVideoStore) CreateVideo(video *models.Video) error {
	query := `
		INSERT INTO videos (id, user_id, title, description, video_url, thumbnail_url, duration_seconds, is_remix, ai_prompt_used, ai_model_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	err := pg.db.QueryRow(query,
		video.ID, video.UserID, video.Title, video.Description, video.VideoURL,
		video.ThumbnailURL, video.DurationSeconds, video.IsRemix,
		video.AIPromptUsed, video.AIModelUsed,
	).Scan(&video.Created_At)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

// CreateRemix inserts the child video and its lineage edge in one
// transaction, so a remix never exists without its parent link.
func (pg *PostgresVideoStore) CreateRemix(child *models.Video, edge *models.RemixEdge) error {
	tx, err := pg.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin remix tx: %w", err)
	}
	defer tx.Rollback()

	videoQuery := `
		INSERT INTO videos (id, user_id, title, description, video_url, thumbnail_url, duration_seconds, is_remix, ai_prompt_used, ai_model_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	err = tx.QueryRow(videoQuery,
		child.ID, child.UserID, child.Title, child.Description, child.VideoURL,
		child.ThumbnailURL, child.DurationSeconds, child.IsRemix,
		child.AIPromptUsed, child.AIModelUsed,
	).Scan(&child.Created_At)
	if err != nil {
		return fmt.Errorf("failed to insert remix video: %w", err)
	}

	edgeQuery := `
		INSERT INTO remix_chain (id, parent_video_id, child_video_id, remix_type, royalty_percentage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err = tx.QueryRow(edgeQuery,
		edge.Id, edge.ParentVideoID, edge.ChildVideoID, edge.RemixType, edge.RoyaltyPercentage,
	).Scan(&edge.Created_At)
	if err != nil {
		return fmt.Errorf("failed to insert remix edge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit remix tx: %w", err)
	}
	return nil
}

func (pg *PostgresVideoStore) GetVideoByID(videoID uuid.UUID) (*VideoWithCounts, error) {
	query := `
		SELECT
			v.id, v.user_id, v.title, v.description, v.video_url, v.thumbnail_url,
			v.duration_seconds, v.view_count, v.is_remix, v.ai_prompt_used, v.ai_model_used, v.created_at,
			COALESCE(l.like_count, 0),
			COALESCE(r.remix_count, 0)
		FROM videos v
		LEFT JOIN (
			SELECT video_id, COUNT(*) AS like_count FROM likes GROUP BY video_id
		) l ON l.video_id = v.id
		LEFT JOIN (
			SELECT parent_video_id, COUNT(*) AS remix_count FROM remix_chain GROUP BY parent_video_id
		) r ON r.parent_video_id = v.id
		WHERE v.id = $1
	`

	var video VideoWithCounts
	err := pg.db.QueryRow(query, videoID).Scan(
		&video.ID, &video.UserID, &video.Title, &video.Description, &video.VideoURL,
		&video.ThumbnailURL, &video.DurationSeconds, &video.ViewCount, &video.IsRemix,
		&video.AIPromptUsed, &video.AIModelUsed, &video.Created_At,
		&video.LikeCount, &video.RemixCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &video, nil
}

// GetFeedCandidates returns every video with its current counters. The
// score itself is computed in the ranking engine, never in SQL.
func (pg *PostgresVideoStore) GetFeedCandidates() ([]VideoWithCounts, error) {
	query := `
		SELECT
			v.id, v.user_id, v.title, v.description, v.video_url, v.thumbnail_url,
			v.duration_seconds, v.view_count, v.is_remix, v.ai_prompt_used, v.ai_model_used, v.created_at,
			COALESCE(l.like_count, 0),
			COALESCE(r.remix_count, 0)
		FROM videos v
		LEFT JOIN (
			SELECT video_id, COUNT(*) AS like_count FROM likes GROUP BY video_id
		) l ON l.video_id = v.id
		LEFT JOIN (
			SELECT parent_video_id, COUNT(*) AS remix_count FROM remix_chain GROUP BY parent_video_id
		) r ON r.parent_video_id = v.id
	`

	rows, err := pg.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed candidates: %w", err)
	}
	defer rows.Close()

	var videos []VideoWithCounts
	for rows.Next() {
		var video VideoWithCounts
		err := rows.Scan(
			&video.ID, &video.UserID, &video.Title, &video.Description, &video.VideoURL,
			&video.ThumbnailURL, &video.DurationSeconds, &video.ViewCount, &video.IsRemix,
			&video.AIPromptUsed, &video.AIModelUsed, &video.Created_At,
			&video.LikeCount, &video.RemixCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed candidate: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed candidates: %w", err)
	}

	return videos, nil
}

func (pg *PostgresVideoStore) GetAllVideoIDs() ([]uuid.UUID, error) {
	rows, err := pg.db.Query(`SELECT id FROM videos`)
	if err != nil {
		return nil, fmt.Errorf("failed to get video ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan video id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate video ids: %w", err)
	}

	return ids, nil
}

func (pg *PostgresVideoStore) IncrementViewCount(videoID uuid.UUID) error {
	res, err := pg.db.Exec(`UPDATE videos SET view_count = view_count + 1 WHERE id = $1`, videoID)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check view count update: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
