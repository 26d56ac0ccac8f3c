package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Dashboard summarizes a creator's standing on the platform.
type Dashboard struct {
	Videos        int `json:"videos"`
	RemixesOfMine int `json:"remixes_of_mine"`
	LikesReceived int `json:"likes_received"`
	Followers     int `json:"followers"`
}

type PostgresDashboardStore struct {
	db *sql.DB
}

func NewPostgresDashboardStore(db *sql.DB) *PostgresDashboardStore {
	return &PostgresDashboardStore{db: db}
}

type DashboardStore interface {
	GetDashboardMetricsByUserID(userID uuid.UUID) (*Dashboard, error)
}

func (pg *PostgresDashboardStore) GetDashboardMetricsByUserID(userID uuid.UUID) (*Dashboard, error) {

	var dashboard Dashboard

	query := `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE user_id = $1) as videos,
			(SELECT COUNT(*) FROM remix_chain rc JOIN videos v ON rc.parent_video_id = v.id WHERE v.user_id = $1) as remixes_of_mine,
			(SELECT COUNT(*) FROM likes l JOIN videos v ON l.video_id = v.id WHERE v.user_id = $1) as likes_received,
			(SELECT COUNT(*) FROM follows WHERE followed_id = $1) as followers;
	`

	err := pg.db.QueryRow(query, userID).Scan(
		&dashboard.Videos, &dashboard.RemixesOfMine, &dashboard.LikesReceived, &dashboard.Followers,
	)
	if err != nil {
		return nil, fmt.Errorf("error getting dashboard metrics: %w", err)
	}

	return &dashboard, nil
}
