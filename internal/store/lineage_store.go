package store

import (
	"database/sql"
	"fmt"

	"github.com/neo-social/neo_server/internal/models"
)

type PostgresLineageStore struct {
	db *sql.DB
}

func NewPostgresLineageStore(db *sql.DB) *PostgresLineageStore {
	return &PostgresLineageStore{db: db}
}

type LineageStore interface {
	InsertEdge(edge *models.RemixEdge) error
	GetAllEdges() ([]models.RemixEdge, error)
}

// InsertEdge persists a single lineage edge. The child_video_id column
// carries a UNIQUE constraint as a storage-level backstop for the
// single-parent invariant the in-memory graph enforces.
func (pg *PostgresLineageStore) InsertEdge(edge *models.RemixEdge) error {
	query := `
		INSERT INTO remix_chain (id, parent_video_id, child_video_id, remix_type, royalty_percentage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := pg.db.QueryRow(query,
		edge.Id, edge.ParentVideoID, edge.ChildVideoID, edge.RemixType, edge.RoyaltyPercentage,
	).Scan(&edge.Created_At)
	if err != nil {
		return fmt.Errorf("failed to insert lineage edge: %w", err)
	}
	return nil
}

// GetAllEdges returns the persisted edge set in creation order, used to
// rebuild the in-memory lineage graph at startup.
func (pg *PostgresLineageStore) GetAllEdges() ([]models.RemixEdge, error) {
	query := `
		SELECT id, parent_video_id, child_video_id, remix_type, royalty_percentage, created_at
		FROM remix_chain
		ORDER BY created_at ASC
	`

	rows, err := pg.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get lineage edges: %w", err)
	}
	defer rows.Close()

	var edges []models.RemixEdge
	for rows.Next() {
		var edge models.RemixEdge
		err := rows.Scan(
			&edge.Id, &edge.ParentVideoID, &edge.ChildVideoID,
			&edge.RemixType, &edge.RoyaltyPercentage, &edge.Created_At,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lineage edge: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lineage edges: %w", err)
	}

	return edges, nil
}
