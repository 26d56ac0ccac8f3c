package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/models"
)

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByID(userID uuid.UUID) (*models.User, error)
}

func (pg *PostgresUserStore) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, avatar_url, bio)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := pg.db.QueryRow(query,
		user.ID, user.Username, user.Email, user.AvatarURL, user.Bio,
	).Scan(&user.Created_At, &user.Updated_At)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (pg *PostgresUserStore) GetUserByID(userID uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, username, email, avatar_url, bio, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := pg.db.QueryRow(query, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.AvatarURL, &user.Bio,
		&user.Created_At, &user.Updated_At,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
