package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/remixgames/backend/internal/models"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add добавляет ремикс в избранное, повторное добавление не ошибка.
func (r *FavoriteRepository) Add(ctx context.Context, userID, remixID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, remix_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, remix_id) DO NOTHING
	`, userID, remixID)
	return err
}

// Remove убирает ремикс из избранного.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, remixID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND remix_id = $2`, userID, remixID)
	return err
}

// Exists проверяет, в избранном ли ремикс.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, remixID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND remix_id = $2)
	`, userID, remixID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return exists, nil
}

// ListRemixesByUser возвращает избранные ремиксы пользователя.
func (r *FavoriteRepository) ListRemixesByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Remix, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var remixes []models.Remix
	err := r.db.SelectContext(ctx, &remixes, `
		SELECT r.* FROM remixes r
		JOIN favorites f ON f.remix_id = r.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	return remixes, err
}
