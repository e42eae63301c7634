package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/remixgames/backend/internal/models"
)

var ErrMediaNotFound = errors.New("файл не найден")

type MediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create сохраняет запись о загруженном файле.
func (r *MediaRepository) Create(ctx context.Context, media *models.Media) error {
	query := `
		INSERT INTO media (owner_id, remix_id, file_path, file_size, mime_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, query,
		media.OwnerID, media.RemixID, media.FilePath, media.FileSize, media.MimeType,
	).Scan(&media.ID, &media.CreatedAt)
}

// GetByID возвращает запись о файле.
func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var media models.Media
	err := r.db.GetContext(ctx, &media, `SELECT * FROM media WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

// ListByRemixID возвращает изображения ремикса.
func (r *MediaRepository) ListByRemixID(ctx context.Context, remixID uuid.UUID) ([]models.Media, error) {
	var items []models.Media
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM media WHERE remix_id = $1 ORDER BY created_at
	`, remixID)
	return items, err
}

// AttachToRemix привязывает ранее загруженный файл к ремиксу.
func (r *MediaRepository) AttachToRemix(ctx context.Context, mediaID, remixID, ownerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE media SET remix_id = $2 WHERE id = $1 AND owner_id = $3
	`, mediaID, remixID, ownerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrMediaNotFound
	}
	return nil
}

// Delete удаляет запись о файле.
func (r *MediaRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrMediaNotFound
	}
	return nil
}
