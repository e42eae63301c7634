package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/remixgames/backend/internal/models"
)

var ErrGameNotFound = errors.New("игра не найдена")

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert сохраняет игру из BGG в локальный кэш.
// При повторной загрузке метаданные освежаются.
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (bgg_id, name, year_published, thumbnail_url, min_players, max_players, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (bgg_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			year_published = EXCLUDED.year_published,
			thumbnail_url = EXCLUDED.thumbnail_url,
			min_players = EXCLUDED.min_players,
			max_players = EXCLUDED.max_players,
			fetched_at = NOW()
		RETURNING id, fetched_at
	`
	return r.db.QueryRowxContext(ctx, query,
		game.BGGID, game.Name, game.YearPublished, game.ThumbnailURL, game.MinPlayers, game.MaxPlayers,
	).Scan(&game.ID, &game.FetchedAt)
}

// GetByID возвращает игру по локальному ID.
func (r *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	err := r.db.GetContext(ctx, &game, `SELECT * FROM games WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// GetByBGGID возвращает игру по её BGG id.
func (r *GameRepository) GetByBGGID(ctx context.Context, bggID int64) (*models.Game, error) {
	var game models.Game
	err := r.db.GetContext(ctx, &game, `SELECT * FROM games WHERE bgg_id = $1`, bggID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// SearchByName ищет по локальному кэшу.
func (r *GameRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Game, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var games []models.Game
	err := r.db.SelectContext(ctx, &games, `
		SELECT * FROM games WHERE name ILIKE $1 ORDER BY name LIMIT $2
	`, "%"+query+"%", limit)
	return games, err
}
