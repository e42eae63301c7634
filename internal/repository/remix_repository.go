package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/remixgames/backend/internal/models"
)

var ErrRemixNotFound = errors.New("ремикс не найден")

type RemixRepository struct {
	db *sqlx.DB
}

func NewRemixRepository(db *sqlx.DB) *RemixRepository {
	return &RemixRepository{db: db}
}

// Поддерживаемые сортировки ленты.
const (
	SortNew = "new"
	SortTop = "top"
	SortHot = "hot"
)

// RemixFilter описывает параметры выборки ленты ремиксов.
type RemixFilter struct {
	Status   string
	AuthorID *uuid.UUID
	GameID   *uuid.UUID
	Search   string
	Sort     string // SortNew | SortTop | SortHot
	Limit    int
	Offset   int
}

// Create создаёт ремикс вместе со связями на игры в одной транзакции.
func (r *RemixRepository) Create(ctx context.Context, remix *models.Remix, gameIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO remixes (author_id, title, description, rules, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, score, created_at, updated_at
	`
	err = tx.QueryRowxContext(ctx, query,
		remix.AuthorID, remix.Title, remix.Description, remix.Rules, remix.Status,
	).Scan(&remix.ID, &remix.Score, &remix.CreatedAt, &remix.UpdatedAt)
	if err != nil {
		return err
	}

	for _, gameID := range gameIDs {
		_, err = tx.ExecContext(ctx, `INSERT INTO remix_games (remix_id, game_id) VALUES ($1, $2)`, remix.ID, gameID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID возвращает ремикс с играми.
func (r *RemixRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Remix, error) {
	var remix models.Remix
	err := r.db.GetContext(ctx, &remix, `SELECT * FROM remixes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRemixNotFound
		}
		return nil, err
	}

	if err := r.attachGames(ctx, &remix); err != nil {
		return nil, err
	}
	return &remix, nil
}

// List возвращает ремиксы по фильтру.
func (r *RemixRepository) List(ctx context.Context, filter RemixFilter) ([]models.Remix, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argn := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argn))
		args = append(args, filter.Status)
		argn++
	}
	if filter.AuthorID != nil {
		conditions = append(conditions, fmt.Sprintf("r.author_id = $%d", argn))
		args = append(args, *filter.AuthorID)
		argn++
	}
	if filter.GameID != nil {
		conditions = append(conditions, fmt.Sprintf("r.id IN (SELECT remix_id FROM remix_games WHERE game_id = $%d)", argn))
		args = append(args, *filter.GameID)
		argn++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(r.title ILIKE $%d OR r.description ILIKE $%d)", argn, argn))
		args = append(args, "%"+filter.Search+"%")
		argn++
	}

	orderBy := "r.created_at DESC"
	switch filter.Sort {
	case SortTop:
		orderBy = "r.score DESC, r.created_at DESC"
	case SortHot:
		// Рейтинг с затуханием: каждые 12 часов возраста стоят один балл.
		orderBy = "(r.score - EXTRACT(EPOCH FROM (NOW() - r.created_at)) / 43200) DESC, r.created_at DESC"
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT r.* FROM remixes r
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), orderBy, argn, argn+1)
	args = append(args, limit, filter.Offset)

	var remixes []models.Remix
	if err := r.db.SelectContext(ctx, &remixes, query, args...); err != nil {
		return nil, err
	}

	for i := range remixes {
		if err := r.attachGames(ctx, &remixes[i]); err != nil {
			return nil, err
		}
	}
	return remixes, nil
}

// UpdateContent обновляет текстовые поля ремикса и сбрасывает связи игр.
func (r *RemixRepository) UpdateContent(ctx context.Context, remix *models.Remix, gameIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE remixes SET title = $2, description = $3, rules = $4, status = $5, updated_at = NOW()
		WHERE id = $1
	`, remix.ID, remix.Title, remix.Description, remix.Rules, remix.Status)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRemixNotFound
	}

	if gameIDs != nil {
		if _, err = tx.ExecContext(ctx, `DELETE FROM remix_games WHERE remix_id = $1`, remix.ID); err != nil {
			return err
		}
		for _, gameID := range gameIDs {
			if _, err = tx.ExecContext(ctx, `INSERT INTO remix_games (remix_id, game_id) VALUES ($1, $2)`, remix.ID, gameID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// UpdateStatus меняет статус публикации ремикса.
func (r *RemixRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE remixes SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRemixNotFound
	}
	return nil
}

// RecalculateScore пересчитывает рейтинг ремикса по голосам.
func (r *RemixRepository) RecalculateScore(ctx context.Context, remixID uuid.UUID) (int, error) {
	var score int
	err := r.db.QueryRowxContext(ctx, `
		UPDATE remixes
		SET score = COALESCE((SELECT SUM(value) FROM votes WHERE remix_id = $1), 0), updated_at = NOW()
		WHERE id = $1
		RETURNING score
	`, remixID).Scan(&score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrRemixNotFound
		}
		return 0, err
	}
	return score, nil
}

// Delete удаляет ремикс.
func (r *RemixRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM remixes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRemixNotFound
	}
	return nil
}

func (r *RemixRepository) attachGames(ctx context.Context, remix *models.Remix) error {
	return r.db.SelectContext(ctx, &remix.Games, `
		SELECT g.* FROM games g
		JOIN remix_games rg ON rg.game_id = g.id
		WHERE rg.remix_id = $1
		ORDER BY g.name
	`, remix.ID)
}
