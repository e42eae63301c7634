package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/remixgames/backend/internal/models"
)

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Upsert ставит или меняет голос пользователя за ремикс.
// Пара (user_id, remix_id) уникальна, повторный голос перезаписывает значение.
func (r *VoteRepository) Upsert(ctx context.Context, vote *models.Vote) error {
	query := `
		INSERT INTO votes (user_id, remix_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, remix_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		vote.UserID, vote.RemixID, vote.Value,
	).Scan(&vote.ID, &vote.CreatedAt, &vote.UpdatedAt)
}

// Get возвращает голос пользователя за ремикс, nil если голоса нет.
func (r *VoteRepository) Get(ctx context.Context, userID, remixID uuid.UUID) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.GetContext(ctx, &vote, `SELECT * FROM votes WHERE user_id = $1 AND remix_id = $2`, userID, remixID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// Delete снимает голос пользователя.
func (r *VoteRepository) Delete(ctx context.Context, userID, remixID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE user_id = $1 AND remix_id = $2`, userID, remixID)
	return err
}
