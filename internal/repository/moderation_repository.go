package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/remixgames/backend/internal/models"
)

var (
	ErrQueueItemNotFound   = errors.New("элемент очереди модерации не найден")
	ErrQueueItemNotPending = errors.New("элемент очереди уже обработан")
)

type ModerationRepository struct {
	db *sqlx.DB
}

func NewModerationRepository(db *sqlx.DB) *ModerationRepository {
	return &ModerationRepository{db: db}
}

// CreateQueueItem кладёт контент в очередь ручной модерации.
// Новый элемент всегда в статусе pending, независимо от входных данных.
func (r *ModerationRepository) CreateQueueItem(ctx context.Context, item *models.ModerationQueueItem) error {
	item.Status = models.QueueStatusPending
	query := `
		INSERT INTO moderation_queue (content_type, content_id, user_id, content_data, ai_analysis, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		item.ContentType, item.ContentID, item.UserID, item.ContentData, item.AIAnalysis, item.Status,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// GetQueueItemByID возвращает элемент очереди.
func (r *ModerationRepository) GetQueueItemByID(ctx context.Context, id uuid.UUID) (*models.ModerationQueueItem, error) {
	var item models.ModerationQueueItem
	err := r.db.GetContext(ctx, &item, `SELECT * FROM moderation_queue WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQueueItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListQueue возвращает элементы очереди по статусу, старые первыми.
func (r *ModerationRepository) ListQueue(ctx context.Context, status string, limit, offset int) ([]models.ModerationQueueItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var items []models.ModerationQueueItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM moderation_queue
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, status, limit, offset)
	return items, err
}

// CountsByStatus возвращает счётчики очереди для панели модератора.
func (r *ModerationRepository) CountsByStatus(ctx context.Context) (*models.QueueCounts, error) {
	var counts models.QueueCounts
	err := r.db.GetContext(ctx, &counts, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending')   AS pending,
			COUNT(*) FILTER (WHERE status = 'approved')  AS approved,
			COUNT(*) FILTER (WHERE status = 'rejected')  AS rejected,
			COUNT(*) FILTER (WHERE status = 'escalated') AS escalated
		FROM moderation_queue
	`)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// TransitionQueueItem переводит элемент из pending в финальный статус.
// Финальные статусы терминальны: перевод обработанного элемента — ошибка.
func (r *ModerationRepository) TransitionQueueItem(ctx context.Context, id, moderatorID uuid.UUID, status string, notes *string) (*models.ModerationQueueItem, error) {
	var item models.ModerationQueueItem
	err := r.db.GetContext(ctx, &item, `
		UPDATE moderation_queue
		SET status = $2, moderator_id = $3, moderator_notes = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
		RETURNING *
	`, id, status, moderatorID, notes, models.QueueStatusPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Различаем "нет такого" и "уже обработан".
			if _, getErr := r.GetQueueItemByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrQueueItemNotPending
		}
		return nil, err
	}
	return &item, nil
}

// RecordFlag атомарно инкрементирует счётчик нарушения пользователя.
// Конфликт ловится уникальным индексом по (user_id, flag_type, content_id, content_type),
// поэтому параллельные отклонения не теряют инкременты.
func (r *ModerationRepository) RecordFlag(ctx context.Context, flag *models.UserFlag) error {
	query := `
		INSERT INTO user_flags (user_id, flag_type, content_id, content_type, flag_count, last_flagged_at)
		VALUES ($1, $2, $3, $4, 1, NOW())
		ON CONFLICT (user_id, flag_type, COALESCE(content_id, '00000000-0000-0000-0000-000000000000'::uuid), COALESCE(content_type, ''))
		DO UPDATE SET
			flag_count = user_flags.flag_count + 1,
			last_flagged_at = NOW(),
			updated_at = NOW()
		RETURNING id, flag_count, last_flagged_at, created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		flag.UserID, flag.FlagType, flag.ContentID, flag.ContentType,
	).Scan(&flag.ID, &flag.FlagCount, &flag.LastFlaggedAt, &flag.CreatedAt, &flag.UpdatedAt)
}

// ListFlagsByUser возвращает все флаги пользователя.
func (r *ModerationRepository) ListFlagsByUser(ctx context.Context, userID uuid.UUID) ([]models.UserFlag, error) {
	var flags []models.UserFlag
	err := r.db.SelectContext(ctx, &flags, `
		SELECT * FROM user_flags WHERE user_id = $1 ORDER BY last_flagged_at DESC
	`, userID)
	return flags, err
}
