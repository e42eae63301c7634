package models

import (
	"time"

	"github.com/google/uuid"
)

// Решения модерации.
const (
	DecisionApprove = "APPROVE"
	DecisionReview  = "REVIEW"
	DecisionReject  = "REJECT"
)

// Уровни спам-риска.
const (
	SpamRiskLow    = "LOW"
	SpamRiskMedium = "MEDIUM"
	SpamRiskHigh   = "HIGH"
)

// Статусы элемента очереди модерации.
const (
	QueueStatusPending   = "pending"
	QueueStatusApproved  = "approved"
	QueueStatusRejected  = "rejected"
	QueueStatusEscalated = "escalated"
)

// Типы флагов пользователя.
const (
	FlagTypeSpam          = "spam"
	FlagTypePromotional   = "promotional"
	FlagTypeLowQuality    = "low_quality"
	FlagTypeAIGenerated   = "ai_generated"
	FlagTypeInappropriate = "inappropriate"
)

// ModerationInput собирает поля отправленного контента для проверки.
// Отсутствующие поля остаются пустыми и не попадают в промпт.
type ModerationInput struct {
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Rules       string    `json:"rules,omitempty"`
	Comment     string    `json:"comment,omitempty"`
	ContentType string    `json:"content_type"`
	ContentID   uuid.UUID `json:"content_id"`
	UserID      uuid.UUID `json:"user_id"`
	UserRole    string    `json:"user_role,omitempty"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
}

// ModerationResult — разобранный и нормализованный вердикт AI анализа.
// Поле Decision всегда выставляется политикой порогов, а не моделью.
type ModerationResult struct {
	ContentScore      int      `json:"content_score"`
	Decision          string   `json:"decision"`
	SpamRisk          string   `json:"spam_risk"`
	QualityScore      int      `json:"quality_score"`
	AIDetected        bool     `json:"ai_detected"`
	AnthropicFlag     bool     `json:"anthropic_flag"`
	Reasoning         []string `json:"reasoning"`
	RecommendedAction string   `json:"recommended_action"`
}

// ImageModerationResult — результат визуальной проверки изображений.
type ImageModerationResult struct {
	HasSpam           bool     `json:"has_spam"`
	DetectedText      string   `json:"detected_text,omitempty"`
	URLs              bool     `json:"urls"`
	BusinessLogos     bool     `json:"business_logos"`
	GameSetupVisible  bool     `json:"game_setup_visible"`
	RecommendedAction string   `json:"recommended_action"`
	AnalyzedURLs      []string `json:"analyzed_urls,omitempty"`
}

// ModerationQueueItem — элемент очереди ручной модерации.
// Создаётся пайплайном только в статусе pending; переводы статуса
// делает исключительно модератор.
type ModerationQueueItem struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ContentType    string     `db:"content_type" json:"content_type"`
	ContentID      uuid.UUID  `db:"content_id" json:"content_id"`
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	ContentData    []byte     `db:"content_data" json:"content_data"`
	AIAnalysis     []byte     `db:"ai_analysis" json:"ai_analysis"`
	Status         string     `db:"status" json:"status"`
	ModeratorID    *uuid.UUID `db:"moderator_id" json:"moderator_id,omitempty"`
	ModeratorNotes *string    `db:"moderator_notes" json:"moderator_notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// UserFlag — накопительный счётчик нарушений пользователя одного типа.
type UserFlag struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	FlagType      string     `db:"flag_type" json:"flag_type"`
	ContentID     *uuid.UUID `db:"content_id" json:"content_id,omitempty"`
	ContentType   *string    `db:"content_type" json:"content_type,omitempty"`
	FlagCount     int        `db:"flag_count" json:"flag_count"`
	LastFlaggedAt time.Time  `db:"last_flagged_at" json:"last_flagged_at"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// QueueCounts — агрегированные счётчики очереди по статусам.
type QueueCounts struct {
	Pending   int `db:"pending" json:"pending"`
	Approved  int `db:"approved" json:"approved"`
	Rejected  int `db:"rejected" json:"rejected"`
	Escalated int `db:"escalated" json:"escalated"`
}
