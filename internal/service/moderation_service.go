package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/remixgames/backend/internal/ai"
	"github.com/remixgames/backend/internal/config"
	"github.com/remixgames/backend/internal/logger"
	"github.com/remixgames/backend/internal/models"
)

// AIProvider — минимальный контракт AI клиента для пайплайна модерации.
type AIProvider interface {
	CompleteText(ctx context.Context, prompt string, maxTokens int) (string, error)
	CompleteWithImages(ctx context.Context, prompt string, imageURLs []string, maxTokens int) (string, error)
}

// ModerationStore описывает зависимости сервиса от слоя хранилища.
type ModerationStore interface {
	CreateQueueItem(ctx context.Context, item *models.ModerationQueueItem) error
	GetQueueItemByID(ctx context.Context, id uuid.UUID) (*models.ModerationQueueItem, error)
	ListQueue(ctx context.Context, status string, limit, offset int) ([]models.ModerationQueueItem, error)
	CountsByStatus(ctx context.Context) (*models.QueueCounts, error)
	TransitionQueueItem(ctx context.Context, id, moderatorID uuid.UUID, status string, notes *string) (*models.ModerationQueueItem, error)
	RecordFlag(ctx context.Context, flag *models.UserFlag) error
	ListFlagsByUser(ctx context.Context, userID uuid.UUID) ([]models.UserFlag, error)
}

// ContentStatusUpdater применяет вердикт модератора к самому контенту.
type ContentStatusUpdater interface {
	SetRemixStatus(ctx context.Context, id uuid.UUID, status string) error
	SetCommentStatus(ctx context.Context, id uuid.UUID, status string) error
}

// ModerationNotifier доставляет автору вердикт по его контенту.
type ModerationNotifier interface {
	NotifyUser(ctx context.Context, userID uuid.UUID, event string, payload map[string]interface{})
	NotifyModerators(event string, payload map[string]interface{})
}

// ModerationService реализует AI-пайплайн проверки контента:
// сборка контента, запрос к модели, разбор ответа, политика порогов,
// эскалация и постановка в очередь ручной модерации.
type ModerationService struct {
	aiClient AIProvider
	store    ModerationStore
	content  ContentStatusUpdater
	notifier ModerationNotifier
	policy   ai.DecisionPolicy
	cfg      config.ModerationConfig
	log      *logrus.Entry
}

func NewModerationService(aiClient AIProvider, store ModerationStore, content ContentStatusUpdater, notifier ModerationNotifier, cfg config.ModerationConfig) *ModerationService {
	return &ModerationService{
		aiClient: aiClient,
		store:    store,
		content:  content,
		notifier: notifier,
		policy:   ai.NewDecisionPolicy(cfg.ApproveScore, cfg.ReviewScore),
		cfg:      cfg,
		log:      logger.WithComponent("moderation"),
	}
}

// fallbackResult — безопасный дефолт при любом сбое AI анализа.
// Причина отказа фиксированная, чтобы модератор сразу видел, что
// вердикт не от модели.
func fallbackResult() *models.ModerationResult {
	return &models.ModerationResult{
		ContentScore:      50,
		Decision:          models.DecisionReview,
		SpamRisk:          models.SpamRiskMedium,
		QualityScore:      5,
		Reasoning:         []string{"AI analysis failed - manual review required"},
		RecommendedAction: "Manual review required",
	}
}

// ShouldBypassModeration проверяет, освобождена ли роль от проверки.
func (s *ModerationService) ShouldBypassModeration(role string) bool {
	return role == models.RoleAdmin || role == models.RoleModerator
}

// ShouldEscalateUser решает, нужен ли ручной контроль для пользователя:
// спам-флаг любой давности эскалирует сразу, остальные флаги считаются
// только внутри окна и сравниваются с порогом по сумме счётчиков.
func (s *ModerationService) ShouldEscalateUser(ctx context.Context, userID uuid.UUID) bool {
	flags, err := s.store.ListFlagsByUser(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Не удалось прочитать флаги пользователя")
		return false
	}

	since := time.Now().Add(-s.cfg.FlagWindow)
	total := 0
	for _, flag := range flags {
		if flag.FlagType == models.FlagTypeSpam {
			return true
		}
		if flag.LastFlaggedAt.After(since) {
			total += flag.FlagCount
		}
	}
	return total > s.cfg.FlagThreshold
}

// ModerateContent прогоняет контент через полный пайплайн. Ошибки AI
// никогда не возвращаются наружу: любой сбой превращается в
// безопасный вердикт REVIEW.
func (s *ModerationService) ModerateContent(ctx context.Context, input models.ModerationInput) *models.ModerationResult {
	// Контент модераторов и администраторов публикуется без проверки
	// и без единого обращения к модели.
	if s.ShouldBypassModeration(input.UserRole) {
		return &models.ModerationResult{
			ContentScore:      100,
			Decision:          models.DecisionApprove,
			SpamRisk:          models.SpamRiskLow,
			QualityScore:      10,
			Reasoning:         []string{"Trusted role - moderation bypassed"},
			RecommendedAction: "Publish immediately",
		}
	}

	// Текстовый и визуальный анализ идут параллельно внутри запроса.
	var (
		wg          sync.WaitGroup
		result      *models.ModerationResult
		imageResult *models.ImageModerationResult
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		result = s.moderateText(ctx, input)
	}()

	if len(input.ImageURLs) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			imageResult = s.ModerateImages(ctx, input.ImageURLs)
		}()
	}

	wg.Wait()

	// Визуальный спам перекрывает текстовый вердикт.
	if imageResult != nil && imageResult.HasSpam {
		result.SpamRisk = models.SpamRiskHigh
		result.Decision = models.DecisionReject
		result.Reasoning = append(result.Reasoning, "Visual spam detected in attached images")
		if imageResult.RecommendedAction != "" {
			result.RecommendedAction = imageResult.RecommendedAction
		}
	}

	// Эскалированный пользователь не получает автопубликацию.
	if result.Decision == models.DecisionApprove && s.ShouldEscalateUser(ctx, input.UserID) {
		result.Decision = models.DecisionReview
		result.Reasoning = append(result.Reasoning, "User has recent moderation flags - manual review required")
	}

	s.persistOutcome(ctx, input, result)

	s.log.WithFields(logrus.Fields{
		"content_type": input.ContentType,
		"content_id":   input.ContentID,
		"decision":     result.Decision,
		"score":        result.ContentScore,
		"spam_risk":    result.SpamRisk,
	}).Info("Модерация контента завершена")

	return result
}

// moderateText запрашивает у модели текстовый анализ и применяет политику.
func (s *ModerationService) moderateText(ctx context.Context, input models.ModerationInput) *models.ModerationResult {
	content := ai.AssembleContent(input)
	prompt := ai.BuildModerationPrompt(content, input.ContentType)

	raw, err := s.aiClient.CompleteText(ctx, prompt, ai.ModerationMaxTokens)
	if err != nil {
		s.log.WithError(err).WithField("content_id", input.ContentID).Warn("AI анализ недоступен, ставим на ручную проверку")
		return fallbackResult()
	}

	result := ai.ParseModerationResponse(raw)
	s.policy.Apply(result)
	return result
}

// ModerateImages проверяет изображения на визуальный спам.
// Пустой список — мгновенный чистый результат без обращения к модели.
func (s *ModerationService) ModerateImages(ctx context.Context, imageURLs []string) *models.ImageModerationResult {
	if len(imageURLs) == 0 {
		return &models.ImageModerationResult{
			HasSpam:           false,
			RecommendedAction: "No images to analyze",
		}
	}

	prompt := ai.BuildImagePrompt(imageURLs)
	raw, err := s.aiClient.CompleteWithImages(ctx, prompt, imageURLs, ai.ImageMaxTokens)
	if err != nil {
		s.log.WithError(err).Warn("Визуальный анализ недоступен")
		return &models.ImageModerationResult{
			HasSpam:           false,
			RecommendedAction: "Image analysis failed - manual review recommended",
			AnalyzedURLs:      imageURLs,
		}
	}

	return ai.ParseImageResponse(raw, imageURLs)
}

// persistOutcome раскладывает вердикт по хранилищу: всё, что не APPROVE,
// уходит в очередь модераторов, REJECT дополнительно помечает автора флагом.
// Ошибки записи логируются, но вердикт клиенту возвращается в любом случае.
func (s *ModerationService) persistOutcome(ctx context.Context, input models.ModerationInput, result *models.ModerationResult) {
	if result.Decision == models.DecisionApprove {
		return
	}

	contentData, err := json.Marshal(input)
	if err != nil {
		s.log.WithError(err).Error("Не удалось сериализовать контент для очереди")
		return
	}
	analysis, err := json.Marshal(result)
	if err != nil {
		s.log.WithError(err).Error("Не удалось сериализовать вердикт для очереди")
		return
	}

	item := &models.ModerationQueueItem{
		ContentType: input.ContentType,
		ContentID:   input.ContentID,
		UserID:      input.UserID,
		ContentData: contentData,
		AIAnalysis:  analysis,
	}
	if err := s.store.CreateQueueItem(ctx, item); err != nil {
		s.log.WithError(err).WithField("content_id", input.ContentID).Error("Не удалось поставить контент в очередь модерации")
	} else if s.notifier != nil {
		s.notifier.NotifyModerators("queue_item_created", map[string]interface{}{
			"item_id":      item.ID,
			"content_type": item.ContentType,
			"decision":     result.Decision,
		})
	}

	if result.Decision == models.DecisionReject {
		flag := &models.UserFlag{
			UserID:      input.UserID,
			FlagType:    s.flagTypeFor(result),
			ContentID:   &input.ContentID,
			ContentType: &input.ContentType,
		}
		if err := s.store.RecordFlag(ctx, flag); err != nil {
			s.log.WithError(err).WithField("user_id", input.UserID).Error("Не удалось записать флаг пользователя")
		}
	}
}

// flagTypeFor выбирает тип флага по вердикту: спам важнее AI-детекции,
// AI-детекция важнее низкого качества.
func (s *ModerationService) flagTypeFor(result *models.ModerationResult) string {
	switch {
	case result.SpamRisk == models.SpamRiskHigh:
		return models.FlagTypeSpam
	case result.AnthropicFlag:
		return models.FlagTypeAIGenerated
	default:
		return models.FlagTypeLowQuality
	}
}

// ListQueue возвращает страницу очереди модерации.
func (s *ModerationService) ListQueue(ctx context.Context, status string, limit, offset int) ([]models.ModerationQueueItem, error) {
	if status == "" {
		status = models.QueueStatusPending
	}
	switch status {
	case models.QueueStatusPending, models.QueueStatusApproved, models.QueueStatusRejected, models.QueueStatusEscalated:
	default:
		return nil, fmt.Errorf("неизвестный статус очереди: %s", status)
	}
	return s.store.ListQueue(ctx, status, limit, offset)
}

// GetQueueItem возвращает элемент очереди по ID.
func (s *ModerationService) GetQueueItem(ctx context.Context, id uuid.UUID) (*models.ModerationQueueItem, error) {
	return s.store.GetQueueItemByID(ctx, id)
}

// UserFlags возвращает историю флагов пользователя для панели модератора.
func (s *ModerationService) UserFlags(ctx context.Context, userID uuid.UUID) ([]models.UserFlag, error) {
	return s.store.ListFlagsByUser(ctx, userID)
}

// QueueCounts возвращает счётчики очереди для панели модератора.
func (s *ModerationService) QueueCounts(ctx context.Context) (*models.QueueCounts, error) {
	return s.store.CountsByStatus(ctx)
}

// ProcessQueueItem применяет решение модератора к элементу очереди.
// Допустимые действия: approved, rejected, escalated. Статус меняется
// только из pending, сам контент и автор уведомляются о вердикте.
func (s *ModerationService) ProcessQueueItem(ctx context.Context, itemID, moderatorID uuid.UUID, action string, notes *string) (*models.ModerationQueueItem, error) {
	switch action {
	case models.QueueStatusApproved, models.QueueStatusRejected, models.QueueStatusEscalated:
	default:
		return nil, fmt.Errorf("недопустимое действие модератора: %s", action)
	}

	item, err := s.store.TransitionQueueItem(ctx, itemID, moderatorID, action, notes)
	if err != nil {
		return nil, err
	}

	s.applyVerdictToContent(ctx, item)

	if s.notifier != nil {
		s.notifier.NotifyUser(ctx, item.UserID, "moderation_verdict", map[string]interface{}{
			"content_type": item.ContentType,
			"content_id":   item.ContentID,
			"status":       item.Status,
		})
	}

	s.log.WithFields(logrus.Fields{
		"item_id":      item.ID,
		"moderator_id": moderatorID,
		"status":       item.Status,
	}).Info("Элемент очереди обработан модератором")

	return item, nil
}

// applyVerdictToContent синхронизирует статус контента с вердиктом.
// Эскалация оставляет контент на ожидании до финального решения.
func (s *ModerationService) applyVerdictToContent(ctx context.Context, item *models.ModerationQueueItem) {
	var status string
	switch item.Status {
	case models.QueueStatusApproved:
		status = models.ContentStatusPublished
	case models.QueueStatusRejected:
		status = models.ContentStatusRejected
	default:
		return
	}

	var err error
	switch item.ContentType {
	// Правки (edit) указывают на тот же ремикс, что и первичная отправка.
	case models.ContentTypeRemix, models.ContentTypeEdit:
		err = s.content.SetRemixStatus(ctx, item.ContentID, status)
	case models.ContentTypeComment:
		err = s.content.SetCommentStatus(ctx, item.ContentID, status)
	}
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"content_type": item.ContentType,
			"content_id":   item.ContentID,
		}).Error("Не удалось применить вердикт к контенту")
	}
}
