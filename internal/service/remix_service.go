package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/remixgames/backend/internal/logger"
	"github.com/remixgames/backend/internal/models"
	"github.com/remixgames/backend/internal/pkg/apperror"
	"github.com/remixgames/backend/internal/repository"
	"github.com/remixgames/backend/internal/validation"
)

// RemixStore описывает зависимости RemixService от слоя хранилища.
type RemixStore interface {
	Create(ctx context.Context, remix *models.Remix, gameIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Remix, error)
	List(ctx context.Context, filter repository.RemixFilter) ([]models.Remix, error)
	UpdateContent(ctx context.Context, remix *models.Remix, gameIDs []uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RemixModerator — контракт пайплайна модерации для отправляемого контента.
type RemixModerator interface {
	ModerateContent(ctx context.Context, input models.ModerationInput) *models.ModerationResult
}

// RemixMediaLister отдаёт URL изображений ремикса для визуальной проверки.
type RemixMediaLister interface {
	ListByRemixID(ctx context.Context, remixID uuid.UUID) ([]models.Media, error)
}

// RemixService управляет жизненным циклом ремиксов: создание с прогоном
// через модерацию, редактирование, лента и удаление.
type RemixService struct {
	repo      RemixStore
	moderator RemixModerator
	media     RemixMediaLister
	mediaBase string
}

// SubmitRemixInput содержит данные отправляемого ремикса.
type SubmitRemixInput struct {
	Title       string
	Description string
	Rules       string
	GameIDs     []uuid.UUID
}

// SubmitRemixResult — ремикс вместе с вердиктом модерации.
type SubmitRemixResult struct {
	Remix      *models.Remix
	Moderation *models.ModerationResult
}

func NewRemixService(repo RemixStore, moderator RemixModerator, media RemixMediaLister, mediaBase string) *RemixService {
	return &RemixService{repo: repo, moderator: moderator, media: media, mediaBase: mediaBase}
}

// Submit валидирует, сохраняет и модерирует новый ремикс.
// Статус публикации определяется вердиктом: APPROVE публикует сразу,
// REVIEW и REJECT оставляют ремикс на ожидании у модераторов.
func (s *RemixService) Submit(ctx context.Context, author *models.User, in SubmitRemixInput) (*SubmitRemixResult, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	remix := &models.Remix{
		AuthorID:    author.ID,
		Title:       in.Title,
		Description: in.Description,
		Rules:       in.Rules,
		Status:      models.ContentStatusPending,
	}
	if err := s.repo.Create(ctx, remix, in.GameIDs); err != nil {
		return nil, err
	}

	result := s.moderator.ModerateContent(ctx, models.ModerationInput{
		Title:       remix.Title,
		Description: remix.Description,
		Rules:       remix.Rules,
		ContentType: models.ContentTypeRemix,
		ContentID:   remix.ID,
		UserID:      author.ID,
		UserRole:    author.Role,
	})

	if result.Decision == models.DecisionApprove {
		remix.Status = models.ContentStatusPublished
		if err := s.repo.UpdateStatus(ctx, remix.ID, remix.Status); err != nil {
			return nil, err
		}
	}

	logger.WithComponent("remix").WithField("remix_id", remix.ID).
		WithField("status", remix.Status).Info("Ремикс отправлен")

	return &SubmitRemixResult{Remix: remix, Moderation: result}, nil
}

// Update редактирует ремикс автора и заново прогоняет его через модерацию.
func (s *RemixService) Update(ctx context.Context, user *models.User, remixID uuid.UUID, in SubmitRemixInput) (*SubmitRemixResult, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	remix, err := s.repo.GetByID(ctx, remixID)
	if err != nil {
		return nil, err
	}
	if remix.AuthorID != user.ID && user.Role != models.RoleAdmin {
		return nil, apperror.New(apperror.ErrCodeForbidden, "редактировать ремикс может только автор")
	}

	remix.Title = in.Title
	remix.Description = in.Description
	remix.Rules = in.Rules
	remix.Status = models.ContentStatusPending

	// Правка проходит модерацию как edit, чтобы в очереди она
	// отличалась от первичной отправки.
	result := s.moderator.ModerateContent(ctx, models.ModerationInput{
		Title:       remix.Title,
		Description: remix.Description,
		Rules:       remix.Rules,
		ContentType: models.ContentTypeEdit,
		ContentID:   remix.ID,
		UserID:      remix.AuthorID,
		UserRole:    user.Role,
		ImageURLs:   s.imageURLs(ctx, remix.ID),
	})
	if result.Decision == models.DecisionApprove {
		remix.Status = models.ContentStatusPublished
	}

	if err := s.repo.UpdateContent(ctx, remix, in.GameIDs); err != nil {
		return nil, err
	}

	return &SubmitRemixResult{Remix: remix, Moderation: result}, nil
}

// ModerateAttachedImages перепроверяет ремикс после привязки нового
// изображения: визуальный спам нельзя добавить к уже опубликованному
// контенту мимо пайплайна.
func (s *RemixService) ModerateAttachedImages(ctx context.Context, userRole string, remixID uuid.UUID) (*models.ModerationResult, error) {
	remix, err := s.repo.GetByID(ctx, remixID)
	if err != nil {
		return nil, err
	}

	result := s.moderator.ModerateContent(ctx, models.ModerationInput{
		Title:       remix.Title,
		Description: remix.Description,
		Rules:       remix.Rules,
		ContentType: models.ContentTypeRemix,
		ContentID:   remix.ID,
		UserID:      remix.AuthorID,
		UserRole:    userRole,
		ImageURLs:   s.imageURLs(ctx, remixID),
	})

	// Непройденная проверка снимает ремикс с публикации до решения модератора.
	if result.Decision != models.DecisionApprove && remix.Status == models.ContentStatusPublished {
		if err := s.repo.UpdateStatus(ctx, remixID, models.ContentStatusPending); err != nil {
			return result, err
		}
	}

	return result, nil
}

// GetByID возвращает ремикс. Неопубликованный виден только автору и модераторам.
func (s *RemixService) GetByID(ctx context.Context, id uuid.UUID, viewer *models.User) (*models.Remix, error) {
	remix, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if remix.Status != models.ContentStatusPublished {
		if viewer == nil || (viewer.ID != remix.AuthorID && viewer.Role == models.RoleUser) {
			return nil, repository.ErrRemixNotFound
		}
	}
	return remix, nil
}

// ListPublished возвращает ленту опубликованных ремиксов.
func (s *RemixService) ListPublished(ctx context.Context, filter repository.RemixFilter) ([]models.Remix, error) {
	filter.Status = models.ContentStatusPublished
	return s.repo.List(ctx, filter)
}

// ListByAuthor возвращает все ремиксы автора, включая неопубликованные.
func (s *RemixService) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]models.Remix, error) {
	return s.repo.List(ctx, repository.RemixFilter{
		AuthorID: &authorID,
		Limit:    limit,
		Offset:   offset,
	})
}

// Delete удаляет ремикс автора.
func (s *RemixService) Delete(ctx context.Context, user *models.User, remixID uuid.UUID) error {
	remix, err := s.repo.GetByID(ctx, remixID)
	if err != nil {
		return err
	}
	if remix.AuthorID != user.ID && user.Role != models.RoleAdmin {
		return apperror.New(apperror.ErrCodeForbidden, "удалить ремикс может только автор")
	}
	return s.repo.Delete(ctx, remixID)
}

// SetRemixStatus реализует ContentStatusUpdater для вердиктов модераторов.
func (s *RemixService) SetRemixStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *RemixService) validateInput(in SubmitRemixInput) error {
	if err := validation.ValidateRemixTitle(in.Title); err != nil {
		return err
	}
	if err := validation.ValidateRemixDescription(in.Description); err != nil {
		return err
	}
	if err := validation.ValidateRemixRules(in.Rules); err != nil {
		return err
	}
	gameIDs := make([]string, 0, len(in.GameIDs))
	for _, id := range in.GameIDs {
		gameIDs = append(gameIDs, id.String())
	}
	return validation.ValidateRemixGames(gameIDs)
}

// imageURLs собирает публичные URL изображений ремикса.
func (s *RemixService) imageURLs(ctx context.Context, remixID uuid.UUID) []string {
	if s.media == nil {
		return nil
	}
	items, err := s.media.ListByRemixID(ctx, remixID)
	if err != nil {
		logger.WithComponent("remix").WithError(err).Warn("Не удалось получить изображения ремикса")
		return nil
	}
	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, s.mediaBase+"/"+item.FilePath)
	}
	return urls
}
