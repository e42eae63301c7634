package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/remixgames/backend/internal/models"
	"github.com/remixgames/backend/internal/pkg/apperror"
	"github.com/remixgames/backend/internal/validation"
)

// CommentStore описывает зависимости CommentService от слоя хранилища.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByRemixID(ctx context.Context, remixID uuid.UUID, limit, offset int) ([]models.Comment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RemixReader проверяет, что комментируемый ремикс опубликован.
type RemixReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Remix, error)
}

// CommentService управляет комментариями с прогоном через модерацию.
type CommentService struct {
	repo      CommentStore
	remixes   RemixReader
	moderator RemixModerator
}

// SubmitCommentResult — комментарий вместе с вердиктом модерации.
type SubmitCommentResult struct {
	Comment    *models.Comment
	Moderation *models.ModerationResult
}

func NewCommentService(repo CommentStore, remixes RemixReader, moderator RemixModerator) *CommentService {
	return &CommentService{repo: repo, remixes: remixes, moderator: moderator}
}

// Submit создаёт комментарий и модерирует его. APPROVE публикует сразу,
// остальные вердикты оставляют комментарий скрытым до решения модератора.
func (s *CommentService) Submit(ctx context.Context, author *models.User, remixID uuid.UUID, content string) (*SubmitCommentResult, error) {
	if err := validation.ValidateComment(content); err != nil {
		return nil, err
	}

	remix, err := s.remixes.GetByID(ctx, remixID)
	if err != nil {
		return nil, err
	}
	if remix.Status != models.ContentStatusPublished {
		return nil, fmt.Errorf("комментировать можно только опубликованный ремикс")
	}

	comment := &models.Comment{
		RemixID:  remixID,
		AuthorID: author.ID,
		Content:  content,
		Status:   models.ContentStatusPending,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	result := s.moderator.ModerateContent(ctx, models.ModerationInput{
		Comment:     content,
		ContentType: models.ContentTypeComment,
		ContentID:   comment.ID,
		UserID:      author.ID,
		UserRole:    author.Role,
	})

	if result.Decision == models.DecisionApprove {
		comment.Status = models.ContentStatusPublished
		if err := s.repo.UpdateStatus(ctx, comment.ID, comment.Status); err != nil {
			return nil, err
		}
	}

	return &SubmitCommentResult{Comment: comment, Moderation: result}, nil
}

// ListByRemix возвращает опубликованные комментарии ремикса.
func (s *CommentService) ListByRemix(ctx context.Context, remixID uuid.UUID, limit, offset int) ([]models.Comment, error) {
	return s.repo.ListByRemixID(ctx, remixID, limit, offset)
}

// Delete удаляет комментарий автора.
func (s *CommentService) Delete(ctx context.Context, user *models.User, commentID uuid.UUID) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != user.ID && user.Role == models.RoleUser {
		return apperror.New(apperror.ErrCodeForbidden, "удалить комментарий может только автор")
	}
	return s.repo.Delete(ctx, commentID)
}

// SetCommentStatus реализует ContentStatusUpdater для вердиктов модераторов.
func (s *CommentService) SetCommentStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}
