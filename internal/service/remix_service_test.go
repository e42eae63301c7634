package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/remixgames/backend/internal/models"
	"github.com/remixgames/backend/internal/repository"
)

type mockRemixStore struct {
	mock.Mock
}

func (m *mockRemixStore) Create(ctx context.Context, remix *models.Remix, gameIDs []uuid.UUID) error {
	args := m.Called(ctx, remix, gameIDs)
	if args.Error(0) == nil {
		remix.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockRemixStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Remix, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Remix), args.Error(1)
}

func (m *mockRemixStore) List(ctx context.Context, filter repository.RemixFilter) ([]models.Remix, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Remix), args.Error(1)
}

func (m *mockRemixStore) UpdateContent(ctx context.Context, remix *models.Remix, gameIDs []uuid.UUID) error {
	args := m.Called(ctx, remix, gameIDs)
	return args.Error(0)
}

func (m *mockRemixStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRemixStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRemixModerator struct {
	mock.Mock
}

func (m *mockRemixModerator) ModerateContent(ctx context.Context, input models.ModerationInput) *models.ModerationResult {
	args := m.Called(ctx, input)
	return args.Get(0).(*models.ModerationResult)
}

type mockMediaLister struct {
	mock.Mock
}

func (m *mockMediaLister) ListByRemixID(ctx context.Context, remixID uuid.UUID) ([]models.Media, error) {
	args := m.Called(ctx, remixID)
	return args.Get(0).([]models.Media), args.Error(1)
}

func TestModerateAttachedImages_SpamUnpublishesRemix(t *testing.T) {
	store := new(mockRemixStore)
	moderator := new(mockRemixModerator)
	media := new(mockMediaLister)
	svc := NewRemixService(store, moderator, media, "/media")

	remixID := uuid.New()
	remix := &models.Remix{
		ID:       remixID,
		AuthorID: uuid.New(),
		Title:    "Ремикс с картинкой",
		Status:   models.ContentStatusPublished,
	}

	store.On("GetByID", mock.Anything, remixID).Return(remix, nil)
	media.On("ListByRemixID", mock.Anything, remixID).Return([]models.Media{
		{FilePath: "img/promo.jpg"},
	}, nil)
	moderator.On("ModerateContent", mock.Anything, mock.MatchedBy(func(in models.ModerationInput) bool {
		return len(in.ImageURLs) == 1 && in.ImageURLs[0] == "/media/img/promo.jpg"
	})).Return(&models.ModerationResult{
		Decision: models.DecisionReject,
		SpamRisk: models.SpamRiskHigh,
	})
	// Опубликованный ремикс со спамом в картинке уходит обратно на ожидание.
	store.On("UpdateStatus", mock.Anything, remixID, models.ContentStatusPending).Return(nil)

	result, err := svc.ModerateAttachedImages(context.Background(), models.RoleUser, remixID)

	assert.NoError(t, err)
	assert.Equal(t, models.DecisionReject, result.Decision)
	store.AssertExpectations(t)
	moderator.AssertExpectations(t)
}

func TestModerateAttachedImages_CleanImageKeepsPublished(t *testing.T) {
	store := new(mockRemixStore)
	moderator := new(mockRemixModerator)
	media := new(mockMediaLister)
	svc := NewRemixService(store, moderator, media, "/media")

	remixID := uuid.New()
	remix := &models.Remix{
		ID:       remixID,
		AuthorID: uuid.New(),
		Title:    "Чистый ремикс",
		Status:   models.ContentStatusPublished,
	}

	store.On("GetByID", mock.Anything, remixID).Return(remix, nil)
	media.On("ListByRemixID", mock.Anything, remixID).Return([]models.Media{
		{FilePath: "img/board.jpg"},
	}, nil)
	moderator.On("ModerateContent", mock.Anything, mock.Anything).Return(&models.ModerationResult{
		Decision: models.DecisionApprove,
		SpamRisk: models.SpamRiskLow,
	})

	result, err := svc.ModerateAttachedImages(context.Background(), models.RoleUser, remixID)

	assert.NoError(t, err)
	assert.Equal(t, models.DecisionApprove, result.Decision)
	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemixService_UpdateModeratesAsEdit(t *testing.T) {
	store := new(mockRemixStore)
	moderator := new(mockRemixModerator)
	media := new(mockMediaLister)
	svc := NewRemixService(store, moderator, media, "/media")

	authorID := uuid.New()
	remixID := uuid.New()
	remix := &models.Remix{
		ID:       remixID,
		AuthorID: authorID,
		Title:    "Старое название",
		Status:   models.ContentStatusPublished,
	}

	store.On("GetByID", mock.Anything, remixID).Return(remix, nil)
	media.On("ListByRemixID", mock.Anything, remixID).Return([]models.Media{}, nil)
	moderator.On("ModerateContent", mock.Anything, mock.MatchedBy(func(in models.ModerationInput) bool {
		return in.ContentType == models.ContentTypeEdit && in.ContentID == remixID
	})).Return(&models.ModerationResult{
		Decision: models.DecisionApprove,
		SpamRisk: models.SpamRiskLow,
	})
	store.On("UpdateContent", mock.Anything, remix, mock.Anything).Return(nil)

	author := &models.User{ID: authorID, Role: models.RoleUser}
	in := SubmitRemixInput{
		Title:       "Новое название ремикса",
		Description: "Подробное описание того, как сочетать базовые игры в новом варианте.",
		Rules:       "Полные правила нового варианта: раскладка, ходы, условия победы.",
		GameIDs:     []uuid.UUID{uuid.New(), uuid.New()},
	}

	result, err := svc.Update(context.Background(), author, remixID, in)

	assert.NoError(t, err)
	assert.Equal(t, models.ContentStatusPublished, result.Remix.Status)
	moderator.AssertExpectations(t)
}
