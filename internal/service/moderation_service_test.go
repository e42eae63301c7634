package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/remixgames/backend/internal/config"
	"github.com/remixgames/backend/internal/models"
)

type mockAIProvider struct {
	mock.Mock
}

func (m *mockAIProvider) CompleteText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

func (m *mockAIProvider) CompleteWithImages(ctx context.Context, prompt string, imageURLs []string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, imageURLs, maxTokens)
	return args.String(0), args.Error(1)
}

type mockModerationStore struct {
	mock.Mock
}

func (m *mockModerationStore) CreateQueueItem(ctx context.Context, item *models.ModerationQueueItem) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil {
		item.ID = uuid.New()
		item.Status = models.QueueStatusPending
	}
	return args.Error(0)
}

func (m *mockModerationStore) GetQueueItemByID(ctx context.Context, id uuid.UUID) (*models.ModerationQueueItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModerationQueueItem), args.Error(1)
}

func (m *mockModerationStore) ListQueue(ctx context.Context, status string, limit, offset int) ([]models.ModerationQueueItem, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]models.ModerationQueueItem), args.Error(1)
}

func (m *mockModerationStore) CountsByStatus(ctx context.Context) (*models.QueueCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QueueCounts), args.Error(1)
}

func (m *mockModerationStore) TransitionQueueItem(ctx context.Context, id, moderatorID uuid.UUID, status string, notes *string) (*models.ModerationQueueItem, error) {
	args := m.Called(ctx, id, moderatorID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModerationQueueItem), args.Error(1)
}

func (m *mockModerationStore) RecordFlag(ctx context.Context, flag *models.UserFlag) error {
	args := m.Called(ctx, flag)
	if args.Error(0) == nil {
		flag.ID = uuid.New()
		flag.FlagCount++
	}
	return args.Error(0)
}

func (m *mockModerationStore) ListFlagsByUser(ctx context.Context, userID uuid.UUID) ([]models.UserFlag, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.UserFlag), args.Error(1)
}

type mockContentUpdater struct {
	mock.Mock
}

func (m *mockContentUpdater) SetRemixStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockContentUpdater) SetCommentStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func testModerationConfig() config.ModerationConfig {
	return config.ModerationConfig{
		ApproveScore:  80,
		ReviewScore:   60,
		FlagWindow:    24 * time.Hour,
		FlagThreshold: 3,
	}
}

func newTestModerationService(aiClient *mockAIProvider, store *mockModerationStore) *ModerationService {
	return NewModerationService(aiClient, store, new(mockContentUpdater), nil, testModerationConfig())
}

func TestModerateContent_ModeratorBypass(t *testing.T) {
	aiClient := new(mockAIProvider)
	store := new(mockModerationStore)
	svc := newTestModerationService(aiClient, store)

	result := svc.ModerateContent(context.Background(), models.ModerationInput{
		Title:       "Тестовый ремикс",
		ContentType: models.ContentTypeRemix,
		ContentID:   uuid.New(),
		UserID:      uuid.New(),
		UserRole:    models.RoleModerator,
	})

	assert.Equal(t, models.DecisionApprove, result.Decision)
	assert.Equal(t, 100, result.ContentScore)
	assert.Equal(t, models.SpamRiskLow, result.SpamRisk)
	// Ни одного обращения к модели и к хранилищу.
	aiClient.AssertNotCalled(t, "CompleteText")
	store.AssertNotCalled(t, "CreateQueueItem")
}

func TestModerateContent_AIFailureFallsBackToReview(t *testing.T) {
	aiClient := new(mockAIProvider)
	store := new(mockModerationStore)
	svc := newTestModerationService(aiClient, store)

	aiClient.On("CompleteText", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("таймаут соединения"))
	store.On("ListFlagsByUser", mock.Anything, mock.Anything).Return([]models.UserFlag{}, nil)
	store.On("CreateQueueItem", mock.Anything, mock.Anything).Return(nil)

	result := svc.ModerateContent(context.Background(), models.ModerationInput{
		Title:       "Заголовок",
		ContentType: models.ContentTypeRemix,
		ContentID:   uuid.New(),
		UserID:      uuid.New(),
		UserRole:    models.RoleUser,
	})

	assert.Equal(t, models.DecisionReview, result.Decision)
	assert.Equal(t, 50, result.ContentScore)
	assert.Equal(t, models.SpamRiskMedium, result.SpamRisk)
	assert.Contains(t, result.Reasoning, "AI analysis failed - manual review required")
	// Сбой AI отправляет контент в ручную очередь.
	store.AssertCalled(t, "CreateQueueItem", mock.Anything, mock.Anything)
}

func TestModerateContent_HighScoreApprovedWithoutQueue(t *testing.T) {
	aiClient := new(mockAIProvider)
	store := new(mockModerationStore)
	svc := newTestModerationService(aiClient, store)

	aiClient.On("CompleteText", mock.Anything, mock.Anything, mock.Anything).
		Return("CONTENT_SCORE: 85\nDECISION: APPROVE\nSPAM_RISK: LOW\nQUALITY_SCORE: 8", nil)
	store.On("ListFlagsByUser", mock.Anything, mock.Anything).Return([]models.UserFlag{}, nil)

	result := svc.ModerateContent(context.Background(), models.ModerationInput{
		Title:       "Хороший ремикс",
		ContentType: models.ContentTypeRemix,
		ContentID:   uuid.New(),
		UserID:      uuid.New(),
		UserRole:    models.RoleUser,
	})

	assert.Equal(t, models.DecisionApprove, result.Decision)
	store.AssertNotCalled(t, "CreateQueueItem")
	store.AssertNotCalled(t, "RecordFlag")
}

func TestModerateContent_LowScoreRejectedWithFlag(t *testing.T) {
	aiClient := new(mockAIProvider)
	store := new(mockModerationStore)
	svc := newTestModerationService(aiClient, store)

	userID := uuid.New()
	aiClient.On("CompleteText", mock.Anything, mock.Anything, mock.Anything).
		Return("CONTENT_SCORE: 45\nSPAM_RISK: LOW\nQUALITY_SCORE: 3", nil)
	store.On("CreateQueueItem", mock.Anything, mock.Anything).Return(nil)
	store.On("RecordFlag", mock.Anything, mock.MatchedBy(func(flag *models.UserFlag) bool {
		return flag.UserID == userID && flag.FlagType == models.FlagTypeLowQuality
	})).Return(nil)

	result := svc.ModerateContent(context.Background(), models.ModerationInput{
		Title:       "Слабый ремикс",
		ContentType: models.ContentTypeRemix,
		ContentID:   uuid.New(),
		UserID:      userID,
		UserRole:    models.RoleUser,
	})

	assert.Equal(t, models.DecisionReject, result.Decision)
	store.AssertExpectations(t)
}

func TestModerateContent_HighSpamRecordsSpamFlag(t *testing.T) {
	aiClient := new(mockAIProvider)
	store := new(mockModerationStore)
	svc := newTestModerationService(aiClient, store)

	aiClient.On("CompleteText", mock.Anything, mock.Anything, mock.Anything).
		Return("CONTENT_SCORE: 90\nSPAM_RISK: HIGH\nQUALITY_SCORE: 7", nil)
	store.On("CreateQueueItem", mock.Anything, mock.Anything).Return(nil)
	store.On("RecordFlag", mock.Anything, mock.MatchedBy(func(flag *models.UserFlag) bool {
		return flag.FlagType == models.FlagTypeSpam
	})).Return(nil)

	result := svc.ModerateContent(context.Background(), models.ModerationInput{
		Title:       "КУПИТЕ СЕЙЧАС",
		ContentType: models.ContentTypeRemix,
		ContentID:   uuid.New(),
		UserID:      uuid.New(),
		UserRole:    models.RoleUser,
	})

	// Высокий спам-риск перебивает высокий балл.
	assert.Equal(t, models.DecisionReject, result.Decision)
	store.AssertExpectations(t)
}

func TestModerateContent_EscalatedUserLosesAutoApprove(t *testing.T) {
	aiClient := new(mockAIProvider)
	store := new(mockModerationStore)
	svc := newTestModerationService(aiClient, store)

	userID := uuid.New()
	aiClient.On("CompleteText", mock.Anything, mock.Anything, mock.Anything).
		Return("CONTENT_SCORE: 95\nSPAM_RISK: LOW\nQUALITY_SCORE: 9", nil)
	store.On("ListFlagsByUser", mock.Anything, userID).Return([]models.UserFlag{
		{UserID: userID, FlagType: models.FlagTypeLowQuality, FlagCount: 4, LastFlaggedAt: time.Now()},
	}, nil)
	store.On("CreateQueueItem", mock.Anything, mock.Anything).Return(nil)

	result := svc.ModerateContent(context.Background(), models.ModerationInput{
		Title:       "Нормальный ремикс",
		ContentType: models.ContentTypeRemix,
		ContentID:   uuid.New(),
		UserID:      userID,
		UserRole:    models.RoleUser,
	})

	assert.Equal(t, models.DecisionReview, result.Decision)
	store.AssertCalled(t, "CreateQueueItem", mock.Anything, mock.Anything)
}

func TestShouldEscalateUser(t *testing.T) {
	recent := time.Now().Add(-time.Hour)
	stale := time.Now().Add(-48 * time.Hour)

	cases := []struct {
		name     string
		flags    []models.UserFlag
		expected bool
	}{
		{"нет флагов", []models.UserFlag{}, false},
		{"сумма ниже порога", []models.UserFlag{
			{FlagType: models.FlagTypeLowQuality, FlagCount: 3, LastFlaggedAt: recent},
		}, false},
		{"сумма выше порога", []models.UserFlag{
			{FlagType: models.FlagTypeLowQuality, FlagCount: 2, LastFlaggedAt: recent},
			{FlagType: models.FlagTypeAIGenerated, FlagCount: 2, LastFlaggedAt: recent},
		}, true},
		{"флаги вне окна не суммируются", []models.UserFlag{
			{FlagType: models.FlagTypeLowQuality, FlagCount: 2, LastFlaggedAt: recent},
			{FlagType: models.FlagTypeAIGenerated, FlagCount: 2, LastFlaggedAt: stale},
		}, false},
		{"один спам-флаг достаточен", []models.UserFlag{
			{FlagType: models.FlagTypeSpam, FlagCount: 1, LastFlaggedAt: recent},
		}, true},
		{"спам-флаг эскалирует независимо от давности", []models.UserFlag{
			{FlagType: models.FlagTypeSpam, FlagCount: 1, LastFlaggedAt: stale},
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockModerationStore)
			svc := newTestModerationService(new(mockAIProvider), store)
			userID := uuid.New()
			store.On("ListFlagsByUser", mock.Anything, userID).Return(tc.flags, nil)

			assert.Equal(t, tc.expected, svc.ShouldEscalateUser(context.Background(), userID))
		})
	}
}

func TestModerateImages_EmptyListSkipsAI(t *testing.T) {
	aiClient := new(mockAIProvider)
	svc := newTestModerationService(aiClient, new(mockModerationStore))

	result := svc.ModerateImages(context.Background(), nil)

	assert.False(t, result.HasSpam)
	assert.Equal(t, "No images to analyze", result.RecommendedAction)
	aiClient.AssertNotCalled(t, "CompleteWithImages")
}

func TestModerateContent_ImageSpamOverridesTextVerdict(t *testing.T) {
	aiClient := new(mockAIProvider)
	store := new(mockModerationStore)
	svc := newTestModerationService(aiClient, store)

	urls := []string{"https://example.com/promo.jpg"}
	aiClient.On("CompleteText", mock.Anything, mock.Anything, mock.Anything).
		Return("CONTENT_SCORE: 90\nSPAM_RISK: LOW\nQUALITY_SCORE: 8", nil)
	aiClient.On("CompleteWithImages", mock.Anything, mock.Anything, urls, mock.Anything).
		Return(`{"hasSpam": true, "detectedText": "SALE", "recommendedAction": "Reject - promo in image"}`, nil)
	store.On("CreateQueueItem", mock.Anything, mock.Anything).Return(nil)
	store.On("RecordFlag", mock.Anything, mock.MatchedBy(func(flag *models.UserFlag) bool {
		return flag.FlagType == models.FlagTypeSpam
	})).Return(nil)

	result := svc.ModerateContent(context.Background(), models.ModerationInput{
		Title:       "С картинкой",
		ContentType: models.ContentTypeRemix,
		ContentID:   uuid.New(),
		UserID:      uuid.New(),
		UserRole:    models.RoleUser,
		ImageURLs:   urls,
	})

	assert.Equal(t, models.DecisionReject, result.Decision)
	assert.Equal(t, models.SpamRiskHigh, result.SpamRisk)
	store.AssertExpectations(t)
}

func TestProcessQueueItem_InvalidAction(t *testing.T) {
	svc := newTestModerationService(new(mockAIProvider), new(mockModerationStore))

	_, err := svc.ProcessQueueItem(context.Background(), uuid.New(), uuid.New(), "banned", nil)

	assert.Error(t, err)
}

func TestProcessQueueItem_ApprovePublishesRemix(t *testing.T) {
	store := new(mockModerationStore)
	content := new(mockContentUpdater)
	svc := NewModerationService(new(mockAIProvider), store, content, nil, testModerationConfig())

	itemID := uuid.New()
	moderatorID := uuid.New()
	contentID := uuid.New()
	processed := &models.ModerationQueueItem{
		ID:          itemID,
		ContentType: models.ContentTypeRemix,
		ContentID:   contentID,
		UserID:      uuid.New(),
		Status:      models.QueueStatusApproved,
	}

	store.On("TransitionQueueItem", mock.Anything, itemID, moderatorID, models.QueueStatusApproved, (*string)(nil)).
		Return(processed, nil)
	content.On("SetRemixStatus", mock.Anything, contentID, models.ContentStatusPublished).Return(nil)

	item, err := svc.ProcessQueueItem(context.Background(), itemID, moderatorID, models.QueueStatusApproved, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.QueueStatusApproved, item.Status)
	content.AssertExpectations(t)
}

func TestProcessQueueItem_ApprovedEditPublishesRemix(t *testing.T) {
	store := new(mockModerationStore)
	content := new(mockContentUpdater)
	svc := NewModerationService(new(mockAIProvider), store, content, nil, testModerationConfig())

	itemID := uuid.New()
	moderatorID := uuid.New()
	contentID := uuid.New()
	processed := &models.ModerationQueueItem{
		ID:          itemID,
		ContentType: models.ContentTypeEdit,
		ContentID:   contentID,
		UserID:      uuid.New(),
		Status:      models.QueueStatusApproved,
	}

	store.On("TransitionQueueItem", mock.Anything, itemID, moderatorID, models.QueueStatusApproved, (*string)(nil)).
		Return(processed, nil)
	// Вердикт по правке применяется к самому ремиксу.
	content.On("SetRemixStatus", mock.Anything, contentID, models.ContentStatusPublished).Return(nil)

	_, err := svc.ProcessQueueItem(context.Background(), itemID, moderatorID, models.QueueStatusApproved, nil)

	assert.NoError(t, err)
	content.AssertExpectations(t)
}
