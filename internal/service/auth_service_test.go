package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/remixgames/backend/internal/models"
	"github.com/remixgames/backend/internal/repository"
)

// mockAuthRepository реализует AuthRepository для тестов.
type mockAuthRepository struct {
	usersByEmail    map[string]*models.User
	usersByUsername map[string]*models.User
	usersByID       map[uuid.UUID]*models.User
	sessions        map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail:    make(map[string]*models.User),
		usersByUsername: make(map[string]*models.User),
		usersByID:       make(map[uuid.UUID]*models.User),
		sessions:        make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.IsActive = true
	m.usersByEmail[user.Email] = user
	m.usersByUsername[user.Username] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := m.usersByUsername[username]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	if session, ok := m.sessions[token]; ok && session.ExpiresAt.After(time.Now()) {
		return session, nil
	}
	return nil, repository.ErrSessionNotFound
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func newTestAuthService(repo AuthRepository) *AuthService {
	tokens := NewTokenManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 720*time.Hour)
	return NewAuthService(repo, tokens)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMockAuthRepository()
	svc := newTestAuthService(repo)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "player@example.com",
		Username: "player_one",
		Password: "Sup3rSecret!",
	}, SessionMeta{})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, result.User.Role)
	assert.NotEmpty(t, result.TokenPair.AccessToken)
	assert.NotEmpty(t, result.TokenPair.RefreshToken)

	// Повторная регистрация на тот же email запрещена.
	_, err = svc.Register(context.Background(), RegisterInput{
		Email:    "player@example.com",
		Username: "other_name",
		Password: "Sup3rSecret!",
	}, SessionMeta{})
	assert.Error(t, err)

	// Вход с верным паролем.
	loginResult, err := svc.Login(context.Background(), "player@example.com", "Sup3rSecret!", SessionMeta{})
	assert.NoError(t, err)
	assert.Equal(t, result.User.ID, loginResult.User.ID)

	// Вход с неверным паролем.
	_, err = svc.Login(context.Background(), "player@example.com", "wrong", SessionMeta{})
	assert.Error(t, err)
}

func TestAuthService_RefreshRotatesSession(t *testing.T) {
	repo := newMockAuthRepository()
	svc := newTestAuthService(repo)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "player@example.com",
		Username: "player_one",
		Password: "Sup3rSecret!",
	}, SessionMeta{})
	assert.NoError(t, err)

	oldToken := result.TokenPair.RefreshToken
	refreshed, err := svc.Refresh(context.Background(), oldToken, SessionMeta{})
	assert.NoError(t, err)
	assert.NotEqual(t, oldToken, refreshed.TokenPair.RefreshToken)

	// Старый refresh токен больше не работает.
	_, err = svc.Refresh(context.Background(), oldToken, SessionMeta{})
	assert.Error(t, err)
}

func TestAuthService_AccessTokenCarriesRole(t *testing.T) {
	repo := newMockAuthRepository()
	svc := newTestAuthService(repo)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "mod@example.com",
		Username: "moderator_kate",
		Password: "Sup3rSecret!",
	}, SessionMeta{})
	assert.NoError(t, err)

	tokens := NewTokenManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 720*time.Hour)
	userID, role, err := tokens.ParseAccess(result.TokenPair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
	assert.Equal(t, models.RoleUser, role)
}
