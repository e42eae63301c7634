package dto

import (
	"time"

	"github.com/remixgames/backend/internal/models"
	"github.com/remixgames/backend/internal/service"
)

// ErrorResponse — стандартный формат ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse — публичное представление пользователя.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse — ответ на регистрацию, вход и refresh.
type AuthResponse struct {
	User   UserResponse       `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

// ModerationVerdict — вердикт пайплайна, отдаваемый автору контента.
// Внутренние поля анализа (anthropic flag, reasoning) наружу не выходят.
type ModerationVerdict struct {
	Decision          string `json:"decision"`
	RecommendedAction string `json:"recommended_action,omitempty"`
}

// SubmitRemixResponse — ответ на отправку ремикса.
type SubmitRemixResponse struct {
	Remix      *models.Remix     `json:"remix"`
	Moderation ModerationVerdict `json:"moderation"`
}

// SubmitCommentResponse — ответ на отправку комментария.
type SubmitCommentResponse struct {
	Comment    *models.Comment   `json:"comment"`
	Moderation ModerationVerdict `json:"moderation"`
}

// VoteResponse — ответ на голос: новый рейтинг ремикса.
type VoteResponse struct {
	Value int `json:"value"`
	Score int `json:"score"`
}

// NewUserResponse собирает публичное представление пользователя.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// NewModerationVerdict отбрасывает внутренние поля анализа.
func NewModerationVerdict(result *models.ModerationResult) ModerationVerdict {
	return ModerationVerdict{
		Decision:          result.Decision,
		RecommendedAction: result.RecommendedAction,
	}
}
