package dto

// RegisterRequest — тело запроса регистрации.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest — тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest — тело запроса обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SubmitRemixRequest — тело отправки или редактирования ремикса.
type SubmitRemixRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Rules       string   `json:"rules" binding:"required"`
	GameIDs     []string `json:"game_ids" binding:"required"`
}

// SubmitCommentRequest — тело отправки комментария.
type SubmitCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CastVoteRequest — тело запроса голоса.
type CastVoteRequest struct {
	Value int `json:"value" binding:"required"`
}

// ImportGameRequest — запрос импорта игры из BGG в локальный каталог.
type ImportGameRequest struct {
	BGGID int `json:"bgg_id" binding:"required"`
}

// ModerateQueueItemRequest — решение модератора по элементу очереди.
type ModerateQueueItemRequest struct {
	Action string  `json:"action" binding:"required"`
	Notes  *string `json:"notes,omitempty"`
}
