package models

import (
	"time"

	"github.com/google/uuid"
)

// Remix описывает пользовательский рецепт "ремикса" настольных игр.
type Remix struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AuthorID    uuid.UUID `db:"author_id" json:"author_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Rules       string    `db:"rules" json:"rules"`
	Status      string    `db:"status" json:"status"`
	Score       int       `db:"score" json:"score"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Заполняется отдельными запросами, не колонка таблицы.
	Games []Game `db:"-" json:"games,omitempty"`
}

// Comment описывает комментарий к ремиксу.
type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RemixID   uuid.UUID `db:"remix_id" json:"remix_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Vote описывает голос пользователя за ремикс (+1 или -1).
type Vote struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	RemixID   uuid.UUID `db:"remix_id" json:"remix_id"`
	Value     int       `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Favorite описывает ремикс, добавленный пользователем в избранное.
type Favorite struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	RemixID   uuid.UUID `db:"remix_id" json:"remix_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
