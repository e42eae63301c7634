package models

import (
	"time"

	"github.com/google/uuid"
)

// Media описывает загруженное изображение.
type Media struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	OwnerID   uuid.UUID  `db:"owner_id" json:"owner_id"`
	RemixID   *uuid.UUID `db:"remix_id" json:"remix_id,omitempty"`
	FilePath  string     `db:"file_path" json:"file_path"`
	FileSize  int64      `db:"file_size" json:"file_size"`
	MimeType  string     `db:"mime_type" json:"mime_type"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Notification представляет уведомление пользователя.
type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Payload   []byte    `db:"payload" json:"payload"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
