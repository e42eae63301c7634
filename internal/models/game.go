package models

import (
	"time"

	"github.com/google/uuid"
)

// Game описывает закэшированные метаданные игры из BoardGameGeek.
type Game struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BGGID         int64     `db:"bgg_id" json:"bgg_id"`
	Name          string    `db:"name" json:"name"`
	YearPublished *int      `db:"year_published" json:"year_published,omitempty"`
	ThumbnailURL  *string   `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	MinPlayers    *int      `db:"min_players" json:"min_players,omitempty"`
	MaxPlayers    *int      `db:"max_players" json:"max_players,omitempty"`
	FetchedAt     time.Time `db:"fetched_at" json:"fetched_at"`
}
