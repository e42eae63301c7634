package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/remixgames/backend/internal/bgg"
	"github.com/remixgames/backend/internal/logger"
	"github.com/remixgames/backend/internal/models"
	"github.com/remixgames/backend/internal/repository"
)

// GameStore описывает зависимости GameService от слоя хранилища.
type GameStore interface {
	Upsert(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetByBGGID(ctx context.Context, bggID int64) (*models.Game, error)
	SearchByName(ctx context.Context, query string, limit int) ([]models.Game, error)
}

// BGGClient — контракт внешнего каталога BoardGameGeek.
type BGGClient interface {
	Search(ctx context.Context, query string) ([]bgg.SearchResult, error)
	GetGame(ctx context.Context, bggID int) (*bgg.GameDetails, error)
}

// GameService отвечает за каталог настольных игр: внешний поиск по BGG
// и локальный кэш метаданных.
type GameService struct {
	repo GameStore
	bgg  BGGClient
}

func NewGameService(repo GameStore, bggClient BGGClient) *GameService {
	return &GameService{repo: repo, bgg: bggClient}
}

// Search ищет игры в BGG, при недоступности внешнего API
// отвечает из локального кэша.
func (s *GameService) Search(ctx context.Context, query string) ([]bgg.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("поисковый запрос не может быть пустым")
	}

	results, err := s.bgg.Search(ctx, query)
	if err != nil {
		logger.WithComponent("games").WithError(err).Warn("BGG недоступен, ищем в локальном кэше")
		cached, cacheErr := s.repo.SearchByName(ctx, query, 20)
		if cacheErr != nil {
			return nil, err
		}
		results = make([]bgg.SearchResult, 0, len(cached))
		for _, game := range cached {
			item := bgg.SearchResult{BGGID: int(game.BGGID), Name: game.Name}
			if game.YearPublished != nil {
				item.YearPublished = *game.YearPublished
			}
			results = append(results, item)
		}
	}
	return results, nil
}

// Import загружает карточку игры из BGG в локальный кэш и возвращает её.
// Повторный импорт освежает метаданные.
func (s *GameService) Import(ctx context.Context, bggID int) (*models.Game, error) {
	details, err := s.bgg.GetGame(ctx, bggID)
	if err != nil {
		// Если BGG недоступен, но игра уже в кэше, отдаём кэш.
		if cached, cacheErr := s.repo.GetByBGGID(ctx, int64(bggID)); cacheErr == nil {
			return cached, nil
		}
		return nil, err
	}

	game := &models.Game{
		BGGID: int64(details.BGGID),
		Name:  details.Name,
	}
	if details.YearPublished != 0 {
		game.YearPublished = &details.YearPublished
	}
	if details.ThumbnailURL != "" {
		game.ThumbnailURL = &details.ThumbnailURL
	}
	if details.MinPlayers != 0 {
		game.MinPlayers = &details.MinPlayers
	}
	if details.MaxPlayers != 0 {
		game.MaxPlayers = &details.MaxPlayers
	}

	if err := s.repo.Upsert(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// GetByID возвращает игру из кэша.
func (s *GameService) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	return s.repo.GetByID(ctx, id)
}

// ResolveIDs проверяет, что все базовые игры ремикса есть в кэше.
func (s *GameService) ResolveIDs(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrGameNotFound) {
				return fmt.Errorf("игра %s не найдена в каталоге", id)
			}
			return err
		}
	}
	return nil
}
