package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/remixgames/backend/internal/models"
)

// FavoriteStore описывает зависимости FavoriteService от слоя хранилища.
type FavoriteStore interface {
	Add(ctx context.Context, userID, remixID uuid.UUID) error
	Remove(ctx context.Context, userID, remixID uuid.UUID) error
	Exists(ctx context.Context, userID, remixID uuid.UUID) (bool, error)
	ListRemixesByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Remix, error)
}

// FavoriteService управляет избранными ремиксами пользователей.
type FavoriteService struct {
	repo    FavoriteStore
	remixes RemixReader
}

func NewFavoriteService(repo FavoriteStore, remixes RemixReader) *FavoriteService {
	return &FavoriteService{repo: repo, remixes: remixes}
}

// Add добавляет опубликованный ремикс в избранное, идемпотентно.
func (s *FavoriteService) Add(ctx context.Context, userID, remixID uuid.UUID) error {
	remix, err := s.remixes.GetByID(ctx, remixID)
	if err != nil {
		return err
	}
	if remix.Status != models.ContentStatusPublished {
		return fmt.Errorf("в избранное можно добавить только опубликованный ремикс")
	}
	return s.repo.Add(ctx, userID, remixID)
}

// Remove убирает ремикс из избранного.
func (s *FavoriteService) Remove(ctx context.Context, userID, remixID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, remixID)
}

// Exists проверяет, в избранном ли ремикс.
func (s *FavoriteService) Exists(ctx context.Context, userID, remixID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, userID, remixID)
}

// List возвращает избранные ремиксы пользователя.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Remix, error) {
	return s.repo.ListRemixesByUser(ctx, userID, limit, offset)
}
