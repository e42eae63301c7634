package main

import (
	"context"

	"github.com/google/uuid"

	"github.com/remixgames/backend/internal/repository"
)

// contentStatusAdapter применяет вердикты модераторов к контенту
// напрямую через репозитории, минуя сервисный слой, чтобы не
// создавать циклическую зависимость модерации от сервисов контента.
type contentStatusAdapter struct {
	remixes  *repository.RemixRepository
	comments *repository.CommentRepository
}

func (a *contentStatusAdapter) SetRemixStatus(ctx context.Context, id uuid.UUID, status string) error {
	return a.remixes.UpdateStatus(ctx, id, status)
}

func (a *contentStatusAdapter) SetCommentStatus(ctx context.Context, id uuid.UUID, status string) error {
	return a.comments.UpdateStatus(ctx, id, status)
}
