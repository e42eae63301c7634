package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/remixgames/backend/internal/models"
)

// VoteStore описывает зависимости VoteService от слоя хранилища.
type VoteStore interface {
	Upsert(ctx context.Context, vote *models.Vote) error
	Get(ctx context.Context, userID, remixID uuid.UUID) (*models.Vote, error)
	Delete(ctx context.Context, userID, remixID uuid.UUID) error
}

// ScoreRecalculator пересчитывает рейтинг ремикса после изменения голосов.
type ScoreRecalculator interface {
	RecalculateScore(ctx context.Context, remixID uuid.UUID) (int, error)
}

// VoteService управляет голосами за ремиксы.
type VoteService struct {
	repo    VoteStore
	remixes RemixReader
	scores  ScoreRecalculator
}

// VoteResult — отданный голос и новый рейтинг ремикса.
type VoteResult struct {
	Vote  *models.Vote
	Score int
}

func NewVoteService(repo VoteStore, remixes RemixReader, scores ScoreRecalculator) *VoteService {
	return &VoteService{repo: repo, remixes: remixes, scores: scores}
}

// Cast ставит голос +1/-1 за опубликованный ремикс. Повторный голос
// перезаписывает предыдущий, голосовать за свой ремикс нельзя.
func (s *VoteService) Cast(ctx context.Context, userID, remixID uuid.UUID, value int) (*VoteResult, error) {
	if value != 1 && value != -1 {
		return nil, fmt.Errorf("голос должен быть +1 или -1")
	}

	remix, err := s.remixes.GetByID(ctx, remixID)
	if err != nil {
		return nil, err
	}
	if remix.Status != models.ContentStatusPublished {
		return nil, fmt.Errorf("голосовать можно только за опубликованный ремикс")
	}
	if remix.AuthorID == userID {
		return nil, fmt.Errorf("нельзя голосовать за собственный ремикс")
	}

	vote := &models.Vote{UserID: userID, RemixID: remixID, Value: value}
	if err := s.repo.Upsert(ctx, vote); err != nil {
		return nil, err
	}

	score, err := s.scores.RecalculateScore(ctx, remixID)
	if err != nil {
		return nil, err
	}

	return &VoteResult{Vote: vote, Score: score}, nil
}

// Retract снимает голос пользователя и пересчитывает рейтинг.
func (s *VoteService) Retract(ctx context.Context, userID, remixID uuid.UUID) (int, error) {
	if _, err := s.remixes.GetByID(ctx, remixID); err != nil {
		return 0, err
	}
	if err := s.repo.Delete(ctx, userID, remixID); err != nil {
		return 0, err
	}
	return s.scores.RecalculateScore(ctx, remixID)
}

// Get возвращает голос пользователя, nil если голоса нет.
func (s *VoteService) Get(ctx context.Context, userID, remixID uuid.UUID) (*models.Vote, error) {
	return s.repo.Get(ctx, userID, remixID)
}
