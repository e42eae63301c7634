package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/remixgames/backend/internal/models"
	"github.com/remixgames/backend/internal/repository"
)

type mockVoteStore struct {
	votes map[string]*models.Vote
}

func newMockVoteStore() *mockVoteStore {
	return &mockVoteStore{votes: make(map[string]*models.Vote)}
}

func voteKey(userID, remixID uuid.UUID) string {
	return userID.String() + ":" + remixID.String()
}

func (m *mockVoteStore) Upsert(_ context.Context, vote *models.Vote) error {
	m.votes[voteKey(vote.UserID, vote.RemixID)] = vote
	return nil
}

func (m *mockVoteStore) Get(_ context.Context, userID, remixID uuid.UUID) (*models.Vote, error) {
	return m.votes[voteKey(userID, remixID)], nil
}

func (m *mockVoteStore) Delete(_ context.Context, userID, remixID uuid.UUID) error {
	delete(m.votes, voteKey(userID, remixID))
	return nil
}

type mockRemixReader struct {
	remixes map[uuid.UUID]*models.Remix
}

func (m *mockRemixReader) GetByID(_ context.Context, id uuid.UUID) (*models.Remix, error) {
	remix, ok := m.remixes[id]
	if !ok {
		return nil, repository.ErrRemixNotFound
	}
	return remix, nil
}

type mockScoreRecalculator struct {
	store *mockVoteStore
}

func (m *mockScoreRecalculator) RecalculateScore(_ context.Context, remixID uuid.UUID) (int, error) {
	score := 0
	for _, vote := range m.store.votes {
		if vote.RemixID == remixID {
			score += vote.Value
		}
	}
	return score, nil
}

func newTestVoteService(remix *models.Remix) (*VoteService, *mockVoteStore) {
	store := newMockVoteStore()
	reader := &mockRemixReader{remixes: map[uuid.UUID]*models.Remix{remix.ID: remix}}
	return NewVoteService(store, reader, &mockScoreRecalculator{store: store}), store
}

func TestVoteService_CastAndOverwrite(t *testing.T) {
	remix := &models.Remix{ID: uuid.New(), AuthorID: uuid.New(), Status: models.ContentStatusPublished}
	svc, _ := newTestVoteService(remix)
	voterID := uuid.New()

	result, err := svc.Cast(context.Background(), voterID, remix.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Score)

	// Повторный голос перезаписывает предыдущий, а не суммируется
	result, err = svc.Cast(context.Background(), voterID, remix.ID, -1)
	assert.NoError(t, err)
	assert.Equal(t, -1, result.Score)
}

func TestVoteService_CastRejectsInvalidValue(t *testing.T) {
	remix := &models.Remix{ID: uuid.New(), AuthorID: uuid.New(), Status: models.ContentStatusPublished}
	svc, store := newTestVoteService(remix)

	_, err := svc.Cast(context.Background(), uuid.New(), remix.ID, 5)
	assert.Error(t, err)
	assert.Empty(t, store.votes)

	_, err = svc.Cast(context.Background(), uuid.New(), remix.ID, 0)
	assert.Error(t, err)
}

func TestVoteService_CastRejectsOwnRemix(t *testing.T) {
	authorID := uuid.New()
	remix := &models.Remix{ID: uuid.New(), AuthorID: authorID, Status: models.ContentStatusPublished}
	svc, store := newTestVoteService(remix)

	_, err := svc.Cast(context.Background(), authorID, remix.ID, 1)
	assert.Error(t, err)
	assert.Empty(t, store.votes)
}

func TestVoteService_CastRejectsUnpublishedRemix(t *testing.T) {
	remix := &models.Remix{ID: uuid.New(), AuthorID: uuid.New(), Status: models.ContentStatusPending}
	svc, _ := newTestVoteService(remix)

	_, err := svc.Cast(context.Background(), uuid.New(), remix.ID, 1)
	assert.Error(t, err)
}

func TestVoteService_RetractRecalculatesScore(t *testing.T) {
	remix := &models.Remix{ID: uuid.New(), AuthorID: uuid.New(), Status: models.ContentStatusPublished}
	svc, _ := newTestVoteService(remix)

	first := uuid.New()
	second := uuid.New()
	_, err := svc.Cast(context.Background(), first, remix.ID, 1)
	assert.NoError(t, err)
	_, err = svc.Cast(context.Background(), second, remix.ID, 1)
	assert.NoError(t, err)

	score, err := svc.Retract(context.Background(), first, remix.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, score)

	vote, err := svc.Get(context.Background(), first, remix.ID)
	assert.NoError(t, err)
	assert.Nil(t, vote)
}

func TestVoteService_RetractUnknownRemixFails(t *testing.T) {
	remix := &models.Remix{ID: uuid.New(), AuthorID: uuid.New(), Status: models.ContentStatusPublished}
	svc, _ := newTestVoteService(remix)

	_, err := svc.Retract(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrRemixNotFound)
}
