// Package service implements the FinGame progression controller: the state
// machine that moves a player through a story path, applies stat impacts,
// and supports one-level rollback.
package service

import (
	"context"

	"finsakhi-server/internal/content"
	"finsakhi-server/internal/models"
	"finsakhi-server/internal/repository"

	"go.uber.org/zap"
)

// GameService defines the gameplay business logic consumed by the HTTP layer.
type GameService interface {
	// ListPaths returns the catalog of selectable story paths.
	ListPaths(ctx context.Context, language string) []models.PathInfo
	// SelectPath starts a fresh session on the given path, discarding any
	// existing session for the user.
	SelectPath(ctx context.Context, userID, pathID, language string) (*models.StoryResponse, error)
	// GetCurrent returns the user's current node and stats.
	GetCurrent(ctx context.Context, userID, language string) (*models.StoryResponse, error)
	// Choose applies a choice at the current node and advances the story.
	Choose(ctx context.Context, userID, choiceID, language string) (*models.StoryResponse, error)
	// Rollback undoes the most recent choice, restoring the prior node and
	// stats. Repeated calls walk further back until history is exhausted.
	Rollback(ctx context.Context, userID, language string) (*models.StoryResponse, error)
}

type gameServiceImpl struct {
	store        *content.Store
	sessions     repository.SessionRepository
	gamification repository.GamificationRepository
	locks        *userLocks
	historyLimit int
	logger       *zap.Logger
}

// NewGameService creates the progression controller. historyLimit caps the
// rollback stack depth per session (0 means unbounded).
func NewGameService(
	store *content.Store,
	sessions repository.SessionRepository,
	gamification repository.GamificationRepository,
	historyLimit int,
	logger *zap.Logger,
) GameService {
	return &gameServiceImpl{
		store:        store,
		sessions:     sessions,
		gamification: gamification,
		locks:        newUserLocks(),
		historyLimit: historyLimit,
		logger:       logger.Named("GameService"),
	}
}

func (s *gameServiceImpl) ListPaths(_ context.Context, language string) []models.PathInfo {
	return s.store.Paths(language)
}
