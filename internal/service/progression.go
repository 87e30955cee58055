package service

import (
	"context"
	"errors"
	"time"

	"finsakhi-server/internal/models"
	"finsakhi-server/internal/stats"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SelectPath creates a fresh session on pathID, replacing any prior session
// for the user. Confirmation UX for discarding progress is a client concern.
func (s *gameServiceImpl) SelectPath(ctx context.Context, userID, pathID, language string) (*models.StoryResponse, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	log := s.logger.With(zap.String("userID", userID), zap.String("pathID", pathID))

	path, err := s.store.Path(pathID)
	if err != nil {
		log.Warn("Path selection for unknown path")
		return nil, models.ErrPathNotFound
	}
	startNode, err := s.store.StartNode(pathID)
	if err != nil {
		// A path that validates always has a start node.
		log.Error("Start node missing for validated path", zap.Error(err))
		return nil, models.ErrInternalServer
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:            uuid.New(),
		UserID:        userID,
		PathID:        pathID,
		CurrentNodeID: startNode.ID,
		Stats:         stats.Initial(path.InitialStats),
		History:       []models.HistoryEntry{},
		StartedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		log.Error("Failed to save new session", zap.Error(err))
		return nil, models.ErrInternalServer
	}

	log.Info("Story path selected", zap.String("startNodeID", startNode.ID))
	return s.buildResponse(session, startNode, nil, language), nil
}

// GetCurrent returns the node and stats the user is at. There is no implicit
// session creation: a user who has never selected a path gets
// ErrSessionNotFound and the client must call SelectPath first.
func (s *gameServiceImpl) GetCurrent(ctx context.Context, userID, language string) (*models.StoryResponse, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	session, node, err := s.loadSessionAndNode(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(session, node, nil, language), nil
}

// Choose applies choiceID at the current node: push a rollback point, run the
// stat engine, advance to the choice's target, and persist everything in one
// write. On any failure the stored session is left untouched.
func (s *gameServiceImpl) Choose(ctx context.Context, userID, choiceID, language string) (*models.StoryResponse, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	log := s.logger.With(zap.String("userID", userID), zap.String("choiceID", choiceID))

	session, node, err := s.loadSessionAndNode(ctx, userID)
	if err != nil {
		return nil, err
	}

	choice := node.FindChoice(choiceID)
	if choice == nil {
		log.Warn("Choice not available at current node", zap.String("nodeID", node.ID))
		return nil, models.ErrInvalidChoice
	}

	// Resolve the target before mutating anything. A dangling target is a
	// content defect that validation should have caught.
	nextNode, err := s.store.Node(session.PathID, choice.NextNode)
	if err != nil {
		log.Error("Choice targets a missing node",
			zap.String("nodeID", node.ID),
			zap.String("targetNodeID", choice.NextNode),
			zap.Error(err),
		)
		return nil, models.ErrBrokenGraph
	}

	session.PushHistory(models.HistoryEntry{NodeID: session.CurrentNodeID, Stats: session.Stats}, s.historyLimit)
	session.Stats = stats.Apply(session.Stats, choice.Impact)
	session.CurrentNodeID = nextNode.ID

	if err := s.sessions.Save(ctx, session); err != nil {
		log.Error("Failed to persist choice", zap.Error(err))
		return nil, models.ErrInternalServer
	}

	log.Info("Choice applied",
		zap.String("fromNodeID", node.ID),
		zap.String("toNodeID", nextNode.ID),
		zap.Int("historyDepth", len(session.History)),
	)

	if nextNode.IsTerminal() {
		s.awardCompletionXP(ctx, userID)
	}

	return s.buildResponse(session, nextNode, choice.Feedback, language), nil
}

// Rollback restores the most recent rollback point. It is single-level: each
// call undoes exactly one choice. Rolling back from an ending is allowed.
func (s *gameServiceImpl) Rollback(ctx context.Context, userID, language string) (*models.StoryResponse, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	log := s.logger.With(zap.String("userID", userID))

	session, err := s.sessions.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, models.ErrSessionNotFound
		}
		log.Error("Failed to load session for rollback", zap.Error(err))
		return nil, models.ErrInternalServer
	}

	entry, ok := session.PopHistory()
	if !ok {
		return nil, models.ErrNothingToRollback
	}

	restoredNode, err := s.store.Node(session.PathID, entry.NodeID)
	if err != nil {
		log.Error("Rollback target node missing from content", zap.String("nodeID", entry.NodeID), zap.Error(err))
		return nil, models.ErrBrokenGraph
	}

	session.CurrentNodeID = entry.NodeID
	session.Stats = entry.Stats
	if err := s.sessions.Save(ctx, session); err != nil {
		log.Error("Failed to persist rollback", zap.Error(err))
		return nil, models.ErrInternalServer
	}

	log.Info("Choice rolled back",
		zap.String("restoredNodeID", entry.NodeID),
		zap.Int("historyDepth", len(session.History)),
	)
	return s.buildResponse(session, restoredNode, nil, language), nil
}

// loadSessionAndNode fetches the session plus its current node. A session
// pointing at a node that no longer exists means the content shipped without
// validation; surfaced as a broken graph, not as a user error.
func (s *gameServiceImpl) loadSessionAndNode(ctx context.Context, userID string) (*models.Session, *models.NarrativeNode, error) {
	session, err := s.sessions.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, nil, models.ErrSessionNotFound
		}
		s.logger.Error("Failed to load session", zap.String("userID", userID), zap.Error(err))
		return nil, nil, models.ErrInternalServer
	}

	node, err := s.store.Node(session.PathID, session.CurrentNodeID)
	if err != nil {
		s.logger.Error("Session points at a node missing from content",
			zap.String("userID", userID),
			zap.String("pathID", session.PathID),
			zap.String("nodeID", session.CurrentNodeID),
			zap.Error(err),
		)
		return nil, nil, models.ErrBrokenGraph
	}
	return session, node, nil
}

// awardCompletionXP credits story-completion XP. Best effort after the
// session commit: a failed award is logged, never surfaced to the player.
func (s *gameServiceImpl) awardCompletionXP(ctx context.Context, userID string) {
	record, err := s.gamification.AwardXP(ctx, userID, models.StoryCompletionXP)
	if err != nil {
		s.logger.Warn("Failed to award story completion XP", zap.String("userID", userID), zap.Error(err))
		return
	}
	s.logger.Info("Story completion XP awarded",
		zap.String("userID", userID),
		zap.Int("totalXP", record.TotalXP),
		zap.Int("level", record.Level),
	)
}
