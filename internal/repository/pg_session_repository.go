package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finsakhi-server/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	gameSessionFields = `id, user_id, path_id, current_node_id, savings, debt, confidence, history, started_at, updated_at`

	upsertGameSessionQuery = `
        INSERT INTO game_sessions
            (id, user_id, path_id, current_node_id, savings, debt, confidence, history, started_at, updated_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (user_id) DO UPDATE SET
            id = EXCLUDED.id,
            path_id = EXCLUDED.path_id,
            current_node_id = EXCLUDED.current_node_id,
            savings = EXCLUDED.savings,
            debt = EXCLUDED.debt,
            confidence = EXCLUDED.confidence,
            history = EXCLUDED.history,
            started_at = EXCLUDED.started_at,
            updated_at = EXCLUDED.updated_at
    `
	getGameSessionByUserQuery = `
        SELECT ` + gameSessionFields + `
        FROM game_sessions
        WHERE user_id = $1
    `
	deleteGameSessionByUserQuery = `DELETE FROM game_sessions WHERE user_id = $1`
)

// Compile-time check
var _ SessionRepository = (*pgSessionRepository)(nil)

// pgSessionRepository is the PostgreSQL implementation of SessionRepository.
// History is stored as a JSONB column on the session row so a Save commits
// node, stats and history in a single statement.
type pgSessionRepository struct {
	db     Querier
	logger *zap.Logger
}

// NewPgSessionRepository creates a new repository instance.
func NewPgSessionRepository(db Querier, logger *zap.Logger) SessionRepository {
	return &pgSessionRepository{
		db:     db,
		logger: logger.Named("PgSessionRepo"),
	}
}

func (r *pgSessionRepository) GetByUser(ctx context.Context, userID string) (*models.Session, error) {
	var (
		session     models.Session
		historyJSON []byte
	)
	err := r.db.QueryRow(ctx, getGameSessionByUserQuery, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.PathID,
		&session.CurrentNodeID,
		&session.Stats.Savings,
		&session.Stats.Debt,
		&session.Stats.Confidence,
		&historyJSON,
		&session.StartedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrSessionNotFound
		}
		r.logger.Error("Failed to get game session", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get game session: %w", err)
	}

	session.History = []models.HistoryEntry{}
	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &session.History); err != nil {
			r.logger.Error("Failed to decode session history", zap.String("userID", userID), zap.Error(err))
			return nil, fmt.Errorf("failed to decode session history: %w", err)
		}
	}
	return &session, nil
}

func (r *pgSessionRepository) Save(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().UTC()

	history := session.History
	if history == nil {
		history = []models.HistoryEntry{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode session history: %w", err)
	}

	_, err = r.db.Exec(ctx, upsertGameSessionQuery,
		session.ID,
		session.UserID,
		session.PathID,
		session.CurrentNodeID,
		session.Stats.Savings,
		session.Stats.Debt,
		session.Stats.Confidence,
		historyJSON,
		session.StartedAt,
		session.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save game session",
			zap.String("userID", session.UserID),
			zap.String("pathID", session.PathID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save game session: %w", err)
	}

	r.logger.Debug("Game session saved",
		zap.String("userID", session.UserID),
		zap.String("nodeID", session.CurrentNodeID),
		zap.Int("historyDepth", len(session.History)),
	)
	return nil
}

func (r *pgSessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, deleteGameSessionByUserQuery, userID); err != nil {
		r.logger.Error("Failed to delete game session", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete game session: %w", err)
	}
	return nil
}
