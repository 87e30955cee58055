package repository

import (
	"context"
	"fmt"

	"finsakhi-server/internal/models"

	"go.uber.org/zap"
)

const awardXPQuery = `
        INSERT INTO user_gamification (user_id, total_xp, current_level)
        VALUES ($1, $2, 1 + $2 / 100)
        ON CONFLICT (user_id) DO UPDATE SET
            total_xp = user_gamification.total_xp + EXCLUDED.total_xp,
            current_level = 1 + (user_gamification.total_xp + EXCLUDED.total_xp) / 100
        RETURNING total_xp, current_level
    `

// Compile-time check
var _ GamificationRepository = (*pgGamificationRepository)(nil)

// pgGamificationRepository is the PostgreSQL implementation of
// GamificationRepository.
type pgGamificationRepository struct {
	db     Querier
	logger *zap.Logger
}

// NewPgGamificationRepository creates a new repository instance.
func NewPgGamificationRepository(db Querier, logger *zap.Logger) GamificationRepository {
	return &pgGamificationRepository{
		db:     db,
		logger: logger.Named("PgGamificationRepo"),
	}
}

func (r *pgGamificationRepository) AwardXP(ctx context.Context, userID string, xp int) (*models.PlayerGamification, error) {
	record := models.PlayerGamification{UserID: userID}
	err := r.db.QueryRow(ctx, awardXPQuery, userID, xp).Scan(&record.TotalXP, &record.Level)
	if err != nil {
		r.logger.Error("Failed to award XP", zap.String("userID", userID), zap.Int("xp", xp), zap.Error(err))
		return nil, fmt.Errorf("failed to award xp: %w", err)
	}
	r.logger.Debug("XP awarded",
		zap.String("userID", userID),
		zap.Int("xp", xp),
		zap.Int("totalXP", record.TotalXP),
		zap.Int("level", record.Level),
	)
	return &record, nil
}
