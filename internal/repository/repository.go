// Package repository owns persistent player state: game sessions and
// gamification records. Session rows are only ever mutated through the game
// service, which serializes access per user.
package repository

import (
	"context"

	"finsakhi-server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstracts pgxpool.Pool and pgx.Tx so repositories can run inside or
// outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SessionRepository stores one game session per user.
type SessionRepository interface {
	// GetByUser returns the user's session, or models.ErrSessionNotFound.
	GetByUser(ctx context.Context, userID string) (*models.Session, error)
	// Save inserts the session or replaces the user's existing one. The
	// whole (node, stats, history) triple commits atomically.
	Save(ctx context.Context, session *models.Session) error
	// DeleteByUser removes the user's session if present.
	DeleteByUser(ctx context.Context, userID string) error
}

// GamificationRepository accumulates XP across the product's modules.
type GamificationRepository interface {
	// AwardXP adds xp to the user's total, creating the record on first
	// award, and returns the updated state.
	AwardXP(ctx context.Context, userID string, xp int) (*models.PlayerGamification, error)
}
