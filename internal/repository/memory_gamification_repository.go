package repository

import (
	"context"
	"sync"

	"finsakhi-server/internal/models"
)

// Compile-time check
var _ GamificationRepository = (*memoryGamificationRepository)(nil)

// memoryGamificationRepository keeps XP records in process memory. Used by
// tests and by the no-database development mode.
type memoryGamificationRepository struct {
	mu      sync.Mutex
	records map[string]*models.PlayerGamification
}

// NewMemoryGamificationRepository creates an empty in-memory XP store.
func NewMemoryGamificationRepository() GamificationRepository {
	return &memoryGamificationRepository{
		records: make(map[string]*models.PlayerGamification),
	}
}

func (r *memoryGamificationRepository) AwardXP(_ context.Context, userID string, xp int) (*models.PlayerGamification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[userID]
	if !ok {
		record = &models.PlayerGamification{UserID: userID}
		r.records[userID] = record
	}
	record.TotalXP += xp
	record.Level = models.LevelForXP(record.TotalXP)
	copy := *record
	return &copy, nil
}
