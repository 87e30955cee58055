package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one rollback point: the node and stats as they were before
// a choice was taken.
type HistoryEntry struct {
	NodeID string      `json:"node_id"`
	Stats  PlayerStats `json:"stats"`
}

// Session is the per-user progression record for the currently selected path.
// Exactly one session exists per user; selecting a new path replaces it.
type Session struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	UserID        string         `json:"user_id" db:"user_id"`
	PathID        string         `json:"path_id" db:"path_id"`
	CurrentNodeID string         `json:"current_node_id" db:"current_node_id"`
	Stats         PlayerStats    `json:"stats"`
	History       []HistoryEntry `json:"history"`
	StartedAt     time.Time      `json:"started_at" db:"started_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// Clone returns a deep copy so repository callers can mutate freely.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.History = make([]HistoryEntry, len(s.History))
	copy(c.History, s.History)
	return &c
}

// PushHistory appends a rollback point, dropping the oldest entry once the
// limit is reached. A limit of zero or less means unbounded.
func (s *Session) PushHistory(entry HistoryEntry, limit int) {
	if limit > 0 && len(s.History) >= limit {
		s.History = append(s.History[:0], s.History[len(s.History)-limit+1:]...)
	}
	s.History = append(s.History, entry)
}

// PopHistory removes and returns the most recent rollback point.
func (s *Session) PopHistory() (HistoryEntry, bool) {
	if len(s.History) == 0 {
		return HistoryEntry{}, false
	}
	last := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	return last, true
}
