// Package stats implements the pure stat transform applied when a choice is
// taken. It has no state and no side effects.
package stats

import "finsakhi-server/internal/models"

const (
	// BaselineConfidence is the starting confidence when a path does not
	// override it.
	BaselineConfidence = 50

	confidenceMin = 0
	confidenceMax = 100
)

// Baseline returns the default starting stats.
func Baseline() models.PlayerStats {
	return models.PlayerStats{Savings: 0, Debt: 0, Confidence: BaselineConfidence}
}

// Initial resolves a path's starting stats: explicit initial values win,
// anything unset falls back to the baseline.
func Initial(initial *models.InitialStats) models.PlayerStats {
	s := Baseline()
	if initial == nil {
		return s
	}
	if initial.Savings != nil {
		s.Savings = *initial.Savings
	}
	if initial.Debt != nil {
		s.Debt = *initial.Debt
	}
	if initial.Confidence != nil {
		s.Confidence = *initial.Confidence
	}
	return Apply(s, models.StatDelta{})
}

// Apply adds a choice's deltas to the stats and normalizes the result:
// confidence is clamped to [0, 100], savings and debt never go below zero.
// A delta that would overdraw a resource is absorbed silently; the narrative
// never rejects a choice for lack of funds.
func Apply(s models.PlayerStats, d models.StatDelta) models.PlayerStats {
	return models.PlayerStats{
		Savings:    max(s.Savings+d.Savings, 0),
		Debt:       max(s.Debt+d.Debt, 0),
		Confidence: clamp(s.Confidence+d.Confidence, confidenceMin, confidenceMax),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
