package models

// XPPerLevel controls how total XP maps to a level.
const XPPerLevel = 100

// StoryCompletionXP is awarded when a player reaches any story ending.
const StoryCompletionXP = 50

// PlayerGamification tracks cross-module XP for a user.
type PlayerGamification struct {
	UserID  string `json:"user_id" db:"user_id"`
	TotalXP int    `json:"total_xp" db:"total_xp"`
	Level   int    `json:"current_level" db:"current_level"`
}

// LevelForXP derives the level from accumulated XP.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return 1 + totalXP/XPPerLevel
}
