package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPushHistory(t *testing.T) {
	t.Run("unbounded when limit is zero", func(t *testing.T) {
		s := &Session{}
		for i := 0; i < 250; i++ {
			s.PushHistory(HistoryEntry{NodeID: "n"}, 0)
		}
		assert.Len(t, s.History, 250)
	})

	t.Run("drops oldest entries at the cap", func(t *testing.T) {
		s := &Session{}
		s.PushHistory(HistoryEntry{NodeID: "a"}, 3)
		s.PushHistory(HistoryEntry{NodeID: "b"}, 3)
		s.PushHistory(HistoryEntry{NodeID: "c"}, 3)
		s.PushHistory(HistoryEntry{NodeID: "d"}, 3)

		require.Len(t, s.History, 3)
		assert.Equal(t, "b", s.History[0].NodeID)
		assert.Equal(t, "d", s.History[2].NodeID)
	})
}

func TestSessionPopHistory(t *testing.T) {
	s := &Session{}
	s.PushHistory(HistoryEntry{NodeID: "a", Stats: PlayerStats{Savings: 10}}, 0)
	s.PushHistory(HistoryEntry{NodeID: "b", Stats: PlayerStats{Savings: 20}}, 0)

	entry, ok := s.PopHistory()
	require.True(t, ok)
	assert.Equal(t, "b", entry.NodeID)
	assert.Equal(t, 20, entry.Stats.Savings)
	assert.Len(t, s.History, 1)

	entry, ok = s.PopHistory()
	require.True(t, ok)
	assert.Equal(t, "a", entry.NodeID)

	_, ok = s.PopHistory()
	assert.False(t, ok)
}

func TestSessionClone(t *testing.T) {
	original := &Session{
		UserID:  "user-1",
		History: []HistoryEntry{{NodeID: "a"}},
	}
	clone := original.Clone()
	clone.History[0].NodeID = "changed"
	clone.PushHistory(HistoryEntry{NodeID: "b"}, 0)

	assert.Equal(t, "a", original.History[0].NodeID)
	assert.Len(t, original.History, 1)
}

func TestNarrativeNodeIsTerminal(t *testing.T) {
	withChoices := &NarrativeNode{ID: "n", Choices: []Choice{{ID: "c"}}}
	assert.False(t, withChoices.IsTerminal())

	withEnding := &NarrativeNode{ID: "ending_x", Ending: &Ending{Good: true}}
	assert.True(t, withEnding.IsTerminal())

	bare := &NarrativeNode{ID: "n"}
	assert.True(t, bare.IsTerminal())
}
