package stats

import (
	"testing"

	"finsakhi-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBaseline(t *testing.T) {
	s := Baseline()
	assert.Equal(t, 0, s.Savings)
	assert.Equal(t, 0, s.Debt)
	assert.Equal(t, BaselineConfidence, s.Confidence)
}

func TestInitial(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	t.Run("nil initial state falls back to baseline", func(t *testing.T) {
		assert.Equal(t, Baseline(), Initial(nil))
	})

	t.Run("explicit values override baseline", func(t *testing.T) {
		s := Initial(&models.InitialStats{
			Savings:    intPtr(500),
			Confidence: intPtr(45),
		})
		assert.Equal(t, 500, s.Savings)
		assert.Equal(t, 0, s.Debt)
		assert.Equal(t, 45, s.Confidence)
	})

	t.Run("out-of-range initial values are normalized", func(t *testing.T) {
		s := Initial(&models.InitialStats{
			Savings:    intPtr(-100),
			Confidence: intPtr(150),
		})
		assert.Equal(t, 0, s.Savings)
		assert.Equal(t, 100, s.Confidence)
	})
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		start models.PlayerStats
		delta models.StatDelta
		want  models.PlayerStats
	}{
		{
			name:  "plain addition",
			start: models.PlayerStats{Savings: 0, Debt: 0, Confidence: 50},
			delta: models.StatDelta{Savings: 200, Confidence: -10},
			want:  models.PlayerStats{Savings: 200, Debt: 0, Confidence: 40},
		},
		{
			name:  "debt floors at zero on overpayment",
			start: models.PlayerStats{Savings: 300, Debt: 100, Confidence: 50},
			delta: models.StatDelta{Debt: -150},
			want:  models.PlayerStats{Savings: 300, Debt: 0, Confidence: 50},
		},
		{
			name:  "savings floor at zero on overdraw",
			start: models.PlayerStats{Savings: 100, Debt: 0, Confidence: 50},
			delta: models.StatDelta{Savings: -500},
			want:  models.PlayerStats{Savings: 0, Debt: 0, Confidence: 50},
		},
		{
			name:  "confidence clamps at upper bound",
			start: models.PlayerStats{Confidence: 95},
			delta: models.StatDelta{Confidence: 20},
			want:  models.PlayerStats{Confidence: 100},
		},
		{
			name:  "confidence clamps at lower bound",
			start: models.PlayerStats{Confidence: 5},
			delta: models.StatDelta{Confidence: -20},
			want:  models.PlayerStats{Confidence: 0},
		},
		{
			name:  "zero delta is identity on normalized stats",
			start: models.PlayerStats{Savings: 42, Debt: 7, Confidence: 63},
			delta: models.StatDelta{},
			want:  models.PlayerStats{Savings: 42, Debt: 7, Confidence: 63},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.start, tt.delta))
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	start := models.PlayerStats{Savings: 100, Debt: 50, Confidence: 50}
	_ = Apply(start, models.StatDelta{Savings: -200, Debt: -100, Confidence: 10})
	assert.Equal(t, models.PlayerStats{Savings: 100, Debt: 50, Confidence: 50}, start)
}
