package models

// PlayerStats are the three tracked player resources. Savings and debt are
// never negative; confidence stays within [0, 100].
type PlayerStats struct {
	Savings    int `json:"savings"`
	Debt       int `json:"debt"`
	Confidence int `json:"confidence"`
}

// StatDelta is the stat impact a choice applies. Absent fields decode as zero.
type StatDelta struct {
	Savings    int `json:"savings"`
	Debt       int `json:"debt"`
	Confidence int `json:"confidence"`
}

// InitialStats is the optional per-path starting state. Pointer fields
// distinguish "not set" (use the baseline) from an explicit zero.
type InitialStats struct {
	Savings    *int `json:"savings,omitempty"`
	Debt       *int `json:"debt,omitempty"`
	Confidence *int `json:"confidence,omitempty"`
}
