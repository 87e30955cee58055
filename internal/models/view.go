package models

// View types are the language-resolved shapes the API returns. They are built
// by the game service from content plus session state; choice targets and stat
// impacts never appear in them.

// CharacterView is a language-resolved character card.
type CharacterView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar"`
	Description string `json:"description,omitempty"`
	Personality string `json:"personality,omitempty"`
}

// DialogueLineView is a resolved dialogue line with placeholders substituted.
type DialogueLineView struct {
	Speaker  string `json:"speaker"`
	Position string `json:"position"`
	Text     string `json:"text"`
	Emotion  string `json:"emotion"`
}

// ChoiceView is the client-visible part of a choice.
type ChoiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Cost int    `json:"cost,omitempty"`
}

// NodeView is the client-visible rendering of a narrative node.
type NodeView struct {
	ID             string             `json:"id"`
	Scene          string             `json:"scene,omitempty"`
	Narrative      string             `json:"narrative,omitempty"`
	Dialogue       []DialogueLineView `json:"dialogue,omitempty"`
	Characters     []CharacterView    `json:"characters,omitempty"`
	Choices        []ChoiceView       `json:"choices"`
	IsEnding       bool               `json:"is_ending"`
	Epilogue       string             `json:"epilogue,omitempty"`
	LessonsLearned []string           `json:"lessons_learned,omitempty"`
	IsGoodEnding   bool               `json:"is_good_ending,omitempty"`
}

// FeedbackView is the mentor commentary for the choice just taken.
type FeedbackView struct {
	IsCorrect    bool   `json:"is_correct"`
	Advice       string `json:"advice"`
	NextScenario string `json:"next_scenario,omitempty"`
}

// StoryResponse is the payload returned by every progression operation.
type StoryResponse struct {
	Node     NodeView      `json:"node"`
	Stats    PlayerStats   `json:"stats"`
	Feedback *FeedbackView `json:"feedback,omitempty"`
}
