package models

import "strings"

// Character describes a recurring story character from the content catalog.
// Dialogue lines reference characters by id.
type Character struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"`
	Role        LocalizedText `json:"role"`
	Avatar      string        `json:"avatar"`
	Description LocalizedText `json:"description,omitempty"`
	Personality LocalizedText `json:"personality,omitempty"`
}

// DialogueLine is a single line of on-screen dialogue.
type DialogueLine struct {
	Speaker  string        `json:"speaker"`
	Position string        `json:"position,omitempty"` // left or right, defaults to left
	Text     LocalizedText `json:"text"`
	Emotion  string        `json:"emotion,omitempty"` // defaults to neutral
}

// ChoiceFeedback is the mentor commentary attached to a choice. It is
// returned only in the response to the choose call that took the choice,
// never as part of a node.
type ChoiceFeedback struct {
	IsCorrect    bool          `json:"isCorrect"`
	Advice       LocalizedText `json:"advice"`
	NextScenario LocalizedText `json:"nextScenario,omitempty"`
}

// Choice is a player-selectable edge in the story graph. Impact, NextNode and
// Feedback are server-private and never serialized to clients.
type Choice struct {
	ID       string          `json:"id"`
	Text     LocalizedText   `json:"text"`
	Cost     int             `json:"cost,omitempty"`
	Impact   StatDelta       `json:"impact,omitempty"`
	NextNode string          `json:"next_node,omitempty"`
	Feedback *ChoiceFeedback `json:"feedback,omitempty"`
}

// Ending is the structured terminal metadata of a final node.
type Ending struct {
	Epilogue LocalizedText   `json:"epilogue"`
	Lessons  []LocalizedText `json:"lessons,omitempty"`
	Good     bool            `json:"good"`
}

// NarrativeNode is one point in a path's story graph.
type NarrativeNode struct {
	ID        string         `json:"node_id"`
	Sequence  int            `json:"sequence,omitempty"`
	Scene     string         `json:"scene,omitempty"`
	Narrative LocalizedText  `json:"narrative,omitempty"`
	Dialogue  []DialogueLine `json:"dialogue,omitempty"`
	Choices   []Choice       `json:"choices,omitempty"`
	Ending    *Ending        `json:"ending,omitempty"`
}

// endingIDPrefix is the legacy naming convention for terminal nodes. Terminal
// state is structural (Ending block or no choices); the prefix is only used
// by content validation to flag nodes that look final but are not marked so.
const endingIDPrefix = "ending"

// IsTerminal reports whether the node ends the story.
func (n *NarrativeNode) IsTerminal() bool {
	return n.Ending != nil || len(n.Choices) == 0
}

// HasEndingName reports whether the node id follows the ending naming
// convention.
func (n *NarrativeNode) HasEndingName() bool {
	return strings.HasPrefix(n.ID, endingIDPrefix)
}

// FindChoice returns the node's choice with the given id.
func (n *NarrativeNode) FindChoice(choiceID string) *Choice {
	for i := range n.Choices {
		if n.Choices[i].ID == choiceID {
			return &n.Choices[i]
		}
	}
	return nil
}

// StoryPath is a top-level story branch with its own node graph.
type StoryPath struct {
	ID           string           `json:"path_id"`
	Title        LocalizedText    `json:"title"`
	Description  LocalizedText    `json:"description,omitempty"`
	Protagonist  string           `json:"protagonist,omitempty"`
	InitialStats *InitialStats    `json:"initial_state,omitempty"`
	Nodes        []*NarrativeNode `json:"nodes"`
}

// PathInfo is the catalog entry for a selectable path, already resolved to a
// single language.
type PathInfo struct {
	ID          string `json:"path_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Protagonist string `json:"protagonist"`
}
