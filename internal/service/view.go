package service

import (
	"sort"
	"strconv"
	"strings"

	"finsakhi-server/internal/models"
)

// buildResponse renders a node for one language against the session's stats.
// Choice targets, stat impacts and feedback content stay server-side; the
// feedback for the choice just taken travels in its own response field.
func (s *gameServiceImpl) buildResponse(
	session *models.Session,
	node *models.NarrativeNode,
	feedback *models.ChoiceFeedback,
	language string,
) *models.StoryResponse {
	substitute := statPlaceholders(session.Stats)

	view := models.NodeView{
		ID:       node.ID,
		Scene:    node.Scene,
		Choices:  make([]models.ChoiceView, 0, len(node.Choices)),
		IsEnding: node.IsTerminal(),
	}

	if narrative := node.Narrative.Resolve(language); narrative != "" {
		view.Narrative = substitute.Replace(narrative)
	}

	for _, line := range node.Dialogue {
		view.Dialogue = append(view.Dialogue, models.DialogueLineView{
			Speaker:  line.Speaker,
			Position: defaultString(line.Position, "left"),
			Text:     substitute.Replace(line.Text.Resolve(language)),
			Emotion:  defaultString(line.Emotion, "neutral"),
		})
	}
	view.Characters = s.dialogueCharacters(node, language)

	for _, choice := range node.Choices {
		view.Choices = append(view.Choices, models.ChoiceView{
			ID:   choice.ID,
			Text: choice.Text.Resolve(language),
			Cost: choice.Cost,
		})
	}

	if node.Ending != nil {
		view.Epilogue = substitute.Replace(node.Ending.Epilogue.Resolve(language))
		view.IsGoodEnding = node.Ending.Good
		view.LessonsLearned = make([]string, 0, len(node.Ending.Lessons))
		for _, lesson := range node.Ending.Lessons {
			view.LessonsLearned = append(view.LessonsLearned, lesson.Resolve(language))
		}
	}

	response := &models.StoryResponse{
		Node:  view,
		Stats: session.Stats,
	}
	if feedback != nil {
		response.Feedback = &models.FeedbackView{
			IsCorrect:    feedback.IsCorrect,
			Advice:       feedback.Advice.Resolve(language),
			NextScenario: feedback.NextScenario.Resolve(language),
		}
	}
	return response
}

// dialogueCharacters collects the catalog entries for every distinct speaker
// in the node's dialogue, sorted by id for stable output.
func (s *gameServiceImpl) dialogueCharacters(node *models.NarrativeNode, language string) []models.CharacterView {
	if len(node.Dialogue) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(node.Dialogue))
	var views []models.CharacterView
	for _, line := range node.Dialogue {
		if line.Speaker == "" {
			continue
		}
		if _, dup := seen[line.Speaker]; dup {
			continue
		}
		seen[line.Speaker] = struct{}{}
		ch, ok := s.store.Character(line.Speaker)
		if !ok {
			continue
		}
		views = append(views, models.CharacterView{
			ID:          ch.ID,
			Name:        ch.Name.Resolve(language),
			Role:        ch.Role.Resolve(language),
			Avatar:      ch.Avatar,
			Description: ch.Description.Resolve(language),
			Personality: ch.Personality.Resolve(language),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

// statPlaceholders builds the replacer for {savings}/{debt}/{confidence}
// markers authors embed in narrative and dialogue text.
func statPlaceholders(s models.PlayerStats) *strings.Replacer {
	return strings.NewReplacer(
		"{savings}", strconv.Itoa(s.Savings),
		"{debt}", strconv.Itoa(s.Debt),
		"{confidence}", strconv.Itoa(s.Confidence),
	)
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
