package content

import (
	"fmt"
	"strings"
)

// Validate checks the integrity of every path graph. Defects reported here
// are authoring errors: the server refuses to start on them and the content
// pipeline must reject the document before publishing. All defects are
// collected so authors can fix a batch at once.
func (s *Store) Validate() error {
	var defects []string

	if len(s.paths) == 0 {
		defects = append(defects, "content has no story paths")
	}

	for pathID, path := range s.paths {
		index := s.nodes[pathID]
		if len(path.Nodes) == 0 {
			defects = append(defects, fmt.Sprintf("path %q has no nodes", pathID))
			continue
		}
		if _, ok := s.startNodes[pathID]; !ok {
			defects = append(defects, fmt.Sprintf("path %q has no start node", pathID))
		}
		if path.Title.IsEmpty() {
			defects = append(defects, fmt.Sprintf("path %q has no title", pathID))
		}

		for _, node := range path.Nodes {
			if node.Ending == nil && len(node.Choices) == 0 {
				defects = append(defects, fmt.Sprintf("path %q: node %q is a dead end: no choices and no ending metadata", pathID, node.ID))
			}
			if node.HasEndingName() && node.Ending == nil {
				defects = append(defects, fmt.Sprintf("path %q: node %q is named like an ending but carries no ending metadata", pathID, node.ID))
			}
			if node.Ending != nil && len(node.Choices) > 0 {
				defects = append(defects, fmt.Sprintf("path %q: ending node %q still offers choices", pathID, node.ID))
			}

			seenChoices := make(map[string]struct{}, len(node.Choices))
			for _, choice := range node.Choices {
				if choice.ID == "" {
					defects = append(defects, fmt.Sprintf("path %q: node %q has a choice without id", pathID, node.ID))
					continue
				}
				if _, dup := seenChoices[choice.ID]; dup {
					defects = append(defects, fmt.Sprintf("path %q: node %q has duplicate choice id %q", pathID, node.ID, choice.ID))
				}
				seenChoices[choice.ID] = struct{}{}
				if choice.NextNode == "" {
					defects = append(defects, fmt.Sprintf("path %q: choice %q on node %q has no target", pathID, choice.ID, node.ID))
				} else if _, ok := index[choice.NextNode]; !ok {
					defects = append(defects, fmt.Sprintf("path %q: choice %q on node %q targets unknown node %q", pathID, choice.ID, node.ID, choice.NextNode))
				}
				if choice.Text.IsEmpty() {
					defects = append(defects, fmt.Sprintf("path %q: choice %q on node %q has no text", pathID, choice.ID, node.ID))
				}
			}

			for i, line := range node.Dialogue {
				if line.Speaker == "" {
					defects = append(defects, fmt.Sprintf("path %q: node %q dialogue line %d has no speaker", pathID, node.ID, i))
					continue
				}
				if _, ok := s.characters[line.Speaker]; !ok {
					defects = append(defects, fmt.Sprintf("path %q: node %q dialogue speaker %q is not in the character catalog", pathID, node.ID, line.Speaker))
				}
			}
		}
	}

	if len(defects) > 0 {
		return fmt.Errorf("story content validation failed with %d defect(s):\n  %s",
			len(defects), strings.Join(defects, "\n  "))
	}
	return nil
}
