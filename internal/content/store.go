// Package content implements the Node Store: the immutable branching story
// graph loaded from a JSON content file. All lookups are map reads over data
// frozen at load time, so a Store is safe for concurrent use.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"finsakhi-server/internal/models"

	"go.uber.org/zap"
)

// storyFile is the on-disk layout of the content document.
type storyFile struct {
	Characters map[string]*models.Character `json:"characters"`
	Paths      []*models.StoryPath          `json:"paths"`
}

// Store indexes the story content of every path.
type Store struct {
	paths      map[string]*models.StoryPath
	nodes      map[string]map[string]*models.NarrativeNode // path id -> node id -> node
	startNodes map[string]string                           // path id -> start node id
	characters map[string]*models.Character
	logger     *zap.Logger
}

// Load reads and indexes a content file from disk.
func Load(path string, logger *zap.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	return Parse(data, logger)
}

// Parse indexes a content document. It fails on malformed JSON or duplicate
// ids; use Validate for full graph integrity checks.
func Parse(data []byte, logger *zap.Logger) (*Store, error) {
	var file storyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode story content: %w", err)
	}

	s := &Store{
		paths:      make(map[string]*models.StoryPath, len(file.Paths)),
		nodes:      make(map[string]map[string]*models.NarrativeNode, len(file.Paths)),
		startNodes: make(map[string]string, len(file.Paths)),
		characters: make(map[string]*models.Character, len(file.Characters)),
		logger:     logger.Named("ContentStore"),
	}

	for id, ch := range file.Characters {
		ch.ID = id
		s.characters[id] = ch
	}

	for _, path := range file.Paths {
		if path.ID == "" {
			return nil, fmt.Errorf("story path without path_id")
		}
		if _, exists := s.paths[path.ID]; exists {
			return nil, fmt.Errorf("duplicate path id %q", path.ID)
		}
		index := make(map[string]*models.NarrativeNode, len(path.Nodes))
		for _, node := range path.Nodes {
			if node.ID == "" {
				return nil, fmt.Errorf("path %q: node without node_id", path.ID)
			}
			if _, exists := index[node.ID]; exists {
				return nil, fmt.Errorf("path %q: duplicate node id %q", path.ID, node.ID)
			}
			index[node.ID] = node
		}
		s.paths[path.ID] = path
		s.nodes[path.ID] = index
		if start := startNodeOf(path); start != nil {
			s.startNodes[path.ID] = start.ID
		}
	}

	s.logger.Info("Story content indexed",
		zap.Int("paths", len(s.paths)),
		zap.Int("characters", len(s.characters)),
	)
	return s, nil
}

// startNodeOf picks the entry node: the lowest sequence number, ties broken
// by declaration order.
func startNodeOf(path *models.StoryPath) *models.NarrativeNode {
	var start *models.NarrativeNode
	for _, node := range path.Nodes {
		if start == nil || node.Sequence < start.Sequence {
			start = node
		}
	}
	return start
}

// Paths returns the catalog of selectable paths resolved to one language,
// sorted by path id for stable output.
func (s *Store) Paths(language string) []models.PathInfo {
	infos := make([]models.PathInfo, 0, len(s.paths))
	for _, p := range s.paths {
		infos = append(infos, models.PathInfo{
			ID:          p.ID,
			Title:       p.Title.Resolve(language),
			Description: p.Description.Resolve(language),
			Protagonist: p.Protagonist,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Path returns a path by id.
func (s *Store) Path(pathID string) (*models.StoryPath, error) {
	p, ok := s.paths[pathID]
	if !ok {
		return nil, models.ErrPathNotFound
	}
	return p, nil
}

// Node returns a node from a path's graph. A miss on a known path is a
// content defect, not a user error.
func (s *Store) Node(pathID, nodeID string) (*models.NarrativeNode, error) {
	index, ok := s.nodes[pathID]
	if !ok {
		return nil, models.ErrPathNotFound
	}
	node, ok := index[nodeID]
	if !ok {
		return nil, models.ErrNodeNotFound
	}
	return node, nil
}

// StartNode returns the path's designated entry node.
func (s *Store) StartNode(pathID string) (*models.NarrativeNode, error) {
	if _, ok := s.paths[pathID]; !ok {
		return nil, models.ErrPathNotFound
	}
	startID, ok := s.startNodes[pathID]
	if !ok {
		return nil, models.ErrNodeNotFound
	}
	return s.Node(pathID, startID)
}

// Character looks up a character from the catalog.
func (s *Store) Character(id string) (*models.Character, bool) {
	ch, ok := s.characters[id]
	return ch, ok
}
