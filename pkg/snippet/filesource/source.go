// Package filesource serves snippets from YAML files on disk. It backs
// GitOps-style deployments where snippets are reviewed in a repository and
// shipped as files instead of authored through the API. The source is
// read-only; it implements snippet.Store but not snippet.Writer.
package filesource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"tagforge-hq/tagforge/pkg/snippet"
)

// snippetFile is the on-disk document shape: a list of snippet records
// under a single "snippets" key.
type snippetFile struct {
	Snippets []*snippet.Snippet `yaml:"snippets"`
}

// Source loads snippet definitions from every .yaml/.yml file in a
// directory and serves them from an in-memory snapshot. Reload swaps the
// snapshot atomically; a failed reload keeps the previous one.
type Source struct {
	dir    string
	logger *slog.Logger

	mu         sync.RWMutex
	byID       map[string]*snippet.Snippet
	byPosition map[snippet.Position][]*snippet.Snippet
}

var _ snippet.Store = (*Source)(nil)

// New creates a source and performs the initial load.
func New(dir string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Source{
		dir:    dir,
		logger: logger.With("component", "snippet.filesource"),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the directory and swaps in the new snapshot. On error
// the current snapshot stays in place.
func (s *Source) Reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return &snippet.StoreError{Op: "read_dir", Err: err}
	}

	byID := make(map[string]*snippet.Snippet)
	byPosition := make(map[snippet.Position][]*snippet.Snippet)
	loaded := 0

	for _, entry := range entries {
		if entry.IsDir() || !yamlFile(entry.Name()) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return &snippet.StoreError{Op: "read_file", Err: err}
		}

		var doc snippetFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return &snippet.StoreError{Op: "parse", Err: fmt.Errorf("%s: %w", entry.Name(), err)}
		}

		for _, sn := range doc.Snippets {
			sn.ApplyDefaults()
			if sn.ID == "" {
				return &snippet.StoreError{Op: "load", Err: fmt.Errorf("%s: snippet %q has no id", entry.Name(), sn.Name)}
			}
			if err := sn.Validate(); err != nil {
				return &snippet.StoreError{Op: "load", Err: fmt.Errorf("%s: %w", entry.Name(), err)}
			}
			if _, dup := byID[sn.ID]; dup {
				s.logger.Warn("duplicate snippet id, keeping first definition",
					"id", sn.ID, "file", entry.Name())
				continue
			}
			byID[sn.ID] = sn
			byPosition[sn.Position] = append(byPosition[sn.Position], sn)
			loaded++
		}
	}

	// File order is the tiebreak within equal priority, so the sort must
	// be stable.
	for pos := range byPosition {
		list := byPosition[pos]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority < list[j].Priority
		})
	}

	s.mu.Lock()
	s.byID = byID
	s.byPosition = byPosition
	s.mu.Unlock()

	s.logger.Info("snippet files loaded", "dir", s.dir, "snippets", loaded)
	return nil
}

// Get returns one snippet by ID.
func (s *Source) Get(ctx context.Context, id string) (*snippet.Snippet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sn, ok := s.byID[id]
	if !ok {
		return nil, &snippet.NotFoundError{ID: id}
	}
	return sn, nil
}

// FindActiveByPosition returns enabled snippets for a position in render
// order.
func (s *Source) FindActiveByPosition(ctx context.Context, position snippet.Position) ([]*snippet.Snippet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byPosition[position]
	out := make([]*snippet.Snippet, 0, len(list))
	for _, sn := range list {
		if sn.Enabled() {
			out = append(out, sn)
		}
	}
	return out, nil
}

func yamlFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
