package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbruckner/seminar-events/internal/event"
)

// Storage writes event snapshots to a fixed path.
type Storage struct {
	path string
}

// New creates a Storage writing to path, expanding a leading ~ and
// creating the parent directory if needed.
func New(path string) (*Storage, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	return &Storage{path: path}, nil
}

// Path returns the resolved output path.
func (s *Storage) Path() string {
	return s.path
}

// Save writes the events as one pretty-printed JSON array. The input
// order is preserved; callers pass the already deduplicated, date-sorted
// list.
func (s *Storage) Save(events []*event.Event) error {
	if events == nil {
		events = make([]*event.Event, 0)
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}

	return nil
}
