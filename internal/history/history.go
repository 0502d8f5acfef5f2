// Package history keeps a bounded record of completed resolutions for
// display. It is a log, not a cache: nothing in hostq ever answers a
// resolution from history. Entries survive restarts through a YAML file
// written atomically on exit.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/atomic"
	"gopkg.in/yaml.v3"

	"github.com/lc/hostq/internal/filesys"
	"github.com/lc/hostq/internal/resolve"
)

// Entry is one completed, successful resolution.
type Entry struct {
	ID         string             `yaml:"id"`
	Hostname   string             `yaml:"hostname"`
	Port       string             `yaml:"port"`
	Endpoints  []resolve.Endpoint `yaml:"endpoints"`
	ResolvedAt time.Time          `yaml:"resolved_at"`
	Elapsed    time.Duration      `yaml:"elapsed"`
}

// Store is a bounded, thread-safe, oldest-evicted record of entries.
type Store struct {
	mu      sync.RWMutex // protects entries
	entries []Entry
	limit   int

	total atomic.Int64 // entries ever recorded, including evicted ones
}

// NewStore creates an empty store holding at most limit entries.
// A limit below one is treated as one.
func NewStore(limit int) *Store {
	if limit < 1 {
		limit = 1
	}
	return &Store{
		entries: make([]Entry, 0, limit),
		limit:   limit,
	}
}

// Add appends an entry, evicting the oldest ones past the limit.
func (s *Store) Add(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	if n := len(s.entries) - s.limit; n > 0 {
		s.entries = append(s.entries[:0:0], s.entries[n:]...)
	}
	s.total.Inc()
}

// Snapshot returns a copy of the current entries, oldest first.
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Total returns the number of entries ever recorded, including evicted ones.
func (s *Store) Total() int64 {
	return s.total.Load()
}

// Load reads a store from path. A missing file yields an empty store.
// Entries beyond limit are dropped oldest-first, matching Add's eviction.
func Load(fsys filesys.FileOps, path string, limit int) (*Store, error) {
	s := NewStore(limit)

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding history file: %w", err)
	}

	for _, e := range entries {
		s.Add(e)
	}
	return s, nil
}

// Save atomically persists the current entries to path, creating the
// parent directory if needed.
func (s *Store) Save(fsys filesys.FileOps, path string) error {
	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	if err := filesys.AtomicWrite(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}
