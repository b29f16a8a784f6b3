// Package store owns the on-disk snapshot backing all collections: one
// pretty-printed JSON document with users, listings and reports arrays,
// loaded wholesale at startup and rewritten in full after every mutation.
package store

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"twostreet/internal/domain"
)

type Dataset struct {
	Users    []domain.User    `json:"users"`
	Listings []domain.Listing `json:"listings"`
	Reports  []domain.Report  `json:"reports"`
}

func (d *Dataset) NextUserID() int    { return nextID(len(d.Users), func(i int) int { return d.Users[i].ID }) }
func (d *Dataset) NextListingID() int { return nextID(len(d.Listings), func(i int) int { return d.Listings[i].ID }) }
func (d *Dataset) NextReportID() int  { return nextID(len(d.Reports), func(i int) int { return d.Reports[i].ID }) }

// nextID is 1 for an empty collection, else max(id)+1. IDs are never reused
// after deletion.
func nextID(n int, id func(int) int) int {
	next := 1
	for i := 0; i < n; i++ {
		if v := id(i); v >= next {
			next = v + 1
		}
	}
	return next
}

// Store is the single source of truth for all entities. One instance is
// constructed at startup and handed to the repositories; mutations hold the
// lock across the read-modify-write and the synchronous file rewrite.
type Store struct {
	mu   sync.Mutex
	path string
	data Dataset
}

// Open loads the snapshot at path, rebuilding and writing defaults when the
// file is missing, unreadable, or has no users. Load failures never abort
// startup; a corrupt snapshot is replaced.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	s := &Store{path: path}
	s.data = load(path)
	// Re-persist so a partially-valid file is normalized on disk as well.
	if err := s.persist(); err != nil {
		return nil, err
	}
	return s, nil
}

func load(path string) Dataset {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[store] unreadable snapshot %s, rebuilding defaults: %v", path, err)
		}
		return buildDefaults()
	}

	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil || len(d.Users) == 0 {
		log.Printf("[store] corrupt snapshot %s, rebuilding defaults", path)
		return buildDefaults()
	}
	if d.Listings == nil {
		d.Listings = []domain.Listing{}
	}
	if d.Reports == nil {
		d.Reports = []domain.Report{}
	}
	return d
}

// View runs fn against the dataset under the lock. fn must copy out anything
// it keeps; the repositories return those copies, never internal state.
func (s *Store) View(fn func(d *Dataset)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// Update runs fn under the lock and rewrites the snapshot file. A persist
// failure is fatal to the operation and propagates to the caller.
func (s *Store) Update(fn func(d *Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.data); err != nil {
		return err
	}
	return s.persist()
}

// persist writes the whole snapshot to a temp file and renames it over the
// original so a crash mid-write cannot leave a truncated file. Caller holds
// the lock.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Now is the timestamp persisted on every record. The fractional part is
// fixed-width so stored timestamps order lexically as well as by parse.
func Now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}
