// Package journal provides a BoltDB-backed history of pingback attempts.
package journal

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	"pingback/internal/announce"
)

var attemptsBucket = []byte("attempts")

// Entry is one recorded attempt. Keys are the attempt's UUIDv7, so bucket
// order is start order.
type Entry struct {
	ID           string    `msgpack:"id"`
	Version      string    `msgpack:"version"`
	AnnouncePath string    `msgpack:"announce_path"`
	URL          string    `msgpack:"url"`
	Outcome      string    `msgpack:"outcome"`
	StatusCode   int       `msgpack:"status_code"`
	Announcement string    `msgpack:"announcement"`
	Error        string    `msgpack:"error,omitempty"`
	Started      time.Time `msgpack:"started"`
	Finished     time.Time `msgpack:"finished"`
}

// EntryFromResult converts a finished attempt to a journal entry.
func EntryFromResult(res announce.Result) Entry {
	return Entry{
		ID:           res.ID,
		Version:      res.Version,
		AnnouncePath: res.AnnouncePath,
		URL:          res.URL,
		Outcome:      string(res.Outcome),
		StatusCode:   res.StatusCode,
		Announcement: res.Announcement,
		Error:        res.Error,
		Started:      res.Started,
		Finished:     res.Finished,
	}
}

// Duration is how long the attempt ran.
func (e Entry) Duration() time.Duration {
	return e.Finished.Sub(e.Started)
}

// Store wraps a bbolt database of attempt entries.
type Store struct {
	db  *bolt.DB
	mu  sync.RWMutex
	log zerolog.Logger
}

// New opens or creates a BoltDB file at the given path.
func New(path string, log zerolog.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(attemptsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating attempts bucket: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Close closes the underlying BoltDB.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record implements announce.Recorder. Write errors are logged, not returned.
func (s *Store) Record(res announce.Result) {
	if err := s.Append(EntryFromResult(res)); err != nil {
		s.log.Error().Err(err).Str("attempt", res.ID).Msg("Failed to journal pingback attempt")
	}
}

// Append stores an entry under its ID.
func (s *Store) Append(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("entry has no id")
	}

	data, err := msgpack.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(attemptsBucket).Put([]byte(e.ID), data)
	})
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Store) List(limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(attemptsBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var e Entry
			if err := msgpack.Unmarshal(v, &e); err != nil {
				s.log.Warn().Err(err).Str("key", string(k)).Msg("Skipping corrupt entry")
				continue
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

// Prune deletes all but the newest keep entries and reports how many went.
func (s *Store) Prune(keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(attemptsBucket)

		var stale [][]byte
		seen := 0
		c := b.Cursor()
		for k, _ := c.Last(); k != nil; k, _ = c.Prev() {
			seen++
			if seen > keep {
				stale = append(stale, append([]byte(nil), k...))
			}
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Database error during prune")
		return 0, err
	}

	if removed > 0 {
		s.log.Debug().Int("removed", removed).Int("kept", keep).Msg("Journal pruned")
	}
	return removed, nil
}
