package bbolt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/tycho-games/magnate/internal/game/domain"
)

const eventBucket = "event"

// Store provides a BoltDB-backed event journal.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append persists one session event.
func (s *Store) Append(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(event.SessionID) == "" {
		return fmt.Errorf("event session id is required")
	}
	if event.Seq == 0 {
		return fmt.Errorf("event sequence is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(eventBucket))
		if bucket == nil {
			return fmt.Errorf("event bucket is missing")
		}
		return bucket.Put(eventKey(event.SessionID, event.Seq), payload)
	})
}

// List returns a session's events from the given sequence onward, in
// sequence order. A limit of zero or less returns everything.
func (s *Store) List(ctx context.Context, sessionID string, fromSeq uint64, limit int) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}

	prefix := []byte(sessionID + "/")
	start := eventKey(sessionID, fromSeq)

	var events []domain.Event
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(eventBucket))
		if bucket == nil {
			return fmt.Errorf("event bucket is missing")
		}
		cur := bucket.Cursor()
		for key, payload := cur.Seek(start); key != nil && bytes.HasPrefix(key, prefix); key, payload = cur.Next() {
			var event domain.Event
			if err := json.Unmarshal(payload, &event); err != nil {
				return fmt.Errorf("unmarshal event %s: %w", key, err)
			}
			events = append(events, event)
			if limit > 0 && len(events) >= limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(eventBucket))
		if err != nil {
			return fmt.Errorf("create event bucket: %w", err)
		}
		return nil
	})
}

// eventKey orders events per session: a session prefix followed by the
// zero-padded sequence keeps bbolt's byte order equal to event order.
func eventKey(sessionID string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s/%020d", sessionID, seq))
}
