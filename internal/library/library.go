// Package library keeps a reader's favorites and personal notes.
//
// The data is keyed by an opaque client id and stored as JSON documents in a
// key-value Store, one document per client for favorites and one for notes.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	favoritesPrefix = "tanpinar-favorites:"
	notesPrefix     = "tanpinar-notes:"
)

// ErrMissingClient is returned when no client id is supplied.
var ErrMissingClient = errors.New("client id is required")

// Store is the persistence the library needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Library reads and writes favorites and notes.
type Library struct {
	store Store
	// Serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// New creates a library over store.
func New(store Store) *Library {
	return &Library{store: store}
}

// Favorites returns the client's favorite word ids in the order they were added.
func (l *Library) Favorites(ctx context.Context, client string) ([]int, error) {
	key, err := clientKey(favoritesPrefix, client)
	if err != nil {
		return nil, err
	}
	ids := []int{}
	if err := l.load(ctx, key, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// ToggleFavorite adds or removes wordID and reports whether it is now a favorite.
func (l *Library) ToggleFavorite(ctx context.Context, client string, wordID int) (bool, error) {
	key, err := clientKey(favoritesPrefix, client)
	if err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ids := []int{}
	if err := l.load(ctx, key, &ids); err != nil {
		return false, err
	}

	kept := ids[:0]
	removed := false
	for _, id := range ids {
		if id == wordID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		kept = append(kept, wordID)
	}

	if err := l.save(ctx, key, kept); err != nil {
		return false, err
	}
	return !removed, nil
}

// Notes returns every note the client has written, keyed by word id.
func (l *Library) Notes(ctx context.Context, client string) (map[int]string, error) {
	key, err := clientKey(notesPrefix, client)
	if err != nil {
		return nil, err
	}
	notes := map[int]string{}
	if err := l.load(ctx, key, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Note returns the client's note on wordID, or "" when there is none.
func (l *Library) Note(ctx context.Context, client string, wordID int) (string, error) {
	notes, err := l.Notes(ctx, client)
	if err != nil {
		return "", err
	}
	return notes[wordID], nil
}

// SaveNote stores text as the note on wordID. Blank text removes the note.
func (l *Library) SaveNote(ctx context.Context, client string, wordID int, text string) error {
	key, err := clientKey(notesPrefix, client)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	notes := map[int]string{}
	if err := l.load(ctx, key, &notes); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		delete(notes, wordID)
	} else {
		notes[wordID] = text
	}
	if len(notes) == 0 {
		return l.store.Delete(ctx, key)
	}
	return l.save(ctx, key, notes)
}

// NotedWords returns the ids the client has notes on, ascending.
func (l *Library) NotedWords(ctx context.Context, client string) ([]int, error) {
	notes, err := l.Notes(ctx, client)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(notes))
	for id := range notes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (l *Library) load(ctx context.Context, key string, v interface{}) error {
	raw, ok, err := l.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	// A corrupt document reads as empty and is overwritten on the next save.
	if err := json.Unmarshal(raw, v); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Discarding unreadable library document")
	}
	return nil
}

func (l *Library) save(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := l.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func clientKey(prefix, client string) (string, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return "", ErrMissingClient
	}
	return prefix + client, nil
}
