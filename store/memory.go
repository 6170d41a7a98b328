package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	models "github.com/mwangikb/event-planner-go/models"
)

// MemoryEventStore keeps records in a map. It backs tests and store-less
// local runs; the sorting and not-found semantics match the Mongo store.
type MemoryEventStore struct {
	mu     sync.Mutex
	nextID int
	events map[string]models.Event
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{events: make(map[string]models.Event)}
}

func (s *MemoryEventStore) List(_ context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]models.Event, 0, len(s.events))
	for id, ev := range s.events {
		ev.ID = id
		events = append(events, ev)
	}
	SortEvents(events)
	return events, nil
}

func (s *MemoryEventStore) Get(_ context.Context, id string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[id]
	if !ok {
		return models.Event{}, ErrNotFound
	}
	ev.ID = id
	return ev, nil
}

func (s *MemoryEventStore) Create(_ context.Context, ev models.Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := fmt.Sprintf("ev-%04d", s.nextID)
	ev.ID = ""
	ev.CreatedAt = time.Now().UTC()
	s.events[id] = ev
	return id, nil
}

func (s *MemoryEventStore) Update(_ context.Context, id string, ev models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.events[id]
	if !ok {
		return ErrNotFound
	}
	ev.ID = ""
	ev.CreatedAt = existing.CreatedAt
	s.events[id] = ev
	return nil
}

func (s *MemoryEventStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *MemoryEventStore) SetImageURL(_ context.Context, id string, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[id]
	if !ok {
		return ErrNotFound
	}
	ev.ImageURL = url
	s.events[id] = ev
	return nil
}

// MemorySessionStore is the in-memory face of the session KV store.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.Session)}
}

func (s *MemorySessionStore) Put(_ context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || !time.Now().Before(sess.ExpiresAt) {
		delete(s.sessions, id)
		return models.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// MemoryBlobStore fakes the image store for tests: uploads become
// memory:// URLs under the configured bucket.
type MemoryBlobStore struct {
	mu     sync.Mutex
	Bucket string
	blobs  map[string][]byte
}

func NewMemoryBlobStore(bucket string) *MemoryBlobStore {
	return &MemoryBlobStore{Bucket: bucket, blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Upload(_ context.Context, data []byte, filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url := fmt.Sprintf("memory://%s/%d-%s", s.Bucket, len(s.blobs)+1, filename)
	s.blobs[url] = data
	return url, nil
}

func (s *MemoryBlobStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !strings.HasPrefix(url, "memory://"+s.Bucket+"/") {
		return nil
	}
	delete(s.blobs, url)
	return nil
}

// Len reports how many blobs are held; used by tests.
func (s *MemoryBlobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
