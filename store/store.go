package store

import (
	"context"
	"errors"
	"sort"

	models "github.com/mwangikb/event-planner-go/models"
)

var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID means the identifier cannot possibly name a record.
	ErrInvalidID = errors.New("invalid id")
)

// EventStore is the document-store face of the event collection. Implemented
// by the Mongo store in production and the memory store in tests.
type EventStore interface {
	// List returns every record ordered by ascending event date, then
	// ascending start time; undated records come last.
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id string) (models.Event, error)
	// Create assigns CreatedAt and returns the new id.
	Create(ctx context.Context, ev models.Event) (string, error)
	// Update overwrites all mutable fields in one document write. CreatedAt
	// and id are preserved.
	Update(ctx context.Context, id string, ev models.Event) error
	Delete(ctx context.Context, id string) error
	// SetImageURL updates only the image reference (empty string unsets it).
	SetImageURL(ctx context.Context, id string, url string) error
}

// SessionStore is a key-value store with per-key expiry.
type SessionStore interface {
	Put(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (models.Session, error)
	Delete(ctx context.Context, id string) error
}

// BlobStore holds uploaded images and hands out public references.
type BlobStore interface {
	// Upload stores the blob under a collision-free generated name and
	// returns the public URL.
	Upload(ctx context.Context, data []byte, filename string) (string, error)
	// Delete removes the blob a previously returned URL points at. URLs not
	// produced by this store are skipped, not errors.
	Delete(ctx context.Context, url string) error
}

// SortEvents orders records the way List promises: date ascending, undated
// last, ties broken by lexicographic start time.
func SortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		di, dj := events[i].EventDate, events[j].EventDate
		switch {
		case di.IsZero() && dj.IsZero():
			return events[i].StartTime < events[j].StartTime
		case di.IsZero():
			return false
		case dj.IsZero():
			return true
		case !di.Equal(dj):
			return di.Before(dj)
		default:
			return events[i].StartTime < events[j].StartTime
		}
	})
}
