// Package session remembers per-user export state between runs.
//
// The exporter offers the last accepted scale as the default for the next
// export. That value lives in a [Session], persisted through a [Store]:
//   - [FileStore]: JSON files under the user config directory, for the CLI
//   - [MongoStore]: a MongoDB collection, for the HTTP API
//
// # Usage
//
//	store, err := session.NewFileStore("") // ~/.config/scenesvg/sessions/
//	sess, err := session.LoadOrNew(ctx, store, session.DefaultID)
//
//	// Offer sess.Scale as the default; replace it only with a valid answer.
//	if sess.Accept(answer) {
//	    err = store.Set(ctx, sess)
//	}
//
// The stored scale is read, then replaced as a whole; it is never mutated in
// place.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/scale"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidID is returned for IDs that cannot name a stored session.
	ErrInvalidID = errors.New("invalid session id")
)

// DefaultID is the session used by the CLI.
const DefaultID = "default"

// DefaultTTL is the default session duration.
const DefaultTTL = 90 * 24 * time.Hour

// Session stores the export state of one user.
type Session struct {
	ID string `json:"id"`
	// Scale is the last accepted scale. It is always valid.
	Scale scale.Scale `json:"scale"`
	// LastScene is the path or name of the last exported scene.
	LastScene string    `json:"last_scene,omitempty"`
	Exports   int       `json:"exports"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New creates a session with a random ID and a 1:1 scale.
func New(ttl time.Duration) *Session {
	return NewWithID(uuid.NewString(), ttl)
}

// NewWithID creates a session with the given ID and a 1:1 scale.
func NewWithID(id string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Scale:     scale.New(1),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Accept parses text and, if it is a valid scale, makes it the session's
// scale. An invalid text leaves the session unchanged and returns false.
func (s *Session) Accept(text string) bool {
	parsed := scale.Parse(text)
	if !parsed.Valid() {
		return false
	}
	s.SetScale(parsed)
	return true
}

// SetScale replaces the scale. Invalid scales are ignored.
func (s *Session) SetScale(sc scale.Scale) {
	if !sc.Valid() {
		return
	}
	s.Scale = sc
	s.touch()
}

// RecordExport notes a finished export of scene.
func (s *Session) RecordExport(scene string) {
	s.LastScene = scene
	s.Exports++
	s.touch()
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Missing and expired sessions return
	// ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session, replacing any previous version.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}

// LoadOrNew returns the stored session with the given ID, or a fresh one
// that has not been stored yet.
func LoadOrNew(ctx context.Context, store Store, id string) (*Session, error) {
	sess, err := store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return NewWithID(id, DefaultTTL), nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ValidateID checks that id can be used as a storage key.
func ValidateID(id string) error {
	if id == "" || len(id) > 128 || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return apperrors.Wrap(apperrors.ErrCodeInvalidArgument, ErrInvalidID, "session id %q", id)
	}
	return nil
}
