// Package session persists Discogs credentials between requests.
//
// A session maps an opaque ID (sent by clients as a bearer token) to the
// Discogs username and personal access token it registered. Analytics
// requests without a session fall back to public catalog access.
package session

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
	"github.com/waxmatchapp/waxmatch-server/internal/id"
)

const keyPrefix = "session:"

// ErrNotFound is returned when no session exists for an ID.
var ErrNotFound = errors.New("session not found")

// Store wraps a Badger database holding sessions.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens (or creates) the session database at the given path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Disable Badger's internal logging
	opts.SyncWrites = true // Credentials must survive a crash

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create registers credentials and returns the new session.
func (s *Store) Create(ctx context.Context, username, token string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sessionID, err := id.Generate("ses")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:         sessionID,
		Username:   username,
		Token:      token,
		CreatedAt:  now,
		LastUsedAt: now,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+sessionID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("session created", "session_id", sessionID, "username", username)
	return session, nil
}

// Get retrieves a session by ID.
// Returns ErrNotFound if no session exists.
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var session domain.Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + sessionID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// Touch updates a session's last-used timestamp. Failures are logged, not
// returned; the timestamp is advisory.
func (s *Store) Touch(ctx context.Context, sessionID string) {
	if ctx.Err() != nil {
		return
	}

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return
	}
	session.LastUsedAt = time.Now().UTC()

	data, err := json.Marshal(session)
	if err != nil {
		return
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+sessionID), data)
	}); err != nil {
		s.logger.Warn("failed to touch session", "session_id", sessionID, "error", err)
	}
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + sessionID))
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("session deleted", "session_id", sessionID)
	return nil
}
