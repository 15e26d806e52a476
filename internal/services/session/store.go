// Package session tracks who is signed in on this device and which mark they
// prefer to play.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/mcoot/tictacgo/internal/dependencies/clock"
	"github.com/mcoot/tictacgo/internal/model"
	"github.com/mcoot/tictacgo/internal/services/stats"
	"github.com/mcoot/tictacgo/internal/storage"
)

// State is a point-in-time view of the session for presentation layers
type State struct {
	Identity   model.Identity
	Mark       model.Mark
	SignedInAt time.Time // Zero for guests
	Stats      model.LedgerEntry
}

// IsGuest returns true when nobody is signed in
func (s State) IsGuest() bool {
	return s.Identity.IsGuest()
}

// Store owns the current identity and mark preference. Storage faults never
// fail an operation: it completes against defaults and returns an error
// wrapping model.ErrStorageFault.
type Store struct {
	storage storage.Storage
	ledger  *stats.Ledger
	clock   clock.Clock
	logger  *slog.Logger

	mu         sync.RWMutex
	identity   model.Identity
	mark       model.Mark
	signedInAt time.Time
}

// New creates a Store in the guest state
func New(store storage.Storage, ledger *stats.Ledger, clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		storage: store,
		ledger:  ledger,
		clock:   clk,
		logger:  logger.With(slog.String("component", "session-store")),
		mark:    model.DefaultMark,
	}
}

// SignIn makes raw (after normalization) the current identity, remembers it
// for the next start, and loads its mark preference and stats
func (s *Store) SignIn(ctx context.Context, raw string) (model.Identity, error) {
	id, err := model.NormalizeIdentity(raw)
	if err != nil {
		return model.GuestIdentity, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var warnings *multierror.Error
	now := s.clock.Now()
	record := model.SessionRecord{Identity: id, SignedInAt: now}
	if err := storage.SetJSON(ctx, s.storage, storage.SessionKey, record); err != nil {
		warnings = multierror.Append(warnings, s.fault("save session", id, err))
	}

	if err := s.activate(ctx, id, now); err != nil {
		warnings = multierror.Append(warnings, err)
	}

	s.logger.Info("signed in", slog.String("identity", string(id)))
	return id, warnings.ErrorOrNil()
}

// SignOut returns to the guest state. Stored stats and preferences are kept.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.identity
	s.identity = model.GuestIdentity
	s.mark = model.DefaultMark
	s.signedInAt = time.Time{}
	s.ledger.Clear()

	if err := s.storage.Remove(ctx, storage.SessionKey); err != nil {
		return s.fault("remove session", previous, err)
	}

	if !previous.IsGuest() {
		s.logger.Info("signed out", slog.String("identity", string(previous)))
	}
	return nil
}

// SetMarkPreference changes the preferred mark. It is persisted only while
// signed in; guests keep it in memory.
func (s *Store) SetMarkPreference(ctx context.Context, mark model.Mark) error {
	if !mark.IsValid() {
		return model.ErrInvalidMark
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mark = mark
	if s.identity.IsGuest() {
		return nil
	}

	if err := storage.SetJSON(ctx, s.storage, storage.PreferenceKey(s.identity), mark); err != nil {
		return s.fault("save preference", s.identity, err)
	}
	return nil
}

// RestoreSession signs the last remembered identity back in, if any. It is
// called once when a process starts.
func (s *Store) RestoreSession(ctx context.Context) (model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var record model.SessionRecord
	err := storage.GetJSON(ctx, s.storage, storage.SessionKey, &record)
	if errors.Is(err, model.ErrRecordNotFound) {
		return model.GuestIdentity, nil
	}
	if err != nil {
		return model.GuestIdentity, s.fault("restore session", model.GuestIdentity, err)
	}

	id, err := model.NormalizeIdentity(string(record.Identity))
	if err != nil {
		return model.GuestIdentity, s.fault("restore session", model.GuestIdentity, err)
	}

	warn := s.activate(ctx, id, record.SignedInAt)
	s.logger.Debug("session restored", slog.String("identity", string(id)))
	return id, warn
}

// Current returns the signed-in identity, or the guest identity
func (s *Store) Current() model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// MarkPreference returns the preferred mark
func (s *Store) MarkPreference() model.Mark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mark
}

// Snapshot returns the current session state with the cached stats
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := State{
		Identity:   s.identity,
		Mark:       s.mark,
		SignedInAt: s.signedInAt,
	}
	if cachedID, entry := s.ledger.Current(); !s.identity.IsGuest() && cachedID == s.identity {
		state.Stats = entry
	}
	return state
}

// activate must be called with mu held
func (s *Store) activate(ctx context.Context, id model.Identity, signedInAt time.Time) error {
	var warnings *multierror.Error

	s.identity = id
	s.signedInAt = signedInAt
	s.mark = model.DefaultMark

	var mark model.Mark
	err := storage.GetJSON(ctx, s.storage, storage.PreferenceKey(id), &mark)
	switch {
	case err == nil && mark.IsValid():
		s.mark = mark
	case err == nil:
		warnings = multierror.Append(warnings,
			s.fault("load preference", id, fmt.Errorf("%w: %q", model.ErrInvalidMark, mark)))
	case !errors.Is(err, model.ErrRecordNotFound):
		warnings = multierror.Append(warnings, s.fault("load preference", id, err))
	}

	if _, err := s.ledger.Load(ctx, id); err != nil {
		warnings = multierror.Append(warnings, err)
	}

	return warnings.ErrorOrNil()
}

func (s *Store) fault(op string, id model.Identity, err error) error {
	s.logger.Warn("session storage fault",
		slog.String("op", op),
		slog.String("identity", string(id)),
		slog.Any("error", err),
	)
	return fmt.Errorf("%w: %s: %w", model.ErrStorageFault, op, err)
}
