// Package stats keeps per-identity win/loss/tie counters, split by the mark
// the player was using.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/mcoot/tictacgo/internal/model"
	"github.com/mcoot/tictacgo/internal/storage"
)

// Ledger reads and writes ledger entries and caches the entry of the
// identity it last loaded
type Ledger struct {
	storage storage.Storage
	logger  *slog.Logger

	mu       sync.RWMutex
	identity model.Identity
	entry    model.LedgerEntry
}

// New creates a new Ledger
func New(store storage.Storage, logger *slog.Logger) *Ledger {
	return &Ledger{
		storage: store,
		logger:  logger.With(slog.String("component", "stats-ledger")),
	}
}

// Load reads the entry for id and makes it the cached entry. A missing entry
// is the zero entry. On a storage fault the zero entry is returned together
// with an error wrapping model.ErrStorageFault and nothing is cached, so the
// next Record reads storage again.
func (l *Ledger) Load(ctx context.Context, id model.Identity) (model.LedgerEntry, error) {
	if id.IsGuest() {
		l.Clear()
		return model.LedgerEntry{}, nil
	}

	entry, err := l.read(ctx, id)
	if err != nil {
		l.Clear()
		return model.LedgerEntry{}, err
	}

	l.mu.Lock()
	l.identity = id
	l.entry = entry
	l.mu.Unlock()

	return entry, err
}

// Record adds one outcome for mark to id's entry and writes the whole entry
// back. Guests are a no-op. If the write fails the cached entry still
// reflects the increment. If the stored entry cannot be read nothing is
// written, and the returned entry is the zero entry plus this outcome.
func (l *Ledger) Record(ctx context.Context, id model.Identity, mark model.Mark, outcome model.Outcome) (model.LedgerEntry, error) {
	if !mark.IsValid() {
		return model.LedgerEntry{}, model.ErrInvalidMark
	}
	if !outcome.IsValid() {
		return model.LedgerEntry{}, fmt.Errorf("invalid outcome %q", outcome)
	}
	if id.IsGuest() {
		return model.LedgerEntry{}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.entry
	if l.identity != id {
		var err error
		if entry, err = l.read(ctx, id); err != nil {
			l.logger.Warn("outcome dropped",
				slog.String("identity", string(id)),
				slog.String("mark", string(mark)),
				slog.String("outcome", string(outcome)),
			)
			entry.Increment(mark, outcome)
			return entry, err
		}
	}

	var warnings *multierror.Error
	entry.Increment(mark, outcome)
	l.identity = id
	l.entry = entry

	if err := storage.SetJSON(ctx, l.storage, storage.StatsKey(id), entry); err != nil {
		warnings = multierror.Append(warnings, l.fault("write", id, err))
	}

	l.logger.Debug("outcome recorded",
		slog.String("identity", string(id)),
		slog.String("mark", string(mark)),
		slog.String("outcome", string(outcome)),
	)

	return entry, warnings.ErrorOrNil()
}

// ResetAll overwrites id's entry with the zero entry. Guests are a no-op.
func (l *Ledger) ResetAll(ctx context.Context, id model.Identity) error {
	if id.IsGuest() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.identity = id
	l.entry = model.LedgerEntry{}

	if err := storage.SetJSON(ctx, l.storage, storage.StatsKey(id), model.LedgerEntry{}); err != nil {
		return l.fault("reset", id, err)
	}

	l.logger.Info("stats reset", slog.String("identity", string(id)))
	return nil
}

// Current returns the cached identity and entry
func (l *Ledger) Current() (model.Identity, model.LedgerEntry) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.identity, l.entry
}

// Clear drops the cached entry without touching storage
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.identity = model.GuestIdentity
	l.entry = model.LedgerEntry{}
}

func (l *Ledger) read(ctx context.Context, id model.Identity) (model.LedgerEntry, error) {
	var entry model.LedgerEntry
	err := storage.GetJSON(ctx, l.storage, storage.StatsKey(id), &entry)
	switch {
	case err == nil:
		return entry, nil
	case errors.Is(err, model.ErrRecordNotFound):
		return model.LedgerEntry{}, nil
	default:
		return model.LedgerEntry{}, l.fault("read", id, err)
	}
}

func (l *Ledger) fault(op string, id model.Identity, err error) error {
	l.logger.Warn("stats storage fault",
		slog.String("op", op),
		slog.String("identity", string(id)),
		slog.Any("error", err),
	)
	return fmt.Errorf("%w: %s stats for %s: %w", model.ErrStorageFault, op, id, err)
}
