package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	depmocks "github.com/mcoot/tictacgo/internal/dependencies/mocks"
	"github.com/mcoot/tictacgo/internal/model"
	"github.com/mcoot/tictacgo/internal/services/stats"
	"github.com/mcoot/tictacgo/internal/storage"
	"github.com/mcoot/tictacgo/internal/storage/memory"
	"github.com/mcoot/tictacgo/internal/storage/mocks"
	"github.com/mcoot/tictacgo/internal/testutil"
)

var startTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type StoreSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *depmocks.MockClock
	ledger  *stats.Ledger
	store   *Store
	ctx     context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = depmocks.NewMockClock(startTime)
	s.store = s.newStore()
	s.ctx = context.Background()
}

// newStore simulates a fresh process over the same storage
func (s *StoreSuite) newStore() *Store {
	s.ledger = stats.New(s.storage, testutil.NopLogger())
	return New(s.storage, s.ledger, s.clock, testutil.NopLogger())
}

func (s *StoreSuite) TestStartsAsGuest() {
	s.True(s.store.Current().IsGuest())
	s.Equal(model.MarkX, s.store.MarkPreference())
	s.True(s.store.Snapshot().IsGuest())
}

// SignIn tests

func (s *StoreSuite) TestSignInNormalizesIdentity() {
	id, err := s.store.SignIn(s.ctx, "  Alice ")
	s.Require().NoError(err)

	s.Equal(model.Identity("alice"), id)
	s.Equal(model.Identity("alice"), s.store.Current())
}

func (s *StoreSuite) TestSignInPersistsSessionPointer() {
	_, _ = s.store.SignIn(s.ctx, "alice")

	var record model.SessionRecord
	s.Require().NoError(storage.GetJSON(s.ctx, s.storage, storage.SessionKey, &record))
	s.Equal(model.Identity("alice"), record.Identity)
	s.Equal(startTime, record.SignedInAt)
}

func (s *StoreSuite) TestSignInEmptyIdentityFails() {
	_, _ = s.store.SignIn(s.ctx, "alice")

	_, err := s.store.SignIn(s.ctx, "   ")
	s.ErrorIs(err, model.ErrInvalidIdentity)

	// Nothing changed
	s.Equal(model.Identity("alice"), s.store.Current())
}

func (s *StoreSuite) TestSignInLoadsPreferenceAndStats() {
	s.Require().NoError(storage.SetJSON(s.ctx, s.storage, storage.PreferenceKey("alice"), model.MarkO))
	s.Require().NoError(storage.SetJSON(s.ctx, s.storage, storage.StatsKey("alice"),
		model.LedgerEntry{O: model.StatRecord{Wins: 3}}))

	_, err := s.store.SignIn(s.ctx, "ALICE")
	s.Require().NoError(err)

	state := s.store.Snapshot()
	s.Equal(model.MarkO, state.Mark)
	s.Equal(3, state.Stats.O.Wins)
	s.Equal(startTime, state.SignedInAt)
}

func (s *StoreSuite) TestSignInDefaultsPreferenceToX() {
	_ = s.store.SetMarkPreference(s.ctx, model.MarkO)

	_, err := s.store.SignIn(s.ctx, "dave")
	s.Require().NoError(err)

	s.Equal(model.MarkX, s.store.MarkPreference())
}

func (s *StoreSuite) TestSignInWithCorruptPreferenceWarns() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.PreferenceKey("alice"), []byte(`"Z"`)))

	_, err := s.store.SignIn(s.ctx, "alice")
	s.True(model.IsWarning(err))
	s.Equal(model.MarkX, s.store.MarkPreference())
	s.Equal(model.Identity("alice"), s.store.Current())
}

// SignOut tests

func (s *StoreSuite) TestSignOutReturnsToGuest() {
	_, _ = s.store.SignIn(s.ctx, "alice")
	_ = s.store.SetMarkPreference(s.ctx, model.MarkO)

	s.Require().NoError(s.store.SignOut(s.ctx))

	state := s.store.Snapshot()
	s.True(state.IsGuest())
	s.Equal(model.MarkX, state.Mark)
	s.True(state.Stats.IsZero())
	s.True(state.SignedInAt.IsZero())
}

func (s *StoreSuite) TestSignOutKeepsStoredData() {
	_, _ = s.store.SignIn(s.ctx, "alice")
	_ = s.store.SetMarkPreference(s.ctx, model.MarkO)
	_, _ = s.ledger.Record(s.ctx, "alice", model.MarkO, model.OutcomeWin)

	_ = s.store.SignOut(s.ctx)

	_, err := s.storage.Get(s.ctx, storage.SessionKey)
	s.ErrorIs(err, model.ErrRecordNotFound)

	_, _ = s.store.SignIn(s.ctx, "alice")
	state := s.store.Snapshot()
	s.Equal(model.MarkO, state.Mark)
	s.Equal(1, state.Stats.O.Wins)
}

func (s *StoreSuite) TestSignOutAsGuest() {
	s.NoError(s.store.SignOut(s.ctx))
	s.True(s.store.Current().IsGuest())
}

// SetMarkPreference tests

func (s *StoreSuite) TestSetMarkPreferencePersistsWhenSignedIn() {
	_, _ = s.store.SignIn(s.ctx, "alice")

	s.Require().NoError(s.store.SetMarkPreference(s.ctx, model.MarkO))

	var stored model.Mark
	s.Require().NoError(storage.GetJSON(s.ctx, s.storage, storage.PreferenceKey("alice"), &stored))
	s.Equal(model.MarkO, stored)
}

func (s *StoreSuite) TestSetMarkPreferenceGuestIsMemoryOnly() {
	s.Require().NoError(s.store.SetMarkPreference(s.ctx, model.MarkO))

	s.Equal(model.MarkO, s.store.MarkPreference())
	s.Equal(0, s.storage.Len())
}

func (s *StoreSuite) TestSetMarkPreferenceRejectsNone() {
	err := s.store.SetMarkPreference(s.ctx, model.MarkNone)
	s.ErrorIs(err, model.ErrInvalidMark)
	s.Equal(model.MarkX, s.store.MarkPreference())
}

func (s *StoreSuite) TestGuestMarkThenSignInUsesStoredPreference() {
	// Guest picks O, then signs in as a new user
	s.Require().NoError(s.store.SetMarkPreference(s.ctx, model.MarkO))
	s.Equal(0, s.storage.Len())

	_, err := s.store.SignIn(s.ctx, "dave")
	s.Require().NoError(err)
	s.Equal(model.MarkX, s.store.MarkPreference())

	_, err = s.storage.Get(s.ctx, storage.PreferenceKey("dave"))
	s.ErrorIs(err, model.ErrRecordNotFound)
}

// RestoreSession tests

func (s *StoreSuite) TestRestoreSessionNoPointer() {
	id, err := s.store.RestoreSession(s.ctx)
	s.Require().NoError(err)
	s.True(id.IsGuest())
}

func (s *StoreSuite) TestRestoreSessionAfterRestart() {
	_, _ = s.store.SignIn(s.ctx, "alice")
	_ = s.store.SetMarkPreference(s.ctx, model.MarkO)
	_, _ = s.ledger.Record(s.ctx, "alice", model.MarkO, model.OutcomeTie)

	s.clock.Advance(time.Hour)
	restarted := s.newStore()

	id, err := restarted.RestoreSession(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.Identity("alice"), id)
	state := restarted.Snapshot()
	s.Equal(model.MarkO, state.Mark)
	s.Equal(1, state.Stats.O.Ties)
	s.Equal(startTime, state.SignedInAt)
}

func (s *StoreSuite) TestRestoreSessionAfterSignOut() {
	_, _ = s.store.SignIn(s.ctx, "alice")
	_ = s.store.SignOut(s.ctx)

	id, err := s.newStore().RestoreSession(s.ctx)
	s.Require().NoError(err)
	s.True(id.IsGuest())
}

func (s *StoreSuite) TestRestoreSessionCorruptPointer() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.SessionKey, []byte(`{"identity":"  "}`)))

	id, err := s.store.RestoreSession(s.ctx)
	s.True(model.IsWarning(err))
	s.True(id.IsGuest())
}

// Fault injection

type StoreFaultSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	storage *mocks.MockStorage
	store   *Store
	ctx     context.Context
}

func TestStoreFaultSuite(t *testing.T) {
	suite.Run(t, new(StoreFaultSuite))
}

func (s *StoreFaultSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.storage = mocks.NewMockStorage(s.ctrl)
	ledger := stats.New(s.storage, testutil.NopLogger())
	s.store = New(s.storage, ledger, depmocks.NewMockClock(startTime), testutil.NopLogger())
	s.ctx = context.Background()
}

var errUnavailable = errors.New("backend unavailable")

func (s *StoreFaultSuite) TestSignInWithStorageDownStillSignsIn() {
	s.storage.EXPECT().Set(gomock.Any(), storage.SessionKey, gomock.Any()).Return(errUnavailable)
	s.storage.EXPECT().Get(gomock.Any(), storage.PreferenceKey("alice")).Return(nil, errUnavailable)
	s.storage.EXPECT().Get(gomock.Any(), storage.StatsKey("alice")).Return(nil, errUnavailable)

	id, err := s.store.SignIn(s.ctx, "alice")

	s.Equal(model.Identity("alice"), id)
	s.True(model.IsWarning(err))
	s.Len(model.Warnings(err), 3)

	state := s.store.Snapshot()
	s.Equal(model.Identity("alice"), state.Identity)
	s.Equal(model.MarkX, state.Mark)
	s.True(state.Stats.IsZero())
}

func (s *StoreFaultSuite) TestSetMarkPreferenceFaultKeepsMemoryValue() {
	s.storage.EXPECT().Set(gomock.Any(), storage.SessionKey, gomock.Any()).Return(nil)
	s.storage.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, model.ErrRecordNotFound).Times(2)
	s.storage.EXPECT().Set(gomock.Any(), storage.PreferenceKey("alice"), []byte(`"O"`)).Return(errUnavailable)

	_, err := s.store.SignIn(s.ctx, "alice")
	s.Require().NoError(err)

	err = s.store.SetMarkPreference(s.ctx, model.MarkO)
	s.True(model.IsWarning(err))
	s.Equal(model.MarkO, s.store.MarkPreference())
}

func (s *StoreFaultSuite) TestSignOutFaultStillSignsOut() {
	s.storage.EXPECT().Remove(gomock.Any(), storage.SessionKey).Return(errUnavailable)

	err := s.store.SignOut(s.ctx)
	s.True(model.IsWarning(err))
	s.True(s.store.Current().IsGuest())
}

func (s *StoreFaultSuite) TestRestoreSessionFaultIsGuest() {
	s.storage.EXPECT().Get(gomock.Any(), storage.SessionKey).Return(nil, errUnavailable)

	id, err := s.store.RestoreSession(s.ctx)
	s.True(model.IsWarning(err))
	s.True(id.IsGuest())
}
