package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictacgo/internal/config"
	"github.com/mcoot/tictacgo/internal/model"
	redisstorage "github.com/mcoot/tictacgo/internal/storage/redis"
	"github.com/mcoot/tictacgo/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	_ = s.app.Close()
}

func (s *IntegrationSuite) play(indices ...int) *model.GameResult {
	var result *model.GameResult
	for _, idx := range indices {
		res, err := s.app.GameController.Move(s.ctx, idx)
		s.Require().NoError(err)
		s.Require().True(res.Applied, "move %d rejected: %v", idx, res.Rejected)
		result = res.Result
	}
	return result
}

// Test: a signed-in player wins as X and the win is visible after restart
func (s *IntegrationSuite) TestWinSurvivesRestart() {
	_, err := s.app.Session.SignIn(s.ctx, "Alice")
	s.Require().NoError(err)

	result := s.play(0, 3, 1, 4, 2)
	s.Require().NotNil(result)
	s.Equal(model.OutcomeWin, result.Outcome)

	restarted := s.app.Restart()
	defer func() { _ = restarted.Close() }()

	id, err := restarted.Session.RestoreSession(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.Identity("alice"), id)

	state := restarted.Session.Snapshot()
	s.Equal(model.StatRecord{Wins: 1}, state.Stats.X)
	s.Equal(model.StatRecord{}, state.Stats.O)
}

// Test: win as X, switch to O, lose, and both records are kept apart
func (s *IntegrationSuite) TestStatsSplitByMark() {
	_, _ = s.app.Session.SignIn(s.ctx, "carol")

	s.play(0, 3, 1, 4, 2)

	s.app.GameController.NewGame(s.ctx)
	s.Require().NoError(s.app.GameController.ChooseMark(s.ctx, model.MarkO))
	// O moves first; X completes the middle column
	result := s.play(0, 1, 2, 4, 3, 7)
	s.Equal(model.OutcomeLoss, result.Outcome)

	entry, err := s.app.Ledger.Load(s.ctx, "carol")
	s.Require().NoError(err)
	s.Equal(model.StatRecord{Wins: 1}, entry.X)
	s.Equal(model.StatRecord{Losses: 1}, entry.O)
}

// Test: reset mid-game never touches stats
func (s *IntegrationSuite) TestResetMidGame() {
	_, _ = s.app.Session.SignIn(s.ctx, "alice")
	s.play(0, 4)

	g := s.app.GameController.NewGame(s.ctx)
	s.True(g.Board.IsBlank())

	entry, err := s.app.Ledger.Load(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(entry.IsZero())
}

// Test: guest picks O, then signs in and gets the stored default
func (s *IntegrationSuite) TestGuestMarkThenSignIn() {
	s.Require().NoError(s.app.GameController.ChooseMark(s.ctx, model.MarkO))
	s.Equal(0, s.app.MemoryStorage.Len())

	_, err := s.app.Session.SignIn(s.ctx, "dave")
	s.Require().NoError(err)
	s.Equal(model.MarkX, s.app.Session.MarkPreference())
}

// Test: signing out keeps stats for the next sign-in
func (s *IntegrationSuite) TestSignOutAndBack() {
	_, _ = s.app.Session.SignIn(s.ctx, "alice")
	s.play(0, 3, 1, 4, 2)
	s.Require().NoError(s.app.Session.SignOut(s.ctx))

	s.app.GameController.NewGame(s.ctx)
	guestResult := s.play(0, 3, 1, 4, 2)
	s.False(guestResult.Recorded)

	_, _ = s.app.Session.SignIn(s.ctx, "ALICE")
	s.Equal(1, s.app.Session.Snapshot().Stats.X.Wins)
}

func (s *IntegrationSuite) TestEventsReachHub() {
	s.Equal(0, s.app.Hub.ClientCount())
	// Publishing with no clients must not block
	s.play(0, 3, 1, 4, 2)
}

func TestNewWithSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tictac.db")

	app, err := New(Config{StorageType: StorageTypeSQLite, SQLitePath: path, Logger: testutil.NopLogger()})
	require.NoError(t, err)

	_, err = app.Session.SignIn(ctx, "erin")
	require.NoError(t, err)
	_, err = app.Ledger.Record(ctx, "erin", model.MarkO, model.OutcomeTie)
	require.NoError(t, err)
	require.NoError(t, app.Close())

	reopened, err := New(Config{StorageType: StorageTypeSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	id, err := reopened.Session.RestoreSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Identity("erin"), id)
	assert.Equal(t, 1, reopened.Session.Snapshot().Stats.O.Ties)
}

func TestNewWithRedis(t *testing.T) {
	mini := miniredis.RunT(t)
	ctx := context.Background()

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &redisCfg})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	_, err = app.Session.SignIn(ctx, "frank")
	require.NoError(t, err)
	assert.True(t, mini.Exists("tictac:session:user"))
}

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.NotNil(t, app.Storage)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{StorageType: "postgres"})
	assert.Error(t, err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)

	_, err = New(Config{StorageType: StorageTypeSQLite})
	assert.Error(t, err)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.Config{Storage: config.StorageRedis, RedisURL: "redis://x:6379"}, nil)

	require.NotNil(t, cfg.RedisConfig)
	assert.Equal(t, "redis://x:6379", cfg.RedisConfig.URL)
	assert.Equal(t, StorageTypeRedis, cfg.StorageType)

	sqliteCfg := ConfigFrom(config.Config{Storage: config.StorageSQLite, SQLitePath: "/tmp/t.db"}, nil)
	assert.Nil(t, sqliteCfg.RedisConfig)
	assert.Equal(t, "/tmp/t.db", sqliteCfg.SQLitePath)
}
