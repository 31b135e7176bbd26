package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/truco/internal/types"
)

func newTestLeaderboard(t *testing.T) *LeaderboardManager {
	t.Helper()
	client, _ := newTestRedis(t)
	return NewLeaderboardManager(client)
}

func TestLeaderboard_RecordGameResult_NewPlayer(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboard(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Alice", true, false))

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, "Alice", stats.PlayerName)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, WinPoints, stats.Score)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.InDelta(t, 100.0, stats.WinRate(), 0.001)
}

func TestLeaderboard_ScoreNeverNegative(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboard(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Alice", false, true))
	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Score)
	assert.Equal(t, -1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.SoloGames)
	assert.Equal(t, 1, stats.Losses)
}

func TestLeaderboard_StreakBonus(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboard(t)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, lm.RecordGameResult(ctx, "p1", "Alice", true, false))
	}
	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3*WinPoints+StreakBonus3, stats.Score)
	assert.Equal(t, 3, stats.MaxWinStreak)
}

func TestLeaderboard_RecordMatchAccumulatesByName(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboard(t)
	ctx := context.Background()

	// 每次连接的 ID 不同，名称相同
	for i, id := range []string{"conn-1", "conn-2", "conn-3"} {
		name := "Alice"
		if i == 1 {
			name = " alice "
		}
		result := &types.MatchResult{
			WinnerSide: 0,
			Participants: []types.MatchParticipant{
				{ID: id, Name: name, Seat: 0, Side: 0},
				{ID: id + "-anon", Name: "Jogador 2", Seat: 1, Side: 1, Anonymous: true},
			},
		}
		require.NoError(t, lm.RecordMatch(ctx, result))
	}

	stats, err := lm.GetPlayerStats(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.TotalGames)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3*WinPoints+StreakBonus3, stats.Score)

	stats, err = lm.GetPlayerStats(ctx, "jogador 2")
	require.NoError(t, err)
	assert.Nil(t, stats)

	stats, err = lm.GetPlayerStats(ctx, "conn-2-anon")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.TotalGames)
}

func TestPlayerKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ana", PlayerKey(types.MatchParticipant{ID: "x", Name: "  Ana "}))
	assert.Equal(t, "x", PlayerKey(types.MatchParticipant{ID: "x", Name: "Jogador 1", Anonymous: true}))
	assert.Equal(t, "x", PlayerKey(types.MatchParticipant{ID: "x", Name: "  "}))
}

func TestLeaderboard_RecordMatchSkipsAI(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboard(t)
	ctx := context.Background()

	result := &types.MatchResult{
		WinnerSide: 1,
		Participants: []types.MatchParticipant{
			{ID: "p1", Name: "Alice", Seat: 0, Side: 0},
			{ID: "p2", Name: "Bob", Seat: 1, Side: 1},
			{ID: "CPU 3", Name: "CPU 3", Seat: 3, Side: 1, IsAI: true},
		},
	}
	require.NoError(t, lm.RecordMatch(ctx, result))

	entries, err := lm.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].PlayerID)
	assert.Equal(t, "Bob", entries[0].PlayerName)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, WinPoints, entries[0].Score)
	assert.Equal(t, "alice", entries[1].PlayerID)

	rank, err := lm.GetPlayerRank(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rank)

	rank, err = lm.GetPlayerRank(ctx, "CPU 3")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rank)
}

func TestLeaderboard_LimitDefaults(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboard(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, lm.RecordGameResult(ctx, id, id, true, false))
	}

	entries, err := lm.GetLeaderboard(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = lm.GetLeaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestLeaderboard_NilClient(t *testing.T) {
	t.Parallel()

	lm := NewLeaderboardManager(nil)
	ctx := context.Background()

	assert.NoError(t, lm.RecordGameResult(ctx, "p1", "A", true, false))
	stats, err := lm.GetPlayerStats(ctx, "p1")
	assert.NoError(t, err)
	assert.Nil(t, stats)
	entries, err := lm.GetLeaderboard(ctx, 5)
	assert.NoError(t, err)
	assert.Empty(t, entries)
	rank, err := lm.GetPlayerRank(ctx, "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(-1), rank)
}
