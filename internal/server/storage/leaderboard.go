package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/types"
)

const (
	// Redis key
	playerStatsKey    = "truco:player:stats:"
	leaderboardKey    = "truco:leaderboard:score"
	weeklyLeaderboard = "truco:leaderboard:weekly:"

	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// 积分规则
const (
	WinPoints  = 20  // 获胜
	LosePoints = -10 // 失败

	// 连胜加成
	StreakBonus3  = 5  // 3 连胜加成
	StreakBonus5  = 10 // 5 连胜加成
	StreakBonus10 = 20 // 10 连胜加成
)

// PlayerStats 玩家统计数据
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	TotalGames int `json:"total_games"` // 总场次
	Wins       int `json:"wins"`        // 胜场
	Losses     int `json:"losses"`      // 败场
	SoloGames  int `json:"solo_games"`  // 人机场次

	Score int `json:"score"` // 当前积分

	CurrentStreak int `json:"current_streak"` // 正数为连胜，负数为连败
	MaxWinStreak  int `json:"max_win_streak"` // 最大连胜

	LastPlayedAt int64 `json:"last_played_at"` // 最后游戏时间
	CreatedAt    int64 `json:"created_at"`     // 首次游戏时间
}

// WinRate 胜率（百分比）
func (s *PlayerStats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalGames) * 100
}

// LeaderboardManager 排行榜管理器，client 为 nil 时不记录
type LeaderboardManager struct {
	redis *redis.Client
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client}
}

// GetPlayerStats 获取玩家统计，未上榜返回 nil
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	if lm.redis == nil {
		return nil, nil
	}

	data, err := lm.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("反序列化玩家统计失败: %w", err)
	}
	return &stats, nil
}

// updateWinLossStats 更新胜负统计和连胜/连败，返回积分变化
func updateWinLossStats(stats *PlayerStats, isWinner bool) int {
	change := LosePoints
	if isWinner {
		stats.Wins++
		stats.CurrentStreak = max(1, stats.CurrentStreak+1)
		change = WinPoints + calculateStreakBonus(stats.CurrentStreak)
	} else {
		stats.Losses++
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
	}

	if stats.CurrentStreak > stats.MaxWinStreak {
		stats.MaxWinStreak = stats.CurrentStreak
	}
	return change
}

// calculateStreakBonus 计算连胜加成
func calculateStreakBonus(streak int) int {
	switch {
	case streak >= 10:
		return StreakBonus10
	case streak >= 5:
		return StreakBonus5
	case streak >= 3:
		return StreakBonus3
	default:
		return 0
	}
}

// RecordGameResult 记录一名玩家的对局结果
func (lm *LeaderboardManager) RecordGameResult(ctx context.Context, playerID, playerName string, isWinner, solo bool) error {
	if lm.redis == nil {
		return nil
	}

	stats, err := lm.GetPlayerStats(ctx, playerID)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	if stats == nil {
		stats = &PlayerStats{PlayerID: playerID, CreatedAt: now}
	}

	stats.PlayerName = playerName
	stats.TotalGames++
	stats.LastPlayedAt = now
	if solo {
		stats.SoloGames++
	}
	stats.Score = max(0, stats.Score+updateWinLossStats(stats, isWinner))

	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	year, week := time.Now().ISOWeek()
	weeklyKey := fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	member := redis.Z{Score: float64(stats.Score), Member: stats.PlayerID}

	_, err = lm.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, playerStatsKey+playerID, data, 0)
		pipe.ZAdd(ctx, leaderboardKey, member)
		pipe.ZAdd(ctx, weeklyKey, member)
		pipe.Expire(ctx, weeklyKey, 8*24*time.Hour)
		return nil
	})
	return err
}

// PlayerKey 排行榜中的玩家标识：有名称的玩家按名称（忽略大小写和首尾空白）累计，
// 匿名玩家只能按连接 ID 记录
func PlayerKey(p types.MatchParticipant) string {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if p.Anonymous || name == "" {
		return p.ID
	}
	return name
}

// RecordMatch 为对局中每个人类座位记录结果
func (lm *LeaderboardManager) RecordMatch(ctx context.Context, result *types.MatchResult) error {
	var errs []error
	for _, p := range result.Participants {
		if p.IsAI {
			continue
		}
		key := PlayerKey(p)
		if err := lm.RecordGameResult(ctx, key, p.Name, p.Side == result.WinnerSide, result.Solo); err != nil {
			errs = append(errs, fmt.Errorf("记录玩家 %s 失败: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// GetLeaderboard 获取总排行榜（从高到低）
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	entries := make([]protocol.LeaderboardEntry, 0)
	if lm.redis == nil {
		return entries, nil
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	limit = min(limit, maxLeaderboardLimit)

	results, err := lm.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	for i, result := range results {
		playerID, ok := result.Member.(string)
		if !ok {
			continue
		}
		stats, err := lm.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}
		entries = append(entries, protocol.LeaderboardEntry{
			Rank:       i + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Score:      int(result.Score),
			Wins:       stats.Wins,
			WinRate:    stats.WinRate(),
		})
	}
	return entries, nil
}

// GetPlayerRank 获取玩家排名，未上榜返回 -1
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	if lm.redis == nil {
		return -1, nil
	}
	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}
