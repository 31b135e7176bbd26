package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/palemoky/truco/internal/types"
)

const defaultHistoryLimit = 20

// History 已结束对局的 SQLite 记录
type History struct {
	db *sql.DB
}

// NewHistory 打开（或创建）数据库并建表
func NewHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	// WAL 模式允许并发读
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("设置 WAL 失败: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("设置 busy_timeout 失败: %w", err)
	}
	h := &History{db: db}
	if err := h.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("建表失败: %w", err)
	}
	return h, nil
}

func (h *History) migrate() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS matches (
			id          TEXT PRIMARY KEY,
			room_code   TEXT NOT NULL,
			solo        INTEGER NOT NULL DEFAULT 0,
			winner_side INTEGER NOT NULL,
			score_a     INTEGER NOT NULL,
			score_b     INTEGER NOT NULL,
			hands       INTEGER NOT NULL,
			finished_at DATETIME NOT NULL
		);
		CREATE TABLE IF NOT EXISTS match_players (
			match_id  TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			seat      INTEGER NOT NULL,
			player_id TEXT NOT NULL,
			name      TEXT NOT NULL,
			side      INTEGER NOT NULL,
			is_ai     INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (match_id, seat)
		);
		CREATE INDEX IF NOT EXISTS idx_matches_finished_at ON matches(finished_at);
	`)
	return err
}

// RecordMatch 写入一局结果
func (h *History) RecordMatch(ctx context.Context, result *types.MatchResult) error {
	if h == nil || result == nil {
		return nil
	}
	if len(result.Scores) != 2 {
		return fmt.Errorf("比分格式错误: %v", result.Scores)
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO matches (id, room_code, solo, winner_side, score_a, score_b, hands, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.RoomCode, result.Solo, result.WinnerSide,
		result.Scores[0], result.Scores[1], result.Hands, result.FinishedAt.UTC(),
	); err != nil {
		return fmt.Errorf("写入对局失败: %w", err)
	}

	for _, p := range result.Participants {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO match_players (match_id, seat, player_id, name, side, is_ai)
			VALUES (?, ?, ?, ?, ?, ?)`,
			result.ID, p.Seat, p.ID, p.Name, p.Side, p.IsAI,
		); err != nil {
			return fmt.Errorf("写入座位失败: %w", err)
		}
	}
	return tx.Commit()
}

// ListRecent 按结束时间倒序返回最近的对局
func (h *History) ListRecent(ctx context.Context, limit int) ([]*types.MatchResult, error) {
	matches := make([]*types.MatchResult, 0)
	if h == nil {
		return matches, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, room_code, solo, winner_side, score_a, score_b, hands, finished_at
		FROM matches ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m              types.MatchResult
			scoreA, scoreB int
			finishedAt     time.Time
		)
		if err := rows.Scan(&m.ID, &m.RoomCode, &m.Solo, &m.WinnerSide, &scoreA, &scoreB, &m.Hands, &finishedAt); err != nil {
			return nil, err
		}
		m.Scores = []int{scoreA, scoreB}
		m.FinishedAt = finishedAt
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range matches {
		if err := h.loadParticipants(ctx, m); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (h *History) loadParticipants(ctx context.Context, m *types.MatchResult) error {
	rows, err := h.db.QueryContext(ctx, `
		SELECT seat, player_id, name, side, is_ai
		FROM match_players WHERE match_id = ? ORDER BY seat`, m.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p types.MatchParticipant
		if err := rows.Scan(&p.Seat, &p.ID, &p.Name, &p.Side, &p.IsAI); err != nil {
			return err
		}
		m.Participants = append(m.Participants, p)
	}
	return rows.Err()
}

// Close 关闭数据库
func (h *History) Close() error {
	if h == nil {
		return nil
	}
	return h.db.Close()
}

// Recorders 将对局结果依次交给多个记录器
type Recorders []types.ResultRecorder

// RecordMatch 调用所有记录器，合并错误
func (rs Recorders) RecordMatch(ctx context.Context, result *types.MatchResult) error {
	var errs []error
	for _, r := range rs {
		if r == nil {
			continue
		}
		if err := r.RecordMatch(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
