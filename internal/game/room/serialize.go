package room

import (
	"context"
	"time"

	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/types"
)

// Summary 房间目录记录
func (r *Room) Summary() *types.RoomSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.summaryLocked()
}

func (r *Room) summaryLocked() *types.RoomSummary {
	s := &types.RoomSummary{
		Code:        r.Code,
		Solo:        r.Solo,
		PlayerCount: r.occupiedLocked(),
		MaxPlayers:  len(r.Seats),
		Playing:     r.State == RoomStatePlaying,
		UpdatedAt:   time.Now(),
	}
	if r.game != nil {
		scores := r.game.Scores()
		s.Scores = scores[:]
	}
	return s
}

// saveLocked 异步写入房间目录
func (r *Room) saveLocked() {
	store := r.opts.Store
	if store == nil {
		return
	}
	summary := r.summaryLocked()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := store.SaveRoom(ctx, summary); err != nil {
			logger.Warnf("保存房间 %s 失败: %v", summary.Code, err)
		}
	}()
}

// forgetRoom 从房间目录删除
func (rm *RoomManager) forgetRoom(code string) {
	store := rm.opts.Store
	if store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := store.DeleteRoom(ctx, code); err != nil {
			logger.Warnf("删除房间 %s 失败: %v", code, err)
		}
	}()
}
