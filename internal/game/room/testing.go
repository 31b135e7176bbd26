//go:build !production

package room

import (
	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/session"
)

// GameSnapshot 测试用：返回公开状态和所有座位的手牌，未开局时 ok 为 false
func (r *Room) GameSnapshot() (state session.PublicState, hands [][]card.Card, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.game == nil {
		return session.PublicState{}, nil, false
	}
	hands = make([][]card.Card, len(r.Seats))
	for i := range r.Seats {
		hands[i] = r.game.Hand(i)
	}
	return r.game.PublicState(), hands, true
}

// PendingTasks 测试用：未触发的延时任务数
func (r *Room) PendingTasks() int {
	return r.sched.Pending()
}

// IsClosed 测试用：房间是否已关闭
func (r *Room) IsClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}
