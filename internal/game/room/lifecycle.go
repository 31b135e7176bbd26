package room

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/types"
)

// takeSeatLocked 让客户端坐到指定座位
func (r *Room) takeSeatLocked(client types.ClientInterface, index int) *Seat {
	seat := &Seat{
		Index:  index,
		ID:     client.GetID(),
		Name:   humanName(client, index),
		Client: client,
	}
	r.Seats[index] = seat
	client.SetRoom(r.Code)
	return seat
}

// cpuName 电脑座位名
func cpuName(seat int) string {
	return fmt.Sprintf("CPU %d", seat)
}

// generateRoomCode 生成房间号，调用方需持有管理器锁
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// cleanupLoop 定期清理超时房间
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rm.cleanup(time.Now())
		case <-rm.stop:
			return
		}
	}
}

// cleanup 清理等待超时的联网房间
func (rm *RoomManager) cleanup(now time.Time) {
	rm.mu.Lock()
	var expired []*Room
	for code, room := range rm.rooms {
		room.mu.Lock()
		if !room.Solo && room.State == RoomStateWaiting && now.Sub(room.CreatedAt) > rm.opts.RoomTimeout {
			room.broadcastLocked(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "房间超时已关闭"))
			for _, s := range room.Seats {
				if s != nil && s.Client != nil {
					s.Client.SetRoom("")
				}
			}
			room.closeLocked()
			delete(rm.rooms, code)
			expired = append(expired, room)
		}
		room.mu.Unlock()
	}
	rm.mu.Unlock()

	for _, room := range expired {
		rm.forgetRoom(room.Code)
		logger.Infof("🏠 房间 %s 超时已清理", room.Code)
	}
}
