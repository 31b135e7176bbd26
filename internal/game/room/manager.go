package room

import (
	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/ai"
	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/types"
)

// CreateRoom 创建联网房间，创建者坐 0 号座位
func (rm *RoomManager) CreateRoom(client types.ClientInterface) (*Room, error) {
	rm.mu.Lock()
	room := newRoom(rm.generateRoomCode(), false, &rm.opts)
	room.mu.Lock()
	defer room.mu.Unlock()
	rm.rooms[room.Code] = room
	rm.mu.Unlock()

	seat := room.takeSeatLocked(client, 0)
	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: room.Code,
		Seat:     seat.Index,
		Player:   room.seatInfoLocked(seat),
	}))
	room.saveLocked()

	logger.Infof("🏠 房间 %s 已创建，玩家 %s", room.Code, client.GetName())
	return room, nil
}

// CreateSoloRoom 创建单人房间：1 名玩家和 3 个电脑座位，立即发牌
func (rm *RoomManager) CreateSoloRoom(client types.ClientInterface, difficulty ai.Difficulty) (*Room, error) {
	rm.mu.Lock()
	room := newRoom(rm.generateRoomCode(), true, &rm.opts)
	room.mu.Lock()
	defer room.mu.Unlock()
	rm.rooms[room.Code] = room
	rm.mu.Unlock()

	room.difficulty = difficulty
	seat := room.takeSeatLocked(client, 0)
	for i := 1; i < len(room.Seats); i++ {
		room.Seats[i] = &Seat{
			Index: i,
			ID:    cpuName(i),
			Name:  cpuName(i),
			IsAI:  true,
		}
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: room.Code,
		Seat:     seat.Index,
		Player:   room.seatInfoLocked(seat),
	}))

	if err := room.startMatchLocked(); err != nil {
		return nil, err
	}
	room.saveLocked()

	logger.Infof("🤖 单人房间 %s 已创建，玩家 %s，难度 %s", room.Code, client.GetName(), difficulty)
	return room, nil
}

// JoinRoom 加入联网房间；坐满后开始对局
func (rm *RoomManager) JoinRoom(client types.ClientInterface, code string) (*Room, error) {
	room, err := rm.roomForAction(code)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed {
		return nil, apperrors.ErrRoomNotFound
	}
	if room.Solo {
		return nil, apperrors.ErrRoomFull
	}
	free := room.freeSeatLocked()
	if free < 0 {
		return nil, apperrors.ErrRoomFull
	}

	seat := room.takeSeatLocked(client, free)
	logger.Infof("👤 玩家 %s 加入房间 %s (座位 %d)", client.GetName(), code, seat.Index)

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: room.Code,
		Seat:     seat.Index,
		Player:   room.seatInfoLocked(seat),
		Players:  room.seatInfosLocked(),
	}))
	room.broadcastExceptLocked(seat.Index, codec.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: room.seatInfoLocked(seat),
	}))

	if room.freeSeatLocked() < 0 {
		if err := room.startMatchLocked(); err != nil {
			return nil, err
		}
	}
	room.saveLocked()

	return room, nil
}

// LeaveRoom 离开房间：中止进行中的对局并通知其他座位，没有玩家时解散房间
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()
	if !exists {
		client.SetRoom("")
		return
	}

	room.mu.Lock()
	seat := room.seatByClientLocked(client.GetID())
	if seat == nil {
		room.mu.Unlock()
		client.SetRoom("")
		return
	}

	room.Seats[seat.Index] = nil
	client.SetRoom("")
	if room.game != nil {
		room.stopMatchLocked()
	}

	room.broadcastLocked(codec.MustNewMessage(protocol.MsgOpponentDisconnected, protocol.OpponentDisconnectedPayload{
		Seat:       seat.Index,
		PlayerName: seat.Name,
	}))
	logger.Infof("👋 玩家 %s 离开房间 %s (座位 %d)", client.GetName(), roomCode, seat.Index)

	destroy := room.humansLocked() == 0
	if destroy {
		room.closeLocked()
	} else {
		room.saveLocked()
	}
	room.mu.Unlock()

	if destroy {
		rm.removeRoom(room)
		logger.Infof("🏠 房间 %s 已解散", roomCode)
	}
}

// removeRoom 从管理器中移除房间，调用方不能持有房间锁
func (rm *RoomManager) removeRoom(room *Room) {
	rm.mu.Lock()
	if rm.rooms[room.Code] == room {
		delete(rm.rooms, room.Code)
	}
	rm.mu.Unlock()
	rm.forgetRoom(room.Code)
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// GetRoomList 获取可加入的联网房间列表
func (rm *RoomManager) GetRoomList() []protocol.RoomListItem {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	rooms := make([]protocol.RoomListItem, 0)
	for code, room := range rm.rooms {
		room.mu.RLock()
		if !room.Solo && room.State == RoomStateWaiting && room.freeSeatLocked() >= 0 {
			rooms = append(rooms, protocol.RoomListItem{
				RoomCode:    code,
				PlayerCount: room.occupiedLocked(),
				MaxPlayers:  len(room.Seats),
			})
		}
		room.mu.RUnlock()
	}
	return rooms
}

// GetRoomCount 房间总数
func (rm *RoomManager) GetRoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// GetActiveGamesCount 获取进行中的对局数量
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	count := 0
	for _, room := range rm.rooms {
		room.mu.RLock()
		if room.State == RoomStatePlaying {
			count++
		}
		room.mu.RUnlock()
	}
	return count
}

// Shutdown 关闭所有房间并停止清理协程
func (rm *RoomManager) Shutdown() {
	rm.stopOnce.Do(func() { close(rm.stop) })

	rm.mu.Lock()
	rooms := rm.rooms
	rm.rooms = make(map[string]*Room)
	rm.mu.Unlock()

	for code, room := range rooms {
		room.mu.Lock()
		for _, s := range room.Seats {
			if s != nil && s.Client != nil {
				s.Client.SetRoom("")
			}
		}
		room.closeLocked()
		room.mu.Unlock()
		rm.forgetRoom(code)
	}
	logger.Infof("🛑 房间管理器已关闭，解散 %d 个房间", len(rooms))
}
