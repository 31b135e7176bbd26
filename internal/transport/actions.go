package transport

import (
	"time"

	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/protocol/convert"
)

// --- 便捷方法 ---

// CreateRoom 创建房间
func (c *Client) CreateRoom() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgCreateRoom, nil))
}

// JoinRoom 加入房间
func (c *Client) JoinRoom(roomCode string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode: roomCode,
	}))
}

// LeaveRoom 离开房间
func (c *Client) LeaveRoom() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgLeaveRoom, nil))
}

// PlayCard 出牌
func (c *Client) PlayCard(roomCode string, seat int, cd card.Card) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPlayCard, protocol.PlayCardPayload{
		RoomCode: roomCode,
		Seat:     seat,
		Card:     convert.CardToInfo(cd),
	}))
}

// RequestRaise 叫 Truco
func (c *Client) RequestRaise(roomCode string, seat int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgRequestRaise, protocol.RequestRaisePayload{
		RoomCode: roomCode,
		Seat:     seat,
	}))
}

// NewGame 新开一局；不在单人房间时创建单人房间
func (c *Client) NewGame(difficulty string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgNewGame, protocol.NewGamePayload{
		Difficulty: difficulty,
	}))
}

// SetDifficulty 设置电脑难度
func (c *Client) SetDifficulty(difficulty string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgSetDifficulty, protocol.SetDifficultyPayload{
		Difficulty: difficulty,
	}))
}

// GetLeaderboard 获取排行榜
func (c *Client) GetLeaderboard(limit int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{
		Limit: limit,
	}))
}

// GetRoomList 获取房间列表
func (c *Client) GetRoomList() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetRoomList, nil))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
