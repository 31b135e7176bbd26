package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom MessageType = "create_room" // 创建房间
	MsgJoinRoom   MessageType = "join_room"   // 加入房间
	MsgLeaveRoom  MessageType = "leave_room"  // 离开房间

	// 游戏操作
	MsgPlayCard      MessageType = "play_card"      // 出牌
	MsgRequestRaise  MessageType = "request_raise"  // 叫 Truco
	MsgNewGame       MessageType = "new_game"       // 单人模式：新开一局
	MsgSetDifficulty MessageType = "set_difficulty" // 单人模式：设置电脑难度

	// 查询
	MsgGetLeaderboard MessageType = "get_leaderboard" // 获取排行榜
	MsgGetRoomList    MessageType = "get_room_list"   // 获取房间列表
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 房间相关
	MsgRoomCreated          MessageType = "room_created"          // 房间创建成功
	MsgRoomJoined           MessageType = "room_joined"           // 加入房间成功
	MsgPlayerJoined         MessageType = "player_joined"         // 其他玩家加入
	MsgOpponentDisconnected MessageType = "opponent_disconnected" // 对手离开或断线

	// 游戏流程
	MsgMatchStarted      MessageType = "match_started"      // 比赛开始
	MsgHandDealt         MessageType = "hand_dealt"         // 发牌（仅发给本座位）
	MsgCardPlayed        MessageType = "card_played"        // 有人出牌
	MsgTrickResult       MessageType = "trick_result"       // 一墩结果
	MsgHandResult        MessageType = "hand_result"        // 一手牌结果
	MsgGameOver          MessageType = "game_over"          // 整局结束
	MsgRaiseReceived     MessageType = "raise_received"     // 对方叫了 Truco
	MsgDifficultyChanged MessageType = "difficulty_changed" // 难度已修改

	// 查询结果
	MsgLeaderboardResult MessageType = "leaderboard_result" // 排行榜结果
	MsgRoomListResult    MessageType = "room_list_result"   // 房间列表结果

	// 错误
	MsgError MessageType = "error" // 错误消息
)
