package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

// PlayCardPayload 出牌请求。座位以服务端记录为准，Seat 仅用于兼容
type PlayCardPayload struct {
	RoomCode string   `json:"room_code"`
	Seat     int      `json:"seat"`
	Card     CardInfo `json:"card"`
}

// RequestRaisePayload 叫 Truco 请求
type RequestRaisePayload struct {
	RoomCode string `json:"room_code"`
	Seat     int    `json:"seat"`
}

// NewGamePayload 单人模式新开一局
type NewGamePayload struct {
	Difficulty string `json:"difficulty"`
}

// SetDifficultyPayload 设置电脑难度
type SetDifficultyPayload struct {
	Difficulty string `json:"difficulty"`
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Limit int `json:"limit"` // 数量
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	Seat     int        `json:"seat"`
	Player   PlayerInfo `json:"player"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode string       `json:"room_code"`
	Seat     int          `json:"seat"`
	Player   PlayerInfo   `json:"player"`
	Players  []PlayerInfo `json:"players"` // 房间内所有座位
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// OpponentDisconnectedPayload 对手离开通知
type OpponentDisconnectedPayload struct {
	Seat       int    `json:"seat"`
	PlayerName string `json:"player_name"`
}

// MatchStartedPayload 比赛开始通知
type MatchStartedPayload struct {
	RoomCode string       `json:"room_code"`
	Seats    []PlayerInfo `json:"seats"` // 按座位顺序排列
}

// HandDealtPayload 发牌通知，只包含本座位的手牌
type HandDealtPayload struct {
	Seat  int         `json:"seat"`
	Hand  []CardInfo  `json:"hand"`
	State PublicState `json:"state"`
}

// CardPlayedPayload 出牌通知
type CardPlayedPayload struct {
	Seat       int         `json:"seat"`
	PlayerName string      `json:"player_name"`
	Card       CardInfo    `json:"card"`
	State      PublicState `json:"state"`
}

// TrickResultPayload 一墩结果
type TrickResultPayload struct {
	TrickNumber int        `json:"trick_number"`
	Plays       []PlayInfo `json:"plays"`
	WinnerSeat  int        `json:"winner_seat"` // 平局为 -1
	WinnerSide  int        `json:"winner_side"` // 平局为 -1
	WinnerName  string     `json:"winner_name,omitempty"`
	Draw        bool       `json:"draw"`
}

// HandResultPayload 一手牌结果
type HandResultPayload struct {
	HandNumber   int   `json:"hand_number"`
	WinnerSide   int   `json:"winner_side"` // 无人得分为 -1
	Points       int   `json:"points"`
	TricksBySide []int `json:"tricks_by_side"`
	Scores       []int `json:"scores"`
}

// GameOverPayload 整局结束通知
type GameOverPayload struct {
	WinnerSide  int      `json:"winner_side"`
	WinnerNames []string `json:"winner_names"`
	Scores      []int    `json:"scores"`
	Hands       int      `json:"hands"`
}

// RaiseReceivedPayload 对方叫 Truco 的通知
type RaiseReceivedPayload struct {
	FromSeat     int    `json:"from_seat"`
	FromSeatName string `json:"from_seat_name"`
	Stake        int    `json:"stake"`
	Text         string `json:"text"`
}

// DifficultyChangedPayload 难度修改通知
type DifficultyChangedPayload struct {
	Difficulty string `json:"difficulty"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// RoomListResultPayload 房间列表结果
type RoomListResultPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// RoomListItem 房间列表项
type RoomListItem struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// --- 通用数据结构 ---

// PlayerInfo 座位信息
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Seat      int    `json:"seat"` // 座位号
	Side      int    `json:"side"` // 0 或 1
	IsAI      bool   `json:"is_ai"`
	CardsLeft int    `json:"cards_left"`
}

// CardInfo 牌信息
type CardInfo struct {
	Rank string `json:"rank"` // 4 5 6 7 Q J K A 2 3
	Suit string `json:"suit"` // ♣ ♥ ♠ ♦
}

// PlayInfo 桌面上的一张牌
type PlayInfo struct {
	Seat int      `json:"seat"`
	Card CardInfo `json:"card"`
}

// PublicState 公开的牌局状态，不包含任何座位的手牌
type PublicState struct {
	Phase       string     `json:"phase"`
	Vira        *CardInfo  `json:"vira,omitempty"`
	ManilhaRank string     `json:"manilha_rank,omitempty"`
	CurrentTurn int        `json:"current_turn"` // 不在一手牌中时为 -1
	Scores      []int      `json:"scores"`
	Stake       int        `json:"stake"`
	RaisedBy    int        `json:"raised_by"` // 未叫 Truco 为 -1
	HandNumber  int        `json:"hand_number"`
	TrickNumber int        `json:"trick_number"`
	TricksWon   []int      `json:"tricks_won"`
	Table       []PlayInfo `json:"table"`
	CardsLeft   []int      `json:"cards_left"`
	DeckLeft    int        `json:"deck_left"`
}
