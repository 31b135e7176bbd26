package types

import (
	"context"
	"time"

	"github.com/palemoky/truco/internal/protocol"
)

// ServerInterface 定义服务器接口（用于打破循环依赖）
type ServerInterface interface {
	IsMaintenanceMode() bool
	GetOnlineCount() int
	GetClientByID(id string) ClientInterface
	RegisterClient(id string, client ClientInterface)
	UnregisterClient(id string)
}

// ClientInterface 定义客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string
	GetRoom() string
	SetRoom(code string)
	SendMessage(msg *protocol.Message)
	Close()
}

// RoomSummary 房间目录中的一条记录
type RoomSummary struct {
	Code        string    `json:"code"`
	Solo        bool      `json:"solo"`
	PlayerCount int       `json:"player_count"`
	MaxPlayers  int       `json:"max_players"`
	Playing     bool      `json:"playing"`
	Scores      []int     `json:"scores"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoomStore 房间目录存储，nil 表示不持久化
type RoomStore interface {
	SaveRoom(ctx context.Context, summary *RoomSummary) error
	DeleteRoom(ctx context.Context, code string) error
}

// MatchParticipant 对局参与者
type MatchParticipant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
	Side int    `json:"side"`
	IsAI bool   `json:"is_ai"`

	Anonymous bool `json:"anonymous"` // 未提供名称，使用默认座位名
}

// MatchResult 一局结束后的结果
type MatchResult struct {
	ID           string             `json:"id"`
	RoomCode     string             `json:"room_code"`
	Solo         bool               `json:"solo"`
	WinnerSide   int                `json:"winner_side"`
	Scores       []int              `json:"scores"`
	Hands        int                `json:"hands"`
	Participants []MatchParticipant `json:"participants"`
	FinishedAt   time.Time          `json:"finished_at"`
}

// ResultRecorder 对局结果记录器（排行榜、历史）
type ResultRecorder interface {
	RecordMatch(ctx context.Context, result *MatchResult) error
}
