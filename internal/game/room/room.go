package room

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/truco/internal/game/ai"
	"github.com/palemoky/truco/internal/game/session"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/types"
)

const (
	roomCodeLength = 6            // 房间号长度
	roomCodeChars  = "0123456789" // 房间号字符集

	networkedSeats = 2 // 联网房间座位数
	soloSeats      = 4 // 单人房间座位数（1 人 + 3 电脑）
)

// 默认延时
const (
	DefaultThinkDelay    = 1000 * time.Millisecond
	DefaultNextHandDelay = 2000 * time.Millisecond
)

// Options 房间管理器参数
type Options struct {
	Store         types.RoomStore      // 房间目录，可为 nil
	Recorder      types.ResultRecorder // 对局结果记录，可为 nil
	RoomTimeout   time.Duration        // 等待中房间的超时，0 表示不清理
	ThinkDelay    time.Duration        // 电脑出牌前的思考时间
	NextHandDelay time.Duration        // 一手牌结束到下一次发牌的间隔
	WinScore      int
	RaiseStake    int
	Rand          func() *rand.Rand // 每局的随机源，nil 使用全局随机源
}

func (o *Options) applyDefaults() {
	if o.ThinkDelay <= 0 {
		o.ThinkDelay = DefaultThinkDelay
	}
	if o.NextHandDelay <= 0 {
		o.NextHandDelay = DefaultNextHandDelay
	}
}

// Seat 房间中的一个座位
type Seat struct {
	Index  int
	ID     string
	Name   string
	Client types.ClientInterface // 电脑座位为 nil
	IsAI   bool
}

// Room 游戏房间
type Room struct {
	Code      string    // 房间号
	Solo      bool      // 单人模式
	State     RoomState // 房间状态
	Seats     []*Seat   // 按座位排列，空位为 nil
	CreatedAt time.Time // 创建时间

	opts       *Options
	difficulty ai.Difficulty
	game       *session.GameSession
	sched      *scheduler
	epoch      uint64 // 每次开始或中止对局时递增，用于丢弃过期的延时任务
	closed     bool

	mu sync.RWMutex
}

func newRoom(code string, solo bool, opts *Options) *Room {
	seats := networkedSeats
	if solo {
		seats = soloSeats
	}
	return &Room{
		Code:       code,
		Solo:       solo,
		State:      RoomStateWaiting,
		Seats:      make([]*Seat, seats),
		CreatedAt:  time.Now(),
		opts:       opts,
		difficulty: ai.Normal,
		sched:      newScheduler(),
	}
}

// humanName 人类座位的显示名
func humanName(client types.ClientInterface, seat int) string {
	if name := client.GetName(); name != "" {
		return name
	}
	return fmt.Sprintf("Jogador %d", seat+1)
}

// seatInfoLocked 座位信息，调用方需持有锁
func (r *Room) seatInfoLocked(s *Seat) protocol.PlayerInfo {
	info := protocol.PlayerInfo{
		ID:   s.ID,
		Name: s.Name,
		Seat: s.Index,
		Side: session.SideOf(s.Index),
		IsAI: s.IsAI,
	}
	if r.game != nil {
		info.CardsLeft = len(r.game.Hand(s.Index))
	}
	return info
}

// seatInfosLocked 所有已占用座位的信息
func (r *Room) seatInfosLocked() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.Seats))
	for _, s := range r.Seats {
		if s != nil {
			infos = append(infos, r.seatInfoLocked(s))
		}
	}
	return infos
}

// seatByClientLocked 根据客户端 ID 查找座位
func (r *Room) seatByClientLocked(clientID string) *Seat {
	for _, s := range r.Seats {
		if s != nil && !s.IsAI && s.ID == clientID {
			return s
		}
	}
	return nil
}

// occupiedLocked 已占用座位数
func (r *Room) occupiedLocked() int {
	n := 0
	for _, s := range r.Seats {
		if s != nil {
			n++
		}
	}
	return n
}

// humansLocked 人类座位数
func (r *Room) humansLocked() int {
	n := 0
	for _, s := range r.Seats {
		if s != nil && !s.IsAI {
			n++
		}
	}
	return n
}

// freeSeatLocked 第一个空座位，满员返回 -1
func (r *Room) freeSeatLocked() int {
	for i, s := range r.Seats {
		if s == nil {
			return i
		}
	}
	return -1
}

// SeatOf 返回客户端所在座位，不在房间中返回 -1
func (r *Room) SeatOf(clientID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s := r.seatByClientLocked(clientID); s != nil {
		return s.Index
	}
	return -1
}

// PlayerCount 已占用座位数
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.occupiedLocked()
}

// GetState 房间状态
func (r *Room) GetState() RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State
}

// Difficulty 当前电脑难度
func (r *Room) Difficulty() ai.Difficulty {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.difficulty
}

// Broadcast 广播消息给所有人类座位
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcastLocked(msg)
}

func (r *Room) broadcastLocked(msg *protocol.Message) {
	for _, s := range r.Seats {
		if s != nil && s.Client != nil {
			s.Client.SendMessage(msg)
		}
	}
}

// broadcastExceptLocked 广播给除指定座位外的人类座位
func (r *Room) broadcastExceptLocked(seat int, msg *protocol.Message) {
	for _, s := range r.Seats {
		if s != nil && s.Client != nil && s.Index != seat {
			s.Client.SendMessage(msg)
		}
	}
}

// RoomManager 房间管理器
type RoomManager struct {
	opts  Options
	rooms map[string]*Room
	mu    sync.RWMutex

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRoomManager 创建房间管理器
func NewRoomManager(opts Options) *RoomManager {
	opts.applyDefaults()
	rm := &RoomManager{
		opts:  opts,
		rooms: make(map[string]*Room),
		stop:  make(chan struct{}),
	}

	// 启动房间清理协程
	if opts.RoomTimeout > 0 {
		go rm.cleanupLoop()
	}

	return rm
}
