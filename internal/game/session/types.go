package session

import (
	"math/rand/v2"

	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
)

// Phase 牌局阶段
type Phase int

const (
	PhaseWaiting         Phase = iota // 尚未发牌
	PhaseAwaitingPlay                 // 桌面为空，等待领出
	PhaseTrickInProgress              // 本墩已有人出牌
	PhaseHandComplete                 // 一手牌结束，等待下一次发牌
	PhaseGameComplete                 // 某一方达到胜利分数
)

var phaseNames = map[Phase]string{
	PhaseWaiting:         "waiting",
	PhaseAwaitingPlay:    "awaiting_play",
	PhaseTrickInProgress: "trick_in_progress",
	PhaseHandComplete:    "hand_complete",
	PhaseGameComplete:    "game_complete",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// InHand 是否处于一手牌之中
func (p Phase) InHand() bool {
	return p == PhaseAwaitingPlay || p == PhaseTrickInProgress
}

// 默认规则参数
const (
	DefaultHandSize   = 3
	DefaultWinScore   = 12
	DefaultRaiseStake = 3
	SideCount         = 2
	baseStake         = 1
)

// Options 牌局参数
type Options struct {
	SeatCount  int        // 2 或 4
	HandSize   int        // 每人手牌数
	WinScore   int        // 胜利分数
	RaiseStake int        // 叫 Truco 后本手的分值
	Rand       *rand.Rand // nil 使用全局随机源
}

func (o *Options) applyDefaults() {
	if o.HandSize <= 0 {
		o.HandSize = DefaultHandSize
	}
	if o.WinScore <= 0 {
		o.WinScore = DefaultWinScore
	}
	if o.RaiseStake <= baseStake {
		o.RaiseStake = DefaultRaiseStake
	}
}

// SideOf 座位所属的一方
func SideOf(seat int) int {
	return seat % SideCount
}

// TrickResult 一墩的结果
type TrickResult struct {
	Number     int // 本手第几墩，从 1 开始
	Plays      []rule.Play
	Winner     int // 赢墩座位，平局为 -1
	WinnerSide int // 赢墩一方，平局为 -1
	Draw       bool
}

// HandResult 一手牌的结果
type HandResult struct {
	HandNumber   int
	WinnerSide   int // 无人得分为 -1
	Points       int
	TricksBySide [SideCount]int
	Scores       [SideCount]int
}

// GameResult 整局结果
type GameResult struct {
	WinnerSide int
	Scores     [SideCount]int
	Hands      int
}

// PlayResult 一次出牌的结果，Trick/Hand/Game 仅在对应阶段结束时非空
type PlayResult struct {
	Seat  int
	Card  card.Card
	Trick *TrickResult
	Hand  *HandResult
	Game  *GameResult
}

// RaiseResult 叫 Truco 的结果
type RaiseResult struct {
	Seat  int
	Side  int
	Stake int
}

// PublicState 所有座位都能看到的牌局状态，不含任何人的手牌
type PublicState struct {
	Phase       Phase
	Vira        card.Card
	ManilhaRank card.Rank
	CurrentTurn int // 不在一手牌中时为 -1
	Scores      [SideCount]int
	Stake       int
	RaisedBy    int // 叫 Truco 的一方，未叫为 -1
	HandNumber  int
	TrickNumber int
	TricksWon   []int // 按座位
	Table       []rule.Play
	CardsLeft   []int // 按座位
	DeckLeft    int
}
