package session

import (
	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
)

// GameSession 一局 Truco 的权威状态。
// 非并发安全：由所属房间持有并在房间锁内串行调用。
type GameSession struct {
	opts  Options
	phase Phase

	deck    card.Deck
	vira    card.Card
	manilha rule.Manilha
	hands   [][]card.Card

	// 出牌相关
	table      []rule.Play
	tricks     []TrickResult
	tricksWon  []int // 按座位
	leader     int   // 本墩领出座位
	current    int   // 当前出牌座位
	handNumber int

	// 比分相关
	scores     [SideCount]int
	stake      int
	raisedBy   int
	winnerSide int
}

// NewGameSession 创建牌局
func NewGameSession(opts Options) (*GameSession, error) {
	if opts.SeatCount != 2 && opts.SeatCount != 4 {
		return nil, apperrors.ErrInvalidSeatCount
	}
	opts.applyDefaults()

	gs := &GameSession{opts: opts}
	gs.reset()
	return gs, nil
}

// reset 清空比分回到未发牌状态
func (gs *GameSession) reset() {
	gs.phase = PhaseWaiting
	gs.deck = nil
	gs.hands = make([][]card.Card, gs.opts.SeatCount)
	gs.table = nil
	gs.tricks = nil
	gs.tricksWon = make([]int, gs.opts.SeatCount)
	gs.leader = 0
	gs.current = -1
	gs.handNumber = 0
	gs.scores = [SideCount]int{}
	gs.stake = baseStake
	gs.raisedBy = -1
	gs.winnerSide = -1
}

// NewGame 比分清零，等待重新发牌
func (gs *GameSession) NewGame() {
	gs.reset()
}

// DealHand 洗一副新牌，每人发牌后翻出 vira；首手由 0 号座位领出，之后按手数轮换
func (gs *GameSession) DealHand() error {
	switch gs.phase {
	case PhaseAwaitingPlay, PhaseTrickInProgress:
		return apperrors.ErrHandInProgress
	case PhaseGameComplete:
		return apperrors.ErrGameOver
	}

	deck := card.Shuffle(card.BuildDeck(), gs.opts.Rand)
	hands, rest, err := card.Deal(deck, gs.opts.SeatCount, gs.opts.HandSize)
	if err != nil {
		return err
	}
	vira, rest, err := card.DrawVira(rest)
	if err != nil {
		return err
	}

	gs.deck = rest
	gs.hands = hands
	gs.vira = vira
	gs.manilha = rule.DeriveManilha(vira)
	gs.table = nil
	gs.tricks = nil
	gs.tricksWon = make([]int, gs.opts.SeatCount)
	gs.stake = baseStake
	gs.raisedBy = -1
	gs.leader = gs.handNumber % gs.opts.SeatCount
	gs.current = gs.leader
	gs.handNumber++
	gs.phase = PhaseAwaitingPlay
	return nil
}

// Phase 当前阶段
func (gs *GameSession) Phase() Phase {
	return gs.phase
}

// SeatCount 座位数
func (gs *GameSession) SeatCount() int {
	return gs.opts.SeatCount
}

// CurrentSeat 当前该出牌的座位，不在一手牌中时为 -1
func (gs *GameSession) CurrentSeat() int {
	if !gs.phase.InHand() {
		return -1
	}
	return gs.current
}

// Manilha 本手的 manilha
func (gs *GameSession) Manilha() rule.Manilha {
	return gs.manilha
}

// Vira 本手的 vira
func (gs *GameSession) Vira() card.Card {
	return gs.vira
}

// Hand 返回座位手牌的副本
func (gs *GameSession) Hand(seat int) []card.Card {
	if seat < 0 || seat >= len(gs.hands) {
		return nil
	}
	out := make([]card.Card, len(gs.hands[seat]))
	copy(out, gs.hands[seat])
	return out
}

// DeckLeft 牌堆剩余张数
func (gs *GameSession) DeckLeft() int {
	return len(gs.deck)
}

// Scores 双方比分
func (gs *GameSession) Scores() [SideCount]int {
	return gs.scores
}

// WinnerSide 整局胜方，未结束为 -1
func (gs *GameSession) WinnerSide() int {
	return gs.winnerSide
}

// PublicState 导出公开状态
func (gs *GameSession) PublicState() PublicState {
	ps := PublicState{
		Phase:       gs.phase,
		Vira:        gs.vira,
		ManilhaRank: gs.manilha.Rank,
		CurrentTurn: gs.CurrentSeat(),
		Scores:      gs.scores,
		Stake:       gs.stake,
		RaisedBy:    gs.raisedBy,
		HandNumber:  gs.handNumber,
		TrickNumber: len(gs.tricks) + 1,
		TricksWon:   append([]int(nil), gs.tricksWon...),
		Table:       append([]rule.Play(nil), gs.table...),
		CardsLeft:   make([]int, len(gs.hands)),
		DeckLeft:    len(gs.deck),
	}
	if !gs.phase.InHand() {
		ps.TrickNumber = len(gs.tricks)
	}
	for i, h := range gs.hands {
		ps.CardsLeft[i] = len(h)
	}
	return ps
}
