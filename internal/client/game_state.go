// Package client keeps the client-side view of a Truco match, built from server messages.
package client

import (
	"fmt"
	"sort"

	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/protocol/convert"
)

// maxEvents 保留的最近事件条数
const maxEvents = 6

// GameState manages client-side game state
type GameState struct {
	// Player data
	RoomCode string
	Seat     int
	Hand     []card.Card
	Players  []protocol.PlayerInfo

	// Table
	Public     protocol.PublicState
	Vira       card.Card
	Manilha    rule.Manilha
	HasManilha bool
	Difficulty string

	// Results
	LastTrick *protocol.TrickResultPayload
	LastHand  *protocol.HandResultPayload
	GameOver  *protocol.GameOverPayload
	Raise     *protocol.RaiseReceivedPayload
	Err       string

	Events []string

	// Features
	CardCounter *CardCounter
}

// NewGameState creates a new game state
func NewGameState() *GameState {
	gs := &GameState{}
	gs.Reset()
	return gs
}

// Reset clears all game state
func (gs *GameState) Reset() {
	*gs = GameState{
		Seat:        -1,
		Public:      protocol.PublicState{CurrentTurn: -1, RaisedBy: -1},
		CardCounter: NewCardCounter(),
	}
}

// SortHand sorts the hand strongest first under the current manilha
func (gs *GameState) SortHand() {
	if !gs.HasManilha {
		return
	}
	sort.SliceStable(gs.Hand, func(i, j int) bool {
		return rule.Strength(gs.Hand[i], gs.Manilha) > rule.Strength(gs.Hand[j], gs.Manilha)
	})
}

// IsMyTurn reports whether the local seat should play now
func (gs *GameState) IsMyTurn() bool {
	return gs.Seat >= 0 && gs.Public.CurrentTurn == gs.Seat && gs.GameOver == nil
}

// PlayerName returns the display name of a seat
func (gs *GameState) PlayerName(seat int) string {
	for _, p := range gs.Players {
		if p.Seat == seat {
			return p.Name
		}
	}
	return fmt.Sprintf("#%d", seat)
}

// MySide returns the local side, or -1 before a seat is assigned
func (gs *GameState) MySide() int {
	if gs.Seat < 0 {
		return -1
	}
	return gs.Seat % 2
}

// AddEvent appends a line to the recent event log
func (gs *GameState) AddEvent(format string, args ...any) {
	gs.Events = append(gs.Events, fmt.Sprintf(format, args...))
	if len(gs.Events) > maxEvents {
		gs.Events = gs.Events[len(gs.Events)-maxEvents:]
	}
}

func (gs *GameState) upsertPlayer(p protocol.PlayerInfo) {
	for i := range gs.Players {
		if gs.Players[i].Seat == p.Seat {
			gs.Players[i] = p
			return
		}
	}
	gs.Players = append(gs.Players, p)
	sort.Slice(gs.Players, func(i, j int) bool { return gs.Players[i].Seat < gs.Players[j].Seat })
}

func (gs *GameState) setPublic(ps protocol.PublicState) error {
	gs.Public = ps
	if ps.Vira == nil {
		gs.HasManilha = false
		return nil
	}
	vira, err := convert.InfoToCard(*ps.Vira)
	if err != nil {
		return err
	}
	gs.Vira = vira
	gs.Manilha = rule.DeriveManilha(vira)
	gs.HasManilha = true
	return nil
}

// Apply updates the state from one server message
func (gs *GameState) Apply(msg *protocol.Message) error {
	switch msg.Type {
	case protocol.MsgRoomCreated:
		p, err := codec.ParsePayload[protocol.RoomCreatedPayload](msg)
		if err != nil {
			return err
		}
		gs.RoomCode, gs.Seat = p.RoomCode, p.Seat
		gs.upsertPlayer(p.Player)
		gs.AddEvent("房间 %s 已创建", p.RoomCode)

	case protocol.MsgRoomJoined:
		p, err := codec.ParsePayload[protocol.RoomJoinedPayload](msg)
		if err != nil {
			return err
		}
		gs.RoomCode, gs.Seat = p.RoomCode, p.Seat
		for _, player := range p.Players {
			gs.upsertPlayer(player)
		}

	case protocol.MsgPlayerJoined:
		p, err := codec.ParsePayload[protocol.PlayerJoinedPayload](msg)
		if err != nil {
			return err
		}
		gs.upsertPlayer(p.Player)
		gs.AddEvent("%s 加入了房间", p.Player.Name)

	case protocol.MsgMatchStarted:
		p, err := codec.ParsePayload[protocol.MatchStartedPayload](msg)
		if err != nil {
			return err
		}
		gs.Players = nil
		for _, player := range p.Seats {
			gs.upsertPlayer(player)
		}
		gs.LastTrick, gs.LastHand, gs.GameOver, gs.Raise, gs.Err = nil, nil, nil, nil, ""
		gs.AddEvent("新的一局开始")

	case protocol.MsgHandDealt:
		p, err := codec.ParsePayload[protocol.HandDealtPayload](msg)
		if err != nil {
			return err
		}
		hand, err := convert.InfosToCards(p.Hand)
		if err != nil {
			return err
		}
		if err := gs.setPublic(p.State); err != nil {
			return err
		}
		gs.Seat = p.Seat
		gs.Hand = hand
		gs.SortHand()
		gs.LastTrick, gs.Raise = nil, nil
		gs.CardCounter.Reset()
		gs.CardCounter.DeductCards(hand...)
		gs.CardCounter.DeductCards(gs.Vira)
		gs.AddEvent("第 %d 手发牌，vira %s", p.State.HandNumber, gs.Vira)

	case protocol.MsgCardPlayed:
		p, err := codec.ParsePayload[protocol.CardPlayedPayload](msg)
		if err != nil {
			return err
		}
		c, err := convert.InfoToCard(p.Card)
		if err != nil {
			return err
		}
		if err := gs.setPublic(p.State); err != nil {
			return err
		}
		if p.Seat == gs.Seat {
			gs.Hand, _ = card.Remove(gs.Hand, c)
		}
		gs.CardCounter.DeductCards(c)
		gs.AddEvent("%s 出了 %s", p.PlayerName, c)

	case protocol.MsgTrickResult:
		p, err := codec.ParsePayload[protocol.TrickResultPayload](msg)
		if err != nil {
			return err
		}
		gs.LastTrick = p
		if p.Draw {
			gs.AddEvent("第 %d 墩平局", p.TrickNumber)
		} else {
			gs.AddEvent("第 %d 墩由 %s 赢得", p.TrickNumber, p.WinnerName)
		}

	case protocol.MsgHandResult:
		p, err := codec.ParsePayload[protocol.HandResultPayload](msg)
		if err != nil {
			return err
		}
		gs.LastHand = p
		if len(p.Scores) == len(gs.Public.Scores) {
			copy(gs.Public.Scores, p.Scores)
		}
		if p.WinnerSide < 0 {
			gs.AddEvent("第 %d 手无人得分", p.HandNumber)
		} else {
			gs.AddEvent("第 %d 手：第 %d 队得 %d 分", p.HandNumber, p.WinnerSide+1, p.Points)
		}

	case protocol.MsgGameOver:
		p, err := codec.ParsePayload[protocol.GameOverPayload](msg)
		if err != nil {
			return err
		}
		gs.GameOver = p
		gs.Public.CurrentTurn = -1
		gs.AddEvent("整局结束，比分 %v", p.Scores)

	case protocol.MsgRaiseReceived:
		p, err := codec.ParsePayload[protocol.RaiseReceivedPayload](msg)
		if err != nil {
			return err
		}
		gs.Raise = p
		gs.Public.Stake = p.Stake
		gs.AddEvent("%s", p.Text)

	case protocol.MsgDifficultyChanged:
		p, err := codec.ParsePayload[protocol.DifficultyChangedPayload](msg)
		if err != nil {
			return err
		}
		gs.Difficulty = p.Difficulty
		gs.AddEvent("电脑难度：%s", p.Difficulty)

	case protocol.MsgOpponentDisconnected:
		p, err := codec.ParsePayload[protocol.OpponentDisconnectedPayload](msg)
		if err != nil {
			return err
		}
		gs.AddEvent("%s 离开了房间", p.PlayerName)
		gs.Public.CurrentTurn = -1

	case protocol.MsgError:
		p, err := codec.ParsePayload[protocol.ErrorPayload](msg)
		if err != nil {
			return err
		}
		gs.Err = p.Message
		return nil
	}

	gs.Err = ""
	return nil
}
