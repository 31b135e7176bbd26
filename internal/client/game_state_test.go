package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/protocol/convert"
)

func apply(t *testing.T, gs *GameState, msgType protocol.MessageType, payload any) {
	t.Helper()
	require.NoError(t, gs.Apply(codec.MustNewMessage(msgType, payload)))
}

func dealtState() (protocol.HandDealtPayload, []card.Card) {
	// vira 7♠，manilha 为 Q
	vira := convert.CardToInfo(card.Card{Rank: card.Rank7, Suit: card.Spades})
	hand := []card.Card{
		{Rank: card.Rank4, Suit: card.Hearts},
		{Rank: card.RankQ, Suit: card.Diamonds},
		{Rank: card.Rank3, Suit: card.Clubs},
	}
	return protocol.HandDealtPayload{
		Seat: 0,
		Hand: convert.CardsToInfos(hand),
		State: protocol.PublicState{
			Phase:       "playing",
			Vira:        &vira,
			CurrentTurn: 0,
			Scores:      []int{0, 0},
			Stake:       1,
			RaisedBy:    -1,
			HandNumber:  1,
			TrickNumber: 1,
		},
	}, hand
}

func TestNewGameState(t *testing.T) {
	t.Parallel()

	gs := NewGameState()
	assert.Equal(t, -1, gs.Seat)
	assert.Equal(t, -1, gs.MySide())
	assert.False(t, gs.IsMyTurn())
	assert.NotNil(t, gs.CardCounter)
}

func TestGameState_RoomAndPlayers(t *testing.T) {
	t.Parallel()

	gs := NewGameState()
	apply(t, gs, protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: "123456",
		Seat:     0,
		Player:   protocol.PlayerInfo{Name: "Ana", Seat: 0},
	})
	apply(t, gs, protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: protocol.PlayerInfo{Name: "Bia", Seat: 1, Side: 1},
	})

	assert.Equal(t, "123456", gs.RoomCode)
	assert.Equal(t, 0, gs.MySide())
	require.Len(t, gs.Players, 2)
	assert.Equal(t, "Bia", gs.PlayerName(1))
	assert.Equal(t, "#3", gs.PlayerName(3))
}

func TestGameState_HandDealtSortsAndCounts(t *testing.T) {
	t.Parallel()

	gs := NewGameState()
	dealt, hand := dealtState()
	apply(t, gs, protocol.MsgHandDealt, dealt)

	require.True(t, gs.HasManilha)
	assert.Equal(t, card.RankQ, gs.Manilha.Rank)
	// Q♦ 是 manilha，排在最前
	assert.Equal(t, []card.Card{hand[1], hand[2], hand[0]}, gs.Hand)
	assert.True(t, gs.IsMyTurn())

	// 手牌 3 张加 vira
	total := 0
	for _, n := range gs.CardCounter.GetRemaining() {
		total += n
	}
	assert.Equal(t, card.DeckSize-4, total)
}

func TestGameState_CardPlayedRemovesOwnCard(t *testing.T) {
	t.Parallel()

	gs := NewGameState()
	dealt, hand := dealtState()
	apply(t, gs, protocol.MsgHandDealt, dealt)

	next := dealt.State
	next.CurrentTurn = 1
	apply(t, gs, protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		Seat: 0, PlayerName: "Ana", Card: convert.CardToInfo(hand[0]), State: next,
	})
	assert.Len(t, gs.Hand, 2)
	assert.False(t, gs.IsMyTurn())

	other := card.Card{Rank: card.RankK, Suit: card.Hearts}
	apply(t, gs, protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		Seat: 1, PlayerName: "Bia", Card: convert.CardToInfo(other), State: next,
	})
	assert.Len(t, gs.Hand, 2)
	assert.Equal(t, 3, gs.CardCounter.GetRemaining()[card.RankK])
	assert.Contains(t, gs.Events[len(gs.Events)-1], "Bia")
}

func TestGameState_ResultsAndRaise(t *testing.T) {
	t.Parallel()

	gs := NewGameState()
	dealt, _ := dealtState()
	apply(t, gs, protocol.MsgHandDealt, dealt)

	apply(t, gs, protocol.MsgRaiseReceived, protocol.RaiseReceivedPayload{
		FromSeat: 1, FromSeatName: "Bia", Stake: 3, Text: "Bia pediu TRUCO!",
	})
	require.NotNil(t, gs.Raise)
	assert.Equal(t, 3, gs.Public.Stake)

	apply(t, gs, protocol.MsgTrickResult, protocol.TrickResultPayload{TrickNumber: 1, WinnerSeat: -1, WinnerSide: -1, Draw: true})
	require.NotNil(t, gs.LastTrick)
	assert.True(t, gs.LastTrick.Draw)

	apply(t, gs, protocol.MsgHandResult, protocol.HandResultPayload{HandNumber: 1, WinnerSide: 1, Points: 3, Scores: []int{0, 3}})
	assert.Equal(t, []int{0, 3}, gs.Public.Scores)

	apply(t, gs, protocol.MsgGameOver, protocol.GameOverPayload{WinnerSide: 1, Scores: []int{4, 12}})
	require.NotNil(t, gs.GameOver)
	assert.False(t, gs.IsMyTurn())
	assert.LessOrEqual(t, len(gs.Events), maxEvents)
}

func TestGameState_ErrorIsClearedByNextMessage(t *testing.T) {
	t.Parallel()

	gs := NewGameState()
	apply(t, gs, protocol.MsgError, protocol.ErrorPayload{Code: protocol.ErrCodeOutOfTurn, Message: "还没轮到你"})
	assert.Equal(t, "还没轮到你", gs.Err)

	apply(t, gs, protocol.MsgDifficultyChanged, protocol.DifficultyChangedPayload{Difficulty: "hard"})
	assert.Empty(t, gs.Err)
	assert.Equal(t, "hard", gs.Difficulty)
}

func TestGameState_ApplyRejectsBadCard(t *testing.T) {
	t.Parallel()

	gs := NewGameState()
	dealt, _ := dealtState()
	dealt.Hand[0] = protocol.CardInfo{Rank: "X", Suit: "?"}
	assert.Error(t, gs.Apply(codec.MustNewMessage(protocol.MsgHandDealt, dealt)))
}
