package session

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
)

func c(r card.Rank, s card.Suit) card.Card {
	return card.Card{Rank: r, Suit: s}
}

func newSession(t *testing.T, seats int) *GameSession {
	t.Helper()
	gs, err := NewGameSession(Options{SeatCount: seats, Rand: rand.New(rand.NewPCG(42, 42))})
	require.NoError(t, err)
	return gs
}

// rig 发牌后替换为指定的 vira 和手牌
func rig(t *testing.T, gs *GameSession, vira card.Card, hands ...[]card.Card) {
	t.Helper()
	require.NoError(t, gs.DealHand())
	require.Len(t, hands, gs.opts.SeatCount)
	gs.vira = vira
	gs.manilha = rule.DeriveManilha(vira)
	gs.hands = hands
}

func play(t *testing.T, gs *GameSession, seat int, cd card.Card) *PlayResult {
	t.Helper()
	res, err := gs.SubmitPlay(seat, cd)
	require.NoError(t, err)
	return res
}

func TestNewGameSession_InvalidSeatCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 3, 5} {
		_, err := NewGameSession(Options{SeatCount: n})
		assert.ErrorIs(t, err, apperrors.ErrInvalidSeatCount)
	}
}

func TestNewGameSession_Defaults(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	assert.Equal(t, DefaultHandSize, gs.opts.HandSize)
	assert.Equal(t, DefaultWinScore, gs.opts.WinScore)
	assert.Equal(t, DefaultRaiseStake, gs.opts.RaiseStake)
	assert.Equal(t, PhaseWaiting, gs.Phase())
	assert.Equal(t, -1, gs.CurrentSeat())
}

func TestDealHand_TwoSeats(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	require.NoError(t, gs.DealHand())

	h0, h1 := gs.Hand(0), gs.Hand(1)
	assert.Len(t, h0, 3)
	assert.Len(t, h1, 3)
	assert.Equal(t, 33, gs.DeckLeft())
	assert.Equal(t, PhaseAwaitingPlay, gs.Phase())
	assert.Equal(t, 0, gs.CurrentSeat())
	assert.Equal(t, gs.Vira().Rank.Next(), gs.Manilha().Rank)

	all := append(append(append([]card.Card{}, h0...), h1...), gs.Vira())
	all = append(all, gs.deck...)
	assert.ElementsMatch(t, card.BuildDeck(), all)
}

func TestDealHand_FourSeats(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 4)
	require.NoError(t, gs.DealHand())
	for seat := range 4 {
		assert.Len(t, gs.Hand(seat), 3)
	}
	assert.Equal(t, 40-12-1, gs.DeckLeft())
}

func TestDealHand_RejectedMidHand(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	require.NoError(t, gs.DealHand())
	before := gs.PublicState()
	hand := gs.Hand(0)

	assert.ErrorIs(t, gs.DealHand(), apperrors.ErrHandInProgress)
	assert.Equal(t, before, gs.PublicState())
	assert.Equal(t, hand, gs.Hand(0))
}

func TestHand_ReturnsCopy(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	require.NoError(t, gs.DealHand())
	h := gs.Hand(0)
	h[0] = card.Card{Rank: 99, Suit: 99}
	assert.NotEqual(t, h[0], gs.Hand(0)[0])
	assert.Nil(t, gs.Hand(7))
}

func TestPublicState_HidesHands(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	require.NoError(t, gs.DealHand())
	ps := gs.PublicState()

	assert.Equal(t, []int{3, 3}, ps.CardsLeft)
	assert.Equal(t, 33, ps.DeckLeft)
	assert.Equal(t, 1, ps.Stake)
	assert.Equal(t, -1, ps.RaisedBy)
	assert.Equal(t, 1, ps.HandNumber)
	assert.Equal(t, 1, ps.TrickNumber)
	assert.Empty(t, ps.Table)
}

func TestNewGame_ResetsScores(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	require.NoError(t, gs.DealHand())
	gs.scores = [SideCount]int{5, 7}

	gs.NewGame()
	assert.Equal(t, [SideCount]int{}, gs.Scores())
	assert.Equal(t, PhaseWaiting, gs.Phase())
	require.NoError(t, gs.DealHand())
	assert.Equal(t, 0, gs.CurrentSeat())
}
