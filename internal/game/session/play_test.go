package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/card"
)

// vira 7♦，manilha 为 Q
var vira7 = c(card.Rank7, card.Diamonds)

func TestSubmitPlay_RejectsWithoutMutation(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	rig(t, gs, vira7,
		[]card.Card{c(card.Rank3, card.Clubs), c(card.Rank2, card.Clubs), c(card.Rank4, card.Clubs)},
		[]card.Card{c(card.RankK, card.Hearts), c(card.RankA, card.Hearts), c(card.Rank5, card.Hearts)},
	)
	before := gs.PublicState()
	h0, h1 := gs.Hand(0), gs.Hand(1)

	_, err := gs.SubmitPlay(1, c(card.RankK, card.Hearts))
	assert.ErrorIs(t, err, apperrors.ErrOutOfTurn)

	_, err = gs.SubmitPlay(0, c(card.RankK, card.Hearts))
	assert.ErrorIs(t, err, apperrors.ErrCardNotInHand)

	_, err = gs.SubmitPlay(-1, c(card.Rank3, card.Clubs))
	assert.ErrorIs(t, err, apperrors.ErrOutOfTurn)

	assert.Equal(t, before, gs.PublicState())
	assert.Equal(t, h0, gs.Hand(0))
	assert.Equal(t, h1, gs.Hand(1))
}

func TestSubmitPlay_BeforeDeal(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	_, err := gs.SubmitPlay(0, c(card.Rank3, card.Clubs))
	assert.ErrorIs(t, err, apperrors.ErrHandNotInProgress)
}

func TestSubmitPlay_FullHand(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	rig(t, gs, vira7,
		[]card.Card{c(card.Rank3, card.Clubs), c(card.Rank2, card.Clubs), c(card.Rank4, card.Clubs)},
		[]card.Card{c(card.RankK, card.Hearts), c(card.RankA, card.Hearts), c(card.Rank5, card.Hearts)},
	)

	res := play(t, gs, 0, c(card.Rank3, card.Clubs))
	assert.Nil(t, res.Trick)
	assert.Equal(t, PhaseTrickInProgress, gs.Phase())
	assert.Equal(t, 1, gs.CurrentSeat())
	assert.Len(t, gs.Hand(0), 2)

	res = play(t, gs, 1, c(card.RankK, card.Hearts))
	require.NotNil(t, res.Trick)
	assert.Equal(t, 0, res.Trick.Winner)
	assert.Equal(t, 1, res.Trick.Number)
	assert.Equal(t, PhaseAwaitingPlay, gs.Phase())
	assert.Equal(t, 0, gs.CurrentSeat(), "trick winner leads")

	play(t, gs, 0, c(card.Rank2, card.Clubs))
	res = play(t, gs, 1, c(card.RankA, card.Hearts))
	assert.Equal(t, 0, res.Trick.Winner)

	play(t, gs, 0, c(card.Rank4, card.Clubs))
	res = play(t, gs, 1, c(card.Rank5, card.Hearts))
	assert.Equal(t, 1, res.Trick.Winner)

	require.NotNil(t, res.Hand)
	assert.Nil(t, res.Game)
	assert.Equal(t, 0, res.Hand.WinnerSide)
	assert.Equal(t, 1, res.Hand.Points)
	assert.Equal(t, [SideCount]int{2, 1}, res.Hand.TricksBySide)
	assert.Equal(t, [SideCount]int{1, 0}, gs.Scores())
	assert.Equal(t, PhaseHandComplete, gs.Phase())
	assert.Equal(t, -1, gs.CurrentSeat())
	assert.Empty(t, gs.Hand(0))
	assert.Empty(t, gs.Hand(1))

	ps := gs.PublicState()
	assert.Equal(t, []int{2, 1}, ps.TricksWon)
}

func TestSubmitPlay_DrawKeepsLeader(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	rig(t, gs, vira7,
		[]card.Card{c(card.RankA, card.Clubs), c(card.Rank4, card.Clubs), c(card.Rank5, card.Clubs)},
		[]card.Card{c(card.RankA, card.Hearts), c(card.Rank3, card.Hearts), c(card.Rank6, card.Hearts)},
	)

	play(t, gs, 0, c(card.RankA, card.Clubs))
	res := play(t, gs, 1, c(card.RankA, card.Hearts))
	assert.True(t, res.Trick.Draw)
	assert.Equal(t, -1, res.Trick.Winner)
	assert.Equal(t, 0, gs.CurrentSeat(), "leader repeats after a draw")

	play(t, gs, 0, c(card.Rank4, card.Clubs))
	res = play(t, gs, 1, c(card.Rank3, card.Hearts))
	assert.Equal(t, 1, res.Trick.Winner)
	assert.Equal(t, 1, gs.CurrentSeat())

	play(t, gs, 1, c(card.Rank6, card.Hearts))
	res = play(t, gs, 0, c(card.Rank5, card.Clubs))
	require.NotNil(t, res.Hand)
	assert.Equal(t, 1, res.Hand.WinnerSide)
	assert.Equal(t, []int{0, 2}, gs.PublicState().TricksWon)
}

func TestSubmitPlay_EqualTricksEarliestWins(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	rig(t, gs, vira7,
		[]card.Card{c(card.Rank3, card.Clubs), c(card.Rank4, card.Clubs), c(card.RankA, card.Clubs)},
		[]card.Card{c(card.Rank2, card.Hearts), c(card.Rank5, card.Hearts), c(card.RankA, card.Hearts)},
	)

	play(t, gs, 0, c(card.Rank3, card.Clubs))
	play(t, gs, 1, c(card.Rank2, card.Hearts))
	play(t, gs, 0, c(card.Rank4, card.Clubs))
	play(t, gs, 1, c(card.Rank5, card.Hearts))
	play(t, gs, 1, c(card.RankA, card.Hearts))
	res := play(t, gs, 0, c(card.RankA, card.Clubs))

	require.NotNil(t, res.Hand)
	assert.True(t, res.Trick.Draw)
	assert.Equal(t, [SideCount]int{1, 1}, res.Hand.TricksBySide)
	assert.Equal(t, 0, res.Hand.WinnerSide)
	assert.Equal(t, [SideCount]int{1, 0}, gs.Scores())
}

func TestSubmitPlay_AllDrawsScoreNothing(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	rig(t, gs, vira7,
		[]card.Card{c(card.RankA, card.Clubs), c(card.RankK, card.Clubs), c(card.RankJ, card.Clubs)},
		[]card.Card{c(card.RankA, card.Hearts), c(card.RankK, card.Hearts), c(card.RankJ, card.Hearts)},
	)
	_, err := gs.RequestRaise(1)
	require.NoError(t, err)

	play(t, gs, 0, c(card.RankA, card.Clubs))
	play(t, gs, 1, c(card.RankA, card.Hearts))
	play(t, gs, 0, c(card.RankK, card.Clubs))
	play(t, gs, 1, c(card.RankK, card.Hearts))
	play(t, gs, 0, c(card.RankJ, card.Clubs))
	res := play(t, gs, 1, c(card.RankJ, card.Hearts))

	require.NotNil(t, res.Hand)
	assert.Equal(t, -1, res.Hand.WinnerSide)
	assert.Equal(t, 0, res.Hand.Points)
	assert.Equal(t, [SideCount]int{0, 0}, gs.Scores())
	assert.Equal(t, PhaseHandComplete, gs.Phase())
}

func TestRequestRaise(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)

	_, err := gs.RequestRaise(0)
	assert.ErrorIs(t, err, apperrors.ErrHandNotInProgress)

	rig(t, gs, vira7,
		[]card.Card{c(card.Rank3, card.Clubs), c(card.Rank2, card.Clubs), c(card.Rank4, card.Clubs)},
		[]card.Card{c(card.RankK, card.Hearts), c(card.RankA, card.Hearts), c(card.Rank5, card.Hearts)},
	)

	_, err = gs.RequestRaise(5)
	assert.ErrorIs(t, err, apperrors.ErrRaiseNotAllowed)

	res, err := gs.RequestRaise(1)
	require.NoError(t, err)
	assert.Equal(t, RaiseResult{Seat: 1, Side: 1, Stake: 3}, *res)

	ps := gs.PublicState()
	assert.Equal(t, 3, ps.Stake)
	assert.Equal(t, 1, ps.RaisedBy)

	_, err = gs.RequestRaise(0)
	assert.ErrorIs(t, err, apperrors.ErrRaiseNotAllowed)
	_, err = gs.RequestRaise(1)
	assert.ErrorIs(t, err, apperrors.ErrRaiseNotAllowed)
	assert.Equal(t, ps, gs.PublicState())

	play(t, gs, 0, c(card.Rank3, card.Clubs))
	play(t, gs, 1, c(card.RankK, card.Hearts))
	play(t, gs, 0, c(card.Rank2, card.Clubs))
	play(t, gs, 1, c(card.RankA, card.Hearts))
	play(t, gs, 0, c(card.Rank4, card.Clubs))
	res2 := play(t, gs, 1, c(card.Rank5, card.Hearts))
	assert.Equal(t, 3, res2.Hand.Points)
	assert.Equal(t, [SideCount]int{3, 0}, gs.Scores())

	// 新的一手分值恢复为 1
	require.NoError(t, gs.DealHand())
	assert.Equal(t, 1, gs.PublicState().Stake)
	assert.Equal(t, -1, gs.PublicState().RaisedBy)
}

func TestSubmitPlay_GameComplete(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	rig(t, gs, vira7,
		[]card.Card{c(card.Rank3, card.Clubs), c(card.Rank2, card.Clubs), c(card.Rank4, card.Clubs)},
		[]card.Card{c(card.RankK, card.Hearts), c(card.RankA, card.Hearts), c(card.Rank5, card.Hearts)},
	)
	gs.scores = [SideCount]int{11, 4}

	play(t, gs, 0, c(card.Rank3, card.Clubs))
	play(t, gs, 1, c(card.RankK, card.Hearts))
	play(t, gs, 0, c(card.Rank2, card.Clubs))
	play(t, gs, 1, c(card.RankA, card.Hearts))
	play(t, gs, 0, c(card.Rank4, card.Clubs))
	res := play(t, gs, 1, c(card.Rank5, card.Hearts))

	require.NotNil(t, res.Game)
	assert.Equal(t, 0, res.Game.WinnerSide)
	assert.Equal(t, [SideCount]int{12, 4}, res.Game.Scores)
	assert.Equal(t, PhaseGameComplete, gs.Phase())
	assert.Equal(t, 0, gs.WinnerSide())

	assert.ErrorIs(t, gs.DealHand(), apperrors.ErrGameOver)
	assert.NotErrorIs(t, gs.DealHand(), apperrors.ErrGameNotStart)
	_, err := gs.SubmitPlay(0, c(card.Rank3, card.Clubs))
	assert.ErrorIs(t, err, apperrors.ErrHandNotInProgress)

	gs.NewGame()
	assert.Equal(t, -1, gs.WinnerSide())
	assert.NoError(t, gs.DealHand())
}

func TestSubmitPlay_FourSeatsPartners(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 4)
	rig(t, gs, vira7,
		[]card.Card{c(card.Rank4, card.Clubs), c(card.Rank5, card.Clubs), c(card.Rank6, card.Clubs)},
		[]card.Card{c(card.RankK, card.Clubs), c(card.Rank5, card.Hearts), c(card.Rank6, card.Hearts)},
		[]card.Card{c(card.RankQ, card.Clubs), c(card.Rank5, card.Spades), c(card.Rank6, card.Spades)},
		[]card.Card{c(card.Rank3, card.Clubs), c(card.Rank5, card.Diamonds), c(card.Rank6, card.Diamonds)},
	)

	play(t, gs, 0, c(card.Rank4, card.Clubs))
	assert.Equal(t, 1, gs.CurrentSeat())
	play(t, gs, 1, c(card.RankK, card.Clubs))
	assert.Equal(t, 2, gs.CurrentSeat())
	play(t, gs, 2, c(card.RankQ, card.Clubs))
	assert.Equal(t, 3, gs.CurrentSeat())
	res := play(t, gs, 3, c(card.Rank3, card.Clubs))

	require.NotNil(t, res.Trick)
	assert.Equal(t, 2, res.Trick.Winner)
	assert.Equal(t, 0, res.Trick.WinnerSide)
	assert.Equal(t, 2, gs.CurrentSeat())
	assert.Equal(t, []int{0, 0, 1, 0}, gs.PublicState().TricksWon)
	assert.Equal(t, []int{2, 2, 2, 2}, gs.PublicState().CardsLeft)
}

func TestDealHand_LeaderRotates(t *testing.T) {
	t.Parallel()

	gs := newSession(t, 2)
	rig(t, gs, vira7,
		[]card.Card{c(card.Rank3, card.Clubs), c(card.Rank2, card.Clubs), c(card.Rank4, card.Clubs)},
		[]card.Card{c(card.RankK, card.Hearts), c(card.RankA, card.Hearts), c(card.Rank5, card.Hearts)},
	)
	play(t, gs, 0, c(card.Rank3, card.Clubs))
	play(t, gs, 1, c(card.RankK, card.Hearts))
	play(t, gs, 0, c(card.Rank2, card.Clubs))
	play(t, gs, 1, c(card.RankA, card.Hearts))
	play(t, gs, 0, c(card.Rank4, card.Clubs))
	play(t, gs, 1, c(card.Rank5, card.Hearts))

	require.NoError(t, gs.DealHand())
	assert.Equal(t, 1, gs.CurrentSeat())
	assert.Equal(t, 2, gs.PublicState().HandNumber)
}

func TestGameSession_PlaysToCompletion(t *testing.T) {
	t.Parallel()

	for _, seats := range []int{2, 4} {
		gs := newSession(t, seats)
		require.NoError(t, gs.DealHand())

		for i := 0; gs.Phase() != PhaseGameComplete; i++ {
			require.Less(t, i, 10000, "game did not finish")
			if gs.Phase() == PhaseHandComplete {
				require.NoError(t, gs.DealHand())
				continue
			}
			seat := gs.CurrentSeat()
			hand := gs.Hand(seat)
			require.NotEmpty(t, hand, "current seat must hold a card")
			play(t, gs, seat, hand[0])
		}

		scores := gs.Scores()
		assert.GreaterOrEqual(t, scores[gs.WinnerSide()], DefaultWinScore)
	}
}
