package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
)

var manilhaQ = rule.DeriveManilha(card.Card{Rank: card.Rank7, Suit: card.Diamonds})

func TestChooseCard(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Rank: card.RankK, Suit: card.Clubs},
		{Rank: card.RankQ, Suit: card.Diamonds}, // manilha, 17
		{Rank: card.Rank4, Suit: card.Hearts},
	}

	tests := []struct {
		name       string
		difficulty Difficulty
		expected   card.Card
	}{
		{"Easy plays weakest", Easy, card.Card{Rank: card.Rank4, Suit: card.Hearts}},
		{"Normal plays strongest", Normal, card.Card{Rank: card.RankQ, Suit: card.Diamonds}},
		{"Hard plays strongest", Hard, card.Card{Rank: card.RankQ, Suit: card.Diamonds}},
		{"Unknown plays strongest", Difficulty("brutal"), card.Card{Rank: card.RankQ, Suit: card.Diamonds}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chosen, rest, err := ChooseCard(hand, manilhaQ, tt.difficulty)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, chosen)
			assert.Len(t, rest, 2)
			assert.NotContains(t, rest, chosen)
		})
	}
}

func TestChooseCard_TieKeepsFirst(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Rank: card.RankA, Suit: card.Spades},
		{Rank: card.RankA, Suit: card.Clubs},
	}

	chosen, _, err := ChooseCard(hand, manilhaQ, Normal)
	require.NoError(t, err)
	assert.Equal(t, hand[0], chosen)

	chosen, _, err = ChooseCard(hand, manilhaQ, Easy)
	require.NoError(t, err)
	assert.Equal(t, hand[0], chosen)
}

func TestChooseCard_EmptyHand(t *testing.T) {
	t.Parallel()

	_, _, err := ChooseCard(nil, manilhaQ, Normal)
	assert.ErrorIs(t, err, apperrors.ErrEmptyHand)
}

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Easy, ParseDifficulty("easy"))
	assert.Equal(t, Normal, ParseDifficulty(" EASY "))
	assert.Equal(t, Normal, ParseDifficulty("Easy"))
	assert.Equal(t, Normal, ParseDifficulty(" easy "))
	assert.Equal(t, Hard, ParseDifficulty("hard"))
	assert.Equal(t, Normal, ParseDifficulty(""))
	assert.Equal(t, Normal, ParseDifficulty("whatever"))
}

func TestDifficulty_NextCycles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Normal, Easy.Next())
	assert.Equal(t, Hard, Normal.Next())
	assert.Equal(t, Easy, Hard.Next())
	assert.Equal(t, Easy, Difficulty("x").Next())
}

func TestChooseCard_OnlyExactEasyPlaysWeakest(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Rank: card.RankK, Suit: card.Clubs},
		{Rank: card.Rank4, Suit: card.Hearts},
	}

	for _, s := range []string{"Easy", "EASY", " easy "} {
		chosen, _, err := ChooseCard(hand, manilhaQ, ParseDifficulty(s))
		require.NoError(t, err)
		assert.Equal(t, hand[0], chosen, "difficulty %q", s)
	}

	chosen, _, err := ChooseCard(hand, manilhaQ, ParseDifficulty("easy"))
	require.NoError(t, err)
	assert.Equal(t, hand[1], chosen)
}
