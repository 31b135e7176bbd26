package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
)

func TestNewCardCounter(t *testing.T) {
	t.Parallel()

	cc := NewCardCounter()
	remaining := cc.GetRemaining()

	total := 0
	for r := card.Rank4; r <= card.Rank3; r++ {
		assert.Equal(t, 4, remaining[r], "rank %v", r)
		total += remaining[r]
	}
	assert.Equal(t, card.DeckSize, total)
}

func TestCardCounter_DeductCards(t *testing.T) {
	t.Parallel()

	cc := NewCardCounter()
	threeOfClubs := card.Card{Rank: card.Rank3, Suit: card.Clubs}

	cc.DeductCards(threeOfClubs, card.Card{Rank: card.Rank3, Suit: card.Hearts})
	assert.Equal(t, 2, cc.GetRemaining()[card.Rank3])

	// 同一张牌只扣一次
	cc.DeductCards(threeOfClubs)
	assert.Equal(t, 2, cc.GetRemaining()[card.Rank3])

	cc.Reset()
	assert.Equal(t, 4, cc.GetRemaining()[card.Rank3])
}

func TestCardCounter_UnseenManilhas(t *testing.T) {
	t.Parallel()

	cc := NewCardCounter()
	m := rule.DeriveManilha(card.Card{Rank: card.Rank7, Suit: card.Spades})
	assert.Len(t, cc.UnseenManilhas(m), 4)

	zap := card.Card{Rank: card.RankQ, Suit: card.Clubs}
	cc.DeductCards(zap)

	unseen := cc.UnseenManilhas(m)
	assert.Len(t, unseen, 3)
	assert.NotContains(t, unseen, zap)
	assert.Equal(t, card.Hearts, unseen[0].Suit)
}
