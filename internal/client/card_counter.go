package client

import (
	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
)

// CardCounter tracks which cards of the 40-card deck have not been seen this hand
type CardCounter struct {
	remaining map[card.Rank]int
	seen      map[card.Card]bool
}

// NewCardCounter creates and initializes a new card counter
func NewCardCounter() *CardCounter {
	cc := &CardCounter{}
	cc.Reset()
	return cc
}

// Reset starts over with a full deck
func (cc *CardCounter) Reset() {
	cc.remaining = make(map[card.Rank]int, card.RankCount)
	cc.seen = make(map[card.Card]bool)
	for r := card.Rank4; r <= card.Rank3; r++ {
		cc.remaining[r] = card.SuitCount
	}
}

// DeductCards marks cards as seen; a card is only counted once
func (cc *CardCounter) DeductCards(cards ...card.Card) {
	for _, c := range cards {
		if cc.seen[c] {
			continue
		}
		cc.seen[c] = true
		if cc.remaining[c.Rank] > 0 {
			cc.remaining[c.Rank]--
		}
	}
}

// GetRemaining returns the unseen count per rank
func (cc *CardCounter) GetRemaining() map[card.Rank]int {
	return cc.remaining
}

// UnseenManilhas returns the manilhas not seen yet, strongest first
func (cc *CardCounter) UnseenManilhas(m rule.Manilha) []card.Card {
	var out []card.Card
	for _, c := range m.Cards {
		if !cc.seen[c] {
			out = append(out, c)
		}
	}
	return out
}
