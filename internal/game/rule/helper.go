package rule

import "github.com/palemoky/truco/internal/game/card"

// Weakest 手牌中牌力最小的一张的位置，并列取最先出现者；空手牌返回 -1
func Weakest(hand []card.Card, m Manilha) int {
	idx := -1
	best := 0
	for i, c := range hand {
		if s := Strength(c, m); idx < 0 || s < best {
			idx, best = i, s
		}
	}
	return idx
}

// Strongest 手牌中牌力最大的一张的位置，并列取最先出现者；空手牌返回 -1
func Strongest(hand []card.Card, m Manilha) int {
	idx := -1
	best := 0
	for i, c := range hand {
		if s := Strength(c, m); idx < 0 || s > best {
			idx, best = i, s
		}
	}
	return idx
}
