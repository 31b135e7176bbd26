package rule

import "github.com/palemoky/truco/internal/game/card"

// Play 一墩中某个座位打出的牌
type Play struct {
	Seat int
	Card card.Card
}

// TrickOutcome 一墩的结果；Draw 为 true 时 Winner 无意义
type TrickOutcome struct {
	Winner   int
	Draw     bool
	Strength int
}

// ResolveTrick 比较一墩的牌：最大牌力唯一者胜，并列最大为平局，不记给任何人
func ResolveTrick(plays []Play, m Manilha) TrickOutcome {
	out := TrickOutcome{Winner: -1, Strength: -1}
	for _, p := range plays {
		s := Strength(p.Card, m)
		switch {
		case s > out.Strength:
			out = TrickOutcome{Winner: p.Seat, Strength: s}
		case s == out.Strength:
			out.Draw = true
		}
	}
	if out.Draw {
		out.Winner = -1
	}
	return out
}

// CanBeat 判断 c 是否严格大于 other
func CanBeat(c, other card.Card, m Manilha) bool {
	return Strength(c, m) > Strength(other, m)
}
