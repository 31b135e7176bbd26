package rule

import (
	"github.com/palemoky/truco/internal/game/card"
)

// manilhaBase manilha 强度基数：梅花 20，红心 19，黑桃 18，方块 17
const manilhaBase = 20

// Manilha 本局的 manilha：vira 的下一个点数，四张按花色从大到小
type Manilha struct {
	Rank  card.Rank
	Cards [card.SuitCount]card.Card
}

// manilhaNames 按花色的 manilha 名称
var manilhaNames = [card.SuitCount]string{"Zap", "Copeta", "Espadilha", "Pica-fumo"}

// DeriveManilha 由 vira 推出 manilha
func DeriveManilha(vira card.Card) Manilha {
	m := Manilha{Rank: vira.Rank.Next()}
	for s := card.Clubs; s <= card.Diamonds; s++ {
		m.Cards[s] = card.Card{Rank: m.Rank, Suit: s}
	}
	return m
}

// IsManilha 判断是否为 manilha
func (m Manilha) IsManilha(c card.Card) bool {
	return c.Rank == m.Rank
}

// Strength 牌力：manilha 为 20 减花色位置，其余为点数在顺序中的下标 (0..9)
func Strength(c card.Card, m Manilha) int {
	if m.IsManilha(c) {
		return manilhaBase - int(c.Suit)
	}
	return int(c.Rank)
}

// ManilhaName 返回 manilha 的名称，不是 manilha 时返回空串
func ManilhaName(c card.Card, m Manilha) string {
	if !m.IsManilha(c) || !c.Suit.Valid() {
		return ""
	}
	return manilhaNames[c.Suit]
}
