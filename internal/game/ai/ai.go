// Package ai 电脑座位的出牌策略
package ai

import (
	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
)

// Difficulty 电脑难度
type Difficulty string

const (
	Easy   Difficulty = "easy"   // 出最小的牌
	Normal Difficulty = "normal" // 出最大的牌
	Hard   Difficulty = "hard"   // 同 normal
)

// Difficulties 所有难度，按 UI 切换顺序排列
var Difficulties = []Difficulty{Easy, Normal, Hard}

// ParseDifficulty 解析难度，区分大小写，未知值按 normal 处理
func ParseDifficulty(s string) Difficulty {
	switch d := Difficulty(s); d {
	case Easy, Normal, Hard:
		return d
	default:
		return Normal
	}
}

// Next 循环切换到下一个难度
func (d Difficulty) Next() Difficulty {
	for i, v := range Difficulties {
		if v == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return Easy
}

// ChooseCard 选出要打的牌，返回这张牌和剩余手牌
// easy 取牌力最小的一张，其余难度取最大的一张，并列时取最先出现的一张
func ChooseCard(hand []card.Card, m rule.Manilha, d Difficulty) (card.Card, []card.Card, error) {
	if len(hand) == 0 {
		return card.Card{}, nil, apperrors.ErrEmptyHand
	}

	var idx int
	if d == Easy {
		idx = rule.Weakest(hand, m)
	} else {
		idx = rule.Strongest(hand, m)
	}

	chosen := hand[idx]
	rest, _ := card.Remove(hand, chosen)
	return chosen, rest, nil
}
