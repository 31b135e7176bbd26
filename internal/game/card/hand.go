package card

import (
	"fmt"
	"slices"
	"strings"
)

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[string]Rank{
	"4": Rank4,
	"5": Rank5,
	"6": Rank6,
	"7": Rank7,
	"Q": RankQ,
	"J": RankJ,
	"K": RankK,
	"A": RankA,
	"2": Rank2,
	"3": Rank3,
}

// charToSuit 花色符号与字母都可识别
var charToSuit = map[string]Suit{
	"♣": Clubs,
	"C": Clubs,
	"♥": Hearts,
	"H": Hearts,
	"♠": Spades,
	"S": Spades,
	"♦": Diamonds,
	"D": Diamonds,
}

// RankFromString 解析点数
func RankFromString(s string) (Rank, error) {
	if rank, ok := charToRank[strings.ToUpper(s)]; ok {
		return rank, nil
	}
	return -1, fmt.Errorf("无法识别的点数: %q", s)
}

// SuitFromString 解析花色
func SuitFromString(s string) (Suit, error) {
	if suit, ok := charToSuit[strings.ToUpper(s)]; ok {
		return suit, nil
	}
	return -1, fmt.Errorf("无法识别的花色: %q", s)
}

// ParseCard 解析 "7♦" 或 "7d" 形式的牌
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) != 2 {
		return Card{}, fmt.Errorf("无法识别的牌: %q", s)
	}
	rank, err := RankFromString(string(runes[0]))
	if err != nil {
		return Card{}, err
	}
	suit, err := SuitFromString(string(runes[1]))
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// IndexOf 返回牌在手牌中的位置，不存在返回 -1
func IndexOf(hand []Card, c Card) int {
	return slices.Index(hand, c)
}

// Contains 手牌中是否有这张牌
func Contains(hand []Card, c Card) bool {
	return IndexOf(hand, c) >= 0
}

// Remove 返回去掉这张牌后的新手牌，原手牌不变
func Remove(hand []Card, c Card) ([]Card, bool) {
	idx := IndexOf(hand, c)
	if idx < 0 {
		return hand, false
	}
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:idx]...)
	out = append(out, hand[idx+1:]...)
	return out, true
}

// HandString 手牌的可读形式
func HandString(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
