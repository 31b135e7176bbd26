package card

import (
	"fmt"
	"math/rand/v2"

	"github.com/palemoky/truco/internal/apperrors"
)

// Suit 定义花色，数值顺序即为manilha的花色强弱（梅花最大）
type Suit int

// Rank 定义点数，数值为在点数顺序中的下标
type Rank int

// Card 定义一张牌
type Card struct {
	Rank Rank
	Suit Suit
}

const (
	Clubs    Suit = iota // 梅花 (Zap)
	Hearts               // 红心 (Copeta)
	Spades               // 黑桃 (Espadilha)
	Diamonds             // 方块 (Pica-fumo)
)

// SuitCount 花色数量
const SuitCount = 4

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Hearts:   "♥",
	Spades:   "♠",
	Diamonds: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// IsRed 红色花色
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

const (
	Rank4 Rank = iota
	Rank5
	Rank6
	Rank7
	RankQ
	RankJ
	RankK
	RankA
	Rank2
	Rank3
)

// RankCount 点数数量
const RankCount = 10

// DeckSize 一副牌的张数
const DeckSize = SuitCount * RankCount

// rankNames 牌面值字符串映射表
var rankNames = [RankCount]string{"4", "5", "6", "7", "Q", "J", "K", "A", "2", "3"}

func (r Rank) String() string {
	if r < 0 || r >= RankCount {
		return "?"
	}
	return rankNames[r]
}

// Next 返回循环顺序中的下一个点数（3 之后回到 4）
func (r Rank) Next() Rank {
	return (r + 1) % RankCount
}

// Valid 是否为合法点数
func (r Rank) Valid() bool {
	return r >= 0 && r < RankCount
}

// Valid 是否为合法花色
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Diamonds
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Deck 定义一副牌
type Deck []Card

// BuildDeck 生成 40 张牌，每个点数与花色的组合恰好一张
func BuildDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for s := Clubs; s <= Diamonds; s++ {
		for r := Rank4; r <= Rank3; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Shuffle 返回洗好的新牌堆，原牌堆不变。rng 为 nil 时使用全局随机源
func Shuffle(deck Deck, rng *rand.Rand) Deck {
	out := make(Deck, len(deck))
	copy(out, deck)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	// Fisher–Yates
	for i := len(out) - 1; i > 0; i-- {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal 从牌堆前端给每个座位发 handSize 张牌，返回各座位手牌与剩余牌堆
func Deal(deck Deck, seatCount, handSize int) ([][]Card, Deck, error) {
	need := seatCount * handSize
	if seatCount <= 0 || handSize <= 0 || need > len(deck) {
		return nil, deck, fmt.Errorf("%w: need %d, have %d", apperrors.ErrInsufficientCards, need, len(deck))
	}

	hands := make([][]Card, seatCount)
	for seat := range seatCount {
		hand := make([]Card, handSize)
		copy(hand, deck[seat*handSize:(seat+1)*handSize])
		hands[seat] = hand
	}

	rest := make(Deck, len(deck)-need)
	copy(rest, deck[need:])
	return hands, rest, nil
}

// DrawVira 翻出牌堆最前面的一张作为 vira
func DrawVira(deck Deck) (Card, Deck, error) {
	if len(deck) == 0 {
		return Card{}, deck, apperrors.ErrEmptyDeck
	}
	rest := make(Deck, len(deck)-1)
	copy(rest, deck[1:])
	return deck[0], rest, nil
}
