package apperrors

import (
	"github.com/palemoky/truco/internal/protocol"
)

// GameError 游戏错误（牌堆、牌局和房间共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// newGameError 按错误码取默认文案
func newGameError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrRoomNotFound      = newGameError(protocol.ErrCodeRoomNotFound)
	ErrRoomFull          = newGameError(protocol.ErrCodeRoomFull)
	ErrNotInRoom         = newGameError(protocol.ErrCodeNotInRoom)
	ErrGameNotStart      = newGameError(protocol.ErrCodeGameNotStart)
	ErrOutOfTurn         = newGameError(protocol.ErrCodeOutOfTurn)
	ErrCardNotInHand     = newGameError(protocol.ErrCodeCardNotInHand)
	ErrRaiseNotAllowed   = newGameError(protocol.ErrCodeRaiseNotAllowed)
	ErrHandNotInProgress = newGameError(protocol.ErrCodeHandNotInProgress)
	ErrInvalidCard       = newGameError(protocol.ErrCodeInvalidCard)
	ErrHandInProgress    = newGameError(protocol.ErrCodeHandInProgress)
	ErrGameOver          = newGameError(protocol.ErrCodeGameOver)
	ErrInsufficientCards = newGameError(protocol.ErrCodeInsufficientCards)
	ErrEmptyDeck         = newGameError(protocol.ErrCodeEmptyDeck)
	ErrInvalidSeatCount  = newGameError(protocol.ErrCodeInvalidSeatCount)
	ErrEmptyHand         = &GameError{Code: protocol.ErrCodeCardNotInHand, Message: "手牌为空"}
)
