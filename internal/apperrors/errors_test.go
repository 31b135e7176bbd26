package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/truco/internal/protocol"
)

func TestGameError_MessagesFromProtocol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *GameError
		code int
	}{
		{ErrRoomNotFound, protocol.ErrCodeRoomNotFound},
		{ErrRoomFull, protocol.ErrCodeRoomFull},
		{ErrOutOfTurn, protocol.ErrCodeOutOfTurn},
		{ErrCardNotInHand, protocol.ErrCodeCardNotInHand},
		{ErrRaiseNotAllowed, protocol.ErrCodeRaiseNotAllowed},
		{ErrInsufficientCards, protocol.ErrCodeInsufficientCards},
		{ErrEmptyDeck, protocol.ErrCodeEmptyDeck},
		{ErrGameOver, protocol.ErrCodeGameOver},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
		assert.NotEmpty(t, tt.err.Error())
		assert.Equal(t, protocol.ErrorMessages[tt.code], tt.err.Error())
	}
}

func TestGameError_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("出牌失败: %w", ErrOutOfTurn)
	assert.ErrorIs(t, err, ErrOutOfTurn)
	assert.NotErrorIs(t, err, ErrCardNotInHand)

	var ge *GameError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, protocol.ErrCodeOutOfTurn, ge.Code)
}
