package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/truco/internal/protocol"
)

func samplePlay() protocol.PlayCardPayload {
	return protocol.PlayCardPayload{
		RoomCode: "123456",
		Seat:     1,
		Card:     protocol.CardInfo{Rank: "Q", Suit: "♣"},
	}
}

func TestEncodeDecode_JSON(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(protocol.MsgPlayCard, samplePlay())
	data, err := Encode(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"play_card"`)
	assert.NotContains(t, string(data), "\n")

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPlayCard, decoded.Type)

	payload, err := ParsePayload[protocol.PlayCardPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, samplePlay(), *payload)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"payload":{}}`))
	assert.ErrorIs(t, err, ErrMissingType)
}

func TestEncodeDecode_Binary(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(protocol.MsgPlayCard, samplePlay())
	data, err := EncodeBinary(msg)
	require.NoError(t, err)

	decoded, err := DecodeBinary(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPlayCard, decoded.Type)

	payload, err := ParsePayload[protocol.PlayCardPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, samplePlay(), *payload)
}

func TestEncodeDecode_BinaryWithoutPayload(t *testing.T) {
	t.Parallel()

	data, err := EncodeBinary(MustNewMessage(protocol.MsgCreateRoom, nil))
	require.NoError(t, err)

	decoded, err := DecodeBinary(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgCreateRoom, decoded.Type)
	assert.Empty(t, decoded.Payload)
}

func TestDecodeBinary_Invalid(t *testing.T) {
	t.Parallel()

	_, err := DecodeBinary([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)

	empty, err := EncodeBinary(&protocol.Message{})
	require.NoError(t, err)
	_, err = DecodeBinary(empty)
	assert.ErrorIs(t, err, ErrMissingType)
}

func TestParsePayload_Empty(t *testing.T) {
	t.Parallel()

	payload, err := ParsePayload[protocol.PingPayload](&protocol.Message{Type: protocol.MsgPing})
	require.NoError(t, err)
	assert.Zero(t, payload.Timestamp)

	_, err = ParsePayload[protocol.PingPayload](&protocol.Message{Payload: []byte("{bad")})
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(protocol.ErrCodeRoomFull)
	assert.Equal(t, protocol.MsgError, msg.Type)

	payload, err := ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeRoomFull, payload.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeRoomFull], payload.Message)

	msg = NewErrorMessageWithText(protocol.ErrCodeUnknown, "boom")
	payload, err = ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "boom", payload.Message)
}
