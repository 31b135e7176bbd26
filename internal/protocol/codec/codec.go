// Package codec 消息编解码：文本帧使用 JSON，二进制帧使用 protobuf Struct 信封
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/truco/internal/protocol"
)

// 信封字段名
const (
	fieldType    = "type"
	fieldPayload = "payload"
)

// ErrMissingType 消息缺少 type 字段
var ErrMissingType = errors.New("消息缺少 type 字段")

// NewMessage 创建一个新消息
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	var data json.RawMessage
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return &protocol.Message{
		Type:    msgType,
		Payload: data,
	}, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 将消息编码为 JSON 字节
func Encode(m *protocol.Message) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(m); err != nil {
		return nil, err
	}
	// 去掉 Encoder 追加的换行，并复制出池外
	data := buf.Bytes()
	return append([]byte(nil), data[:len(data)-1]...), nil
}

// Decode 从 JSON 字节解码消息
// 注意: 使用完毕后可调用 PutMessage 归还对象到池
func Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, err
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, ErrMissingType
	}
	return msg, nil
}

// EncodeBinary 将消息编码为 protobuf Struct 信封
func EncodeBinary(m *protocol.Message) ([]byte, error) {
	fields := map[string]any{fieldType: string(m.Type)}
	if len(m.Payload) > 0 {
		var payload any
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			return nil, fmt.Errorf("解析 payload 失败: %w", err)
		}
		fields[fieldPayload] = payload
	}

	env, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("构造信封失败: %w", err)
	}
	return proto.Marshal(env)
}

// DecodeBinary 从 protobuf Struct 信封解码消息
func DecodeBinary(data []byte) (*protocol.Message, error) {
	env := getEnvelope()
	defer putEnvelope(env)

	if err := proto.Unmarshal(data, env); err != nil {
		return nil, err
	}

	msgType := env.GetFields()[fieldType].GetStringValue()
	if msgType == "" {
		return nil, ErrMissingType
	}

	msg := GetMessage()
	msg.Type = protocol.MessageType(msgType)
	if v, ok := env.GetFields()[fieldPayload]; ok {
		payload, err := json.Marshal(v.AsInterface())
		if err != nil {
			PutMessage(msg)
			return nil, err
		}
		msg.Payload = payload
	}
	return msg, nil
}

// ParsePayload 解析消息的 Payload 到指定类型
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NewErrorMessage 创建错误消息
func NewErrorMessage(code int) *protocol.Message {
	return NewErrorMessageWithText(code, protocol.ErrorMessages[code])
}

// NewErrorMessageWithText 创建带自定义文本的错误消息
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	msg, _ := NewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
	return msg
}
