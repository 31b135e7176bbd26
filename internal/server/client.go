package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
)

const (
	writeWait      = 10 * time.Second    // 写超时
	pongWait       = 60 * time.Second    // 等待 pong 的超时
	pingPeriod     = (pongWait * 9) / 10 // ping 间隔，必须小于 pongWait
	maxMessageSize = 4096                // 单条消息最大字节数
	sendBufferSize = 256
)

// frame 待写出的一帧
type frame struct {
	binary bool
	data   []byte
}

// Client 一个 WebSocket 连接
type Client struct {
	ID   string
	Name string
	IP   string

	server *Server
	conn   *websocket.Conn
	send   chan frame

	// 最近一次收到的是二进制帧时，回复也使用二进制帧
	binary atomic.Bool

	mu       sync.RWMutex
	roomCode string
	closed   bool
}

// NewClient 创建客户端，name 为空时由房间分配座位名
func NewClient(server *Server, conn *websocket.Conn, name string) *Client {
	return &Client{
		ID:     uuid.NewString(),
		Name:   name,
		server: server,
		conn:   conn,
		send:   make(chan frame, sendBufferSize),
	}
}

func (c *Client) GetID() string   { return c.ID }
func (c *Client) GetName() string { return c.Name }

// GetRoom 获取客户端所在房间
func (c *Client) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomCode
}

// SetRoom 设置客户端所在房间
func (c *Client) SetRoom(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomCode = code
}

// decode 按帧类型解码，并记住客户端使用的帧类型
func (c *Client) decode(messageType int, data []byte) (*protocol.Message, error) {
	if messageType == websocket.BinaryMessage {
		c.binary.Store(true)
		return codec.DecodeBinary(data)
	}
	c.binary.Store(false)
	return codec.Decode(data)
}

// ReadPump 从 WebSocket 读取消息，连接断开时离开房间并注销
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.server.handleDisconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warnf("读取错误: %v", err)
			}
			return
		}

		allowed, warning := c.server.messageLimiter.AllowMessage(c.ID)
		if !allowed {
			logger.Warnf("⚠️ 客户端 %s (IP: %s) 消息过于频繁", c.ID, c.IP)
			c.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeRateLimit, "消息发送过于频繁"))
			if c.server.messageLimiter.GetWarningCount(c.ID) > maxMessageWarnings {
				logger.Warnf("🚫 客户端 %s 因多次超速被断开连接", c.ID)
				return
			}
			continue
		}
		if warning {
			c.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeRateLimit, "请求过于频繁，请放慢速度"))
		}

		msg, err := c.decode(messageType, data)
		if err != nil {
			logger.Debugf("消息解析错误: %v", err)
			c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		c.server.handler.Handle(c, msg)
		codec.PutMessage(msg)
	}
}

// WritePump 向 WebSocket 写入消息并定时发送 ping
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case f, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			messageType := websocket.TextMessage
			if f.binary {
				messageType = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(messageType, f.data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 按客户端最近使用的帧类型编码并入队；缓冲区满时断开连接
func (c *Client) SendMessage(msg *protocol.Message) {
	f := frame{binary: c.binary.Load()}
	var err error
	if f.binary {
		f.data, err = codec.EncodeBinary(msg)
	} else {
		f.data, err = codec.Encode(msg)
	}
	if err != nil {
		logger.Errorf("消息编码错误: %v", err)
		return
	}

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	select {
	case c.send <- f:
		c.mu.RUnlock()
	default:
		c.mu.RUnlock()
		logger.Warnf("客户端 %s 发送缓冲区已满", c.ID)
		c.Close()
	}
}

// Close 关闭发送通道，WritePump 随后发送关闭帧并退出
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
