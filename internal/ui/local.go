package ui

import (
	"sync"

	"github.com/google/uuid"

	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
)

// localBufferSize 本地消息队列长度
const localBufferSize = 256

// LocalClient is an in-process seat: the room manager delivers messages to it
// through a channel instead of a WebSocket.
type LocalClient struct {
	id   string
	name string

	mu       sync.RWMutex
	roomCode string
	closed   bool
	recv     chan *protocol.Message
}

// NewLocalClient creates a local client with a random ID.
func NewLocalClient(name string) *LocalClient {
	return &LocalClient{
		id:   uuid.NewString(),
		name: name,
		recv: make(chan *protocol.Message, localBufferSize),
	}
}

func (c *LocalClient) GetID() string   { return c.id }
func (c *LocalClient) GetName() string { return c.name }

func (c *LocalClient) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomCode
}

func (c *LocalClient) SetRoom(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomCode = code
}

// SendMessage queues a message without blocking the caller, which may hold a room lock.
func (c *LocalClient) SendMessage(msg *protocol.Message) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.recv <- msg:
	default:
		logger.Warnf("本地消息队列已满，丢弃消息 %s", msg.Type)
	}
}

// Receive returns the channel of incoming messages; it is closed by Close.
func (c *LocalClient) Receive() <-chan *protocol.Message {
	return c.recv
}

func (c *LocalClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.recv)
}
