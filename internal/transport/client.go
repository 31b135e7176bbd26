// Package transport is the WebSocket client side of the Truco protocol.
package transport

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 心跳检测间隔
	heartbeatInterval = 5 * time.Second
	handshakeTimeout  = 10 * time.Second
	bufferSize        = 256
)

// ErrClosed 连接已关闭
var ErrClosed = errors.New("connection closed")

// Client WebSocket 客户端
type Client struct {
	ServerURL string
	Name      string
	Binary    bool // 使用 protobuf 二进制帧

	conn    *websocket.Conn
	send    chan []byte
	receive chan *protocol.Message
	done    chan struct{}

	PlayerID   string
	PlayerName string

	// 网络延迟（毫秒）
	latency atomic.Int64

	// 回调
	OnMessage func(*protocol.Message) // 消息回调
	OnError   func(error)             // 错误回调
	OnClose   func()                  // 关闭回调

	mu     sync.RWMutex
	closed bool
}

// NewClient 创建客户端，name 为空时由服务端分配座位名
func NewClient(serverURL, name string) *Client {
	return &Client{
		ServerURL: serverURL,
		Name:      name,
		send:      make(chan []byte, bufferSize),
		receive:   make(chan *protocol.Message, bufferSize),
		done:      make(chan struct{}),
	}
}

// dialURL 附带玩家名的连接地址
func (c *Client) dialURL() (string, error) {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return "", err
	}
	if c.Name != "" {
		q := u.Query()
		q.Set("name", c.Name)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Connect 连接服务器并启动读写协程
func (c *Client) Connect() error {
	target, err := c.dialURL()
	if err != nil {
		return err
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, resp, err := dialer.Dial(target, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusServiceUnavailable {
			return errors.New("服务器维护中或连接数已满")
		}
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readPump()
	go c.writePump()

	return nil
}

// SendMessage 发送消息
func (c *Client) SendMessage(msg *protocol.Message) error {
	var (
		data []byte
		err  error
	)
	if c.Binary {
		data, err = codec.EncodeBinary(msg)
	} else {
		data, err = codec.Encode(msg)
	}
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// Receive 接收消息 (阻塞)
func (c *Client) Receive() (*protocol.Message, error) {
	select {
	case msg := <-c.receive:
		return msg, nil
	case <-c.done:
		return nil, ErrClosed
	}
}

// Messages 接收消息的 channel，配合 Done 在 select 中使用
func (c *Client) Messages() <-chan *protocol.Message {
	return c.receive
}

// ReceiveWithTimeout 带超时接收消息
func (c *Client) ReceiveWithTimeout(timeout time.Duration) (*protocol.Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-c.receive:
		return msg, nil
	case <-timer.C:
		return nil, errors.New("receive timeout")
	case <-c.done:
		return nil, ErrClosed
	}
}

// Close 关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

// Done 连接关闭时被关闭的 channel
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

// GetLatency 获取当前延迟（毫秒）
func (c *Client) GetLatency() int64 {
	return c.latency.Load()
}

// StartHeartbeat 启动心跳检测
func (c *Client) StartHeartbeat() {
	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if c.IsConnected() {
					_ = c.Ping()
				}
			case <-c.done:
				return
			}
		}
	}()
}
