package server

import (
	"net/http"
	"strings"

	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/types"
)

const maxNameLength = 24

// handleWebSocket 处理 WebSocket 连接，可用 ?name= 指定显示名
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientIP := GetClientIP(r)

	// 维护模式检查（最优先）
	if s.IsMaintenanceMode() {
		logger.Infof("🔧 维护模式，拒绝新连接: %s", clientIP)
		http.Error(w, "Server is under maintenance, please try again later", http.StatusServiceUnavailable)
		return
	}

	// 连接数限制，信号量在连接断开后释放
	select {
	case s.semaphore <- struct{}{}:
	default:
		logger.Warnf("🚫 达到最大连接数限制 (%d), IP: %s", s.maxConnections, clientIP)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}
	release := func() { <-s.semaphore }

	if !s.ipFilter.IsAllowed(clientIP) {
		release()
		logger.Warnf("🚫 IP %s 被过滤器拒绝", clientIP)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if !s.originChecker.Check(r) {
		release()
		logger.Warnf("🚫 来源验证失败: %s (IP: %s)", r.Header.Get("Origin"), clientIP)
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	if !s.rateLimiter.Allow(clientIP) {
		release()
		logger.Warnf("🚫 IP %s 请求过于频繁", clientIP)
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		release()
		logger.Warnf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn, sanitizeName(r.URL.Query().Get("name")))
	client.IP = clientIP
	s.registerClient(client)

	client.SendMessage(codec.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   client.ID,
		PlayerName: client.Name,
	}))
	logger.Infof("✅ 玩家 %s (%s) 已连接", client.Name, client.ID)

	go func() {
		defer release()
		client.ReadPump()
	}()
	go client.WritePump()
}

// sanitizeName 去掉首尾空白并截断过长的显示名
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}
	return name
}

// handleDisconnect 连接断开：离开房间并注销
func (s *Server) handleDisconnect(c *Client) {
	s.messageLimiter.RemoveClient(c.ID)
	s.roomManager.LeaveRoom(c)
	s.unregisterClient(c)
	c.Close()
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		logger.Infof("❌ 玩家 %s (%s) 已断开", client.Name, client.ID)
	}
}

// GetClientByID 按 ID 查找在线客户端
func (s *Server) GetClientByID(id string) types.ClientInterface {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return c
	}
	return nil
}

// RegisterClient 以指定 ID 注册客户端
func (s *Server) RegisterClient(id string, client types.ClientInterface) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if c, ok := client.(*Client); ok {
		s.clients[id] = c
	}
}

// UnregisterClient 按 ID 注销客户端
func (s *Server) UnregisterClient(id string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, id)
}
