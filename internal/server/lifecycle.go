package server

import (
	"context"
	"runtime"
	"time"

	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
)

const monitorInterval = 30 * time.Second

// monitorStats 定期记录服务器状态，直到 ctx 取消
func (s *Server) monitorStats(ctx context.Context) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			logger.Infof("📊 [监控] 在线: %d | 房间: %d | 对局中: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
				s.GetOnlineCount(),
				s.roomManager.GetRoomCount(),
				s.roomManager.GetActiveGamesCount(),
				runtime.NumGoroutine(),
				len(s.semaphore),
				s.maxConnections,
				float64(m.Alloc)/1024/1024)
		}
	}
}

// EnterMaintenanceMode 进入维护模式：拒绝新连接和新房间，进行中的对局不受影响
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	already := s.maintenanceMode
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()
	if already {
		return
	}

	s.BroadcastToLobby(codec.NewErrorMessageWithText(protocol.ErrCodeServerMaintenance,
		"👷🏻‍♂️ 维护模式：停止新的房间创建"))
	logger.Infof("🔧 进入维护模式：停止新连接和房间创建")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown 进入维护模式，等进行中的对局结束（最多 timeout）后关闭
func (s *Server) GracefulShutdown(timeout time.Duration) {
	s.EnterMaintenanceMode()

	interval := s.config.Game.ShutdownCheckIntervalDuration()
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		activeGames := s.roomManager.GetActiveGamesCount()
		if activeGames == 0 {
			logger.Infof("✅ 所有对局已结束")
			break
		}
		logger.Infof("⏳ 等待 %d 个对局结束...", activeGames)
		<-ticker.C
	}

	if activeGames := s.roomManager.GetActiveGamesCount(); activeGames > 0 {
		logger.Warnf("⚠️ 超时，仍有 %d 个对局进行中，强制关闭", activeGames)
	}

	s.Shutdown()
}

// Shutdown 关闭所有连接、房间和存储，可重复调用
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.clientsMu.Lock()
		for _, client := range s.clients {
			client.Close()
		}
		s.clientsMu.Unlock()

		s.roomManager.Shutdown()
		s.rateLimiter.Stop()

		if s.redis != nil {
			_ = s.redis.Close()
		}
		if err := s.history.Close(); err != nil {
			logger.Warnf("关闭对局历史失败: %v", err)
		}

		logger.Infof("服务器已关闭")
	})
}
