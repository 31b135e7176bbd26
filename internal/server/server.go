package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/palemoky/truco/internal/config"
	"github.com/palemoky/truco/internal/game/room"
	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/server/handler"
	"github.com/palemoky/truco/internal/server/storage"
)

const redisPingTimeout = 5 * time.Second

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	redis       *redis.Client
	redisStore  *storage.RedisStore
	leaderboard *storage.LeaderboardManager
	history     *storage.History
	roomManager *room.RoomManager
	handler     *handler.Handler
	upgrader    websocket.Upgrader
	httpServer  *http.Server

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 安全组件
	rateLimiter    *RateLimiter
	originChecker  *OriginChecker
	messageLimiter *MessageRateLimiter
	ipFilter       *IPFilter

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex

	shutdownOnce sync.Once
}

// NewServer 创建服务器实例。Redis 不可用时退化为只在内存中运行
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := connectRedis(cfg.Redis)

	var history *storage.History
	if cfg.History.Path != "" {
		h, err := storage.NewHistory(cfg.History.Path)
		if err != nil {
			if rdb != nil {
				_ = rdb.Close()
			}
			return nil, fmt.Errorf("打开对局历史失败: %w", err)
		}
		history = h
	}

	s := &Server{
		config:      cfg,
		redis:       rdb,
		redisStore:  storage.NewRedisStore(rdb),
		leaderboard: storage.NewLeaderboardManager(rdb),
		history:     history,
		clients:     make(map[string]*Client),
		rateLimiter: NewRateLimiter(
			cfg.Security.RateLimit.MaxPerSecond,
			cfg.Security.RateLimit.MaxPerMinute,
			cfg.Security.RateLimit.BanDurationTime(),
		),
		originChecker:  NewOriginChecker(cfg.Security.AllowedOrigins),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessageLimit.MaxPerSecond),
		ipFilter:       NewIPFilter(),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
	}

	var recorders storage.Recorders
	recorders = append(recorders, s.leaderboard)
	if history != nil {
		recorders = append(recorders, history)
	}

	s.roomManager = room.NewRoomManager(room.Options{
		Store:         s.redisStore,
		Recorder:      recorders,
		RoomTimeout:   cfg.Game.RoomTimeoutDuration(),
		ThinkDelay:    cfg.Game.AIThinkDelayDuration(),
		NextHandDelay: cfg.Game.NextHandDelayDuration(),
		WinScore:      cfg.Game.WinScore,
		RaiseStake:    cfg.Game.RaiseStake,
	})

	s.handler = handler.NewHandler(handler.HandlerDeps{
		Server:      s,
		RoomManager: s.roomManager,
		Leaderboard: s.leaderboard,
	})

	logger.Infof("🔒 安全配置: 连接限制=%d/s, 消息限制=%d/s, 最大连接数=%d",
		cfg.Security.RateLimit.MaxPerSecond, cfg.Security.MessageLimit.MaxPerSecond, cfg.Server.MaxConnections)

	return s, nil
}

// connectRedis 连接 Redis，地址为空或连接失败时返回 nil
func connectRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		logger.Infof("未配置 Redis，房间目录和排行榜不会持久化")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf("⚠️ Redis 连接失败，房间目录和排行榜不会持久化: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// RoomManager 房间管理器
func (s *Server) RoomManager() *room.RoomManager {
	return s.roomManager
}

// Run 启动 HTTP 服务，ctx 取消后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP 服务异常退出: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.monitorStats(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.GracefulShutdown(s.config.Game.ShutdownTimeoutDuration())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
