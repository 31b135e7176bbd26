package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/palemoky/truco/internal/logger"
)

const (
	rateCleanupInterval = 5 * time.Minute
	rateIdleExpiry      = 10 * time.Minute
	maxMessageWarnings  = 5 // 超过后断开连接
)

// RateLimiter 按 IP 限制建立连接的速率，超限后封禁一段时间
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientRate

	maxPerSecond int
	maxPerMinute int
	banDuration  time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// clientRate 单个 IP 的计数窗口
type clientRate struct {
	second      window
	minute      window
	bannedUntil time.Time
}

// window 固定时间窗口计数
type window struct {
	start time.Time
	count int
}

// hit 计数一次，窗口过期时重新开始，返回当前窗口内的次数
func (w *window) hit(now time.Time, size time.Duration) int {
	if now.Sub(w.start) >= size {
		w.start = now
		w.count = 0
	}
	w.count++
	return w.count
}

// NewRateLimiter 创建速率限制器并启动清理协程
func NewRateLimiter(maxPerSecond, maxPerMinute int, banDuration time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:      make(map[string]*clientRate),
		maxPerSecond: maxPerSecond,
		maxPerMinute: maxPerMinute,
		banDuration:  banDuration,
		stop:         make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow 检查是否允许该 IP 的请求
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rate, ok := rl.clients[ip]
	if !ok {
		rate = &clientRate{}
		rl.clients[ip] = rate
	}
	if now.Before(rate.bannedUntil) {
		return false
	}

	perSecond := rate.second.hit(now, time.Second)
	perMinute := rate.minute.hit(now, time.Minute)
	if perSecond > rl.maxPerSecond || perMinute > rl.maxPerMinute {
		rate.bannedUntil = now.Add(rl.banDuration)
		logger.Warnf("⚠️ IP %s 因请求过于频繁被暂时封禁 %v", ip, rl.banDuration)
		return false
	}
	return true
}

// IsBanned 检查 IP 是否处于封禁中
func (rl *RateLimiter) IsBanned(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rate, ok := rl.clients[ip]
	return ok && time.Now().Before(rate.bannedUntil)
}

// Stop 停止清理协程
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rateCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.cleanup(now)
		}
	}
}

// cleanup 删除长时间没有请求且未被封禁的记录
func (rl *RateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, rate := range rl.clients {
		if now.Sub(rate.minute.start) > rateIdleExpiry && now.After(rate.bannedUntil) {
			delete(rl.clients, ip)
		}
	}
}

// --- 来源验证 ---

// OriginChecker 来源验证器
type OriginChecker struct {
	allowed  map[string]bool
	allowAll bool
}

// NewOriginChecker 创建来源验证器，"*" 表示允许所有来源
func NewOriginChecker(origins []string) *OriginChecker {
	oc := &OriginChecker{allowed: make(map[string]bool)}
	for _, origin := range origins {
		if origin == "*" {
			oc.allowAll = true
			continue
		}
		oc.allowed[strings.ToLower(strings.TrimSpace(origin))] = true
	}
	return oc
}

// Check 检查请求来源。没有 Origin 头的请求来自终端客户端，直接放行
func (oc *OriginChecker) Check(r *http.Request) bool {
	if oc.allowAll {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return oc.allowed[strings.ToLower(origin)]
}

// --- IP 白名单/黑名单 ---

// IPFilter IP 过滤器
type IPFilter struct {
	mu        sync.RWMutex
	whitelist map[string]bool
	blacklist map[string]bool
}

// NewIPFilter 创建 IP 过滤器
func NewIPFilter() *IPFilter {
	return &IPFilter{
		whitelist: make(map[string]bool),
		blacklist: make(map[string]bool),
	}
}

// AddToWhitelist 添加到白名单；白名单非空时只允许名单内的 IP
func (f *IPFilter) AddToWhitelist(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.whitelist[ip] = true
}

// AddToBlacklist 添加到黑名单
func (f *IPFilter) AddToBlacklist(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blacklist[ip] = true
}

// RemoveFromBlacklist 从黑名单移除
func (f *IPFilter) RemoveFromBlacklist(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blacklist, ip)
}

// IsAllowed 检查 IP 是否允许
func (f *IPFilter) IsAllowed(ip string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.whitelist) > 0 && !f.whitelist[ip] {
		return false
	}
	return !f.blacklist[ip]
}

// GetClientIP 获取客户端真实 IP，优先使用代理头
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// --- 消息速率限制 ---

// MessageRateLimiter 已连接客户端的消息速率限制
type MessageRateLimiter struct {
	mu     sync.Mutex
	limits map[string]*messageRate

	maxPerSecond     int
	warningThreshold int
}

type messageRate struct {
	window
	warnings int
}

// NewMessageRateLimiter 创建消息速率限制器，达到上限的一半开始警告
func NewMessageRateLimiter(maxPerSecond int) *MessageRateLimiter {
	return &MessageRateLimiter{
		limits:           make(map[string]*messageRate),
		maxPerSecond:     maxPerSecond,
		warningThreshold: maxPerSecond / 2,
	}
}

// AllowMessage 检查是否允许这条消息，warning 表示接近或超过上限
func (ml *MessageRateLimiter) AllowMessage(clientID string) (allowed bool, warning bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	rate, ok := ml.limits[clientID]
	if !ok {
		rate = &messageRate{}
		ml.limits[clientID] = rate
	}

	count := rate.hit(time.Now(), time.Second)
	switch {
	case count > ml.maxPerSecond:
		rate.warnings++
		return false, true
	case count > ml.warningThreshold:
		return true, true
	default:
		return true, false
	}
}

// GetWarningCount 超限次数
func (ml *MessageRateLimiter) GetWarningCount(clientID string) int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	if rate, ok := ml.limits[clientID]; ok {
		return rate.warnings
	}
	return 0
}

// RemoveClient 移除客户端记录
func (ml *MessageRateLimiter) RemoveClient(clientID string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	delete(ml.limits, clientID)
}
