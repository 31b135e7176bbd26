package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/palemoky/truco/internal/logger"
)

const apiTimeout = 3 * time.Second

// Routes 构建 HTTP 路由
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/rooms", s.handleListRooms)
		r.Get("/rooms/{code}", s.handleGetRoom)
		r.Get("/directory", s.handleDirectory)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/matches", s.handleMatches)
	})
	return r
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if s.IsMaintenanceMode() {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleListRooms 可加入的联网房间
func (s *Server) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.roomManager.GetRoomList())
}

// handleGetRoom 单个房间的概要，本进程没有时查 Redis 目录
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if room := s.roomManager.GetRoom(code); room != nil {
		writeJSON(w, http.StatusOK, room.Summary())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
	defer cancel()
	summary, err := s.redisStore.LoadRoom(ctx, code)
	if err != nil {
		logger.Warnf("读取房间 %s 失败: %v", code, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if summary == nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleDirectory Redis 目录中的所有房间，包括单人房间和进行中的房间
func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
	defer cancel()

	rooms, err := s.redisStore.ListRooms(ctx)
	if err != nil {
		logger.Warnf("读取房间目录失败: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// handleLeaderboard 总排行榜
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
	defer cancel()

	entries, err := s.leaderboard.GetLeaderboard(ctx, queryLimit(r))
	if err != nil {
		logger.Warnf("获取排行榜失败: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleMatches 最近结束的对局
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
	defer cancel()

	matches, err := s.history.ListRecent(ctx, queryLimit(r))
	if err != nil {
		logger.Warnf("读取对局历史失败: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// queryLimit 解析 ?limit=，无效时返回 0 交给下层取默认值
func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnf("写入响应失败: %v", err)
	}
}
