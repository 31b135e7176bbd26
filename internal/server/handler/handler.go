package handler

import (
	"errors"
	"time"

	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/room"
	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/server/storage"
	"github.com/palemoky/truco/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server      types.ServerInterface
	RoomManager *room.RoomManager
	Leaderboard *storage.LeaderboardManager
}

// Handler 消息处理器
type Handler struct {
	server      types.ServerInterface
	roomManager *room.RoomManager
	leaderboard *storage.LeaderboardManager
	handlers    map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:      deps.Server,
		roomManager: deps.RoomManager,
		leaderboard: deps.Leaderboard,
	}
	if h.leaderboard == nil {
		h.leaderboard = storage.NewLeaderboardManager(nil)
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 房间操作
		protocol.MsgCreateRoom: func(c types.ClientInterface, _ *protocol.Message) { h.handleCreateRoom(c) },
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgLeaveRoom:  func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveRoom(c) },

		// 游戏操作
		protocol.MsgPlayCard:      h.handlePlayCard,
		protocol.MsgRequestRaise:  func(c types.ClientInterface, _ *protocol.Message) { h.handleRequestRaise(c) },
		protocol.MsgNewGame:       h.handleNewGame,
		protocol.MsgSetDifficulty: h.handleSetDifficulty,

		// 信息查询
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
		protocol.MsgGetRoomList:    func(c types.ClientInterface, _ *protocol.Message) { h.handleGetRoomList(c) },
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	logger.Warnf("⚠️ 未知消息类型: '%s' (来自玩家: %s, ID: %s, Payload长度=%d bytes)",
		msg.Type, client.GetName(), client.GetID(), len(msg.Payload))
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// sendError 把错误只回给请求方
func sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(codec.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}

// rejectInMaintenance 维护模式下拒绝新开房间
func (h *Handler) rejectInMaintenance(client types.ClientInterface, text string) bool {
	if h.server == nil || !h.server.IsMaintenanceMode() {
		return false
	}
	client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeServerMaintenance, text))
	return true
}
