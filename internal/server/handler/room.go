package handler

import (
	"strings"

	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface) {
	if h.rejectInMaintenance(client, "服务器维护中，暂停创建房间") {
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}

	if _, err := h.roomManager.CreateRoom(client); err != nil {
		sendError(client, err)
	}
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	if h.rejectInMaintenance(client, "服务器维护中，暂停加入房间") {
		return
	}

	payload, err := codec.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil || strings.TrimSpace(payload.RoomCode) == "" {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	code := strings.TrimSpace(payload.RoomCode)

	// 已在目标房间中则忽略
	if client.GetRoom() == code {
		return
	}
	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}

	if _, err := h.roomManager.JoinRoom(client, code); err != nil {
		sendError(client, err)
	}
}

// handleLeaveRoom 处理离开房间
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	h.roomManager.LeaveRoom(client)
}

// handleGetRoomList 获取可加入的房间列表
func (h *Handler) handleGetRoomList(client types.ClientInterface) {
	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomListResult, protocol.RoomListResultPayload{
		Rooms: h.roomManager.GetRoomList(),
	}))
}
