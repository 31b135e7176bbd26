package handler

import (
	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/ai"
	"github.com/palemoky/truco/internal/game/room"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/protocol/convert"
	"github.com/palemoky/truco/internal/types"
)

// seatOf 找到客户端所在的房间和座位。座位号以服务端记录为准
func (h *Handler) seatOf(client types.ClientInterface) (*room.Room, int, error) {
	code := client.GetRoom()
	if code == "" {
		return nil, -1, apperrors.ErrNotInRoom
	}
	r := h.roomManager.GetRoom(code)
	if r == nil {
		return nil, -1, apperrors.ErrRoomNotFound
	}
	seat := r.SeatOf(client.GetID())
	if seat < 0 {
		return nil, -1, apperrors.ErrNotInRoom
	}
	return r, seat, nil
}

// handlePlayCard 处理出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, seat, err := h.seatOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	c, err := convert.InfoToCard(payload.Card)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := h.roomManager.RelayPlay(r.Code, seat, c); err != nil {
		sendError(client, err)
	}
}

// handleRequestRaise 处理叫 Truco
func (h *Handler) handleRequestRaise(client types.ClientInterface) {
	r, seat, err := h.seatOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := h.roomManager.RelayRaise(r.Code, seat); err != nil {
		sendError(client, err)
	}
}

// handleNewGame 单人模式新开一局：已在单人房间则比分清零重发，否则新建单人房间
func (h *Handler) handleNewGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.NewGamePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if code := client.GetRoom(); code != "" {
		if r := h.roomManager.GetRoom(code); r != nil && r.Solo {
			if payload.Difficulty != "" {
				if err := h.roomManager.SetDifficulty(code, ai.ParseDifficulty(payload.Difficulty)); err != nil {
					sendError(client, err)
					return
				}
			}
			if err := h.roomManager.NewGame(code); err != nil {
				sendError(client, err)
			}
			return
		}
		h.roomManager.LeaveRoom(client)
	}

	if h.rejectInMaintenance(client, "服务器维护中，暂停创建房间") {
		return
	}

	if _, err := h.roomManager.CreateSoloRoom(client, ai.ParseDifficulty(payload.Difficulty)); err != nil {
		sendError(client, err)
	}
}

// handleSetDifficulty 修改所在房间的电脑难度
func (h *Handler) handleSetDifficulty(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.SetDifficultyPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, _, err := h.seatOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := h.roomManager.SetDifficulty(r.Code, ai.ParseDifficulty(payload.Difficulty)); err != nil {
		sendError(client, err)
	}
}
