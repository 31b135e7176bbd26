package handler

import (
	"context"
	"time"

	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/types"
)

const (
	queryTimeout            = 3 * time.Second
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 50
)

// handleGetLeaderboard 获取排行榜
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	limit := defaultLeaderboardLimit
	if payload, err := codec.ParsePayload[protocol.GetLeaderboardPayload](msg); err == nil &&
		payload.Limit > 0 && payload.Limit <= maxLeaderboardLimit {
		limit = payload.Limit
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	entries, err := h.leaderboard.GetLeaderboard(ctx, limit)
	if err != nil {
		logger.Warnf("获取排行榜失败: %v", err)
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "获取排行榜失败"))
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Entries: entries,
	}))
}
