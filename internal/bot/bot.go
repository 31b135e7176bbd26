// Package bot 无界面的联网玩家，用电脑策略自动出牌
package bot

import (
	"context"
	"errors"

	"github.com/palemoky/truco/internal/client"
	"github.com/palemoky/truco/internal/game/ai"
	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/transport"
)

// ErrOpponentLeft 对手离开了房间
var ErrOpponentLeft = errors.New("opponent left the room")

// Bot 联网玩家
type Bot struct {
	conn       *transport.Client
	state      *client.GameState
	difficulty ai.Difficulty
	pending    bool // 已出牌，等待服务端确认
}

// New 创建 bot，conn 需已连接
func New(conn *transport.Client, difficulty ai.Difficulty) *Bot {
	return &Bot{
		conn:       conn,
		state:      client.NewGameState(),
		difficulty: difficulty,
	}
}

// State 客户端牌局状态，只能在 Run 返回后读取
func (b *Bot) State() *client.GameState {
	return b.state
}

// CreateRoom 创建房间并返回房间号
func (b *Bot) CreateRoom(ctx context.Context) (string, error) {
	if err := b.conn.CreateRoom(); err != nil {
		return "", err
	}
	if err := b.waitFor(ctx, protocol.MsgRoomCreated); err != nil {
		return "", err
	}
	return b.state.RoomCode, nil
}

// Join 加入房间
func (b *Bot) Join(ctx context.Context, code string) error {
	if err := b.conn.JoinRoom(code); err != nil {
		return err
	}
	return b.waitFor(ctx, protocol.MsgRoomJoined)
}

// waitFor 处理消息直到收到指定类型，错误消息直接返回
func (b *Bot) waitFor(ctx context.Context, want protocol.MessageType) error {
	for {
		msg, err := b.next(ctx)
		if err != nil {
			return err
		}
		if err := b.state.Apply(msg); err != nil {
			return err
		}
		switch msg.Type {
		case want:
			return nil
		case protocol.MsgError:
			return errors.New(b.state.Err)
		}
	}
}

func (b *Bot) next(ctx context.Context) (*protocol.Message, error) {
	select {
	case msg := <-b.conn.Messages():
		return msg, nil
	case <-b.conn.Done():
		return nil, transport.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run 自动出牌，直到整局结束、对手离开或 ctx 取消
func (b *Bot) Run(ctx context.Context) error {
	for {
		msg, err := b.next(ctx)
		if err != nil {
			return err
		}
		if err := b.state.Apply(msg); err != nil {
			logger.Warnf("🤖 无法处理消息 %s: %v", msg.Type, err)
			continue
		}

		switch msg.Type {
		case protocol.MsgGameOver:
			return nil
		case protocol.MsgOpponentDisconnected:
			return ErrOpponentLeft
		case protocol.MsgError:
			// 被拒后不立即重试
			logger.Warnf("🤖 出牌被拒绝: %s", b.state.Err)
			continue
		case protocol.MsgCardPlayed, protocol.MsgHandDealt:
			b.pending = false
		}

		if err := b.playIfMyTurn(); err != nil {
			return err
		}
	}
}

// playIfMyTurn 轮到自己时按难度选牌
func (b *Bot) playIfMyTurn() error {
	if b.pending || !b.state.IsMyTurn() || !b.state.HasManilha || len(b.state.Hand) == 0 {
		return nil
	}
	c, _, err := ai.ChooseCard(b.state.Hand, b.state.Manilha, b.difficulty)
	if err != nil {
		return err
	}
	if err := b.conn.PlayCard(b.state.RoomCode, b.state.Seat, c); err != nil {
		return err
	}
	b.pending = true
	return nil
}
