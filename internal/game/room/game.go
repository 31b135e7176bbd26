package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/ai"
	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/session"
	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/protocol"
	"github.com/palemoky/truco/internal/protocol/codec"
	"github.com/palemoky/truco/internal/protocol/convert"
	"github.com/palemoky/truco/internal/types"
)

const storeTimeout = 5 * time.Second

// scheduleLocked 登记一个延时任务，触发时若房间已关闭或对局已更替则丢弃
func (r *Room) scheduleLocked(d time.Duration, fn func()) {
	epoch := r.epoch
	r.sched.After(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.epoch != epoch {
			return
		}
		fn()
	})
}

// stopMatchLocked 中止当前对局并丢弃所有延时任务
func (r *Room) stopMatchLocked() {
	r.epoch++
	r.sched.CancelAll()
	r.game = nil
	r.State = RoomStateWaiting
}

// abortMatchLocked 对局无法继续时中止，房间回到等待状态并通知所有人类座位
func (r *Room) abortMatchLocked(err error) {
	r.stopMatchLocked()

	code := protocol.ErrCodeUnknown
	var ge *apperrors.GameError
	if errors.As(err, &ge) {
		code = ge.Code
	}
	r.broadcastLocked(codec.NewErrorMessage(code))
	r.saveLocked()
	logger.Warnf("⚠️ 房间 %s 对局中止: %v", r.Code, err)
}

// closeLocked 关闭房间，之后所有延时任务都会被丢弃
func (r *Room) closeLocked() {
	r.closed = true
	r.epoch++
	r.sched.Stop()
	r.game = nil
	r.State = RoomStateEnded
}

// startMatchLocked 座位坐满后开始对局
func (r *Room) startMatchLocked() error {
	opts := session.Options{
		SeatCount:  len(r.Seats),
		WinScore:   r.opts.WinScore,
		RaiseStake: r.opts.RaiseStake,
	}
	if r.opts.Rand != nil {
		opts.Rand = r.opts.Rand()
	}
	gs, err := session.NewGameSession(opts)
	if err != nil {
		return err
	}

	r.epoch++
	r.sched.CancelAll()
	r.game = gs
	r.State = RoomStatePlaying

	r.broadcastLocked(codec.MustNewMessage(protocol.MsgMatchStarted, protocol.MatchStartedPayload{
		RoomCode: r.Code,
		Seats:    r.seatInfosLocked(),
	}))
	logger.Infof("🎮 房间 %s 对局开始", r.Code)

	return r.dealLocked()
}

// dealLocked 发一手牌，每个人类座位只收到自己的手牌
func (r *Room) dealLocked() error {
	if err := r.game.DealHand(); err != nil {
		logger.Errorf("房间 %s 发牌失败: %v", r.Code, err)
		return err
	}

	state := convert.PublicStateToDTO(r.game.PublicState())
	for _, s := range r.Seats {
		if s == nil || s.Client == nil {
			continue
		}
		s.Client.SendMessage(codec.MustNewMessage(protocol.MsgHandDealt, protocol.HandDealtPayload{
			Seat:  s.Index,
			Hand:  convert.CardsToInfos(r.game.Hand(s.Index)),
			State: state,
		}))
	}

	r.advanceAILocked()
	return nil
}

// advanceAILocked 轮到电脑座位时安排它在思考时间后出牌
func (r *Room) advanceAILocked() {
	seat := r.game.CurrentSeat()
	if seat < 0 || !r.Seats[seat].IsAI {
		return
	}
	r.scheduleLocked(r.opts.ThinkDelay, func() {
		r.playAILocked(seat)
	})
}

// playAILocked 电脑座位出牌
func (r *Room) playAILocked(seat int) {
	if r.game == nil || r.game.CurrentSeat() != seat {
		return
	}
	c, _, err := ai.ChooseCard(r.game.Hand(seat), r.game.Manilha(), r.difficulty)
	if err != nil {
		logger.Errorf("房间 %s 电脑座位 %d 选牌失败: %v", r.Code, seat, err)
		return
	}
	if err := r.applyPlayLocked(seat, c); err != nil {
		logger.Errorf("房间 %s 电脑座位 %d 出牌失败: %v", r.Code, seat, err)
	}
}

// applyPlayLocked 提交出牌并广播结果；出错时不广播任何内容
func (r *Room) applyPlayLocked(seat int, c card.Card) error {
	res, err := r.game.SubmitPlay(seat, c)
	if err != nil {
		return err
	}

	r.broadcastLocked(codec.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		Seat:       seat,
		PlayerName: r.Seats[seat].Name,
		Card:       convert.CardToInfo(res.Card),
		State:      convert.PublicStateToDTO(r.game.PublicState()),
	}))

	if res.Trick != nil {
		winnerName := ""
		if !res.Trick.Draw {
			winnerName = r.Seats[res.Trick.Winner].Name
		}
		r.broadcastLocked(codec.MustNewMessage(protocol.MsgTrickResult,
			convert.TrickResultToPayload(res.Trick, winnerName)))
	}

	if res.Hand != nil {
		r.broadcastLocked(codec.MustNewMessage(protocol.MsgHandResult, convert.HandResultToPayload(res.Hand)))
	}

	switch {
	case res.Game != nil:
		r.finishMatchLocked(res.Game)
	case res.Hand != nil:
		r.scheduleLocked(r.opts.NextHandDelay, func() {
			if r.game != nil && r.game.Phase() == session.PhaseHandComplete {
				if err := r.dealLocked(); err != nil {
					r.abortMatchLocked(err)
				}
			}
		})
	default:
		r.advanceAILocked()
	}
	return nil
}

// finishMatchLocked 广播整局结果并上报
func (r *Room) finishMatchLocked(gr *session.GameResult) {
	var winners []string
	for _, s := range r.Seats {
		if s != nil && session.SideOf(s.Index) == gr.WinnerSide {
			winners = append(winners, s.Name)
		}
	}
	r.broadcastLocked(codec.MustNewMessage(protocol.MsgGameOver, convert.GameResultToPayload(gr, winners)))
	r.State = RoomStateEnded
	logger.Infof("🏆 房间 %s 对局结束，比分 %d:%d", r.Code, gr.Scores[0], gr.Scores[1])

	result := r.matchResultLocked(gr)
	if rec := r.opts.Recorder; rec != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()
			if err := rec.RecordMatch(ctx, result); err != nil {
				logger.Warnf("记录对局 %s 失败: %v", result.ID, err)
			}
		}()
	}
	r.saveLocked()
}

// matchResultLocked 构造对局结果
func (r *Room) matchResultLocked(gr *session.GameResult) *types.MatchResult {
	result := &types.MatchResult{
		ID:         uuid.NewString(),
		RoomCode:   r.Code,
		Solo:       r.Solo,
		WinnerSide: gr.WinnerSide,
		Scores:     gr.Scores[:],
		Hands:      gr.Hands,
		FinishedAt: time.Now(),
	}
	for _, s := range r.Seats {
		if s == nil {
			continue
		}
		result.Participants = append(result.Participants, types.MatchParticipant{
			ID:   s.ID,
			Name: s.Name,
			Seat: s.Index,
			Side: session.SideOf(s.Index),
			IsAI: s.IsAI,

			Anonymous: s.Client != nil && s.Client.GetName() == "",
		})
	}
	return result
}

// roomForAction 获取房间，用于需要房间锁的操作
func (rm *RoomManager) roomForAction(code string) (*Room, error) {
	rm.mu.RLock()
	room, exists := rm.rooms[code]
	rm.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

// RelayPlay 转发出牌；失败时只返回错误给调用方，房间状态不变
func (rm *RoomManager) RelayPlay(code string, seat int, c card.Card) error {
	room, err := rm.roomForAction(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed {
		return apperrors.ErrRoomNotFound
	}
	if room.game == nil {
		return apperrors.ErrGameNotStart
	}
	if seat < 0 || seat >= len(room.Seats) || room.Seats[seat] == nil || room.Seats[seat].IsAI {
		return apperrors.ErrOutOfTurn
	}
	return room.applyPlayLocked(seat, c)
}

// RelayRaise 转发叫 Truco，只通知对方的人类座位
func (rm *RoomManager) RelayRaise(code string, seat int) error {
	room, err := rm.roomForAction(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed {
		return apperrors.ErrRoomNotFound
	}
	if room.game == nil {
		return apperrors.ErrGameNotStart
	}
	if seat < 0 || seat >= len(room.Seats) || room.Seats[seat] == nil || room.Seats[seat].IsAI {
		return apperrors.ErrRaiseNotAllowed
	}

	res, err := room.game.RequestRaise(seat)
	if err != nil {
		return err
	}

	name := room.Seats[seat].Name
	msg := codec.MustNewMessage(protocol.MsgRaiseReceived, protocol.RaiseReceivedPayload{
		FromSeat:     seat,
		FromSeatName: name,
		Stake:        res.Stake,
		Text:         fmt.Sprintf("%s pediu TRUCO!", name),
	})
	for _, s := range room.Seats {
		if s != nil && s.Client != nil && session.SideOf(s.Index) != res.Side {
			s.Client.SendMessage(msg)
		}
	}
	logger.Infof("📣 房间 %s 座位 %d 叫 Truco，本手 %d 分", code, seat, res.Stake)
	return nil
}

// NewGame 比分清零并重新发牌
func (rm *RoomManager) NewGame(code string) error {
	room, err := rm.roomForAction(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed {
		return apperrors.ErrRoomNotFound
	}
	if room.freeSeatLocked() >= 0 {
		return apperrors.ErrGameNotStart
	}
	if err := room.startMatchLocked(); err != nil {
		return err
	}
	room.saveLocked()
	return nil
}

// SetDifficulty 修改房间内所有电脑座位的难度
func (rm *RoomManager) SetDifficulty(code string, d ai.Difficulty) error {
	room, err := rm.roomForAction(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed {
		return apperrors.ErrRoomNotFound
	}
	room.difficulty = d
	room.broadcastLocked(codec.MustNewMessage(protocol.MsgDifficultyChanged, protocol.DifficultyChangedPayload{
		Difficulty: string(d),
	}))
	return nil
}
