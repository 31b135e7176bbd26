package session

import (
	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
)

// SubmitPlay 座位出一张牌。校验失败时状态不变
func (gs *GameSession) SubmitPlay(seat int, c card.Card) (*PlayResult, error) {
	if !gs.phase.InHand() {
		return nil, apperrors.ErrHandNotInProgress
	}
	if seat != gs.current {
		return nil, apperrors.ErrOutOfTurn
	}
	rest, ok := card.Remove(gs.hands[seat], c)
	if !ok {
		return nil, apperrors.ErrCardNotInHand
	}

	gs.hands[seat] = rest
	gs.table = append(gs.table, rule.Play{Seat: seat, Card: c})
	result := &PlayResult{Seat: seat, Card: c}

	if len(gs.table) < gs.opts.SeatCount {
		gs.current = (gs.current + 1) % gs.opts.SeatCount
		gs.phase = PhaseTrickInProgress
		return result, nil
	}

	trick := gs.resolveTrick()
	result.Trick = &trick

	if len(gs.tricks) < gs.opts.HandSize {
		gs.current = gs.leader
		gs.phase = PhaseAwaitingPlay
		return result, nil
	}

	hand := gs.resolveHand()
	result.Hand = &hand
	if gs.phase == PhaseGameComplete {
		result.Game = &GameResult{
			WinnerSide: gs.winnerSide,
			Scores:     gs.scores,
			Hands:      gs.handNumber,
		}
	}
	return result, nil
}

// resolveTrick 结算桌面上的一墩；赢家领出下一墩，平局时仍由本墩领出者领出
func (gs *GameSession) resolveTrick() TrickResult {
	outcome := rule.ResolveTrick(gs.table, gs.manilha)

	tr := TrickResult{
		Number:     len(gs.tricks) + 1,
		Plays:      gs.table,
		Winner:     -1,
		WinnerSide: -1,
		Draw:       outcome.Draw,
	}
	if !outcome.Draw {
		tr.Winner = outcome.Winner
		tr.WinnerSide = SideOf(outcome.Winner)
		gs.tricksWon[outcome.Winner]++
		gs.leader = outcome.Winner
	}

	gs.tricks = append(gs.tricks, tr)
	gs.table = nil
	return tr
}

// resolveHand 结算一手牌：赢墩多的一方得本手分值；墩数相同时先赢下一墩的一方胜；全部平局无人得分
func (gs *GameSession) resolveHand() HandResult {
	hr := HandResult{HandNumber: gs.handNumber, WinnerSide: -1}

	firstWinner := -1
	for _, tr := range gs.tricks {
		if tr.Draw {
			continue
		}
		hr.TricksBySide[tr.WinnerSide]++
		if firstWinner < 0 {
			firstWinner = tr.WinnerSide
		}
	}

	switch {
	case hr.TricksBySide[0] > hr.TricksBySide[1]:
		hr.WinnerSide = 0
	case hr.TricksBySide[1] > hr.TricksBySide[0]:
		hr.WinnerSide = 1
	default:
		hr.WinnerSide = firstWinner
	}

	if hr.WinnerSide >= 0 {
		hr.Points = gs.stake
		gs.scores[hr.WinnerSide] += gs.stake
	}
	hr.Scores = gs.scores

	gs.phase = PhaseHandComplete
	if hr.WinnerSide >= 0 && gs.scores[hr.WinnerSide] >= gs.opts.WinScore {
		gs.phase = PhaseGameComplete
		gs.winnerSide = hr.WinnerSide
	}
	return hr
}

// RequestRaise 叫 Truco：一手牌中只能叫一次，本手分值立即变为 RaiseStake
func (gs *GameSession) RequestRaise(seat int) (*RaiseResult, error) {
	if !gs.phase.InHand() {
		return nil, apperrors.ErrHandNotInProgress
	}
	if seat < 0 || seat >= gs.opts.SeatCount || gs.raisedBy >= 0 {
		return nil, apperrors.ErrRaiseNotAllowed
	}

	gs.raisedBy = SideOf(seat)
	gs.stake = gs.opts.RaiseStake
	return &RaiseResult{Seat: seat, Side: gs.raisedBy, Stake: gs.stake}, nil
}
