package convert

import (
	"github.com/palemoky/truco/internal/game/rule"
	"github.com/palemoky/truco/internal/game/session"
	"github.com/palemoky/truco/internal/protocol"
)

// PlaysToInfos 桌面出牌转换
func PlaysToInfos(plays []rule.Play) []protocol.PlayInfo {
	infos := make([]protocol.PlayInfo, len(plays))
	for i, p := range plays {
		infos[i] = protocol.PlayInfo{Seat: p.Seat, Card: CardToInfo(p.Card)}
	}
	return infos
}

// PublicStateToDTO 公开状态转换
func PublicStateToDTO(ps session.PublicState) protocol.PublicState {
	dto := protocol.PublicState{
		Phase:       ps.Phase.String(),
		CurrentTurn: ps.CurrentTurn,
		Scores:      ps.Scores[:],
		Stake:       ps.Stake,
		RaisedBy:    ps.RaisedBy,
		HandNumber:  ps.HandNumber,
		TrickNumber: ps.TrickNumber,
		TricksWon:   ps.TricksWon,
		Table:       PlaysToInfos(ps.Table),
		CardsLeft:   ps.CardsLeft,
		DeckLeft:    ps.DeckLeft,
	}
	if ps.HandNumber > 0 {
		vira := CardToInfo(ps.Vira)
		dto.Vira = &vira
		dto.ManilhaRank = ps.ManilhaRank.String()
	}
	return dto
}

// TrickResultToPayload 一墩结果转换，名字由调用方按座位提供
func TrickResultToPayload(tr *session.TrickResult, winnerName string) protocol.TrickResultPayload {
	return protocol.TrickResultPayload{
		TrickNumber: tr.Number,
		Plays:       PlaysToInfos(tr.Plays),
		WinnerSeat:  tr.Winner,
		WinnerSide:  tr.WinnerSide,
		WinnerName:  winnerName,
		Draw:        tr.Draw,
	}
}

// HandResultToPayload 一手牌结果转换
func HandResultToPayload(hr *session.HandResult) protocol.HandResultPayload {
	return protocol.HandResultPayload{
		HandNumber:   hr.HandNumber,
		WinnerSide:   hr.WinnerSide,
		Points:       hr.Points,
		TricksBySide: hr.TricksBySide[:],
		Scores:       hr.Scores[:],
	}
}

// GameResultToPayload 整局结果转换
func GameResultToPayload(gr *session.GameResult, winnerNames []string) protocol.GameOverPayload {
	return protocol.GameOverPayload{
		WinnerSide:  gr.WinnerSide,
		WinnerNames: winnerNames,
		Scores:      gr.Scores[:],
		Hands:       gr.Hands,
	}
}
