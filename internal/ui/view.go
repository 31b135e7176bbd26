package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/truco/internal/client"
	"github.com/palemoky/truco/internal/game/card"
	"github.com/palemoky/truco/internal/game/rule"
	"github.com/palemoky/truco/internal/protocol/convert"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := m.state
	var sb strings.Builder

	title := titleStyle(fmt.Sprintf("🃏 Truco Paulista  房间 %s  难度 %s", state.RoomCode, m.difficulty))
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	top := lipgloss.JoinHorizontal(lipgloss.Top, renderScoreboard(state), " ", renderVira(state))
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, top))
	sb.WriteString("\n")

	middle := lipgloss.JoinHorizontal(lipgloss.Top, renderSeats(state), " ", renderTable(state))
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, middle))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, renderHand(state)))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderPrompt()))
	sb.WriteString("\n")

	if events := renderEvents(state.Events); events != "" {
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, events))
		sb.WriteString("\n")
	}

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.help.View(m.keys)))

	return docStyle.Render(sb.String())
}

// renderCard renders one card, highlighting manilhas.
func renderCard(c card.Card, state *client.GameState) string {
	if state.HasManilha && state.Manilha.IsManilha(c) {
		return manilhaStyle.Render(c.String())
	}
	if c.Suit.IsRed() {
		return redStyle.Render(c.String())
	}
	return blackStyle.Render(c.String())
}

func renderScoreboard(state *client.GameState) string {
	mine, theirs := 0, 0
	if side := state.MySide(); side >= 0 && len(state.Public.Scores) == 2 {
		mine, theirs = state.Public.Scores[side], state.Public.Scores[1-side]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "我方 %d : %d 对方\n", mine, theirs)
	fmt.Fprintf(&sb, "第 %d 手 · 第 %d 墩\n", state.Public.HandNumber, state.Public.TrickNumber)
	stake := fmt.Sprintf("本手 %d 分", state.Public.Stake)
	if state.Public.RaisedBy >= 0 {
		stake = noticeStyle.Render(stake + " (TRUCO)")
	}
	sb.WriteString(stake)
	return boxStyle.Render(sb.String())
}

func renderVira(state *client.GameState) string {
	if !state.HasManilha {
		return boxStyle.Render("Vira: -")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Vira: %s\n", renderCard(state.Vira, state))
	fmt.Fprintf(&sb, "Manilha: %s\n", state.Manilha.Rank)

	unseen := state.CardCounter.UnseenManilhas(state.Manilha)
	names := make([]string, 0, len(unseen))
	for _, c := range unseen {
		names = append(names, rule.ManilhaName(c, state.Manilha))
	}
	if len(names) == 0 {
		sb.WriteString(dimStyle.Render("manilha 已全部出现"))
	} else {
		sb.WriteString(dimStyle.Render("未出现: " + strings.Join(names, " ")))
	}
	return boxStyle.Render(sb.String())
}

func renderSeats(state *client.GameState) string {
	var sb strings.Builder
	for i, p := range state.Players {
		if i > 0 {
			sb.WriteString("\n")
		}
		icon := HumanIcon
		if p.IsAI {
			icon = CPUIcon
		}
		if p.Seat == state.Public.CurrentTurn {
			icon = TurnIcon + icon
		}
		me := ""
		if p.Seat == state.Seat {
			me = " (你)"
		}
		left := 0
		if p.Seat < len(state.Public.CardsLeft) {
			left = state.Public.CardsLeft[p.Seat]
		}
		fmt.Fprintf(&sb, "%s %s%s  剩 %d 张", icon, p.Name, me, left)
	}
	if sb.Len() == 0 {
		sb.WriteString("等待发牌...")
	}
	return boxStyle.Render(sb.String())
}

func renderTable(state *client.GameState) string {
	var sb strings.Builder
	sb.WriteString("桌面\n")
	if len(state.Public.Table) == 0 {
		sb.WriteString(dimStyle.Render("(空)"))
	}
	for i, play := range state.Public.Table {
		if i > 0 {
			sb.WriteString("\n")
		}
		c, err := convert.InfoToCard(play.Card)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s", state.PlayerName(play.Seat), renderCard(c, state))
	}
	return boxStyle.Render(sb.String())
}

func renderHand(state *client.GameState) string {
	if len(state.Hand) == 0 {
		return dimStyle.Render("没有手牌")
	}
	cards := make([]string, 0, len(state.Hand))
	for i, c := range state.Hand {
		cards = append(cards, fmt.Sprintf("[%d] %s", i+1, renderCard(c, state)))
	}
	return boxStyle.Render(strings.Join(cards, "  "))
}

// renderPrompt shows whose turn it is, or the result once the match is over.
func (m *Model) renderPrompt() string {
	state := m.state
	var prompt string
	switch {
	case state.GameOver != nil:
		result := "😢 你输了"
		if state.GameOver.WinnerSide == state.MySide() {
			result = "🎉 你赢了！"
		}
		prompt = fmt.Sprintf("%s  比分 %v，按 N 再来一局", result, state.GameOver.Scores)
	case state.IsMyTurn():
		prompt = "轮到你出牌 (1-3)"
	case state.Public.CurrentTurn >= 0:
		prompt = fmt.Sprintf("等待 %s 出牌...", state.PlayerName(state.Public.CurrentTurn))
	default:
		prompt = "等待发牌..."
	}

	if state.Raise != nil {
		prompt += "\n" + noticeStyle.Render(state.Raise.Text)
	}
	if m.error != "" {
		prompt += "\n" + errorStyle.Render(m.error)
	}
	return prompt
}

func renderEvents(events []string) string {
	if len(events) == 0 {
		return ""
	}
	return boxStyle.Render(dimStyle.Render(strings.Join(events, "\n")))
}
