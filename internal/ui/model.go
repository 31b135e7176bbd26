// Package ui is the terminal single-player client. It drives a room.RoomManager
// in-process: one human seat and three CPU seats.
package ui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/truco/internal/apperrors"
	"github.com/palemoky/truco/internal/client"
	"github.com/palemoky/truco/internal/game/ai"
	"github.com/palemoky/truco/internal/game/room"
	"github.com/palemoky/truco/internal/protocol"
)

// errorDisplayTime 错误提示的显示时长
const errorDisplayTime = 3 * time.Second

// ServerMessage 房间发来的消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ErrorMsg 操作失败
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg 清除错误消息
type ClearErrorMsg struct{}

// closedMsg 消息通道已关闭
type closedMsg struct{}

// Model is the bubbletea model of the solo table.
type Model struct {
	manager    *room.RoomManager
	client     *LocalClient
	state      *client.GameState
	difficulty ai.Difficulty

	keys keyMap
	help help.Model

	error  string
	width  int
	height int
}

// NewModel creates a solo table for the given player.
func NewModel(manager *room.RoomManager, name string, difficulty ai.Difficulty) *Model {
	return &Model{
		manager:    manager,
		client:     NewLocalClient(name),
		state:      client.NewGameState(),
		difficulty: difficulty,
		keys:       newKeyMap(),
		help:       help.New(),
	}
}

// State exposes the client-side game state.
func (m *Model) State() *client.GameState {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startGame(), m.listenForMessages())
}

// startGame 创建单人房间并发牌
func (m *Model) startGame() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.manager.CreateSoloRoom(m.client, m.difficulty); err != nil {
			return ErrorMsg{Err: err}
		}
		return nil
	}
}

// listenForMessages 监听房间消息
func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.client.Receive()
		if !ok {
			return closedMsg{}
		}
		return ServerMessage{Msg: msg}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case ServerMessage:
		if err := m.state.Apply(msg.Msg); err != nil {
			return m, tea.Batch(m.showError(err), m.listenForMessages())
		}
		if m.state.Err != "" {
			m.error = m.state.Err
		}
		return m, m.listenForMessages()

	case ErrorMsg:
		return m, m.showError(msg.Err)

	case ClearErrorMsg:
		m.error = ""

	case closedMsg:
		return m, nil
	}
	return m, nil
}

// handleKeyPress 处理按键
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	for i, b := range m.keys.Play {
		if key.Matches(msg, b) {
			return m.playCard(i)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.manager.LeaveRoom(m.client)
		m.client.Close()
		return tea.Quit

	case key.Matches(msg, m.keys.Truco):
		if err := m.manager.RelayRaise(m.state.RoomCode, m.state.Seat); err != nil {
			return m.showError(err)
		}
		m.state.AddEvent("你叫了 TRUCO!")

	case key.Matches(msg, m.keys.NewGame):
		if m.state.RoomCode == "" {
			return m.startGame()
		}
		if err := m.manager.NewGame(m.state.RoomCode); err != nil {
			return m.showError(err)
		}

	case key.Matches(msg, m.keys.Difficulty):
		next := m.difficulty.Next()
		if m.state.RoomCode != "" {
			if err := m.manager.SetDifficulty(m.state.RoomCode, next); err != nil {
				return m.showError(err)
			}
		}
		m.difficulty = next

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// playCard 打出手牌中第 idx 张
func (m *Model) playCard(idx int) tea.Cmd {
	if !m.state.IsMyTurn() {
		return m.showError(apperrors.ErrOutOfTurn)
	}
	if idx >= len(m.state.Hand) {
		return m.showError(apperrors.ErrCardNotInHand)
	}
	if err := m.manager.RelayPlay(m.state.RoomCode, m.state.Seat, m.state.Hand[idx]); err != nil {
		return m.showError(err)
	}
	return nil
}

// showError 显示错误，几秒后自动清除
func (m *Model) showError(err error) tea.Cmd {
	var ge *apperrors.GameError
	if errors.As(err, &ge) {
		m.error = ge.Message
	} else {
		m.error = err.Error()
	}
	return tea.Tick(errorDisplayTime, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}
