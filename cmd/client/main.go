package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/palemoky/truco/internal/config"
	"github.com/palemoky/truco/internal/game/ai"
	"github.com/palemoky/truco/internal/game/room"
	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	name := flag.String("name", "", "玩家名称")
	difficulty := flag.String("difficulty", string(ai.Normal), "电脑难度 (easy/normal/hard)")
	logPath := flag.String("log", "", "日志文件路径，留空不记录")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 终端界面占用标准输出，日志只能写文件
	if *logPath != "" {
		zc := zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{*logPath}
		zc.ErrorOutputPaths = []string{*logPath}
		l, err := zc.Build()
		if err != nil {
			log.Fatalf("初始化日志失败: %v", err)
		}
		logger.Set(l)
		defer logger.Sync()
	}

	manager := room.NewRoomManager(room.Options{
		ThinkDelay:    cfg.Game.AIThinkDelayDuration(),
		NextHandDelay: cfg.Game.NextHandDelayDuration(),
		WinScore:      cfg.Game.WinScore,
		RaiseStake:    cfg.Game.RaiseStake,
	})
	defer manager.Shutdown()

	model := ui.NewModel(manager, *name, ai.ParseDifficulty(*difficulty))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
