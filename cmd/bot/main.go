package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/palemoky/truco/internal/bot"
	"github.com/palemoky/truco/internal/game/ai"
	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/transport"
)

func main() {
	serverURL := flag.String("server", "ws://localhost:1780/ws", "服务器地址")
	name := flag.String("name", "", "玩家名称")
	roomCode := flag.String("room", "", "要加入的房间号，留空则创建房间")
	difficulty := flag.String("difficulty", string(ai.Normal), "出牌策略 (easy/normal/hard)")
	binary := flag.Bool("binary", false, "使用 protobuf 二进制帧")
	flag.Parse()

	if err := logger.Init("info", true); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn := transport.NewClient(*serverURL, *name)
	conn.Binary = *binary
	if err := conn.Connect(); err != nil {
		logger.Errorf("无法连接到服务器: %v", err)
		os.Exit(1)
	}
	defer conn.Close()
	conn.StartHeartbeat()

	b := bot.New(conn, ai.ParseDifficulty(*difficulty))

	setupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if *roomCode == "" {
		code, err := b.CreateRoom(setupCtx)
		if err != nil {
			logger.Errorf("创建房间失败: %v", err)
			os.Exit(1)
		}
		logger.Infof("🏠 房间已创建: %s，等待对手加入...", code)
	} else if err := b.Join(setupCtx, *roomCode); err != nil {
		logger.Errorf("加入房间 %s 失败: %v", *roomCode, err)
		os.Exit(1)
	}

	err := b.Run(ctx)
	switch {
	case err == nil:
		over := b.State().GameOver
		logger.Infof("🏁 整局结束，胜方 %v，比分 %v", over.WinnerNames, over.Scores)
	case errors.Is(err, bot.ErrOpponentLeft), errors.Is(err, context.Canceled):
		logger.Infof("👋 %v", err)
	default:
		logger.Errorf("对局异常结束: %v", err)
		os.Exit(1)
	}
}
