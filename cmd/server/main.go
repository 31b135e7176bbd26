package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/palemoky/truco/internal/config"
	"github.com/palemoky/truco/internal/logger"
	"github.com/palemoky/truco/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	envPath := flag.String("env", ".env", "环境变量文件路径")
	flag.Parse()

	// .env 可选，不存在时忽略
	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("加载 %s 失败: %v", *envPath, err)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Errorf("创建服务器失败: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("🎮 Truco 服务器启动中...")
	if err := srv.Run(ctx); err != nil {
		logger.Errorf("服务器异常退出: %v", err)
		os.Exit(1)
	}
}
