package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	defaultHost                  = "0.0.0.0"
	defaultPort                  = 1780
	defaultMaxConnections        = 10000
	defaultRedisAddr             = "localhost:6379"
	defaultHistoryPath           = "truco.db"
	defaultRoomTimeout           = 10   // 分钟
	defaultAIThinkDelay          = 1000 // 毫秒
	defaultNextHandDelay         = 2000 // 毫秒
	defaultWinScore              = 12
	defaultRaiseStake            = 3
	defaultShutdownTimeout       = 30 // 秒
	defaultShutdownCheckInterval = 2  // 秒
	defaultRateMaxPerSecond      = 10
	defaultRateMaxPerMinute      = 60
	defaultBanDuration           = 60 // 秒
	defaultMessageMaxPerSecond   = 20
	defaultLogLevel              = "info"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	History  HistoryConfig  `yaml:"history"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置，Addr 为空时不使用 Redis
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// HistoryConfig 对局历史配置，Path 为空时不记录
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// GameConfig 游戏配置
type GameConfig struct {
	RoomTimeout           int `yaml:"room_timeout"`            // 房间等待超时（分钟）
	AIThinkDelay          int `yaml:"ai_think_delay"`          // 电脑思考时间（毫秒）
	NextHandDelay         int `yaml:"next_hand_delay"`         // 下一手发牌间隔（毫秒）
	WinScore              int `yaml:"win_score"`               // 胜利分数
	RaiseStake            int `yaml:"raise_stake"`             // 叫 Truco 后的分值
	ShutdownTimeout       int `yaml:"shutdown_timeout"`        // 优雅关闭最长等待（秒）
	ShutdownCheckInterval int `yaml:"shutdown_check_interval"` // 优雅关闭检查间隔（秒）
}

// RoomTimeoutDuration 返回房间等待超时时长
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// AIThinkDelayDuration 返回电脑思考时长
func (c *GameConfig) AIThinkDelayDuration() time.Duration {
	return time.Duration(c.AIThinkDelay) * time.Millisecond
}

// NextHandDelayDuration 返回下一手发牌间隔
func (c *GameConfig) NextHandDelayDuration() time.Duration {
	return time.Duration(c.NextHandDelay) * time.Millisecond
}

// ShutdownTimeoutDuration 返回优雅关闭最长等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// ShutdownCheckIntervalDuration 返回优雅关闭检查间隔
func (c *GameConfig) ShutdownCheckIntervalDuration() time.Duration {
	return time.Duration(c.ShutdownCheckInterval) * time.Second
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	MessageLimit   MessageLimitConfig `yaml:"message_limit"`
}

// RateLimitConfig 连接速率限制
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanDuration  int `yaml:"ban_duration"` // 秒
}

// BanDurationTime 返回封禁时长
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// MessageLimitConfig 消息速率限制
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load 加载配置文件，依次应用默认值和环境变量
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

// LoadOrDefault 加载配置文件，文件不存在时使用默认配置
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		cfg, err := Load(path)
		if !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}
	cfg := Default()
	cfg.applyEnv()
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults 设置默认值
func (c *Config) applyDefaults() {
	setDefault(&c.Server.Host, defaultHost)
	setDefault(&c.Server.Port, defaultPort)
	setDefault(&c.Server.MaxConnections, defaultMaxConnections)
	setDefault(&c.Redis.Addr, defaultRedisAddr)
	setDefault(&c.History.Path, defaultHistoryPath)
	setDefault(&c.Game.RoomTimeout, defaultRoomTimeout)
	setDefault(&c.Game.AIThinkDelay, defaultAIThinkDelay)
	setDefault(&c.Game.NextHandDelay, defaultNextHandDelay)
	setDefault(&c.Game.WinScore, defaultWinScore)
	setDefault(&c.Game.RaiseStake, defaultRaiseStake)
	setDefault(&c.Game.ShutdownTimeout, defaultShutdownTimeout)
	setDefault(&c.Game.ShutdownCheckInterval, defaultShutdownCheckInterval)
	setDefault(&c.Security.RateLimit.MaxPerSecond, defaultRateMaxPerSecond)
	setDefault(&c.Security.RateLimit.MaxPerMinute, defaultRateMaxPerMinute)
	setDefault(&c.Security.RateLimit.BanDuration, defaultBanDuration)
	setDefault(&c.Security.MessageLimit.MaxPerSecond, defaultMessageMaxPerSecond)
	setDefault(&c.Log.Level, defaultLogLevel)
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = []string{"*"}
	}
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// applyEnv 环境变量覆盖配置
func (c *Config) applyEnv() {
	if v := os.Getenv("TRUCO_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("TRUCO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v, ok := os.LookupEnv("TRUCO_REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v := os.Getenv("TRUCO_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv("TRUCO_HISTORY_PATH"); ok {
		c.History.Path = v
	}
	if v := os.Getenv("TRUCO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TRUCO_ALLOWED_ORIGINS"); v != "" {
		c.Security.AllowedOrigins = strings.Split(v, ",")
	}
}
