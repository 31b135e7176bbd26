package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8080
  max_connections: 5000

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1

history:
  path: "/var/lib/truco/history.db"

game:
  room_timeout: 15
  ai_think_delay: 500
  next_hand_delay: 1500
  win_score: 6
  raise_stake: 4

security:
  allowed_origins:
    - "http://localhost:3000"
    - "https://example.com"
  rate_limit:
    max_per_second: 20
    max_per_minute: 120
    ban_duration: 120
  message_limit:
    max_per_second: 50

log:
  level: debug
  development: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Server.MaxConnections)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "/var/lib/truco/history.db", cfg.History.Path)
	assert.Equal(t, 6, cfg.Game.WinScore)
	assert.Equal(t, 4, cfg.Game.RaiseStake)
	assert.Equal(t, 500*time.Millisecond, cfg.Game.AIThinkDelayDuration())
	assert.Equal(t, 1500*time.Millisecond, cfg.Game.NextHandDelayDuration())
	assert.Len(t, cfg.Security.AllowedOrigins, 2)
	assert.Equal(t, 50, cfg.Security.MessageLimit.MaxPerSecond)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "invalid: yaml: :::"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultMaxConnections, cfg.Server.MaxConnections)
	assert.Equal(t, defaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, defaultWinScore, cfg.Game.WinScore)
	assert.Equal(t, defaultRaiseStake, cfg.Game.RaiseStake)
	assert.Equal(t, time.Second, cfg.Game.AIThinkDelayDuration())
	assert.Equal(t, 2*time.Second, cfg.Game.NextHandDelayDuration())
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, defaultLogLevel, cfg.Log.Level)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Game.RoomTimeoutDuration())
}

func TestDurationMethods(t *testing.T) {
	t.Parallel()

	cfg := &GameConfig{
		RoomTimeout:           10,
		AIThinkDelay:          250,
		NextHandDelay:         750,
		ShutdownTimeout:       60,
		ShutdownCheckInterval: 5,
	}
	assert.Equal(t, 10*time.Minute, cfg.RoomTimeoutDuration())
	assert.Equal(t, 250*time.Millisecond, cfg.AIThinkDelayDuration())
	assert.Equal(t, 750*time.Millisecond, cfg.NextHandDelayDuration())
	assert.Equal(t, 60*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Equal(t, 5*time.Second, cfg.ShutdownCheckIntervalDuration())

	rl := &RateLimitConfig{BanDuration: 120}
	assert.Equal(t, 120*time.Second, rl.BanDurationTime())
}

func TestLoadFromEnv(t *testing.T) {
	// 修改环境变量，不能并行
	t.Setenv("TRUCO_HOST", "env-host")
	t.Setenv("TRUCO_PORT", "9999")
	t.Setenv("TRUCO_REDIS_ADDR", "")
	t.Setenv("TRUCO_HISTORY_PATH", "/tmp/h.db")
	t.Setenv("TRUCO_LOG_LEVEL", "warn")
	t.Setenv("TRUCO_ALLOWED_ORIGINS", "http://a.com,http://b.com")

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "/tmp/h.db", cfg.History.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.Security.AllowedOrigins)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Setenv("TRUCO_PORT", "4242")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4242, cfg.Server.Port)
	assert.Equal(t, defaultHost, cfg.Server.Host)

	_, err = LoadOrDefault(writeConfig(t, "invalid: yaml: :::"))
	assert.Error(t, err)
}
